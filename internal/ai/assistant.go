// Package ai defines the text-generation surface of the application: essay
// topic suggestions, essay drafting and a guidance chat. It carries no
// scoring logic.
package ai

import (
	"context"

	"github.com/uniassist/uniassist/internal/catalog"
	"github.com/uniassist/uniassist/internal/match"
	"github.com/uniassist/uniassist/internal/profile"
)

// EssayTopic is one application-essay prompt.
type EssayTopic struct {
	Title     string `json:"title"`
	Prompt    string `json:"prompt"`
	WordLimit int    `json:"wordLimit"`
}

// EssayDraft is a generated essay with the raw model output preserved for
// debugging.
type EssayDraft struct {
	Topic   EssayTopic
	Content string
	Raw     string
}

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// EssayRequest bundles everything a draft is grounded on.
type EssayRequest struct {
	Student    *profile.StudentProfile
	University *catalog.University
	Answers    match.ApplicationAnswers
	Topic      EssayTopic
}

// ChatRequest is a follow-up conversation about an essay in progress.
type ChatRequest struct {
	EssayRequest
	Messages []Message
}

// Assistant generates application-writing help.
type Assistant interface {
	SuggestTopics(ctx context.Context, university *catalog.University, student *profile.StudentProfile) ([]EssayTopic, error)
	DraftEssay(ctx context.Context, req *EssayRequest) (*EssayDraft, error)
	Chat(ctx context.Context, req *ChatRequest) (string, error)
}
