package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/uniassist/uniassist/internal/ai"
	"github.com/uniassist/uniassist/internal/catalog"
	"github.com/uniassist/uniassist/internal/match"
	"github.com/uniassist/uniassist/internal/profile"
)

type stubGenerator struct {
	responses  []string
	errs       []error
	calls      int
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return "", s.errs[idx]
	}
	if idx < len(s.responses) {
		return s.responses[idx], nil
	}
	return s.responses[len(s.responses)-1], nil
}

func (s *stubGenerator) Model() string { return "stub-model" }

func essayRequest() *ai.EssayRequest {
	return &ai.EssayRequest{
		Student:    &profile.StudentProfile{IntendedMajor: "Computer Science"},
		University: &catalog.University{Name: "Stanford University", Country: "United States"},
		Answers:    match.ApplicationAnswers{Goals: "become a researcher"},
		Topic:      ai.EssayTopic{Title: "Why Stanford", Prompt: "Why do you want to attend?", WordLimit: 650},
	}
}

func newTestAssistant(stub *stubGenerator, retries int) *Assistant {
	assistant := NewAssistant(stub, zap.NewNop(), retries, 0)
	assistant.retryDelay = 0
	return assistant
}

func TestDraftEssayExtractsTaggedContent(t *testing.T) {
	stub := &stubGenerator{responses: []string{
		"Here is your draft:\n===ESSAY_START===\nMy journey began with a robot.\n===ESSAY_END===\nLet me know what to adjust.",
	}}
	draft, err := newTestAssistant(stub, 0).DraftEssay(context.Background(), essayRequest())
	require.NoError(t, err)

	assert.Equal(t, "My journey began with a robot.", draft.Content)
	assert.Contains(t, draft.Raw, "===ESSAY_START===")
	assert.Contains(t, stub.lastPrompt, "Stanford University")
	assert.Contains(t, stub.lastPrompt, "Why do you want to attend?")
	assert.Contains(t, stub.lastPrompt, "become a researcher")
}

func TestDraftEssayWithoutTagsKeepsWholeReply(t *testing.T) {
	stub := &stubGenerator{responses: []string{"A plain untagged essay."}}
	draft, err := newTestAssistant(stub, 0).DraftEssay(context.Background(), essayRequest())
	require.NoError(t, err)
	assert.Equal(t, "A plain untagged essay.", draft.Content)
}

func TestSuggestTopicsParsesFencedJSON(t *testing.T) {
	stub := &stubGenerator{responses: []string{
		"```json\n[{\"title\": \"Why Stanford\", \"prompt\": \"Explain your motivation.\", \"wordLimit\": 500}]\n```",
	}}
	topics, err := newTestAssistant(stub, 0).SuggestTopics(context.Background(),
		&catalog.University{Name: "Stanford University"}, &profile.StudentProfile{})
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "Why Stanford", topics[0].Title)
	assert.Equal(t, 500, topics[0].WordLimit)
}

func TestSuggestTopicsRejectsGarbage(t *testing.T) {
	stub := &stubGenerator{responses: []string{"sorry, I cannot help"}}
	_, err := newTestAssistant(stub, 0).SuggestTopics(context.Background(),
		&catalog.University{Name: "Stanford University"}, nil)
	require.Error(t, err)
}

func TestGenerateRetriesTransientFailures(t *testing.T) {
	stub := &stubGenerator{
		responses: []string{"", "recovered reply"},
		errs:      []error{errors.New("temporarily overloaded"), nil},
	}
	reply, err := newTestAssistant(stub, 2).Chat(context.Background(), &ai.ChatRequest{
		EssayRequest: *essayRequest(),
		Messages:     []ai.Message{{Role: "user", Content: "help me start"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered reply", reply)
	assert.Equal(t, 2, stub.calls)
}

func TestGenerateExhaustsRetries(t *testing.T) {
	boom := errors.New("quota exceeded")
	stub := &stubGenerator{responses: []string{""}, errs: []error{boom, boom}}
	_, err := newTestAssistant(stub, 1).Chat(context.Background(), &ai.ChatRequest{
		EssayRequest: *essayRequest(),
		Messages:     []ai.Message{{Content: "hello"}},
	})
	require.ErrorIs(t, err, boom)
}

func TestChatRequiresMessages(t *testing.T) {
	stub := &stubGenerator{responses: []string{"x"}}
	_, err := newTestAssistant(stub, 0).Chat(context.Background(), &ai.ChatRequest{EssayRequest: *essayRequest()})
	require.Error(t, err)
}
