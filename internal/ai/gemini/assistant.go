package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/uniassist/uniassist/internal/ai"
	"github.com/uniassist/uniassist/internal/catalog"
	"github.com/uniassist/uniassist/internal/logger"
	"github.com/uniassist/uniassist/internal/profile"
	"github.com/uniassist/uniassist/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

//go:embed essay.md
var essayTemplate string

//go:embed topics.md
var topicsTemplate string

//go:embed chat.md
var chatTemplate string

const (
	defaultMaxLogLength = 200
	defaultRetryDelay   = 2 * time.Second

	essayStartTag = "===ESSAY_START==="
	essayEndTag   = "===ESSAY_END==="
)

// Assistant implements ai.Assistant on top of the Gemini API.
type Assistant struct {
	generator  contentGenerator
	logger     *zap.Logger
	maxRetries int
	retryDelay time.Duration
	maxLogLen  int
}

// NewAssistant builds an assistant. maxRetries counts attempts after the
// first one; zero disables retrying.
func NewAssistant(generator contentGenerator, log *zap.Logger, maxRetries, maxLogLength int) *Assistant {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	model := ""
	if generator != nil {
		model = generator.Model()
	}
	return &Assistant{
		generator:  generator,
		logger:     logger.WithCommonFields(log, "gemini", model),
		maxRetries: maxRetries,
		retryDelay: defaultRetryDelay,
		maxLogLen:  maxLogLength,
	}
}

// SuggestTopics asks the model for essay topics tailored to the student and
// university. The model must answer with a JSON array; code fences are
// tolerated.
func (a *Assistant) SuggestTopics(ctx context.Context, university *catalog.University, student *profile.StudentProfile) ([]ai.EssayTopic, error) {
	if university == nil {
		return nil, fmt.Errorf("university is required")
	}

	prompt, err := renderTemplate(topicsTemplate, map[string]string{
		"{{UNIVERSITY_NAME}}": university.Name,
		"{{PROFILE_JSON}}":    profileJSON(student),
		"{{UNIVERSITY_JSON}}": mustJSON(university),
	})
	if err != nil {
		return nil, err
	}

	raw, err := a.generate(ctx, "suggest_topics", prompt)
	if err != nil {
		return nil, err
	}

	var topics []ai.EssayTopic
	if err := json.Unmarshal([]byte(extractJSON(raw)), &topics); err != nil {
		return nil, fmt.Errorf("parse topic suggestions: %w", err)
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("model returned no topics")
	}
	return topics, nil
}

// DraftEssay generates a full essay draft for the request's topic.
func (a *Assistant) DraftEssay(ctx context.Context, req *ai.EssayRequest) (*ai.EssayDraft, error) {
	if req == nil || req.University == nil {
		return nil, fmt.Errorf("essay request with a university is required")
	}

	prompt, err := renderTemplate(essayTemplate, map[string]string{
		"{{UNIVERSITY_NAME}}":  req.University.Name,
		"{{TOPIC_TITLE}}":      req.Topic.Title,
		"{{TOPIC_PROMPT}}":     req.Topic.Prompt,
		"{{TOPIC_WORD_LIMIT}}": strconv.Itoa(req.Topic.WordLimit),
		"{{PROFILE_JSON}}":     profileJSON(req.Student),
		"{{ANSWERS_JSON}}":     mustJSON(req.Answers),
		"{{UNIVERSITY_JSON}}":  mustJSON(req.University),
	})
	if err != nil {
		return nil, err
	}

	raw, err := a.generate(ctx, "draft_essay", prompt)
	if err != nil {
		return nil, err
	}

	return &ai.EssayDraft{
		Topic:   req.Topic,
		Content: extractEssay(raw),
		Raw:     raw,
	}, nil
}

// Chat answers the latest message of an essay-writing conversation.
func (a *Assistant) Chat(ctx context.Context, req *ai.ChatRequest) (string, error) {
	if req == nil || req.University == nil {
		return "", fmt.Errorf("chat request with a university is required")
	}
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("at least one message is required")
	}

	prompt, err := renderTemplate(chatTemplate, map[string]string{
		"{{UNIVERSITY_NAME}}":  req.University.Name,
		"{{TOPIC_TITLE}}":      req.Topic.Title,
		"{{TOPIC_PROMPT}}":     req.Topic.Prompt,
		"{{TOPIC_WORD_LIMIT}}": strconv.Itoa(req.Topic.WordLimit),
		"{{PROFILE_JSON}}":     profileJSON(req.Student),
		"{{ANSWERS_JSON}}":     mustJSON(req.Answers),
		"{{CONVERSATION}}":     renderConversation(req.Messages),
	})
	if err != nil {
		return "", err
	}

	return a.generate(ctx, "chat", prompt)
}

// generate sends the prompt, retrying transient failures with a fixed delay.
func (a *Assistant) generate(ctx context.Context, operation, prompt string) (string, error) {
	if a.generator == nil {
		return "", fmt.Errorf("generator is not configured")
	}

	a.logger.Debug("gemini request",
		zap.String("operation", operation),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	var lastErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if attempt > 0 {
			a.logger.Warn("retrying gemini request",
				zap.String("operation", operation),
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			if err := utils.WaitFor(ctx, a.retryDelay); err != nil {
				return "", err
			}
		}

		raw, err := a.generator.GenerateContent(ctx, prompt)
		if err == nil {
			a.logger.Debug("gemini response",
				zap.String("operation", operation),
				zap.Int("response_length", utf8.RuneCountInString(raw)),
				zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
			)
			return raw, nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("%s: %w", operation, lastErr)
}

func renderTemplate(template string, replacements map[string]string) (string, error) {
	if strings.TrimSpace(template) == "" {
		return "", fmt.Errorf("prompt template is empty")
	}
	for placeholder, value := range replacements {
		template = strings.ReplaceAll(template, placeholder, value)
	}
	return template, nil
}

func renderConversation(messages []ai.Message) string {
	var builder strings.Builder
	for _, message := range messages {
		role := strings.TrimSpace(message.Role)
		if role == "" {
			role = "user"
		}
		builder.WriteString(role)
		builder.WriteString(": ")
		builder.WriteString(strings.TrimSpace(message.Content))
		builder.WriteString("\n")
	}
	return strings.TrimSpace(builder.String())
}

// extractEssay returns the text between the essay tags, or the whole reply
// when the model ignored the tagging instruction.
func extractEssay(raw string) string {
	start := strings.Index(raw, essayStartTag)
	if start == -1 {
		return strings.TrimSpace(raw)
	}
	rest := raw[start+len(essayStartTag):]
	if end := strings.Index(rest, essayEndTag); end != -1 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func mustJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// profileJSON renders the profile through its mapstructure tags so the
// prompt sees the same kebab-case keys the configuration files use.
func profileJSON(student *profile.StudentProfile) string {
	if student == nil {
		return "{}"
	}

	flat := map[string]any{}
	if err := mapstructure.Decode(student, &flat); err != nil {
		return mustJSON(student)
	}

	return mustJSON(flat)
}
