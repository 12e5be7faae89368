package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"

	"email-campaign/logger"
	"email-campaign/models"
)

var ErrEmptyPrompt = errors.New("prompt is required")

// ModelError means the text model could not be invoked or returned nothing.
type ModelError struct {
	Err error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model invocation failed: %v", e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// ParseError means the model answered but its text is not a usable draft.
type ParseError struct {
	Raw    string
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse draft: %s", e.Detail)
}

const draftPrompt = `You are an AI assistant specialized in writing email copy.
Based on the following request, generate a subject line and email body.
The request is for: "{{.request}}"

Ensure the output is a single JSON object with exactly two string fields: "subject" and "message". Do not include any other text or characters in the response, especially not markdown like backticks.`

// DraftService asks a text model for a campaign subject and body.
type DraftService struct {
	model    llms.Model
	template prompts.PromptTemplate
	log      *logger.Logger
}

func NewDraftService(model llms.Model, log *logger.Logger) *DraftService {
	return &DraftService{
		model:    model,
		template: prompts.NewPromptTemplate(draftPrompt, []string{"request"}),
		log:      log.WithComponent("draft"),
	}
}

// GenerateDraft makes a single model call; failures are not retried.
func (s *DraftService) GenerateDraft(ctx context.Context, prompt string) (*models.Draft, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	formatted, err := s.template.Format(map[string]any{
		"request": prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format prompt: %w", err)
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, s.model, formatted, llms.WithJSONMode())
	if err != nil {
		s.log.Error().Err(err).Msg("text model call failed")
		return nil, &ModelError{Err: err}
	}

	draft, err := ParseDraft(text)
	if err != nil {
		s.log.Error().Err(err).Str("raw", text).Msg("unusable model output")
		return nil, err
	}

	s.log.Debug().Int("subject_len", len(draft.Subject)).Int("message_len", len(draft.Message)).Msg("draft generated")
	return draft, nil
}

// ParseDraft accepts exactly {"subject": string, "message": string}, optionally
// wrapped in whitespace and backtick fences.
func ParseDraft(raw string) (*models.Draft, error) {
	cleaned := stripFences(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, &ParseError{Raw: raw, Detail: err.Error()}
	}
	if fields == nil {
		return nil, &ParseError{Raw: raw, Detail: "expected a JSON object, got null"}
	}

	draft := &models.Draft{}
	targets := map[string]*string{
		"subject": &draft.Subject,
		"message": &draft.Message,
	}

	var unexpected []string
	for key := range fields {
		if _, ok := targets[key]; !ok {
			unexpected = append(unexpected, key)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return nil, &ParseError{Raw: raw, Detail: fmt.Sprintf("unexpected fields: %s", strings.Join(unexpected, ", "))}
	}

	for _, key := range []string{"subject", "message"} {
		value, ok := fields[key]
		if !ok {
			return nil, &ParseError{Raw: raw, Detail: fmt.Sprintf("missing field %q", key)}
		}
		if err := json.Unmarshal(value, targets[key]); err != nil || string(value) == "null" {
			return nil, &ParseError{Raw: raw, Detail: fmt.Sprintf("field %q must be a string", key)}
		}
	}

	return draft, nil
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "`") {
		s = strings.TrimLeft(s, "`")
		// an info string such as "json" may follow the opening fence
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[\"") {
			s = s[nl+1:]
		} else if strings.HasPrefix(s, "json") {
			s = strings.TrimPrefix(s, "json")
		}
	}
	s = strings.TrimRight(strings.TrimSpace(s), "`")
	return strings.TrimSpace(s)
}
