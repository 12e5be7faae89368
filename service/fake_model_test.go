package service

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// fakeModel is an llms.Model returning a canned response.
type fakeModel struct {
	response string
	err      error

	prompts []string
	options []llms.CallOptions
}

var _ llms.Model = (*fakeModel)(nil)

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var prompt string
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if textPart, ok := part.(llms.TextContent); ok {
				prompt += textPart.Text
			}
		}
	}
	m.prompts = append(m.prompts, prompt)

	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}
	m.options = append(m.options, opts)

	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.response}},
	}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}
