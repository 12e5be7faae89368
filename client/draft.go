package client

import (
	"context"

	"email-campaign/models"
)

// GenerateDraft asks the server to draft a subject and message for prompt.
func (c *Client) GenerateDraft(ctx context.Context, prompt string) (*models.Draft, error) {
	var draft models.Draft
	if err := c.postJSON(ctx, "/api/generate-email", models.DraftRequest{Prompt: prompt}, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}
