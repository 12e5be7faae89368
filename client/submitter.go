package client

import (
	"context"
	"errors"
	"strings"

	"email-campaign/models"
)

// ValidationError is a submission rejected before any network call. Message
// is meant for the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrNoRecipients   = &ValidationError{Message: "Please add at least one recipient."}
	ErrMissingContent = &ValidationError{Message: "Please fill out the subject and message fields."}
)

// StatusRenderer displays the progress and single outcome of a submission.
type StatusRenderer interface {
	Sending()
	Completed(metrics models.CampaignMetrics, totalRecipients int)
	Failed(message string)
	NetworkError(err error)
}

type Submitter struct {
	client   *Client
	renderer StatusRenderer
}

func NewSubmitter(client *Client, renderer StatusRenderer) *Submitter {
	return &Submitter{client: client, renderer: renderer}
}

// Submit validates locally, then sends the campaign once. Exactly one of
// Completed, Failed or NetworkError is rendered for a request that leaves the
// process; local validation errors are returned without rendering.
func (s *Submitter) Submit(ctx context.Context, subject, message string, recipients []models.Recipient) (*models.SendResponse, error) {
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(message) == "" {
		return nil, ErrMissingContent
	}

	s.renderer.Sending()

	var resp models.SendResponse
	err := s.client.postJSON(ctx, "/api/send", models.SendRequest{
		Subject:    subject,
		Message:    message,
		Recipients: recipients,
	}, &resp)

	var apiErr *APIError
	switch {
	case err == nil:
		s.renderer.Completed(resp.Metrics, len(recipients))
		return &resp, nil
	case errors.As(err, &apiErr):
		s.renderer.Failed(apiErr.Message)
	default:
		s.renderer.NetworkError(err)
	}
	return nil, err
}
