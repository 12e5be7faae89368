package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"email-campaign/models"
)

type recordingRenderer struct {
	events  []string
	metrics models.CampaignMetrics
	total   int
	message string
}

func (r *recordingRenderer) Sending() { r.events = append(r.events, "sending") }

func (r *recordingRenderer) Completed(metrics models.CampaignMetrics, total int) {
	r.events = append(r.events, "completed")
	r.metrics = metrics
	r.total = total
}

func (r *recordingRenderer) Failed(message string) {
	r.events = append(r.events, "failed")
	r.message = message
}

func (r *recordingRenderer) NetworkError(err error) { r.events = append(r.events, "network") }

var twoRecipients = []models.Recipient{
	{Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"},
	{Email: "bob@example.com"},
}

func TestSubmit_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/send", r.URL.Path)

		var req models.SendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Launch", req.Subject)
		assert.Equal(t, "We are live.", req.Message)
		assert.Equal(t, twoRecipients, req.Recipients)

		json.NewEncoder(w).Encode(models.SendResponse{
			Message: "Campaign sending simulated successfully!",
			Metrics: models.CampaignMetrics{Status: models.StatusCompleted, SentCount: 2},
		})
	}))
	defer server.Close()

	renderer := &recordingRenderer{}
	resp, err := NewSubmitter(New(Config{BaseURL: server.URL}), renderer).
		Submit(context.Background(), "Launch", "We are live.", twoRecipients)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Metrics.SentCount)
	assert.Equal(t, []string{"sending", "completed"}, renderer.events)
	assert.Equal(t, 2, renderer.total)
	assert.Equal(t, models.StatusCompleted, renderer.metrics.Status)
}

func TestSubmit_LocalValidationNeverReachesNetwork(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	renderer := &recordingRenderer{}
	submitter := NewSubmitter(New(Config{BaseURL: server.URL}), renderer)

	_, err := submitter.Submit(context.Background(), "Launch", "Body", nil)
	assert.ErrorIs(t, err, ErrNoRecipients)
	assert.Equal(t, "Please add at least one recipient.", err.Error())

	_, err = submitter.Submit(context.Background(), "Launch", "Body", []models.Recipient{})
	assert.ErrorIs(t, err, ErrNoRecipients)

	_, err = submitter.Submit(context.Background(), "  ", "Body", twoRecipients)
	assert.ErrorIs(t, err, ErrMissingContent)

	_, err = submitter.Submit(context.Background(), "Launch", "\n", twoRecipients)
	assert.ErrorIs(t, err, ErrMissingContent)

	assert.Zero(t, atomic.LoadInt32(&calls))
	assert.Empty(t, renderer.events)
}

func TestSubmit_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Missing required campaign data."}`))
	}))
	defer server.Close()

	renderer := &recordingRenderer{}
	_, err := NewSubmitter(New(Config{BaseURL: server.URL}), renderer).
		Submit(context.Background(), "Launch", "Body", twoRecipients)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"sending", "failed"}, renderer.events)
	assert.Equal(t, "Missing required campaign data.", renderer.message)
}

func TestSubmit_NetworkErrors(t *testing.T) {
	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway</html>"))
	}))
	defer garbage.Close()

	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	for _, url := range []string{garbage.URL, closedURL} {
		renderer := &recordingRenderer{}
		_, err := NewSubmitter(New(Config{BaseURL: url}), renderer).
			Submit(context.Background(), "Launch", "Body", twoRecipients)

		assert.ErrorIs(t, err, ErrNetwork)
		assert.Equal(t, []string{"sending", "network"}, renderer.events)
	}
}

func TestStatusPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := StatusPrinter{W: &buf}

	p.Sending()
	p.Completed(models.CampaignMetrics{Status: models.StatusCompleted, SentCount: 95, FailedCount: 5, OpensCount: 19}, 100)
	p.Failed("Missing required campaign data.")
	p.NetworkError(ErrNetwork)

	out := buf.String()
	assert.Contains(t, out, "Campaign status: Sending...")
	assert.Contains(t, out, "Status: Completed")
	assert.Contains(t, out, "Total Recipients: 100")
	assert.Contains(t, out, "Sent: 95")
	assert.Contains(t, out, "Failed: 5")
	assert.Contains(t, out, "Simulated Opens: 19")
	assert.Contains(t, out, "Error: Missing required campaign data.")
	assert.Contains(t, out, "A network error occurred. Please try again.")
}
