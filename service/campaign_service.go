package service

import (
	"context"
	"errors"
	"strings"

	"email-campaign/logger"
	"email-campaign/models"
)

var ErrMissingCampaignData = errors.New("missing required campaign data")

const (
	failurePercent = 5
	openPercent    = 20

	simulatedMessage = "Campaign sending simulated successfully!"
)

// CampaignService simulates delivery. Nothing is sent.
type CampaignService struct {
	log *logger.Logger
}

func NewCampaignService(log *logger.Logger) *CampaignService {
	return &CampaignService{
		log: log.WithComponent("campaign"),
	}
}

func (s *CampaignService) SimulateSend(ctx context.Context, req *models.SendRequest) (*models.SendResponse, error) {
	if req == nil || req.Subject == "" || req.Message == "" || len(req.Recipients) == 0 {
		return nil, ErrMissingCampaignData
	}

	metrics := SimulateMetrics(len(req.Recipients))

	s.log.Info().
		Str("subject", truncate(req.Subject, 80)).
		Int("recipients", len(req.Recipients)).
		Int("sent", metrics.SentCount).
		Int("failed", metrics.FailedCount).
		Int("opens", metrics.OpensCount).
		Msg("campaign simulated")

	return &models.SendResponse{
		Message: simulatedMessage,
		Metrics: metrics,
	}, nil
}

// SimulateMetrics derives the fabricated outcome for total recipients:
// 5% fail, 20% of the rest open, both rounded down.
func SimulateMetrics(total int) models.CampaignMetrics {
	if total < 0 {
		total = 0
	}
	failed := total * failurePercent / 100
	sent := total - failed
	opened := sent * openPercent / 100

	return models.CampaignMetrics{
		Status:      models.StatusCompleted,
		SentCount:   sent,
		FailedCount: failed,
		OpensCount:  opened,
	}
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "…"
}
