package models

type CampaignStatus string

const StatusCompleted CampaignStatus = "Completed"

type CampaignMetrics struct {
	Status      CampaignStatus `json:"status"`
	SentCount   int            `json:"sent_count"`
	FailedCount int            `json:"failed_count"`
	OpensCount  int            `json:"opens_count"`
}

type SendRequest struct {
	Subject    string      `json:"subject" binding:"required"`
	Message    string      `json:"message" binding:"required"`
	Recipients []Recipient `json:"recipients" binding:"required,min=1,dive"`
}

type SendResponse struct {
	Message string          `json:"message"`
	Metrics CampaignMetrics `json:"metrics"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Message      string `json:"message"`
	Error        string `json:"error,omitempty"`
	ErrorDetails string `json:"errorDetails,omitempty"`
}
