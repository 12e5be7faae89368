package models

type Draft struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type DraftRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}
