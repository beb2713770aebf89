package dto

import "luminous-ledger/internal/models"

// AnalyzeRequest is the proxy endpoint body. Image, when present, is a
// base64-encoded JPEG.
type AnalyzeRequest struct {
	Prompt       string `json:"prompt"`
	SystemPrompt string `json:"systemPrompt,omitempty"`
	Image        string `json:"image,omitempty"`
}

type AnalyzeResponse struct {
	Result string `json:"result"`
}

type ScanReceiptRequest struct {
	Image string `json:"image"`
}

type AdviceRequest struct {
	Mindset string `json:"mindset,omitempty"`
}

type AdviceResponse struct {
	Advice  string         `json:"advice"`
	Summary FinanceSummary `json:"summary"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Messages []models.ChatMessage `json:"messages"`
}
