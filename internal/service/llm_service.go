package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"luminous-ledger/pkg/config"

	"go.uber.org/zap"
)

var (
	// ErrEmptyModelOutput means the upstream call succeeded but produced no
	// usable text (safety-filtered or empty candidates). Callers must treat
	// this as a failure, never as an empty success.
	ErrEmptyModelOutput = errors.New("model returned empty or blocked content")

	ErrEmptyPrompt = errors.New("prompt must not be empty")
)

// jsonDirective is appended to every outgoing prompt; generation is also
// constrained to application/json via the generation config.
const jsonDirective = "\n\nAlways respond in valid JSON format."

const defaultSystemPrompt = "You are Luminous, a coldly rational AI wealth butler. " +
	"You analyze personal finances with ruthless precision and answer briefly, in character."

// GenerateRequest is one completion request. ImageBase64, when set, holds
// base64-encoded JPEG bytes sent as an inline image part.
type GenerateRequest struct {
	Prompt       string
	SystemPrompt string
	ImageBase64  string
}

// Gemini generateContent wire format.
// https://ai.google.dev/api/generate-content
type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string `json:"response_mime_type"`
}

type geminiRequest struct {
	SystemInstruction geminiContent          `json:"system_instruction"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type LLMService struct {
	cfg        *config.GeminiConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewLLMService(cfg *config.GeminiConfig, logger *zap.Logger) *LLMService {
	return &LLMService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

func buildGeminiRequest(req GenerateRequest) *geminiRequest {
	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	parts := []geminiPart{{Text: req.Prompt + jsonDirective}}
	if req.ImageBase64 != "" {
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{
				MIMEType: "image/jpeg",
				Data:     req.ImageBase64,
			},
		})
	}

	return &geminiRequest{
		SystemInstruction: geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Parts: parts}},
		GenerationConfig:  geminiGenerationConfig{ResponseMIMEType: "application/json"},
	}
}

// Generate sends one completion request and returns the first candidate's
// text. The service is stateless; any number of calls may run in parallel.
func (s *LLMService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if req.Prompt == "" {
		return "", ErrEmptyPrompt
	}

	body, err := json.Marshal(buildGeminiRequest(req))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		s.cfg.BaseURL, s.cfg.Model, url.QueryEscape(s.cfg.APIKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("Upstream returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", respBody),
		)
		return "", fmt.Errorf("upstream request failed with status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode upstream response: %w", err)
	}

	text := candidateText(&parsed)
	if text == "" {
		// Log the full payload: the interesting details (safety ratings,
		// finish reason) live in fields we do not model.
		s.logger.Error("Upstream response empty or blocked",
			zap.ByteString("response", respBody),
		)
		return "", ErrEmptyModelOutput
	}

	return text, nil
}

func candidateText(resp *geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text
		}
	}
	return ""
}
