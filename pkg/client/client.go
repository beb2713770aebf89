// Package client is a small API client for the Luminous Ledger server.
// Each logical action carries its own single-flight guard: while a call
// is outstanding, triggering the same action again fails immediately
// with ErrRequestInFlight instead of issuing a duplicate request.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

var ErrRequestInFlight = errors.New("request already in flight")

// Receipt mirrors the server's receipt scan result.
type Receipt struct {
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	StoreName string  `json:"store_name"`
	Category  string  `json:"category"`
	Items     string  `json:"items"`
}

// Summary mirrors the aggregated totals the advice endpoint returns
// alongside the advice text.
type Summary struct {
	TotalIncome   float64            `json:"total_income"`
	TotalExpenses float64            `json:"total_expenses"`
	Balance       float64            `json:"balance"`
	ByCategory    map[string]float64 `json:"by_category"`
}

type Advice struct {
	Advice  string  `json:"advice"`
	Summary Summary `json:"summary"`
}

type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	scanBusy   atomic.Bool
	adviceBusy atomic.Bool
	chatBusy   atomic.Bool
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{},
	}
}

// ScanReceipt base64-encodes JPEG bytes and asks the server to extract
// transaction fields from them.
func (c *Client) ScanReceipt(ctx context.Context, imageJPEG []byte) (*Receipt, error) {
	if !c.scanBusy.CompareAndSwap(false, true) {
		return nil, ErrRequestInFlight
	}
	defer c.scanBusy.Store(false)

	req := struct {
		Image string `json:"image"`
	}{Image: base64.StdEncoding.EncodeToString(imageJPEG)}

	var receipt Receipt
	if err := c.postJSON(ctx, "/api/v1/receipts/scan", req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// GenerateAdvice requests advice for the authenticated user's recorded
// transactions.
func (c *Client) GenerateAdvice(ctx context.Context, mindset string) (*Advice, error) {
	if !c.adviceBusy.CompareAndSwap(false, true) {
		return nil, ErrRequestInFlight
	}
	defer c.adviceBusy.Store(false)

	req := struct {
		Mindset string `json:"mindset,omitempty"`
	}{Mindset: mindset}

	var resp Advice
	if err := c.postJSON(ctx, "/api/v1/advice", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendChat sends one chat turn and returns the updated transcript.
func (c *Client) SendChat(ctx context.Context, message string) ([]ChatMessage, error) {
	if !c.chatBusy.CompareAndSwap(false, true) {
		return nil, ErrRequestInFlight
	}
	defer c.chatBusy.Store(false)

	req := struct {
		Message string `json:"message"`
	}{Message: message}

	var resp struct {
		Messages []ChatMessage `json:"messages"`
	}
	if err := c.postJSON(ctx, "/api/v1/chat", req, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, errBody.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
