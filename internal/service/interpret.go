package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"luminous-ledger/internal/models"
)

// ErrUnparseableModelOutput means the model's text was not valid JSON when
// JSON was expected. It propagates as a distinct condition so callers can
// tell a bad model answer from a transport problem.
var ErrUnparseableModelOutput = errors.New("model output is not valid JSON")

// NormalizeModelOutput resolves the two shapes model output arrives in:
// a JSON-encoded string that itself contains JSON (double-encoded), or a
// plain JSON document. Markdown code fences are stripped first, since
// models wrap output in them despite instructions.
func NormalizeModelOutput(text string) (json.RawMessage, error) {
	s := stripCodeFences(strings.TrimSpace(text))
	if s == "" {
		return nil, ErrUnparseableModelOutput
	}

	if s[0] == '"' {
		var inner string
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			s = strings.TrimSpace(stripCodeFences(inner))
		}
	}

	if !json.Valid([]byte(s)) {
		return nil, fmt.Errorf("%w: %q", ErrUnparseableModelOutput, truncate(text, 200))
	}

	return json.RawMessage(s), nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx != -1 {
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var receiptCategories = map[models.TransactionCategory]bool{
	models.CategoryFood:          true,
	models.CategoryShopping:      true,
	models.CategoryEntertainment: true,
	models.CategoryOtherExpense:  true,
}

type rawReceipt struct {
	Amount    interface{} `json:"amount"`
	Date      string      `json:"date"`
	StoreName string      `json:"store_name"`
	Category  string      `json:"category"`
	Items     string      `json:"items"`
}

// ParseReceipt maps model output into a ParsedReceipt, filling defaults
// for absent fields: amount stays zero, unknown or missing category
// becomes other_expense, a missing date becomes today.
func ParseReceipt(text string) (*models.ParsedReceipt, error) {
	raw, err := NormalizeModelOutput(text)
	if err != nil {
		return nil, err
	}

	var fields rawReceipt
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableModelOutput, err)
	}

	receipt := &models.ParsedReceipt{
		Amount:    parseAmount(fields.Amount),
		Date:      fields.Date,
		StoreName: fields.StoreName,
		Items:     fields.Items,
		Category:  models.TransactionCategory(fields.Category),
	}

	if !receiptCategories[receipt.Category] {
		receipt.Category = models.CategoryOtherExpense
	}
	if receipt.Date == "" {
		receipt.Date = time.Now().Format("2006-01-02")
	}
	if receipt.StoreName == "" {
		receipt.StoreName = fields.Items
	}

	return receipt, nil
}

// parseAmount tolerates the model returning the amount as a JSON number
// or as a numeric string.
func parseAmount(v interface{}) float64 {
	switch amount := v.(type) {
	case float64:
		return amount
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(amount), 64); err == nil {
			return f
		}
	}
	return 0
}

// TaskDraft is one workflow step as proposed by the model, before
// priorities are clamped and positions assigned.
type TaskDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// ParseWorkflowTasks maps model output into task drafts. The model is
// asked for a bare array but sometimes wraps it in a {"tasks": [...]}
// object; both shapes are accepted. Entries without a title are dropped.
func ParseWorkflowTasks(text string) ([]TaskDraft, error) {
	raw, err := NormalizeModelOutput(text)
	if err != nil {
		return nil, err
	}

	var drafts []TaskDraft
	if err := json.Unmarshal(raw, &drafts); err != nil {
		var wrapper struct {
			Tasks []TaskDraft `json:"tasks"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseableModelOutput, err)
		}
		drafts = wrapper.Tasks
	}

	result := make([]TaskDraft, 0, len(drafts))
	for _, draft := range drafts {
		if strings.TrimSpace(draft.Title) == "" {
			continue
		}
		result = append(result, draft)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: no tasks in output", ErrUnparseableModelOutput)
	}

	return result, nil
}

// extractField pulls a single string field out of a JSON object answer.
// When the output is not an object or lacks the field, the trimmed raw
// text is returned as-is, so free-text answers still reach the user.
func extractField(text, field string) string {
	raw, err := NormalizeModelOutput(text)
	if err != nil {
		// A bare JSON-encoded string ("just save more") fails
		// normalization since the inner text is not JSON; unwrap it
		// instead of handing the user the quote characters.
		trimmed := strings.TrimSpace(stripCodeFences(text))
		var inner string
		if json.Unmarshal([]byte(trimmed), &inner) == nil {
			return strings.TrimSpace(inner)
		}
		return strings.TrimSpace(text)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return strings.TrimSpace(string(raw))
	}

	var value string
	if err := json.Unmarshal(obj[field], &value); err != nil || value == "" {
		return strings.TrimSpace(string(raw))
	}
	return value
}
