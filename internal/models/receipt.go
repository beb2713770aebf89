package models

// ParsedReceipt holds the structured fields extracted from a photographed
// receipt by the model. Absent fields are defaulted: amount stays zero,
// category falls back to other_expense, date falls back to today.
type ParsedReceipt struct {
	Amount    float64             `json:"amount"`
	Date      string              `json:"date"`
	StoreName string              `json:"store_name"`
	Category  TransactionCategory `json:"category"`
	Items     string              `json:"items"`
}
