package dto

type CreateTransactionRequest struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

type UpdateTransactionRequest struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

type TransactionResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"created_at"`
}
