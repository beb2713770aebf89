package dto

type FinanceSummary struct {
	TotalIncome   float64            `json:"total_income"`
	TotalExpenses float64            `json:"total_expenses"`
	Balance       float64            `json:"balance"`
	ByCategory    map[string]float64 `json:"by_category"`
}

type MonthlyPoint struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

type DashboardResponse struct {
	Summary FinanceSummary        `json:"summary"`
	Monthly []MonthlyPoint        `json:"monthly"`
	Recent  []TransactionResponse `json:"recent"`
	Goals   []GoalResponse        `json:"goals"`
}
