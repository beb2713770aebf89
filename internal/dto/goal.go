package dto

type CreateGoalRequest struct {
	Title         string  `json:"title"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	TargetDate    string  `json:"target_date"`
}

type UpdateGoalRequest struct {
	Title         string  `json:"title"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	TargetDate    string  `json:"target_date"`
}

type GoalResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	TargetDate    string  `json:"target_date"`
	Progress      float64 `json:"progress"`
	CreatedAt     string  `json:"created_at"`
}
