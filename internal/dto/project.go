package dto

type CreateProjectRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	TargetIncome float64 `json:"target_income"`
}

type UpdateProjectRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	TargetIncome float64 `json:"target_income"`
	Status       string  `json:"status"`
}

type ProjectResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	TargetIncome      float64 `json:"target_income"`
	Status            string  `json:"status"`
	WorkflowGenerated bool    `json:"workflow_generated"`
	CreatedAt         string  `json:"created_at"`
}

type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Position    int    `json:"position"`
}

type ProjectDetailResponse struct {
	Project ProjectResponse `json:"project"`
	Tasks   []TaskResponse  `json:"tasks"`
}
