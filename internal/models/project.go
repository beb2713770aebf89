package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectPaused    ProjectStatus = "paused"
	ProjectCompleted ProjectStatus = "completed"
)

func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectPaused, ProjectCompleted:
		return true
	}
	return false
}

// Project is a side-income initiative the user tracks alongside regular
// transactions: a strategy description, a target income and an
// AI-generated workflow of tasks.
type Project struct {
	ID                uuid.UUID     `db:"id"`
	UserID            uuid.UUID     `db:"user_id"`
	Title             string        `db:"title"`
	Description       string        `db:"description"`
	TargetIncome      float64       `db:"target_income"`
	Status            ProjectStatus `db:"status"`
	WorkflowGenerated bool          `db:"workflow_generated"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
}

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// WorkflowTask is one step of a project's generated workflow, kept in
// execution order via Position.
type WorkflowTask struct {
	ID          uuid.UUID    `db:"id"`
	ProjectID   uuid.UUID    `db:"project_id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	Priority    TaskPriority `db:"priority"`
	Status      TaskStatus   `db:"status"`
	Position    int          `db:"position"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}
