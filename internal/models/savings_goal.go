package models

import (
	"time"

	"github.com/google/uuid"
)

type SavingsGoal struct {
	ID            uuid.UUID `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	Title         string    `db:"title"`
	TargetAmount  float64   `db:"target_amount"`
	CurrentAmount float64   `db:"current_amount"`
	TargetDate    time.Time `db:"target_date"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
