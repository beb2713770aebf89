package repository

import (
	"context"

	"luminous-ledger/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const goalColumns = "id, user_id, title, target_amount, current_amount, target_date, created_at, updated_at"

type GoalRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewGoalRepository(db *pgxpool.Pool, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *GoalRepository) Create(ctx context.Context, goal *models.SavingsGoal) error {
	query := squirrel.Insert("savings_goals").
		Columns("id", "user_id", "title", "target_amount", "current_amount", "target_date", "created_at", "updated_at").
		Values(goal.ID, goal.UserID, goal.Title, goal.TargetAmount, goal.CurrentAmount, goal.TargetDate, goal.CreatedAt, goal.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.SavingsGoal, error) {
	query := squirrel.Select(goalColumns).
		From("savings_goals").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*models.SavingsGoal
	for rows.Next() {
		var goal models.SavingsGoal
		if err := rows.Scan(
			&goal.ID, &goal.UserID, &goal.Title, &goal.TargetAmount, &goal.CurrentAmount, &goal.TargetDate, &goal.CreatedAt, &goal.UpdatedAt,
		); err != nil {
			return nil, err
		}
		goals = append(goals, &goal)
	}

	return goals, rows.Err()
}

func (r *GoalRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.SavingsGoal, error) {
	query := squirrel.Select(goalColumns).
		From("savings_goals").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var goal models.SavingsGoal
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&goal.ID, &goal.UserID, &goal.Title, &goal.TargetAmount, &goal.CurrentAmount, &goal.TargetDate, &goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &goal, nil
}

func (r *GoalRepository) Update(ctx context.Context, goal *models.SavingsGoal) error {
	query := squirrel.Update("savings_goals").
		Set("title", goal.Title).
		Set("target_amount", goal.TargetAmount).
		Set("current_amount", goal.CurrentAmount).
		Set("target_date", goal.TargetDate).
		Set("updated_at", goal.UpdatedAt).
		Where(squirrel.Eq{"id": goal.ID, "user_id": goal.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *GoalRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := squirrel.Delete("savings_goals").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
