package repository

import (
	"context"

	"luminous-ledger/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	projectColumns = "id, user_id, title, description, target_income, status, workflow_generated, created_at, updated_at"
	taskColumns    = "id, project_id, title, description, priority, status, position, created_at, updated_at"
)

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := squirrel.Insert("projects").
		Columns("id", "user_id", "title", "description", "target_income", "status", "workflow_generated", "created_at", "updated_at").
		Values(project.ID, project.UserID, project.Title, project.Description, project.TargetIncome, project.Status, project.WorkflowGenerated, project.CreatedAt, project.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	query := squirrel.Select(projectColumns).
		From("projects").
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

	var projects []*models.Project
	for rows.Next() {
		var project models.Project
		if err := rows.Scan(
			&project.ID, &project.UserID, &project.Title, &project.Description, &project.TargetIncome, &project.Status, &project.WorkflowGenerated, &project.CreatedAt, &project.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, &project)
	}

	return projects, rows.Err()
}

func (r *ProjectRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Project, error) {
	query := squirrel.Select(projectColumns).
		From("projects").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var project models.Project
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&project.ID, &project.UserID, &project.Title, &project.Description, &project.TargetIncome, &project.Status, &project.WorkflowGenerated, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := squirrel.Update("projects").
		Set("title", project.Title).
		Set("description", project.Description).
		Set("target_income", project.TargetIncome).
		Set("status", project.Status).
		Set("workflow_generated", project.WorkflowGenerated).
		Set("updated_at", project.UpdatedAt).
		Where(squirrel.Eq{"id": project.ID, "user_id": project.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ProjectRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := squirrel.Delete("projects").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ProjectRepository) CreateTasks(ctx context.Context, tasks []*models.WorkflowTask) error {
	if len(tasks) == 0 {
		return nil
	}

	query := squirrel.Insert("workflow_tasks").
		Columns("id", "project_id", "title", "description", "priority", "status", "position", "created_at", "updated_at").
		PlaceholderFormat(squirrel.Dollar)
	for _, task := range tasks {
		query = query.Values(task.ID, task.ProjectID, task.Title, task.Description, task.Priority, task.Status, task.Position, task.CreatedAt, task.UpdatedAt)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ProjectRepository) ListTasks(ctx context.Context, projectID uuid.UUID) ([]*models.WorkflowTask, error) {
	query := squirrel.Select(taskColumns).
		From("workflow_tasks").
		Where(squirrel.Eq{"project_id": projectID}).
		OrderBy("position ASC").
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

	var tasks []*models.WorkflowTask
	for rows.Next() {
		var task models.WorkflowTask
		if err := rows.Scan(
			&task.ID, &task.ProjectID, &task.Title, &task.Description, &task.Priority, &task.Status, &task.Position, &task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, &task)
	}

	return tasks, rows.Err()
}

func (r *ProjectRepository) GetTask(ctx context.Context, taskID, projectID uuid.UUID) (*models.WorkflowTask, error) {
	query := squirrel.Select(taskColumns).
		From("workflow_tasks").
		Where(squirrel.Eq{"id": taskID, "project_id": projectID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var task models.WorkflowTask
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description, &task.Priority, &task.Status, &task.Position, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *ProjectRepository) UpdateTask(ctx context.Context, task *models.WorkflowTask) error {
	query := squirrel.Update("workflow_tasks").
		Set("status", task.Status).
		Set("updated_at", task.UpdatedAt).
		Where(squirrel.Eq{"id": task.ID, "project_id": task.ProjectID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
