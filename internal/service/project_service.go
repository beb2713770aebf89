package service

import (
	"context"
	"errors"
	"time"

	"luminous-ledger/internal/dto"
	"luminous-ledger/internal/models"
	"luminous-ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrEmptyProjectTitle    = errors.New("project title must not be empty")
	ErrInvalidProjectStatus = errors.New("unknown project status")

	// ErrWorkflowExists rejects a second generation for the same project;
	// the workflow is built once and then only toggled.
	ErrWorkflowExists = errors.New("workflow already generated")
)

type ProjectService struct {
	projectRepo *repository.ProjectRepository
	llm         textGenerator
	logger      *zap.Logger
}

func NewProjectService(projectRepo *repository.ProjectRepository, llm textGenerator, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		llm:         llm,
		logger:      logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if req.Title == "" {
		return nil, ErrEmptyProjectTitle
	}

	now := time.Now()
	project := &models.Project{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        sanitizeUTF8(req.Title),
		Description:  sanitizeUTF8(req.Description),
		TargetIncome: req.TargetIncome,
		Status:       models.ProjectPlanning,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("Project created", zap.String("id", project.ID.String()))
	return projectResponse(project), nil
}

func (s *ProjectService) List(ctx context.Context, userID uuid.UUID) ([]dto.ProjectResponse, error) {
	projects, err := s.projectRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		result = append(result, *projectResponse(project))
	}
	return result, nil
}

// Get returns one project together with its workflow tasks in execution
// order.
func (s *ProjectService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.ProjectDetailResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	tasks, err := s.projectRepo.ListTasks(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	taskViews := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		taskViews = append(taskViews, *taskResponse(task))
	}

	return &dto.ProjectDetailResponse{
		Project: *projectResponse(project),
		Tasks:   taskViews,
	}, nil
}

func (s *ProjectService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if req.Title == "" {
		return nil, ErrEmptyProjectTitle
	}
	status := models.ProjectStatus(req.Status)
	if !models.ValidProjectStatus(status) {
		return nil, ErrInvalidProjectStatus
	}

	project, err := s.projectRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	project.Title = sanitizeUTF8(req.Title)
	project.Description = sanitizeUTF8(req.Description)
	project.TargetIncome = req.TargetIncome
	project.Status = status
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	return projectResponse(project), nil
}

func (s *ProjectService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.projectRepo.GetByID(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	return s.projectRepo.Delete(ctx, id, userID)
}

// GenerateWorkflow asks the model for the project's task breakdown and
// stores it. It runs at most once per project; afterwards tasks are only
// toggled.
func (s *ProjectService) GenerateWorkflow(ctx context.Context, userID, id uuid.UUID) ([]dto.TaskResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if project.WorkflowGenerated {
		return nil, ErrWorkflowExists
	}

	text, err := s.llm.Generate(ctx, GenerateRequest{Prompt: workflowPrompt(project)})
	if err != nil {
		return nil, err
	}

	drafts, err := ParseWorkflowTasks(text)
	if err != nil {
		s.logger.Warn("Failed to parse workflow from model output", zap.Error(err))
		return nil, err
	}

	tasks := buildWorkflowTasks(project.ID, drafts)
	if err := s.projectRepo.CreateTasks(ctx, tasks); err != nil {
		return nil, err
	}

	project.WorkflowGenerated = true
	project.UpdatedAt = time.Now()
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("Workflow generated",
		zap.String("project_id", project.ID.String()),
		zap.Int("tasks", len(tasks)),
	)

	result := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, *taskResponse(task))
	}
	return result, nil
}

// ToggleTask flips a workflow task between pending and completed.
func (s *ProjectService) ToggleTask(ctx context.Context, userID, projectID, taskID uuid.UUID) (*dto.TaskResponse, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	task, err := s.projectRepo.GetTask(ctx, taskID, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if task.Status == models.TaskCompleted {
		task.Status = models.TaskPending
	} else {
		task.Status = models.TaskCompleted
	}
	task.UpdatedAt = time.Now()

	if err := s.projectRepo.UpdateTask(ctx, task); err != nil {
		return nil, err
	}

	return taskResponse(task), nil
}

// buildWorkflowTasks turns drafts into rows: positions follow the
// model's order, unknown priorities clamp to medium, status starts
// pending.
func buildWorkflowTasks(projectID uuid.UUID, drafts []TaskDraft) []*models.WorkflowTask {
	now := time.Now()
	tasks := make([]*models.WorkflowTask, 0, len(drafts))
	for i, draft := range drafts {
		priority := models.TaskPriority(draft.Priority)
		switch priority {
		case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		default:
			priority = models.PriorityMedium
		}

		tasks = append(tasks, &models.WorkflowTask{
			ID:          uuid.New(),
			ProjectID:   projectID,
			Title:       sanitizeUTF8(draft.Title),
			Description: sanitizeUTF8(draft.Description),
			Priority:    priority,
			Status:      models.TaskPending,
			Position:    i,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return tasks
}

func projectResponse(project *models.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:                project.ID.String(),
		Title:             project.Title,
		Description:       project.Description,
		TargetIncome:      project.TargetIncome,
		Status:            string(project.Status),
		WorkflowGenerated: project.WorkflowGenerated,
		CreatedAt:         project.CreatedAt.Format(time.RFC3339),
	}
}

func taskResponse(task *models.WorkflowTask) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		Position:    task.Position,
	}
}
