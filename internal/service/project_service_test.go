package service

import (
	"testing"

	"luminous-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkflowTasks_BareArray(t *testing.T) {
	text := `[
		{"title":"Research the market","description":"Find three competitors","priority":"high"},
		{"title":"Build a portfolio","description":"","priority":"medium"}
	]`

	drafts, err := ParseWorkflowTasks(text)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "Research the market", drafts[0].Title)
	assert.Equal(t, "high", drafts[0].Priority)
}

func TestParseWorkflowTasks_WrappedObject(t *testing.T) {
	text := `{"tasks":[{"title":"Set up a landing page","priority":"low"}]}`

	drafts, err := ParseWorkflowTasks(text)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Set up a landing page", drafts[0].Title)
}

func TestParseWorkflowTasks_CodeFences(t *testing.T) {
	text := "```json\n[{\"title\":\"First outreach\",\"priority\":\"high\"}]\n```"

	drafts, err := ParseWorkflowTasks(text)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
}

func TestParseWorkflowTasks_DropsUntitledEntries(t *testing.T) {
	text := `[{"title":"","priority":"high"},{"title":"Real task","priority":"low"}]`

	drafts, err := ParseWorkflowTasks(text)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Real task", drafts[0].Title)
}

func TestParseWorkflowTasks_Unparseable(t *testing.T) {
	_, err := ParseWorkflowTasks("here are some ideas: 1. do things")
	assert.ErrorIs(t, err, ErrUnparseableModelOutput)

	_, err = ParseWorkflowTasks(`[]`)
	assert.ErrorIs(t, err, ErrUnparseableModelOutput)

	_, err = ParseWorkflowTasks(`{"advice":"not tasks"}`)
	assert.ErrorIs(t, err, ErrUnparseableModelOutput)
}

func TestBuildWorkflowTasks(t *testing.T) {
	projectID := uuid.New()
	drafts := []TaskDraft{
		{Title: "First", Description: "do it first", Priority: "high"},
		{Title: "Second", Priority: "urgent"},
		{Title: "Third", Priority: "low"},
	}

	tasks := buildWorkflowTasks(projectID, drafts)
	require.Len(t, tasks, 3)

	for i, task := range tasks {
		assert.Equal(t, projectID, task.ProjectID)
		assert.Equal(t, i, task.Position)
		assert.Equal(t, models.TaskPending, task.Status)
	}

	assert.Equal(t, models.PriorityHigh, tasks[0].Priority)
	// Priorities outside the enum clamp to medium.
	assert.Equal(t, models.PriorityMedium, tasks[1].Priority)
	assert.Equal(t, models.PriorityLow, tasks[2].Priority)
}

func TestWorkflowPrompt(t *testing.T) {
	project := &models.Project{
		Title:        "Video editing agency",
		Description:  "Offer editing to small channels",
		TargetIncome: 200000,
	}

	prompt := workflowPrompt(project)
	assert.Contains(t, prompt, "Video editing agency")
	assert.Contains(t, prompt, "Offer editing to small channels")
	assert.Contains(t, prompt, "200000")
	assert.Contains(t, prompt, "JSON array")
}
