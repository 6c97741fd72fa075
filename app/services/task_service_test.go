package services

import (
	"sync"
	"testing"

	"synchrony/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTask(assignee string) AddTaskInput {
	return AddTaskInput{
		Title:    "Wireframes",
		Assignee: assignee,
		Status:   models.StatusToDo,
		Deadline: "2025-01-10",
		Priority: models.PriorityHigh,
		Category: "Design",
	}
}

func TestAddTaskValidation(t *testing.T) {
	ctx, projects, tasks, st := newTestServices(t)
	projectID := createProject(t, ctx, projects, "Site", "Alice", "Bob")

	tests := []struct {
		name   string
		mutate func(*AddTaskInput)
	}{
		{"empty title", func(in *AddTaskInput) { in.Title = " " }},
		{"empty assignee", func(in *AddTaskInput) { in.Assignee = "" }},
		{"invalid status", func(in *AddTaskInput) { in.Status = "Done" }},
		{"invalid priority", func(in *AddTaskInput) { in.Priority = "Urgent" }},
		{"bad deadline format", func(in *AddTaskInput) { in.Deadline = "10/01/2025" }},
		{"assignee not a member", func(in *AddTaskInput) { in.Assignee = "Mallory" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validTask("Alice")
			tt.mutate(&in)
			_, err := tasks.Add(ctx, projectID, in)
			assert.True(t, models.IsValidation(err), "expected validation error, got %v", err)
		})
	}

	dataset, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, dataset.Projects[0].Tasks, "failed adds must leave the dataset unchanged")
}

func TestAddTaskUnknownProject(t *testing.T) {
	ctx, _, tasks, _ := newTestServices(t)

	_, err := tasks.Add(ctx, "nope", validTask("Alice"))
	assert.True(t, models.IsNotFound(err))
}

func TestAddTaskUnknownParentLeavesDatasetUnchanged(t *testing.T) {
	ctx, projects, tasks, st := newTestServices(t)
	projectID := createProject(t, ctx, projects, "Site", "Alice")

	in := validTask("Alice")
	ghost := "no-such-task"
	in.ParentID = &ghost

	_, err := tasks.Add(ctx, projectID, in)
	assert.True(t, models.IsNotFound(err))

	dataset, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, dataset.Projects[0].Tasks)
}

func TestAddSubtaskAndListSubtasks(t *testing.T) {
	ctx, projects, tasks, _ := newTestServices(t)
	projectID := createProject(t, ctx, projects, "Site", "Alice", "Bob")

	parentID, err := tasks.Add(ctx, projectID, validTask("Alice"))
	require.NoError(t, err)

	child := validTask("Bob")
	child.Title = "Homepage copy"
	child.Status = models.StatusInProgress
	child.ParentID = &parentID
	childID, err := tasks.Add(ctx, projectID, child)
	require.NoError(t, err)

	subtasks, err := tasks.ListSubtasks(ctx, projectID, parentID)
	require.NoError(t, err)
	require.Len(t, subtasks, 1)
	assert.Equal(t, childID, subtasks[0].ID)

	// The child has no subtasks of its own.
	none, err := tasks.ListSubtasks(ctx, projectID, childID)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = tasks.ListSubtasks(ctx, projectID, "nope")
	assert.True(t, models.IsNotFound(err))
}

func TestUpdateStatusIsIdempotent(t *testing.T) {
	ctx, projects, tasks, st := newTestServices(t)
	projectID := createProject(t, ctx, projects, "Site", "Alice")
	taskID, err := tasks.Add(ctx, projectID, validTask("Alice"))
	require.NoError(t, err)

	require.NoError(t, tasks.UpdateStatus(ctx, projectID, taskID, models.StatusComplete))
	after, err := st.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, tasks.UpdateStatus(ctx, projectID, taskID, models.StatusComplete))
	again, err := st.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, after, again, "repeating the same update must not change persisted state")
	assert.Equal(t, models.StatusComplete, again.Projects[0].Tasks[0].Status)
}

func TestUpdateStatusStaleIDs(t *testing.T) {
	ctx, projects, tasks, _ := newTestServices(t)
	projectID := createProject(t, ctx, projects, "Site", "Alice")

	err := tasks.UpdateStatus(ctx, "stale-project", "whatever", models.StatusComplete)
	assert.True(t, models.IsNotFound(err))

	err = tasks.UpdateStatus(ctx, projectID, "stale-task", models.StatusComplete)
	assert.True(t, models.IsNotFound(err))

	err = tasks.UpdateStatus(ctx, projectID, "whatever", "Done")
	assert.True(t, models.IsValidation(err))
}

func TestListByAssigneeMatchesAcrossProjects(t *testing.T) {
	ctx, projects, tasks, _ := newTestServices(t)
	first := createProject(t, ctx, projects, "Site", "Alice", "Bob")
	second := createProject(t, ctx, projects, "App", "Alice")

	_, err := tasks.Add(ctx, first, validTask("Alice"))
	require.NoError(t, err)
	_, err = tasks.Add(ctx, first, validTask("Bob"))
	require.NoError(t, err)
	_, err = tasks.Add(ctx, second, validTask("Alice"))
	require.NoError(t, err)

	// Trimmed, case-insensitive match; origin project ids carried along.
	assigned, err := tasks.ListByAssignee(ctx, "  aLiCe ")
	require.NoError(t, err)
	require.Len(t, assigned, 2)
	assert.Equal(t, first, assigned[0].ProjectID)
	assert.Equal(t, second, assigned[1].ProjectID)

	none, err := tasks.ListByAssignee(ctx, "Mallory")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAddTaskSaveFailureDoesNotCommit(t *testing.T) {
	ctx, projects, _, st := newTestServices(t)
	projectID := createProject(t, ctx, projects, "Site", "Alice")

	tasks := NewTaskService(&failingStore{Store: st}, &sync.Mutex{}, testLogger())
	_, err := tasks.Add(ctx, projectID, validTask("Alice"))
	require.Error(t, err)

	dataset, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, dataset.Projects[0].Tasks, "a failed save must not be reported as committed")
}
