package services

import (
	"testing"
	"time"

	"synchrony/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorklistGroupsAndSorts(t *testing.T) {
	ctx, projects, tasks, _ := newTestServices(t)
	worklists := NewWorklistService(tasks)
	worklists.now = func() time.Time { return time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC) }

	projectID := createProject(t, ctx, projects, "Launch", "Alice", "Bob")

	low := validTask("Alice")
	low.Title = "low"
	low.Priority = models.PriorityLow
	low.Deadline = "2025-01-05"
	lowID, err := tasks.Add(ctx, projectID, low)
	require.NoError(t, err)

	high := validTask("Alice")
	high.Title = "high"
	high.Deadline = "2025-02-01"
	_, err = tasks.Add(ctx, projectID, high)
	require.NoError(t, err)

	sub := validTask("Alice")
	sub.Title = "sub"
	sub.Status = models.StatusComplete
	sub.ParentID = &lowID
	subID, err := tasks.Add(ctx, projectID, sub)
	require.NoError(t, err)

	// Bob's task must not show up in Alice's worklist.
	_, err = tasks.Add(ctx, projectID, validTask("Bob"))
	require.NoError(t, err)

	list, err := worklists.Worklist(ctx, "alice")
	require.NoError(t, err)

	require.Len(t, list.Roots, 2)
	assert.Equal(t, "high", list.Roots[0].Title, "high priority sorts first")
	assert.Equal(t, "low", list.Roots[1].Title)

	require.Len(t, list.Subtasks[lowID], 1)
	assert.Equal(t, subID, list.Subtasks[lowID][0].ID)

	// "low" is past its deadline and incomplete; "high" is not due yet;
	// the completed subtask is never overdue.
	assert.True(t, list.Roots[1].Overdue)
	assert.False(t, list.Roots[0].Overdue)
	assert.False(t, list.Subtasks[lowID][0].Overdue)

	// 1 of Alice's 3 tasks is complete.
	assert.InDelta(t, 1.0/3.0, list.Completion, 1e-9)
}

func TestWorklistEmptyAssignee(t *testing.T) {
	ctx, _, tasks, _ := newTestServices(t)
	worklists := NewWorklistService(tasks)

	list, err := worklists.Worklist(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, list.Roots)
	assert.Empty(t, list.Subtasks)
	assert.Equal(t, 0.0, list.Completion)
}

func TestCycleTaskAdvancesAndPersists(t *testing.T) {
	ctx, projects, tasks, st := newTestServices(t)
	worklists := NewWorklistService(tasks)

	projectID := createProject(t, ctx, projects, "Launch", "Alice")
	taskID, err := tasks.Add(ctx, projectID, validTask("Alice"))
	require.NoError(t, err)

	// To Do → In Progress → Complete → In Progress.
	for _, want := range []models.Status{models.StatusInProgress, models.StatusComplete, models.StatusInProgress} {
		got, err := worklists.CycleTask(ctx, projectID, taskID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	dataset, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, dataset.Projects[0].Tasks[0].Status)
}

func TestCycleTaskStaleIDs(t *testing.T) {
	ctx, projects, tasks, _ := newTestServices(t)
	worklists := NewWorklistService(tasks)
	projectID := createProject(t, ctx, projects, "Launch", "Alice")

	_, err := worklists.CycleTask(ctx, "nope", "whatever")
	assert.True(t, models.IsNotFound(err))

	_, err = worklists.CycleTask(ctx, projectID, "nope")
	assert.True(t, models.IsNotFound(err))
}
