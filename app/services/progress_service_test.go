package services

import (
	"testing"

	"synchrony/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverallCompletionZeroTasks(t *testing.T) {
	progress := NewProgressService(nil)
	project := &models.Project{Tasks: []models.Task{}}

	assert.Equal(t, 0.0, progress.Overall(project))
	assert.Equal(t, 0.0, progress.ByMember(project, "Alice"))
}

// The end-to-end scenario: project with Alice and Bob, a high-priority
// task for Alice with a subtask for Bob; completing the parent moves
// overall completion from 0 to 0.5.
func TestProjectCompletionScenario(t *testing.T) {
	ctx, projects, tasks, _ := newTestServices(t)
	progress := NewProgressService(nil)

	projectID := createProject(t, ctx, projects, "Launch", "Alice", "Bob")

	t1 := validTask("Alice")
	t1ID, err := tasks.Add(ctx, projectID, t1)
	require.NoError(t, err)

	t2 := validTask("Bob")
	t2.Title = "Subtask"
	t2.Status = models.StatusInProgress
	t2.ParentID = &t1ID
	t2ID, err := tasks.Add(ctx, projectID, t2)
	require.NoError(t, err)

	project, err := projects.GetByID(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress.Overall(project))

	subtasks, err := tasks.ListSubtasks(ctx, projectID, t1ID)
	require.NoError(t, err)
	require.Len(t, subtasks, 1)
	assert.Equal(t, t2ID, subtasks[0].ID)

	require.NoError(t, tasks.UpdateStatus(ctx, projectID, t1ID, models.StatusComplete))

	project, err = projects.GetByID(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, 0.5, progress.Overall(project))
	assert.Equal(t, 1.0, progress.ByMember(project, "Alice"))
	assert.Equal(t, 0.0, progress.ByMember(project, "Bob"))
}

func TestByMemberUsesNormalizedNames(t *testing.T) {
	progress := NewProgressService(nil)
	project := &models.Project{
		Members: []string{"Alice"},
		Tasks: []models.Task{
			{Assignee: " alice ", Status: models.StatusComplete},
			{Assignee: "ALICE", Status: models.StatusToDo},
		},
	}

	assert.Equal(t, 0.5, progress.ByMember(project, "Alice"))
}

func TestProjectProgressRollup(t *testing.T) {
	ctx, projects, tasks, _ := newTestServices(t)
	st := tasks.store
	progress := NewProgressService(st)

	projectID := createProject(t, ctx, projects, "Launch", "Alice", "Bob")
	t1ID, err := tasks.Add(ctx, projectID, validTask("Alice"))
	require.NoError(t, err)
	_, err = tasks.Add(ctx, projectID, validTask("Bob"))
	require.NoError(t, err)
	require.NoError(t, tasks.UpdateStatus(ctx, projectID, t1ID, models.StatusComplete))

	rollup, err := progress.ProjectProgress(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, 2, rollup.Total)
	assert.Equal(t, 1, rollup.Completed)
	assert.Equal(t, 0.5, rollup.Overall)
	require.Len(t, rollup.Members, 2)
	assert.Equal(t, MemberProgress{Member: "Alice", Total: 1, Completed: 1, Ratio: 1}, rollup.Members[0])
	assert.Equal(t, MemberProgress{Member: "Bob", Total: 1, Completed: 0, Ratio: 0}, rollup.Members[1])

	_, err = progress.ProjectProgress(ctx, "nope")
	assert.True(t, models.IsNotFound(err))
}

func TestSortByPriorityThenDeadline(t *testing.T) {
	tasks := []models.Task{
		{Title: "low", Priority: models.PriorityLow, Deadline: "2025-01-01"},
		{Title: "medium-late", Priority: models.PriorityMedium, Deadline: "2025-03-01"},
		{Title: "high-late", Priority: models.PriorityHigh, Deadline: "2025-02-01"},
		{Title: "high-early", Priority: models.PriorityHigh, Deadline: "2025-01-15"},
		{Title: "medium-early", Priority: models.PriorityMedium, Deadline: "2025-01-20"},
	}

	sorted := SortByPriorityThenDeadline(tasks)

	var titles []string
	for _, task := range sorted {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"high-early", "high-late", "medium-early", "medium-late", "low"}, titles)

	// Input order untouched.
	assert.Equal(t, "low", tasks[0].Title)
}
