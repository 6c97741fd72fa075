package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"synchrony/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreLoadMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "projects.json"))

	dataset, err := s.Load(context.Background())
	require.NoError(t, err, "a missing file is the bootstrap state, not an error")
	assert.NotNil(t, dataset.Projects)
	assert.Empty(t, dataset.Projects)
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "projects.json"))
	ctx := context.Background()

	parentID := "task-1"
	original := &models.Dataset{Projects: []models.Project{
		{
			ID:          "proj-1",
			Title:       "Website Redesign",
			Description: "Refresh the marketing site",
			TeamLead:    "Alice",
			Members:     []string{"Alice", "Bob"},
			Tasks: []models.Task{
				{ID: "task-1", Title: "Wireframes", Assignee: "Alice", Status: models.StatusToDo,
					Deadline: "2025-01-10", Priority: models.PriorityHigh, Category: "Design",
					Created: "2024-12-01T09:00:00Z"},
				{ID: "task-2", Title: "Homepage copy", Assignee: "Bob", Status: models.StatusInProgress,
					Priority: models.PriorityMedium, ParentID: &parentID,
					Created: "2024-12-02T09:00:00Z"},
			},
		},
	}}

	require.NoError(t, s.Save(ctx, original))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)

	// save(load()) leaves the document structurally unchanged.
	require.NoError(t, s.Save(ctx, loaded))
	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, loaded, again)
}

func TestFileStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "projects.json"))

	require.NoError(t, s.Save(context.Background(), &models.Dataset{Projects: []models.Project{}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "projects.json", entries[0].Name())
}

func TestFileStoreLoadCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}

func TestAuthStoreRoundTrip(t *testing.T) {
	s := NewAuthStore(filepath.Join(t.TempDir(), "users.json"))

	users, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, users.Users)

	users.Users = append(users.Users, models.User{Name: "Alice", Email: "alice@example.com", Password: "secret"})
	require.NoError(t, s.Save(users))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Users, 1)
	assert.Equal(t, "alice@example.com", loaded.Users[0].Email)
	assert.NotNil(t, loaded.FindByEmail("alice@example.com"))
	assert.Nil(t, loaded.FindByEmail("bob@example.com"))
}
