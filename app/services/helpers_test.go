package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"synchrony/app/models"
	"synchrony/app/store"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServices(t *testing.T) (context.Context, *ProjectService, *TaskService, store.Store) {
	t.Helper()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "projects.json"))
	lock := &sync.Mutex{}
	logger := testLogger()
	return context.Background(), NewProjectService(st, lock, logger), NewTaskService(st, lock, logger), st
}

func createProject(t *testing.T, ctx context.Context, projects *ProjectService, title string, members ...string) string {
	t.Helper()
	id, err := projects.Create(ctx, title, "", "Alice", members)
	require.NoError(t, err)
	return id
}

// failingStore wraps a store and fails every Save, for exercising the
// IO error path.
type failingStore struct {
	store.Store
}

func (f *failingStore) Save(ctx context.Context, dataset *models.Dataset) error {
	return errors.New("disk full")
}
