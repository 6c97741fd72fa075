package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"synchrony/app/models"
)

// FileStore keeps the dataset as a single JSON document on disk:
// {"projects": [...]}. This is the canonical persisted shape shared
// with other tooling reading the same file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the dataset document. A missing file is the documented
// bootstrap state and yields an empty dataset.
func (s *FileStore) Load(ctx context.Context) (*models.Dataset, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &models.Dataset{Projects: []models.Project{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var dataset models.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if dataset.Projects == nil {
		dataset.Projects = []models.Project{}
	}
	return &dataset, nil
}

// Save rewrites the whole document atomically.
func (s *FileStore) Save(ctx context.Context, dataset *models.Dataset) error {
	data, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := atomicWriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}
	return nil
}
