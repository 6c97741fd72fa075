package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"synchrony/app/models"
	"synchrony/app/store"

	"github.com/google/uuid"
)

// ProjectService handles project-level operations over the dataset.
type ProjectService struct {
	store  store.Store
	lock   *sync.Mutex
	logger *slog.Logger
}

// NewProjectService creates a new ProjectService. The lock is shared
// with every service that mutates the dataset, so load-mutate-save
// sequences from concurrent requests never interleave in this process.
func NewProjectService(st store.Store, lock *sync.Mutex, logger *slog.Logger) *ProjectService {
	return &ProjectService{store: st, lock: lock, logger: logger}
}

// Create appends a new project with no tasks and returns its id.
// Members are trimmed and empty entries dropped; the member list is
// fixed from this point on.
func (s *ProjectService) Create(ctx context.Context, title, description, teamLead string, members []string) (string, error) {
	title = strings.TrimSpace(title)
	teamLead = strings.TrimSpace(teamLead)

	cleaned := make([]string, 0, len(members))
	for _, m := range members {
		if m = strings.TrimSpace(m); m != "" {
			cleaned = append(cleaned, m)
		}
	}

	if title == "" {
		return "", &models.ValidationError{Reason: "project title is required"}
	}
	if teamLead == "" {
		return "", &models.ValidationError{Reason: "team lead is required"}
	}
	if len(cleaned) == 0 {
		return "", &models.ValidationError{Reason: "at least one team member is required"}
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	dataset, err := s.store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("create project: %w", err)
	}

	project := models.Project{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		TeamLead:    teamLead,
		Members:     cleaned,
		Tasks:       []models.Task{},
	}
	dataset.Projects = append(dataset.Projects, project)

	if err := s.store.Save(ctx, dataset); err != nil {
		return "", fmt.Errorf("create project: %w", err)
	}

	s.logger.Info("project created", "project_id", project.ID, "title", title)
	return project.ID, nil
}

// List returns all projects in insertion order.
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	dataset, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return dataset.Projects, nil
}

// GetByID returns the project with the given id.
func (s *ProjectService) GetByID(ctx context.Context, projectID string) (*models.Project, error) {
	dataset, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	project := dataset.FindProject(projectID)
	if project == nil {
		return nil, &models.NotFoundError{Resource: "project", Key: projectID}
	}
	return project, nil
}

// GetByTitle returns the first project with the given title. Titles are
// not unique; the first match by insertion order wins.
func (s *ProjectService) GetByTitle(ctx context.Context, title string) (*models.Project, error) {
	dataset, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	project := dataset.FindProjectByTitle(title)
	if project == nil {
		return nil, &models.NotFoundError{Resource: "project", Key: title}
	}
	return project, nil
}
