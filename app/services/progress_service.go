package services

import (
	"context"
	"fmt"
	"sort"

	"synchrony/app/models"
	"synchrony/app/store"
)

// MemberProgress is one member's completion rollup within a project.
type MemberProgress struct {
	Member    string  `json:"member"`
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Ratio     float64 `json:"ratio"`
}

// ProjectProgress is the dashboard rollup for one project.
type ProjectProgress struct {
	ProjectID string           `json:"project_id"`
	Title     string           `json:"title"`
	Total     int              `json:"total"`
	Completed int              `json:"completed"`
	Overall   float64          `json:"overall"`
	Members   []MemberProgress `json:"members"`
}

// ProgressService computes completion ratios and task orderings. All
// results are recomputed from the dataset on every call; nothing is
// cached or persisted.
type ProgressService struct {
	store store.Store
}

// NewProgressService creates a new ProgressService.
func NewProgressService(st store.Store) *ProgressService {
	return &ProgressService{store: st}
}

// Overall returns completed/total for a project's tasks. A project
// with no tasks is 0, not a division error.
func (s *ProgressService) Overall(project *models.Project) float64 {
	return ratio(project.Tasks, func(models.Task) bool { return true })
}

// ByMember returns the completion ratio over the tasks assigned to the
// given member, using the normalized name policy. Zero assigned tasks
// is 0.
func (s *ProgressService) ByMember(project *models.Project, member string) float64 {
	want := models.NormalizeName(member)
	return ratio(project.Tasks, func(t models.Task) bool {
		return models.NormalizeName(t.Assignee) == want
	})
}

// ProjectProgress computes the overall and per-member rollup for one
// project.
func (s *ProgressService) ProjectProgress(ctx context.Context, projectID string) (*ProjectProgress, error) {
	dataset, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("project progress: %w", err)
	}
	project := dataset.FindProject(projectID)
	if project == nil {
		return nil, &models.NotFoundError{Resource: "project", Key: projectID}
	}

	progress := &ProjectProgress{
		ProjectID: project.ID,
		Title:     project.Title,
		Total:     len(project.Tasks),
		Overall:   s.Overall(project),
		Members:   make([]MemberProgress, 0, len(project.Members)),
	}
	for _, task := range project.Tasks {
		if task.Status == models.StatusComplete {
			progress.Completed++
		}
	}
	for _, member := range project.Members {
		want := models.NormalizeName(member)
		mp := MemberProgress{Member: member}
		for _, task := range project.Tasks {
			if models.NormalizeName(task.Assignee) != want {
				continue
			}
			mp.Total++
			if task.Status == models.StatusComplete {
				mp.Completed++
			}
		}
		if mp.Total > 0 {
			mp.Ratio = float64(mp.Completed) / float64(mp.Total)
		}
		progress.Members = append(progress.Members, mp)
	}
	return progress, nil
}

// SortByPriorityThenDeadline orders tasks High before Medium before
// Low, breaking ties by ascending deadline. Deadlines are ISO dates,
// so the string comparison is date order; empty deadlines sort first
// within their priority.
func SortByPriorityThenDeadline(tasks []models.Task) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority.Rank() != sorted[j].Priority.Rank() {
			return sorted[i].Priority.Rank() < sorted[j].Priority.Rank()
		}
		return sorted[i].Deadline < sorted[j].Deadline
	})
	return sorted
}

func ratio(tasks []models.Task, include func(models.Task) bool) float64 {
	total, completed := 0, 0
	for _, task := range tasks {
		if !include(task) {
			continue
		}
		total++
		if task.Status == models.StatusComplete {
			completed++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}
