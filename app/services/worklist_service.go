package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"synchrony/app/models"
)

// WorklistItem is one entry in a user's checklist.
type WorklistItem struct {
	models.Task
	ProjectID string `json:"project_id"`
	Overdue   bool   `json:"overdue"`
}

// Worklist is the per-user checklist: root tasks sorted by priority and
// deadline, with subtasks grouped under their parent's id.
type Worklist struct {
	Assignee   string                    `json:"assignee"`
	Completion float64                   `json:"completion"`
	Roots      []WorklistItem            `json:"roots"`
	Subtasks   map[string][]WorklistItem `json:"subtasks"`
}

// WorklistService builds assignee-scoped task views and applies the
// status-cycle toggle.
type WorklistService struct {
	tasks *TaskService
	now   func() time.Time
}

// NewWorklistService creates a new WorklistService.
func NewWorklistService(tasks *TaskService) *WorklistService {
	return &WorklistService{tasks: tasks, now: time.Now}
}

// Worklist gathers every task assigned to the given name across all
// projects, splits roots from subtasks, and flags overdue entries.
func (s *WorklistService) Worklist(ctx context.Context, assignee string) (*Worklist, error) {
	assigned, err := s.tasks.ListByAssignee(ctx, assignee)
	if err != nil {
		return nil, fmt.Errorf("build worklist: %w", err)
	}

	now := s.now()
	list := &Worklist{
		Assignee: assignee,
		Roots:    []WorklistItem{},
		Subtasks: map[string][]WorklistItem{},
	}

	completed := 0
	for _, at := range assigned {
		if at.Status == models.StatusComplete {
			completed++
		}
		item := WorklistItem{
			Task:      at.Task,
			ProjectID: at.ProjectID,
			Overdue:   at.OverdueOn(now),
		}
		if at.HasParent() {
			list.Subtasks[*at.ParentID] = append(list.Subtasks[*at.ParentID], item)
		} else {
			list.Roots = append(list.Roots, item)
		}
	}
	if len(assigned) > 0 {
		list.Completion = float64(completed) / float64(len(assigned))
	}

	sort.SliceStable(list.Roots, func(i, j int) bool {
		if list.Roots[i].Priority.Rank() != list.Roots[j].Priority.Rank() {
			return list.Roots[i].Priority.Rank() < list.Roots[j].Priority.Rank()
		}
		return list.Roots[i].Deadline < list.Roots[j].Deadline
	})

	return list, nil
}

// CycleTask advances a task one step through the status cycle and
// persists the change, returning the new status.
func (s *WorklistService) CycleTask(ctx context.Context, projectID, taskID string) (models.Status, error) {
	dataset, err := s.tasks.store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("cycle task: %w", err)
	}
	project := dataset.FindProject(projectID)
	if project == nil {
		return "", &models.NotFoundError{Resource: "project", Key: projectID}
	}
	task := project.FindTask(taskID)
	if task == nil {
		return "", &models.NotFoundError{Resource: "task", Key: taskID}
	}

	next := models.CycleStatus(task.Status)
	if err := s.tasks.UpdateStatus(ctx, projectID, taskID, next); err != nil {
		return "", err
	}
	return next, nil
}
