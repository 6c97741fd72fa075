package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"synchrony/app/models"
	"synchrony/app/store"

	"github.com/google/uuid"
)

// AddTaskInput carries the fields for a new task.
type AddTaskInput struct {
	Title    string          `json:"title"`
	Assignee string          `json:"assignee"`
	Status   models.Status   `json:"status"`
	Deadline string          `json:"deadline"`
	Priority models.Priority `json:"priority"`
	Category string          `json:"category"`
	ParentID *string         `json:"parent_id"`
}

// AssignedTask is a task annotated with the project it came from, used
// by the cross-project assignee scan.
type AssignedTask struct {
	models.Task
	ProjectID string `json:"project_id"`
}

// TaskService handles task-level operations within projects.
type TaskService struct {
	store  store.Store
	lock   *sync.Mutex
	logger *slog.Logger
}

// NewTaskService creates a new TaskService sharing the dataset writer
// lock with the project service.
func NewTaskService(st store.Store, lock *sync.Mutex, logger *slog.Logger) *TaskService {
	return &TaskService{store: st, lock: lock, logger: logger}
}

// Add validates and appends a task to the given project, returning the
// new task id. On any failure the dataset is left unchanged.
func (s *TaskService) Add(ctx context.Context, projectID string, in AddTaskInput) (string, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Assignee = strings.TrimSpace(in.Assignee)
	in.Deadline = strings.TrimSpace(in.Deadline)

	if in.Title == "" {
		return "", &models.ValidationError{Reason: "task title is required"}
	}
	if in.Assignee == "" {
		return "", &models.ValidationError{Reason: "assignee is required"}
	}
	if !models.IsValidStatus(in.Status) {
		return "", &models.ValidationError{Reason: fmt.Sprintf("invalid status %q", in.Status)}
	}
	if !models.IsValidPriority(in.Priority) {
		return "", &models.ValidationError{Reason: fmt.Sprintf("invalid priority %q", in.Priority)}
	}
	if in.Deadline != "" {
		if _, err := time.Parse(models.DeadlineLayout, in.Deadline); err != nil {
			return "", &models.ValidationError{Reason: "deadline must be in YYYY-MM-DD format"}
		}
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	dataset, err := s.store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("add task: %w", err)
	}

	project := dataset.FindProject(projectID)
	if project == nil {
		return "", &models.NotFoundError{Resource: "project", Key: projectID}
	}
	if !project.HasMember(in.Assignee) {
		return "", &models.ValidationError{Reason: fmt.Sprintf("assignee %q is not a member of project %q", in.Assignee, project.Title)}
	}

	var parentID *string
	if in.ParentID != nil && *in.ParentID != "" {
		if project.FindTask(*in.ParentID) == nil {
			return "", &models.NotFoundError{Resource: "parent task", Key: *in.ParentID}
		}
		if !parentChainIsAcyclic(project, *in.ParentID) {
			return "", &models.ValidationError{Reason: "parent task is part of a cycle"}
		}
		id := *in.ParentID
		parentID = &id
	}

	task := models.Task{
		ID:       uuid.New().String(),
		Title:    in.Title,
		Assignee: in.Assignee,
		Status:   in.Status,
		Deadline: in.Deadline,
		Priority: in.Priority,
		Category: in.Category,
		ParentID: parentID,
		Created:  time.Now().Format(time.RFC3339),
	}
	project.Tasks = append(project.Tasks, task)

	if err := s.store.Save(ctx, dataset); err != nil {
		return "", fmt.Errorf("add task: %w", err)
	}

	s.logger.Info("task added", "project_id", projectID, "task_id", task.ID, "assignee", task.Assignee)
	return task.ID, nil
}

// UpdateStatus sets a task's status and persists the dataset. Setting
// the status a task already has is a no-op and skips the write. Stale
// project or task ids report not-found; callers should treat that as
// someone else having changed the data.
func (s *TaskService) UpdateStatus(ctx context.Context, projectID, taskID string, status models.Status) error {
	if !models.IsValidStatus(status) {
		return &models.ValidationError{Reason: fmt.Sprintf("invalid status %q", status)}
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	dataset, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}

	project := dataset.FindProject(projectID)
	if project == nil {
		return &models.NotFoundError{Resource: "project", Key: projectID}
	}
	task := project.FindTask(taskID)
	if task == nil {
		return &models.NotFoundError{Resource: "task", Key: taskID}
	}

	if task.Status == status {
		return nil
	}
	task.Status = status

	if err := s.store.Save(ctx, dataset); err != nil {
		return fmt.Errorf("update task status: %w", err)
	}

	s.logger.Info("task status updated", "project_id", projectID, "task_id", taskID, "status", status)
	return nil
}

// ListByAssignee scans every project for tasks delegated to the given
// name. Matching is trimmed and case-insensitive.
func (s *TaskService) ListByAssignee(ctx context.Context, assignee string) ([]AssignedTask, error) {
	dataset, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks by assignee: %w", err)
	}

	want := models.NormalizeName(assignee)
	tasks := []AssignedTask{}
	for _, project := range dataset.Projects {
		for _, task := range project.Tasks {
			if models.NormalizeName(task.Assignee) == want {
				tasks = append(tasks, AssignedTask{Task: task, ProjectID: project.ID})
			}
		}
	}
	return tasks, nil
}

// ListSubtasks returns the tasks whose parent is the given task, in
// insertion order.
func (s *TaskService) ListSubtasks(ctx context.Context, projectID, parentTaskID string) ([]models.Task, error) {
	dataset, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}

	project := dataset.FindProject(projectID)
	if project == nil {
		return nil, &models.NotFoundError{Resource: "project", Key: projectID}
	}
	if project.FindTask(parentTaskID) == nil {
		return nil, &models.NotFoundError{Resource: "task", Key: parentTaskID}
	}

	subtasks := []models.Task{}
	for _, task := range project.Tasks {
		if task.HasParent() && *task.ParentID == parentTaskID {
			subtasks = append(subtasks, task)
		}
	}
	return subtasks, nil
}

// parentChainIsAcyclic walks the parent chain starting at taskID and
// reports whether it terminates. The aggregation and view logic assume
// a forest, so a cyclic chain must be rejected at write time rather
// than followed forever later.
func parentChainIsAcyclic(project *models.Project, taskID string) bool {
	seen := map[string]bool{}
	current := taskID
	for {
		if seen[current] {
			return false
		}
		seen[current] = true

		task := project.FindTask(current)
		if task == nil || !task.HasParent() {
			return true
		}
		current = *task.ParentID
	}
}
