package controllers

import (
	"encoding/json"
	"net/http"

	"synchrony/app/models"
	"synchrony/app/services"

	"github.com/gorilla/mux"
)

// TaskController handles HTTP requests for tasks within a project.
type TaskController struct {
	Tasks *services.TaskService
}

// NewTaskController creates a new TaskController.
func NewTaskController(tasks *services.TaskService) *TaskController {
	return &TaskController{Tasks: tasks}
}

// CreateTask handles POST /projects/{projectID}/tasks.
func (c *TaskController) CreateTask(w http.ResponseWriter, r *http.Request) {
	var in services.AddTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	id, err := c.Tasks.Add(r.Context(), mux.Vars(r)["projectID"], in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

type updateStatusRequest struct {
	Status models.Status `json:"status"`
}

type statusResponse struct {
	Status models.Status `json:"status"`
}

// UpdateTaskStatus handles PUT /projects/{projectID}/tasks/{taskID}/status.
func (c *TaskController) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	if err := c.Tasks.UpdateStatus(r.Context(), vars["projectID"], vars["taskID"], req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: req.Status})
}

// ListSubtasks handles GET /projects/{projectID}/tasks/{taskID}/subtasks.
func (c *TaskController) ListSubtasks(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	subtasks, err := c.Tasks.ListSubtasks(r.Context(), vars["projectID"], vars["taskID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subtasks)
}

// ListByAssignee handles GET /tasks?assignee=name.
func (c *TaskController) ListByAssignee(w http.ResponseWriter, r *http.Request) {
	assignee := r.URL.Query().Get("assignee")
	if assignee == "" {
		writeError(w, &models.ValidationError{Reason: "assignee query parameter is required"})
		return
	}

	tasks, err := c.Tasks.ListByAssignee(r.Context(), assignee)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
