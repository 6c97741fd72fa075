package controllers

import (
	"net/http"

	"synchrony/app/services"

	"github.com/gorilla/mux"
)

// WorklistController handles the per-user checklist view and the
// status-cycle toggle it drives.
type WorklistController struct {
	Worklists *services.WorklistService
}

// NewWorklistController creates a new WorklistController.
func NewWorklistController(worklists *services.WorklistService) *WorklistController {
	return &WorklistController{Worklists: worklists}
}

// GetWorklist handles GET /worklist/{assignee}.
func (c *WorklistController) GetWorklist(w http.ResponseWriter, r *http.Request) {
	list, err := c.Worklists.Worklist(r.Context(), mux.Vars(r)["assignee"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// CycleTask handles POST /projects/{projectID}/tasks/{taskID}/cycle.
func (c *WorklistController) CycleTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	next, err := c.Worklists.CycleTask(r.Context(), vars["projectID"], vars["taskID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: next})
}
