package controllers

import (
	"encoding/json"
	"net/http"

	"synchrony/app/services"

	"github.com/gorilla/mux"
)

// ProjectController handles HTTP requests for projects and their
// progress rollups.
type ProjectController struct {
	Projects *services.ProjectService
	Progress *services.ProgressService
}

// NewProjectController creates a new ProjectController.
func NewProjectController(projects *services.ProjectService, progress *services.ProgressService) *ProjectController {
	return &ProjectController{Projects: projects, Progress: progress}
}

type createProjectRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TeamLead    string   `json:"team_lead"`
	Members     []string `json:"members"`
}

type createdResponse struct {
	ID string `json:"id"`
}

// CreateProject handles POST /projects.
func (c *ProjectController) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	id, err := c.Projects.Create(r.Context(), req.Title, req.Description, req.TeamLead, req.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

// ListProjects handles GET /projects. With a ?title= query it returns
// the first project with that title instead of the full list.
func (c *ProjectController) ListProjects(w http.ResponseWriter, r *http.Request) {
	if title := r.URL.Query().Get("title"); title != "" {
		project, err := c.Projects.GetByTitle(r.Context(), title)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, project)
		return
	}

	projects, err := c.Projects.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// GetProject handles GET /projects/{projectID}.
func (c *ProjectController) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := c.Projects.GetByID(r.Context(), mux.Vars(r)["projectID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// GetProgress handles GET /projects/{projectID}/progress.
func (c *ProjectController) GetProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := c.Progress.ProjectProgress(r.Context(), mux.Vars(r)["projectID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
