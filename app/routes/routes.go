package routes

import (
	"log/slog"
	"net/http"
	"time"

	"synchrony/app/controllers"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all routes for the application.
func RegisterRoutes(
	router *mux.Router,
	auth *controllers.AuthController,
	projects *controllers.ProjectController,
	tasks *controllers.TaskController,
	worklists *controllers.WorklistController,
	assistant *controllers.AssistantController,
) {
	router.HandleFunc("/auth/register", auth.Register).Methods(http.MethodPost)
	router.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)

	router.HandleFunc("/projects", projects.ListProjects).Methods(http.MethodGet)
	router.HandleFunc("/projects", projects.CreateProject).Methods(http.MethodPost)
	router.HandleFunc("/projects/{projectID}", projects.GetProject).Methods(http.MethodGet)
	router.HandleFunc("/projects/{projectID}/progress", projects.GetProgress).Methods(http.MethodGet)

	router.HandleFunc("/projects/{projectID}/tasks", tasks.CreateTask).Methods(http.MethodPost)
	router.HandleFunc("/projects/{projectID}/tasks/{taskID}/status", tasks.UpdateTaskStatus).Methods(http.MethodPut)
	router.HandleFunc("/projects/{projectID}/tasks/{taskID}/cycle", worklists.CycleTask).Methods(http.MethodPost)
	router.HandleFunc("/projects/{projectID}/tasks/{taskID}/subtasks", tasks.ListSubtasks).Methods(http.MethodGet)
	router.HandleFunc("/tasks", tasks.ListByAssignee).Methods(http.MethodGet)

	router.HandleFunc("/worklist/{assignee}", worklists.GetWorklist).Methods(http.MethodGet)

	router.HandleFunc("/assistant/chat", assistant.Chat).Methods(http.MethodPost)
	router.HandleFunc("/assistant/summary", assistant.Summary).Methods(http.MethodGet)
}

// RequestLogger logs each request with its method, path, and duration.
func RequestLogger(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start),
			)
		})
	}
}
