package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"synchrony/app/config"
	"synchrony/app/controllers"
	"synchrony/app/routes"
	"synchrony/app/services"
	"synchrony/app/store"

	"github.com/gorilla/mux"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Getenv("SYNCHRONY_CONFIG"))
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize the project store (file-backed by default, Neo4j when
	// configured) and the credential store.
	projectStore, closeStore, err := store.New(cfg)
	if err != nil {
		logger.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer closeStore(context.Background())

	authStore := store.NewAuthStore(cfg.UsersFile)

	// One writer lock per process: mutating services share it so their
	// load-mutate-save sequences never interleave.
	var writeLock sync.Mutex

	// Initialize the service layer.
	projectService := services.NewProjectService(projectStore, &writeLock, logger)
	taskService := services.NewTaskService(projectStore, &writeLock, logger)
	progressService := services.NewProgressService(projectStore)
	worklistService := services.NewWorklistService(taskService)
	authService := services.NewAuthService(authStore)
	assistantService := services.NewAssistantService(projectStore, cfg.Assistant, logger)

	// Initialize the controller layer.
	authController := controllers.NewAuthController(authService)
	projectController := controllers.NewProjectController(projectService, progressService)
	taskController := controllers.NewTaskController(taskService)
	worklistController := controllers.NewWorklistController(worklistService)
	assistantController := controllers.NewAssistantController(assistantService)

	// Setup HTTP server.
	router := mux.NewRouter()
	router.Use(routes.RequestLogger(logger))
	routes.RegisterRoutes(router, authController, projectController, taskController, worklistController, assistantController)

	logger.Info("server is running", "addr", cfg.Addr, "store", cfg.StoreBackend)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
