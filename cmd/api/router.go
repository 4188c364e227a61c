package main

import (
	"net/http"

	"github.com/rs/cors"

	"tasks-generator-backend/internal/config"
	"tasks-generator-backend/internal/httpx"
	"tasks-generator-backend/internal/status"
	"tasks-generator-backend/internal/tasks"
)

func newRouter(cfg *config.Config, taskAI *tasks.TaskHandler, probe *status.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", status.RootHandler())
	mux.HandleFunc("/status", probe.StatusHandler())
	mux.HandleFunc("/generate-tasks", taskAI.GenerateTasksHandler())

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return httpx.LogRequests(c.Handler(mux))
}
