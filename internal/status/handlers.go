// Package status serves the liveness and dependency status endpoints.
package status

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tasks-generator-backend/internal/ai"
	"tasks-generator-backend/internal/httpx"
)

const (
	Healthy       = "healthy"
	Unhealthy     = "unhealthy"
	NotConfigured = "not_configured"

	maxDiagnosticLen = 50
)

// Pinger is the part of *sql.DB the database check needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Report struct {
	Backend  string `json:"backend"`
	Database string `json:"database"`
	LLM      string `json:"llm"`
}

type Handler struct {
	AI      ai.Generator
	DB      Pinger // nil when no database is configured
	Timeout time.Duration
}

func New(gen ai.Generator, db Pinger, timeout time.Duration) *Handler {
	return &Handler{
		AI:      gen,
		DB:      db,
		Timeout: timeout,
	}
}

// Check runs both probes. It never fails; problems are reported in the
// returned fields. Every call hits the model API.
func (h *Handler) Check(ctx context.Context) Report {
	return Report{
		Backend:  Healthy,
		Database: h.checkDatabase(ctx),
		LLM:      h.checkLLM(ctx),
	}
}

func (h *Handler) checkLLM(ctx context.Context) string {
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	text, err := h.AI.Generate(ctx, ai.HealthPrompt)
	if errors.Is(err, ai.ErrEmptyResponse) {
		return Unhealthy
	}
	if err != nil {
		return Unhealthy + ": " + truncate(err.Error(), maxDiagnosticLen)
	}
	if text == "" {
		return Unhealthy
	}
	return Healthy
}

func (h *Handler) checkDatabase(ctx context.Context) string {
	if h.DB == nil {
		return NotConfigured
	}

	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		return Unhealthy + ": " + truncate(err.Error(), maxDiagnosticLen)
	}
	return Healthy
}

func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.Timeout)
}

// truncate cuts s to at most n characters without splitting a rune.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// StatusHandler serves GET /status. The HTTP code is always 200.
func (h *Handler) StatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead:
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
			return
		default:
			httpx.MethodNotAllowed(w, http.MethodGet)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, h.Check(r.Context()))
	}
}

// RootHandler serves GET / and answers 404 for unrouted paths.
func RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			httpx.WriteDetail(w, http.StatusNotFound, "Not Found")
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			httpx.MethodNotAllowed(w, http.MethodGet)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "Backend is running",
		})
	}
}
