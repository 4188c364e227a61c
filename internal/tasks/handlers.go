package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"tasks-generator-backend/internal/ai"
	"tasks-generator-backend/internal/httpx"
)

const maxRequestBody = 1 << 20

type TaskHandler struct {
	AI      ai.Generator
	Timeout time.Duration
}

func New(gen ai.Generator, timeout time.Duration) *TaskHandler {
	return &TaskHandler{
		AI:      gen,
		Timeout: timeout,
	}
}

// Generate validates req, renders the prompt and makes exactly one model call.
func (h *TaskHandler) Generate(ctx context.Context, req GenerateTasksRequest) (GenerateTasksResult, error) {
	if err := Validate(req); err != nil {
		return GenerateTasksResult{}, err
	}

	prompt := ai.BuildTaskPrompt(req.Goal, req.Users, req.Constraints, req.Template, req.RisksOrEmpty())

	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	text, err := h.AI.Generate(ctx, prompt)
	if err != nil {
		return GenerateTasksResult{}, &UpstreamError{Err: err}
	}

	return GenerateTasksResult{Result: text}, nil
}

// GenerateTasksHandler serves POST /generate-tasks.
func (h *TaskHandler) GenerateTasksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
			return
		default:
			httpx.MethodNotAllowed(w, http.MethodPost)
			return
		}

		var body GenerateTasksRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&body); err != nil {
			httpx.WriteDetail(w, http.StatusBadRequest, "invalid json")
			return
		}

		result, err := h.Generate(r.Context(), body)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				httpx.WriteDetail(w, http.StatusBadRequest, verr.Message)
				return
			}

			log.Printf("[WARN] task generation failed: %v", err)
			httpx.WriteDetail(w, http.StatusInternalServerError, err.Error())
			return
		}

		httpx.WriteJSON(w, http.StatusOK, result)
	}
}
