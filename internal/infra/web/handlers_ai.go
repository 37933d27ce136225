// File: internal/infra/web/handlers_ai.go
package web

import (
	"encoding/json"
	"net/http"

	"fitcoach-ai-backend/internal/domain/ports/adapter"
	"fitcoach-ai-backend/internal/infra/logging"
	"fitcoach-ai-backend/internal/usecase"
)

type chatRequest struct {
	Message  string `json:"message"`
	Provider string `json:"provider,omitempty"`
}

func chatHandler(chatUC usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		traceID := logging.TraceID(ctx)

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", "", traceID)
			return
		}

		reply, err := chatUC.Chat(ctx, req.Message, req.Provider, traceID)
		if err != nil {
			if _, ok := adapter.AsError(err); ok {
				writeAIError(w, err, traceID)
				return
			}
			writeDomainError(w, err, traceID)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"response": reply,
			"trace_id": traceID,
		})
	}
}

type generateRequest struct {
	Type     string `json:"type"` // "workout" or "meal"
	Provider string `json:"provider,omitempty"`
	usecase.PlanRequest
}

func generateHandler(chatUC usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		traceID := logging.TraceID(ctx)

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", "", traceID)
			return
		}

		var (
			plan string
			err  error
		)
		switch req.Type {
		case "workout":
			plan, err = chatUC.GenerateWorkoutPlan(ctx, req.PlanRequest, req.Provider, traceID)
		case "meal":
			plan, err = chatUC.GenerateMealPlan(ctx, req.PlanRequest, req.Provider, traceID)
		default:
			writeError(w, http.StatusBadRequest, "invalid_type", `"type" must be "workout" or "meal"`, "", traceID)
			return
		}
		if err != nil {
			if _, ok := adapter.AsError(err); ok {
				writeAIError(w, err, traceID)
				return
			}
			writeDomainError(w, err, traceID)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"plan":     plan,
			"type":     req.Type,
			"trace_id": traceID,
		})
	}
}
