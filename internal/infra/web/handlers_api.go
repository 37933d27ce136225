// File: internal/infra/web/handlers_api.go
package web

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"fitcoach-ai-backend/internal/domain/model"
	"fitcoach-ai-backend/internal/infra/logging"
	"fitcoach-ai-backend/internal/infra/notify"
	"fitcoach-ai-backend/internal/usecase"
)

func pageParams(r *http.Request) (offset, limit int) {
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}
	return offset, limit
}

// ----- Admin session

type adminLoginRequest struct {
	Key string `json:"key"`
}

// adminLoginHandler exchanges the shared admin key for a session token.
// The token is returned in the body for API clients and mirrored into the
// session cookie for browsers.
func adminLoginHandler(auth *AuthManager, adminKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traceID := logging.TraceID(r.Context())
		if adminKey == "" {
			writeError(w, http.StatusForbidden, "forbidden", "admin login is not configured", "", traceID)
			return
		}
		var req adminLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", "", traceID)
			return
		}
		if subtle.ConstantTimeCompare([]byte(req.Key), []byte(adminKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid admin key", "", traceID)
			return
		}
		token, err := auth.Mint(w)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", "could not mint session", "", traceID)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}

func adminLogoutHandler(auth *AuthManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth.Clear(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ----- Users

type userCreateRequest struct {
	Email    string         `json:"email"`
	FullName string         `json:"full_name"`
	Role     model.UserRole `json:"role,omitempty"`
}

func userCreateHandler(userUC usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		traceID := logging.TraceID(ctx)

		var req userCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", "", traceID)
			return
		}
		u, err := userUC.Register(ctx, req.Email, req.FullName, req.Role)
		if err != nil {
			writeDomainError(w, err, traceID)
			return
		}
		writeJSON(w, http.StatusCreated, u)
	}
}

func userListHandler(userUC usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		offset, limit := pageParams(r)
		users, total, err := userUC.List(ctx, offset, limit)
		if err != nil {
			writeDomainError(w, err, logging.TraceID(ctx))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"users":  users,
			"total":  total,
			"offset": offset,
			"limit":  limit,
		})
	}
}

func userGetHandler(userUC usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, err := userUC.Get(ctx, chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err, logging.TraceID(ctx))
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

type userUpdateRequest struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

func userUpdateHandler(userUC usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		traceID := logging.TraceID(ctx)

		var req userUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", "", traceID)
			return
		}
		u, err := userUC.Update(ctx, chi.URLParam(r, "id"), req.FullName, req.Phone)
		if err != nil {
			writeDomainError(w, err, traceID)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

func userDeleteHandler(userUC usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := userUC.Delete(ctx, chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err, logging.TraceID(ctx))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ----- Workouts

type workoutLogRequest struct {
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	CaloriesBurned  float64   `json:"calories_burned,omitempty"`
	CompletedAt     time.Time `json:"completed_at,omitempty"`
}

func workoutCreateHandler(workoutUC usecase.WorkoutUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		traceID := logging.TraceID(ctx)

		var req workoutLogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", "", traceID)
			return
		}
		wk, err := workoutUC.Log(ctx, req.UserID, req.Title, req.Description, req.DurationMinutes, req.CaloriesBurned, req.CompletedAt)
		if err != nil {
			writeDomainError(w, err, traceID)
			return
		}
		writeJSON(w, http.StatusCreated, wk)
	}
}

func workoutListHandler(workoutUC usecase.WorkoutUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		offset, limit := pageParams(r)
		list, err := workoutUC.ListByUser(ctx, r.URL.Query().Get("user_id"), offset, limit)
		if err != nil {
			writeDomainError(w, err, logging.TraceID(ctx))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"workouts": list})
	}
}

func workoutGetHandler(workoutUC usecase.WorkoutUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		wk, err := workoutUC.Get(ctx, chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err, logging.TraceID(ctx))
			return
		}
		writeJSON(w, http.StatusOK, wk)
	}
}

func workoutDeleteHandler(workoutUC usecase.WorkoutUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := workoutUC.Delete(ctx, chi.URLParam(r, "id"), r.URL.Query().Get("user_id")); err != nil {
			writeDomainError(w, err, logging.TraceID(ctx))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ----- Meals

type mealLogRequest struct {
	UserID       string    `json:"user_id"`
	MealName     string    `json:"meal_name"`
	Description  string    `json:"description,omitempty"`
	Calories     float64   `json:"calories"`
	ProteinGrams float64   `json:"protein_grams,omitempty"`
	CarbsGrams   float64   `json:"carbs_grams,omitempty"`
	FatGrams     float64   `json:"fat_grams,omitempty"`
	ConsumedAt   time.Time `json:"consumed_at,omitempty"`
}

func mealCreateHandler(mealUC usecase.MealUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		traceID := logging.TraceID(ctx)

		var req mealLogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", "", traceID)
			return
		}
		m, err := mealUC.Log(ctx, req.UserID, req.MealName, req.Description, req.Calories, req.ProteinGrams, req.CarbsGrams, req.FatGrams, req.ConsumedAt)
		if err != nil {
			writeDomainError(w, err, traceID)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func mealListHandler(mealUC usecase.MealUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		offset, limit := pageParams(r)
		list, err := mealUC.ListByUser(ctx, r.URL.Query().Get("user_id"), offset, limit)
		if err != nil {
			writeDomainError(w, err, logging.TraceID(ctx))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"meals": list})
	}
}

func mealGetHandler(mealUC usecase.MealUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		m, err := mealUC.Get(ctx, chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err, logging.TraceID(ctx))
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func mealDeleteHandler(mealUC usecase.MealUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := mealUC.Delete(ctx, chi.URLParam(r, "id"), r.URL.Query().Get("user_id")); err != nil {
			writeDomainError(w, err, logging.TraceID(ctx))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ----- Subscriptions

type subscriptionCreateRequest struct {
	UserID       string `json:"user_id"`
	PlanName     string `json:"plan_name"`
	Amount       int64  `json:"amount"`
	DurationDays int    `json:"duration_days"`
}

func subscriptionCreateHandler(subUC usecase.SubscriptionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		traceID := logging.TraceID(ctx)

		var req subscriptionCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", "", traceID)
			return
		}
		s, err := subUC.Create(ctx, req.UserID, req.PlanName, req.Amount, req.DurationDays)
		if err != nil {
			writeDomainError(w, err, traceID)
			return
		}
		writeJSON(w, http.StatusCreated, s)
	}
}

func subscriptionListHandler(subUC usecase.SubscriptionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		list, err := subUC.ListByUser(ctx, r.URL.Query().Get("user_id"))
		if err != nil {
			writeDomainError(w, err, logging.TraceID(ctx))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"subscriptions": list})
	}
}

func subscriptionCancelHandler(subUC usecase.SubscriptionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := subUC.Cancel(ctx, chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err, logging.TraceID(ctx))
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
	}
}

// ----- Payment ledger

func paymentListHandler(ledgerUC usecase.PaymentLedgerQuery) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		offset, limit := pageParams(r)
		list, err := ledgerUC.ListByUser(ctx, r.URL.Query().Get("user_id"), offset, limit)
		if err != nil {
			writeDomainError(w, err, logging.TraceID(ctx))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"payments": list})
	}
}

func revenueHandler(ledgerUC usecase.PaymentLedgerQuery) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		total, err := ledgerUC.TotalRevenue(ctx)
		if err != nil {
			writeDomainError(w, err, logging.TraceID(ctx))
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"total_revenue": total})
	}
}

// ----- Event stream

// eventsHandler streams hub notifications as server-sent events.
func eventsHandler(hub *notify.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming_unsupported", "response writer does not support streaming", "", "")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		events, cancel := hub.Subscribe(32)
		defer cancel()

		for {
			select {
			case <-r.Context().Done():
				return
			case ev, open := <-events:
				if !open {
					return
				}
				data, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Topic, data)
				flusher.Flush()
			}
		}
	}
}
