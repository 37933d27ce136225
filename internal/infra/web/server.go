// File: internal/infra/web/server.go
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"fitcoach-ai-backend/internal/config"
	"fitcoach-ai-backend/internal/infra/notify"
	"fitcoach-ai-backend/internal/infra/redis"
	"fitcoach-ai-backend/internal/usecase"
)

type Server struct {
	cfg       *config.Config
	paymentUC usecase.PaymentUseCase
	chatUC    usecase.ChatUseCase
	userUC    usecase.UserUseCase
	workoutUC usecase.WorkoutUseCase
	mealUC    usecase.MealUseCase
	subUC     usecase.SubscriptionUseCase
	ledgerUC  usecase.PaymentLedgerQuery
	limiter   *redis.RateLimiter
	hub       *notify.Hub
	auth      *AuthManager
	log       *zerolog.Logger

	httpServer *http.Server
}

func NewServer(
	cfg *config.Config,
	paymentUC usecase.PaymentUseCase,
	chatUC usecase.ChatUseCase,
	userUC usecase.UserUseCase,
	workoutUC usecase.WorkoutUseCase,
	mealUC usecase.MealUseCase,
	subUC usecase.SubscriptionUseCase,
	ledgerUC usecase.PaymentLedgerQuery,
	limiter *redis.RateLimiter,
	hub *notify.Hub,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		cfg:       cfg,
		paymentUC: paymentUC,
		chatUC:    chatUC,
		userUC:    userUC,
		workoutUC: workoutUC,
		mealUC:    mealUC,
		subUC:     subUC,
		ledgerUC:  ledgerUC,
		limiter:   limiter,
		hub:       hub,
		auth:      NewAuthManager(cfg.Admin.JWTSecret, !cfg.Runtime.Dev, "", cfg.Admin.SessionTTL),
		log:       logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(TraceID)
	r.Use(Recover(s.log))
	r.Use(RequestLogger(s.log))
	r.Use(SecurityHeaders)
	r.Use(RequestValidation(s.cfg.Server.MaxBodyBytes))

	// The events stream stays open indefinitely, so the request timeout
	// is applied per route group instead of globally.
	timeout := withTimeout(time.Duration(s.cfg.Server.RequestTimeout) * time.Second)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"service": "fitcoach-ai-backend",
			"status":  "running",
		})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":           "healthy",
			"default_provider": s.cfg.AI.DefaultProvider,
			"providers": map[string]bool{
				"openai": s.cfg.AI.OpenAIKey != "",
				"google": s.cfg.AI.GoogleKey != "",
			},
		})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	window := s.cfg.RateLimit.Window
	r.Route("/api/payments", func(r chi.Router) {
		r.Use(timeout)
		r.With(RateLimit(s.limiter, "create_order", s.cfg.RateLimit.CreateOrder, window)).
			Post("/create-order", createOrderHandler(s.paymentUC))
		r.With(RateLimit(s.limiter, "verify_payment", s.cfg.RateLimit.Verify, window)).
			Post("/verify-payment", verifyPaymentHandler(s.paymentUC, s.hub))
		r.Post("/webhook", webhookHandler(s.paymentUC))
	})

	r.With(timeout, RateLimit(s.limiter, "chat", s.cfg.RateLimit.Chat, window)).
		Post("/api/chat", chatHandler(s.chatUC))
	r.With(timeout, RateLimit(s.limiter, "generate", s.cfg.RateLimit.Generate, window)).
		Post("/generate", generateHandler(s.chatUC))

	r.Route("/api/v1", func(r chi.Router) {
		r.With(timeout).Post("/auth/login", adminLoginHandler(s.auth, s.cfg.Admin.Key))
		r.With(timeout).Post("/auth/logout", adminLogoutHandler(s.auth))

		r.Group(func(r chi.Router) {
			r.Use(s.auth.RequireAdmin)

			r.Get("/events", eventsHandler(s.hub))

			r.Group(func(r chi.Router) {
				r.Use(timeout)

				r.Route("/users", func(r chi.Router) {
					r.Post("/", userCreateHandler(s.userUC))
					r.Get("/", userListHandler(s.userUC))
					r.Get("/{id}", userGetHandler(s.userUC))
					r.Put("/{id}", userUpdateHandler(s.userUC))
					r.Delete("/{id}", userDeleteHandler(s.userUC))
				})

				r.Route("/workouts", func(r chi.Router) {
					r.Post("/", workoutCreateHandler(s.workoutUC))
					r.Get("/", workoutListHandler(s.workoutUC))
					r.Get("/{id}", workoutGetHandler(s.workoutUC))
					r.Delete("/{id}", workoutDeleteHandler(s.workoutUC))
				})

				r.Route("/meals", func(r chi.Router) {
					r.Post("/", mealCreateHandler(s.mealUC))
					r.Get("/", mealListHandler(s.mealUC))
					r.Get("/{id}", mealGetHandler(s.mealUC))
					r.Delete("/{id}", mealDeleteHandler(s.mealUC))
				})

				r.Route("/subscriptions", func(r chi.Router) {
					r.Post("/", subscriptionCreateHandler(s.subUC))
					r.Get("/", subscriptionListHandler(s.subUC))
					r.Post("/{id}/cancel", subscriptionCancelHandler(s.subUC))
				})

				r.Get("/payments", paymentListHandler(s.ledgerUC))
				r.Get("/revenue", revenueHandler(s.ledgerUC))
			})
		})
	})

	return r
}

// Start runs the HTTP server until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Int("port", s.cfg.Server.Port).Msg("http server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
