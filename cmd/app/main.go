// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fitcoach-ai-backend/internal/config"
	"fitcoach-ai-backend/internal/domain/ports/adapter"
	aiAdapters "fitcoach-ai-backend/internal/infra/adapters/ai"
	payAdapters "fitcoach-ai-backend/internal/infra/adapters/payment"
	pg "fitcoach-ai-backend/internal/infra/db/postgres"
	"fitcoach-ai-backend/internal/infra/logging"
	"fitcoach-ai-backend/internal/infra/memstore"
	"fitcoach-ai-backend/internal/infra/metrics"
	"fitcoach-ai-backend/internal/infra/notify"
	red "fitcoach-ai-backend/internal/infra/redis"
	"fitcoach-ai-backend/internal/infra/sched"
	"fitcoach-ai-backend/internal/infra/web"
	"fitcoach-ai-backend/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, relaxed cookies)")
	flag.Parse()

	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect failed")
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	userRepo := pg.NewPostgresUserRepo(pool)
	workoutRepo := pg.NewPostgresWorkoutRepo(pool)
	mealRepo := pg.NewPostgresMealRepo(pool)
	paymentRepo := pg.NewPostgresPaymentRepo(pool)
	subRepo := pg.NewPostgresSubscriptionRepo(pool)

	// The payment flow keeps live order state in memory; the verified
	// trail is written through to Postgres.
	orderStore := memstore.NewOrderStore()
	subRecordStore := memstore.NewSubscriptionStore()

	// ---- Payment gateway ----
	var gateway adapter.PaymentGateway
	if cfg.Payment.Razorpay.KeyID != "" && cfg.Payment.Razorpay.KeySecret != "" {
		gateway, err = payAdapters.NewRazorpayGateway(
			cfg.Payment.Razorpay.KeyID, cfg.Payment.Razorpay.KeySecret, cfg.Payment.Razorpay.BaseURL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("razorpay gateway init failed")
		}
	} else {
		logger.Warn().Msg("razorpay credentials not set; running payments in stub mode")
	}

	// ---- AI providers ----
	providers := make(map[string]adapter.AIProvider)
	if cfg.AI.OpenAIKey != "" {
		p, err := aiAdapters.NewProvider(ctx, "openai", cfg.AI.OpenAIKey, cfg.AI.OpenAIModel, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai provider init failed")
		}
		providers["openai"] = aiAdapters.NewLimitedProvider(p, cfg.AI.ConcurrentLimit)
	}
	if cfg.AI.GoogleKey != "" {
		p, err := aiAdapters.NewProvider(ctx, "google", cfg.AI.GoogleKey, cfg.AI.GoogleModel, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("google provider init failed")
		}
		providers["google"] = aiAdapters.NewLimitedProvider(p, cfg.AI.ConcurrentLimit)
	}
	if len(providers) == 0 {
		logger.Fatal().Msg("no AI provider configured: set OPENAI_API_KEY or GOOGLE_API_KEY")
	}
	if _, ok := providers[cfg.AI.DefaultProvider]; !ok {
		for name := range providers {
			logger.Warn().Str("configured", cfg.AI.DefaultProvider).Str("using", name).Msg("default AI provider unavailable")
			cfg.AI.DefaultProvider = name
			break
		}
	}

	// ---- Notifications ----
	hub := notify.NewHub(logger)

	// ---- Use cases ----
	paymentUC := usecase.NewPaymentUseCase(orderStore, subRecordStore, paymentRepo, gateway, cfg.Payment.Razorpay.KeySecret, logger)
	chatUC := usecase.NewChatUseCase(providers, cfg.AI.DefaultProvider, cfg.AI.MaxPromptLen, logger)
	userUC := usecase.NewUserUseCase(userRepo, logger)
	workoutUC := usecase.NewWorkoutUseCase(workoutRepo, userRepo, logger)
	mealUC := usecase.NewMealUseCase(mealRepo, userRepo, logger)
	subUC := usecase.NewSubscriptionUseCase(subRepo, userRepo, logger)
	ledgerUC := usecase.NewPaymentLedgerQuery(paymentRepo)

	// ---- Expiry worker (hourly) ----
	worker := sched.NewExpiryWorker(time.Hour, subUC, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- HTTP server ----
	srv := web.NewServer(cfg, paymentUC, chatUC, userUC, workoutUC, mealUC, subUC, ledgerUC, rateLimiter, hub, logger)
	go func() {
		if err := srv.Start(ctx); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
		logger.Info().Msg("shutdown requested")
	case <-ctx.Done():
	}
	cancel()
}
