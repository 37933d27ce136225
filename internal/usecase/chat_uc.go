// File: internal/usecase/chat_uc.go
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/ports/adapter"
	"fitcoach-ai-backend/internal/infra/metrics"
	"fitcoach-ai-backend/internal/infra/security"
)

// Compile-time check
var _ ChatUseCase = (*chatUC)(nil)

// PlanRequest carries the user's constraints for a generated plan.
type PlanRequest struct {
	Goal        string `json:"goal"`         // e.g. "weight_loss", "muscle_gain"
	Level       string `json:"level"`        // beginner / intermediate / advanced
	DaysPerWeek int    `json:"days_per_week"`
	Preferences string `json:"preferences"` // free text: equipment, diet, injuries
}

type ChatUseCase interface {
	// Chat answers a single coaching question. providerName selects the
	// backing model; empty means the configured default.
	Chat(ctx context.Context, message, providerName, traceID string) (string, error)
	// GenerateWorkoutPlan produces a structured training plan.
	GenerateWorkoutPlan(ctx context.Context, req PlanRequest, providerName, traceID string) (string, error)
	// GenerateMealPlan produces a structured nutrition plan.
	GenerateMealPlan(ctx context.Context, req PlanRequest, providerName, traceID string) (string, error)
}

type chatUC struct {
	providers    map[string]adapter.AIProvider
	defaultName  string
	maxPromptLen int
	log          *zerolog.Logger
}

func NewChatUseCase(providers map[string]adapter.AIProvider, defaultName string, maxPromptLen int, logger *zerolog.Logger) *chatUC {
	return &chatUC{providers: providers, defaultName: defaultName, maxPromptLen: maxPromptLen, log: logger}
}

const coachSystemPreamble = "You are an expert fitness and nutrition coach. " +
	"Give practical, safe advice. Recommend consulting a professional for medical concerns.\n\n"

func (c *chatUC) Chat(ctx context.Context, message, providerName, traceID string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", domain.ErrInvalidArgument
	}
	if traceID == "" {
		traceID = uuid.NewString()
	}

	clean, changed := security.SanitizeText(message, c.maxPromptLen)
	if changed {
		c.log.Warn().Str("trace_id", traceID).Msg("chat message sanitized")
	}

	return c.generate(ctx, coachSystemPreamble+clean, providerName, traceID)
}

func (c *chatUC) GenerateWorkoutPlan(ctx context.Context, req PlanRequest, providerName, traceID string) (string, error) {
	if err := validatePlanRequest(req); err != nil {
		return "", err
	}
	if traceID == "" {
		traceID = uuid.NewString()
	}
	prefs, _ := security.SanitizeText(req.Preferences, c.maxPromptLen)
	prompt := fmt.Sprintf(
		coachSystemPreamble+
			"Create a %s workout plan for a %s trainee, %d days per week. "+
			"Constraints and preferences: %s. "+
			"For each day list exercises with sets, reps and rest times.",
		req.Goal, req.Level, req.DaysPerWeek, prefs)
	return c.generate(ctx, prompt, providerName, traceID)
}

func (c *chatUC) GenerateMealPlan(ctx context.Context, req PlanRequest, providerName, traceID string) (string, error) {
	if err := validatePlanRequest(req); err != nil {
		return "", err
	}
	if traceID == "" {
		traceID = uuid.NewString()
	}
	prefs, _ := security.SanitizeText(req.Preferences, c.maxPromptLen)
	prompt := fmt.Sprintf(
		coachSystemPreamble+
			"Create a weekly meal plan supporting the goal %q for a %s trainee. "+
			"Dietary preferences and restrictions: %s. "+
			"For each meal include approximate calories, protein, carbs and fat.",
		req.Goal, req.Level, prefs)
	return c.generate(ctx, prompt, providerName, traceID)
}

func (c *chatUC) generate(ctx context.Context, prompt, providerName, traceID string) (string, error) {
	p, err := c.resolve(providerName)
	if err != nil {
		return "", err
	}

	start := time.Now()
	reply, err := p.GenerateResponse(ctx, prompt, traceID)
	metrics.ObserveAICall(p.Name(), time.Since(start).Milliseconds(), err == nil)
	if err != nil {
		if aiErr, ok := adapter.AsError(err); ok {
			metrics.IncAIFailure(p.Name(), string(aiErr.Kind))
		} else {
			metrics.IncAIFailure(p.Name(), "unknown_error")
		}
		return "", err
	}
	return reply, nil
}

func (c *chatUC) resolve(name string) (adapter.AIProvider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = c.defaultName
	}
	p, ok := c.providers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, name)
	}
	return p, nil
}

func validatePlanRequest(req PlanRequest) error {
	if strings.TrimSpace(req.Goal) == "" {
		return domain.ErrInvalidArgument
	}
	if req.DaysPerWeek < 0 || req.DaysPerWeek > 7 {
		return domain.ErrInvalidArgument
	}
	return nil
}
