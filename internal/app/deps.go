package app

import (
	"fmt"
	"log/slog"
	"time"

	"bible-hub/internal/config"
	"bible-hub/internal/llm"
	"bible-hub/internal/logger"
	"bible-hub/internal/session"
	"bible-hub/internal/study"
)

// Deps bundles the runtime dependencies of the gateway. All of it is read-only after Build.
type Deps struct {
	Config config.Config
	Log    *slog.Logger
	Study  *study.Service
	Gate   *session.Gate
}

// Build loads .env, config, and shared components.
func Build() (Deps, error) {
	if err := config.LoadDotEnv(); err != nil {
		return Deps{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	svc, err := BuildStudy(cfg, log)
	if err != nil {
		return Deps{}, err
	}
	store, err := buildSessions(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize sessions: %w", err)
	}
	return Deps{
		Config: cfg,
		Log:    log,
		Study:  svc,
		Gate:   session.NewGate(cfg.AppPassword, store, time.Duration(cfg.SessionTTL)*time.Second),
	}, nil
}

// BuildStudy wires the transport client and the study service from cfg.
func BuildStudy(cfg config.Config, log *slog.Logger) (*study.Service, error) {
	client, err := buildLLM(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	return study.NewService(study.NewBuilder(Models(cfg)), client, log), nil
}

// Models maps the configured model ids to their roles.
func Models(cfg config.Config) llm.Models {
	return llm.Models{
		llm.RoleText:       cfg.TextModel,
		llm.RoleMultimodal: cfg.MultimodalModel,
		llm.RoleReasoning:  cfg.ReasoningModel,
	}
}

func buildLLM(cfg config.Config, log *slog.Logger) (llm.Client, error) {
	client, err := llm.NewOpenAIClient(cfg.APIKey, cfg.APIBaseURL)
	if err != nil {
		return nil, err
	}
	if !llm.HasCredential(cfg.APIKey) {
		log.Warn("API_KEY is not set; model requests will fail until it is configured")
	}
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = llm.DefaultBaseURL
	}
	log.Info("using model provider", "base_url", baseURL, "text_model", cfg.TextModel,
		"multimodal_model", cfg.MultimodalModel, "reasoning_model", cfg.ReasoningModel)
	return client, nil
}

func buildSessions(cfg config.Config, log *slog.Logger) (session.Store, error) {
	switch cfg.SessionProvider {
	case "memory":
		log.Info("using in-memory session store")
		return session.NewMemoryStore(), nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when SESSION_PROVIDER=redis")
		}
		store, err := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		log.Info("using Redis session store")
		return store, nil
	default:
		return nil, fmt.Errorf("invalid SESSION_PROVIDER: %s (valid options: memory, redis)", cfg.SessionProvider)
	}
}
