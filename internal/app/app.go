package app

import (
	"go.uber.org/zap"
)

// Application wires the configuration, clients, and controller together.
// Session state lives in the manager, never here.
type Application struct {
	Config     Config
	Logger     *zap.Logger
	Sessions   *SessionManager
	Controller *Controller
}

// NewApplication builds the app from config. Missing credentials degrade:
// no model key means every turn gets the apology fallback, no job key means
// every search serves the sample list. Neither stops startup.
func NewApplication(cfg Config, logger *zap.Logger, mock bool) *Application {
	if logger == nil {
		logger = zap.NewNop()
	}

	modelBaseURL := cfg.ModelBaseURL
	apiKey := cfg.AnthropicAPIKey
	if mock {
		apiKey = "mock"
		modelBaseURL = "mock://"
	}
	if apiKey == "" {
		logger.Warn("anthropic credential missing, model turns will fall back to the apology message")
	}
	if cfg.JobAPIKey == "" {
		logger.Warn("job provider credential missing, searches will serve sample listings")
	}

	model := NewAnthropicClient(apiKey, cfg.Model, modelBaseURL)
	jobs := NewJobClient(cfg.JobAPIKey, cfg.JobBaseURL, cfg.JobRecency, cfg.JobRadius, logger)

	var strategy TitleStrategy = LookupStrategy{}
	if cfg.TitleStrategy == "model" {
		strategy = ModelStrategy{Client: model, Temperature: cfg.Temperature}
	}
	titles := &TitleGenerator{Strategy: strategy}

	return &Application{
		Config:     cfg,
		Logger:     logger,
		Sessions:   NewSessionManager(),
		Controller: NewController(model, jobs, titles, logger, cfg.Temperature, cfg.MaxTokens),
	}
}
