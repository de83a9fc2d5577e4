package api

import (
	"github.com/seren-app/seren/internal/config"
	"github.com/seren-app/seren/internal/infrastructure"
	"github.com/seren-app/seren/internal/recognition"
	"github.com/seren-app/seren/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration and the
// recognition pipeline built from the configured backend.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Recognizer *recognition.Recognizer
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	logger := infra.Logger.With("module", "api")

	var backend recognition.Classifier
	switch cfg.Recognizer.Backend {
	case config.BackendOpenAI:
		backend = recognition.NewOpenAIClassifier(cfg.Recognizer.APIKey(), cfg.Recognizer.Model)
	default:
		backend = recognition.NewBayesClassifier()
	}

	recognizer := recognition.NewRecognizer(
		backend,
		recognition.DefaultLexicon(),
		cfg.Recognizer.ReadyTimeoutDuration(),
		logger,
	)

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Recognizer: recognizer,
	}
}
