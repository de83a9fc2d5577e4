// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/seren-app/seren/internal/config"
	"github.com/seren-app/seren/internal/infrastructure"
	"github.com/seren-app/seren/pkg/middleware"
	"github.com/seren-app/seren/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// The recognizer warm-up runs as a startup hook so readiness reflects a
// trained classifier and a loaded lexicon.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))

	if cfg.Auth.Enabled {
		verifier, err := middleware.NewVerifier(
			infra.Lifecycle.Context(),
			cfg.Auth.Issuer,
			cfg.Auth.Audience,
		)
		if err != nil {
			return nil, err
		}
		m.Use(middleware.Auth(verifier, runtime.Logger))
	}

	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	infra.Lifecycle.OnStartup(func() {
		if err := domain.Warm(infra.Lifecycle.Context()); err != nil {
			runtime.Logger.Warn("recognizer warm-up failed, requests use keyword fallback", "error", err)
		}
	})

	return m, nil
}
