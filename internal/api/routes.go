package api

import (
	"net/http"

	"github.com/seren-app/seren/internal/config"
	"github.com/seren-app/seren/pkg/openapi"
	"github.com/seren-app/seren/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	media := newMediaHandler(runtime.Storage, runtime.Logger)

	routes.Register(
		mux,
		domain.Emotions.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Alerts.Handler().Routes(),
		domain.Lexicons.Handler().Routes(),
		domain.Reports.Handler().Routes(),
		media.routes(),
	)

	spec, err := openapi.MarshalJSON(buildSpec(cfg))
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	return nil
}
