package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/seren-app/seren/pkg/handlers"
	"github.com/seren-app/seren/pkg/routes"
	"github.com/seren-app/seren/pkg/storage"
)

// mediaHandler streams the media captures attached to classification
// records. Keys come from the record's media_key field.
type mediaHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newMediaHandler(store storage.System, logger *slog.Logger) *mediaHandler {
	return &mediaHandler{
		store:  store,
		logger: logger.With("handler", "media"),
	}
}

func (h *mediaHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/media",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/download/{key...}", Handler: h.download},
			{Method: "GET", Pattern: "/exists/{key...}", Handler: h.exists},
		},
	}
}

func (h *mediaHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}

func (h *mediaHandler) exists(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	ok, err := h.store.Exists(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"exists": ok})
}
