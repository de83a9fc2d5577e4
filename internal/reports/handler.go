package reports

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/seren-app/seren/pkg/handlers"
	"github.com/seren-app/seren/pkg/routes"
)

// ErrInvalidSubject marks a report request with an unparseable subject ID.
var ErrInvalidSubject = errors.New("invalid subject id")

// Handler provides HTTP endpoints for report generation.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "reports"),
	}
}

// Routes returns the route group definition for report endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/reports",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/overview", Handler: h.Overview},
			{Method: "GET", Pattern: "/subjects/{subjectId}", Handler: h.Subject},
		},
	}
}

// Overview returns population-wide record and alert aggregates.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	o, err := h.sys.Overview(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, o)
}

// Subject returns one subject's summary by its UUID path parameter.
func (h *Handler) Subject(w http.ResponseWriter, r *http.Request) {
	subjectID, err := uuid.Parse(r.PathValue("subjectId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidSubject)
		return
	}

	s, err := h.sys.Subject(r.Context(), subjectID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, s)
}
