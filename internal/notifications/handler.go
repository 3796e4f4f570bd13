package notifications

import (
	"errors"
	"log/slog"
	"net/http"

	"docutrail/internal/directory"
	"docutrail/pkg/handlers"
	"docutrail/pkg/routes"
)

// Handler provides HTTP endpoints for the current actor's notifications.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// NewHandler creates a Handler with the given store and logger.
func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger.With("handler", "notifications"),
	}
}

// Routes returns the route group definitions for notification endpoints.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix: "/notifications",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: h.List},
				{Method: "GET", Pattern: "/count", Handler: h.Count},
			},
		},
	}
}

// List returns the current actor's notifications and marks unread ones as read.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := directory.ActorFromContext(r.Context())
	if actor == nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("no authenticated actor"))
		return
	}

	items, err := h.store.ListAndMarkRead(r.Context(), actor.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Count returns the current actor's unread notification count.
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	actor := directory.ActorFromContext(r.Context())
	if actor == nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("no authenticated actor"))
		return
	}

	count, err := h.store.UnreadCount(r.Context(), actor.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]int{"unread": count})
}
