package directory

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"docutrail/pkg/handlers"
	"docutrail/pkg/routes"
)

// Handler provides read-only HTTP endpoints for actor and department lookups.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// NewHandler creates a Handler with the given store and logger.
func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger.With("handler", "directory"),
	}
}

// Routes returns the route group definitions for directory endpoints.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix: "/actors",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: h.ListActors},
				{Method: "GET", Pattern: "/{id}", Handler: h.FindActor},
			},
		},
		{
			Prefix: "/departments",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: h.ListDepartments},
			},
		},
	}
}

// ListActors returns actors, optionally filtered by role and department_id query parameters.
func (h *Handler) ListActors(w http.ResponseWriter, r *http.Request) {
	roleParam := r.URL.Query().Get("role")
	deptParam := r.URL.Query().Get("department_id")

	if roleParam == "" && deptParam == "" {
		actors, err := h.store.ListActors(r.Context())
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, actors)
		return
	}

	var departmentID *uuid.UUID
	if deptParam != "" {
		id, err := uuid.Parse(deptParam)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
		departmentID = &id
	}

	if roleParam == "" {
		actors, err := h.store.ActorsInDepartment(r.Context(), *departmentID)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, actors)
		return
	}

	role, err := ParseRole(roleParam)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	actors, err := h.store.ActorsWithRole(r.Context(), role, departmentID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, actors)
}

// FindActor returns a single actor by its UUID path parameter.
func (h *Handler) FindActor(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	actor, err := h.store.FindActor(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, actor)
}

// ListDepartments returns all departments.
func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.store.ListDepartments(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, departments)
}
