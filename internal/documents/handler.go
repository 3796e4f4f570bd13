package documents

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"docutrail/internal/audit"
	"docutrail/internal/directory"
	"docutrail/internal/routing"
	"docutrail/pkg/handlers"
	"docutrail/pkg/pagination"
	"docutrail/pkg/routes"
	"docutrail/pkg/storage"
)

// Handler provides read endpoints for documents, their histories, and their
// stored files. Workflow transitions are served elsewhere.
type Handler struct {
	store    Store
	auditLog audit.Store
	ledger   routing.Store
	blobs    storage.System
	pages    pagination.Config
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given stores and configuration.
func NewHandler(store Store, auditLog audit.Store, ledger routing.Store, blobs storage.System, pages pagination.Config, logger *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		auditLog: auditLog,
		ledger:   ledger,
		blobs:    blobs,
		pages:    pages,
		logger:   logger.With("handler", "documents"),
	}
}

// Routes returns the route group definitions for document read endpoints.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix: "/documents",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: h.List},
				{Method: "GET", Pattern: "/{id}", Handler: h.Find},
				{Method: "GET", Pattern: "/{id}/logs", Handler: h.Logs},
				{Method: "GET", Pattern: "/{id}/routings", Handler: h.Routings},
				{Method: "GET", Pattern: "/{id}/attachment", Handler: h.Attachment},
				{Method: "GET", Pattern: "/{id}/signature", Handler: h.Signature},
			},
		},
	}
}

// List returns a page of documents the current actor is allowed to see.
// Supported filters: status, source, classification, reference_number,
// created_by, assigned_to, department_id, plus search and sort.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := directory.ActorFromContext(r.Context())
	if actor == nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("no authenticated actor"))
		return
	}

	filters, err := filtersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	applyVisibility(&filters, actor)

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pages)

	result, err := h.store.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single document by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.resolve(w, r)
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, doc)
}

// Logs returns a document's audit history newest-first.
func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.resolve(w, r)
	if !ok {
		return
	}

	entries, err := h.auditLog.ListForDocument(r.Context(), doc.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entries)
}

// Routings returns a document's routing ledger oldest-first.
func (h *Handler) Routings(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.resolve(w, r)
	if !ok {
		return
	}

	records, err := h.ledger.ListForDocument(r.Context(), doc.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, records)
}

// Attachment streams a document's attachment file.
func (h *Handler) Attachment(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.resolve(w, r)
	if !ok {
		return
	}

	if doc.AttachmentKey == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, errors.New("document has no attachment"))
		return
	}

	contentType := "application/octet-stream"
	if doc.ContentType != nil {
		contentType = *doc.ContentType
	}

	name := doc.ReferenceNumber
	if doc.AttachmentName != nil {
		name = *doc.AttachmentName
	}

	h.stream(w, r, *doc.AttachmentKey, contentType, name)
}

// Signature streams a document's e-signature image.
func (h *Handler) Signature(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.resolve(w, r)
	if !ok {
		return
	}

	if doc.SignatureKey == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, errors.New("document has no signature"))
		return
	}

	h.stream(w, r, *doc.SignatureKey, "image/png", doc.ReferenceNumber+"-signature.png")
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (*Document, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return nil, false
	}

	doc, err := h.store.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, false
	}

	return doc, true
}

func (h *Handler) stream(w http.ResponseWriter, r *http.Request, key, contentType, name string) {
	reader, err := h.blobs.Download(r.Context(), key)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrNotFound) {
			status = http.StatusNotFound
		}
		handlers.RespondError(w, h.logger, status, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("stream blob failed", "key", key, "error", err)
	}
}

func filtersFromQuery(values url.Values) (Filters, error) {
	var filters Filters

	if s := values.Get("status"); s != "" {
		status := Status(s)
		filters.Status = &status
	}
	if s := values.Get("source"); s != "" {
		source, err := ParseSource(s)
		if err != nil {
			return filters, err
		}
		filters.Source = &source
	}
	if s := values.Get("classification"); s != "" {
		classification, err := ParseClassification(s)
		if err != nil {
			return filters, err
		}
		filters.Classification = &classification
	}
	if s := values.Get("reference_number"); s != "" {
		filters.ReferenceNumber = &s
	}

	for param, target := range map[string]**uuid.UUID{
		"created_by":    &filters.CreatedBy,
		"assigned_to":   &filters.AssignedTo,
		"department_id": &filters.DepartmentID,
	} {
		if s := values.Get(param); s != "" {
			id, err := uuid.Parse(s)
			if err != nil {
				return filters, fmt.Errorf("invalid %s: %w", param, err)
			}
			*target = &id
		}
	}

	return filters, nil
}

// applyVisibility restricts listings by role. Administrators and oversight
// roles see everything, department heads see their department's traffic,
// and everyone else sees documents they created or were assigned.
func applyVisibility(filters *Filters, actor *directory.Actor) {
	switch actor.Role {
	case directory.RoleSuperAdmin, directory.RoleGovernor:
		return
	case directory.RoleDeptHead:
		if actor.DepartmentID != nil {
			filters.VisibleToDepartment = actor.DepartmentID
			return
		}
		filters.VisibleToActor = &actor.ID
	default:
		filters.VisibleToActor = &actor.ID
	}
}
