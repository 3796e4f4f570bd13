package workflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"docutrail/internal/directory"
	"docutrail/internal/documents"
	"docutrail/pkg/handlers"
	"docutrail/pkg/routes"
	"docutrail/pkg/storage"
)

// Handler exposes workflow operations over HTTP. Document creation and
// e-signing accept multipart uploads; file bytes are written to blob
// storage before the transition runs, with a compensating delete if the
// transition fails.
type Handler struct {
	engine    System
	blobs     storage.System
	maxUpload int64
	logger    *slog.Logger
}

// NewHandler creates a Handler with the given engine, blob store, and
// upload size limit in bytes.
func NewHandler(engine System, blobs storage.System, maxUpload int64, logger *slog.Logger) *Handler {
	return &Handler{
		engine:    engine,
		blobs:     blobs,
		maxUpload: maxUpload,
		logger:    logger.With("handler", "workflow"),
	}
}

// Routes returns the route group definitions for workflow operations.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix: "/documents",
			Routes: []routes.Route{
				{Method: "POST", Pattern: "", Handler: h.Create},
				{Method: "POST", Pattern: "/{id}/classify", Handler: h.Classify},
				{Method: "POST", Pattern: "/{id}/assign", Handler: h.Assign},
				{Method: "POST", Pattern: "/{id}/process", Handler: h.Process},
				{Method: "POST", Pattern: "/{id}/review", Handler: h.Review},
				{Method: "POST", Pattern: "/{id}/esign", Handler: h.ESign},
				{Method: "POST", Pattern: "/{id}/route", Handler: h.Route},
				{Method: "POST", Pattern: "/{id}/notify", Handler: h.Notify},
			},
		},
	}
}

// Create registers a new document from a multipart form. Fields: title,
// description, source, classification, correspondent_name,
// correspondent_agency, and an optional attachment file.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cmd := CreateCommand{
		Title:               r.FormValue("title"),
		Description:         r.FormValue("description"),
		Source:              documents.Source(r.FormValue("source")),
		Classification:      documents.Classification(r.FormValue("classification")),
		CorrespondentName:   r.FormValue("correspondent_name"),
		CorrespondentAgency: r.FormValue("correspondent_agency"),
	}

	file, header, err := r.FormFile("attachment")
	switch {
	case err == nil:
		defer file.Close()

		attachment, uploadErr := h.upload(r, file, header, "attachments")
		if uploadErr != nil {
			handlers.RespondError(w, h.logger, http.StatusInternalServerError, uploadErr)
			return
		}
		cmd.Attachment = attachment

	case errors.Is(err, http.ErrMissingFile):
		// attachment is optional

	default:
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	doc, err := h.engine.Create(r.Context(), actor, cmd)
	if err != nil {
		if cmd.Attachment != nil {
			h.discard(r, cmd.Attachment.Key)
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, doc)
}

// Classify sets a document's classification level.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.operation(w, r)
	if !ok {
		return
	}

	var body struct {
		Classification string `json:"classification"`
	}
	if !h.decode(w, r, &body) {
		return
	}

	doc, err := h.engine.Classify(r.Context(), actor, ClassifyCommand{
		DocumentID:     id,
		Classification: documents.Classification(body.Classification),
	})
	h.respond(w, doc, err)
}

// Assign designates the processing actor for a document.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.operation(w, r)
	if !ok {
		return
	}

	var body struct {
		AssigneeID uuid.UUID `json:"assignee_id"`
	}
	if !h.decode(w, r, &body) {
		return
	}

	doc, err := h.engine.Assign(r.Context(), actor, AssignCommand{
		DocumentID: id,
		AssigneeID: body.AssigneeID,
	})
	h.respond(w, doc, err)
}

// Process appends a processing note to a document.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.operation(w, r)
	if !ok {
		return
	}

	var body struct {
		Notes string `json:"notes"`
	}
	if !h.decode(w, r, &body) {
		return
	}

	doc, err := h.engine.Process(r.Context(), actor, ProcessCommand{
		DocumentID: id,
		Notes:      body.Notes,
	})
	h.respond(w, doc, err)
}

// Review records an approve or reject decision.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.operation(w, r)
	if !ok {
		return
	}

	var body struct {
		Decision string `json:"decision"`
		Notes    string `json:"notes"`
	}
	if !h.decode(w, r, &body) {
		return
	}

	doc, err := h.engine.Review(r.Context(), actor, ReviewCommand{
		DocumentID: id,
		Decision:   ReviewDecision(body.Decision),
		Notes:      body.Notes,
	})
	h.respond(w, doc, err)
}

// ESign signs an approved document. Accepts a multipart form with an
// optional signature image file and notes field.
func (h *Handler) ESign(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.operation(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cmd := ESignCommand{
		DocumentID: id,
		Notes:      r.FormValue("notes"),
	}

	file, header, err := r.FormFile("signature")
	switch {
	case err == nil:
		defer file.Close()

		signature, uploadErr := h.upload(r, file, header, "signatures")
		if uploadErr != nil {
			handlers.RespondError(w, h.logger, http.StatusInternalServerError, uploadErr)
			return
		}
		cmd.SignatureKey = &signature.Key

	case errors.Is(err, http.ErrMissingFile):
		// signature image is optional

	default:
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	doc, err := h.engine.ESign(r.Context(), actor, cmd)
	if err != nil {
		if cmd.SignatureKey != nil {
			h.discard(r, *cmd.SignatureKey)
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

// Route executes a routing decision.
func (h *Handler) Route(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.operation(w, r)
	if !ok {
		return
	}

	var body struct {
		Action             string     `json:"action"`
		TargetDepartmentID *uuid.UUID `json:"target_department_id"`
		Notes              string     `json:"notes"`
	}
	if !h.decode(w, r, &body) {
		return
	}

	doc, err := h.engine.Route(r.Context(), actor, RouteCommand{
		DocumentID:         id,
		Action:             RouteAction(body.Action),
		TargetDepartmentID: body.TargetDepartmentID,
		Notes:              body.Notes,
	})
	h.respond(w, doc, err)
}

// Notify seals a finalized document in the archive.
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.operation(w, r)
	if !ok {
		return
	}

	var body struct {
		Notes string `json:"notes"`
	}
	if !h.decode(w, r, &body) {
		return
	}

	doc, err := h.engine.Notify(r.Context(), actor, NotifyCommand{
		DocumentID: id,
		Notes:      body.Notes,
	})
	h.respond(w, doc, err)
}

func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (*directory.Actor, bool) {
	actor := directory.ActorFromContext(r.Context())
	if actor == nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("no authenticated actor"))
		return nil, false
	}
	return actor, true
}

func (h *Handler) operation(w http.ResponseWriter, r *http.Request) (*directory.Actor, uuid.UUID, bool) {
	actor, ok := h.actor(w, r)
	if !ok {
		return nil, uuid.Nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return nil, uuid.Nil, false
	}

	return actor, id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, doc *documents.Document, err error) {
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, doc)
}

// upload streams a multipart file to blob storage under the given prefix
// and returns its metadata. PDF uploads get a page count.
func (h *Handler) upload(r *http.Request, file multipart.File, header *multipart.FileHeader, prefix string) (*Attachment, error) {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	attachment := &Attachment{
		Name:        header.Filename,
		Key:         fmt.Sprintf("%s/%s-%s", prefix, uuid.New(), filepath.Base(header.Filename)),
		ContentType: contentType,
		SizeBytes:   header.Size,
	}

	if contentType == "application/pdf" || strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		if count, err := api.PageCount(file, nil); err == nil {
			attachment.PageCount = &count
		} else {
			h.logger.Warn("pdf page count failed", "file", header.Filename, "error", err)
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	}

	if err := h.blobs.Upload(r.Context(), attachment.Key, file, contentType); err != nil {
		return nil, err
	}

	return attachment, nil
}

func (h *Handler) discard(r *http.Request, key string) {
	if err := h.blobs.Delete(r.Context(), key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		h.logger.Error("orphaned blob cleanup failed", "key", key, "error", err)
	}
}
