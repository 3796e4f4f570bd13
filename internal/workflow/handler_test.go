package workflow_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"docutrail/internal/directory"
	"docutrail/internal/documents"
	"docutrail/pkg/lifecycle"
	"docutrail/pkg/routes"
	"docutrail/pkg/storage"
)

// fakeBlobs is an in-memory blob store recording every upload and delete.
type fakeBlobs struct {
	mu       sync.Mutex
	objects  map[string][]byte
	uploaded []string
	deleted  []string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}}
}

func (f *fakeBlobs) Start(*lifecycle.Coordinator) error { return nil }

func (f *fakeBlobs) Upload(_ context.Context, key string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	f.uploaded = append(f.uploaded, key)
	return nil
}

func (f *fakeBlobs) Download(_ context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeBlobs) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[key]; !ok {
		return storage.ErrNotFound
	}
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeBlobs) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok, nil
}

type httpHarness struct {
	*harness
	blobs *fakeBlobs
	mux   *http.ServeMux
}

func newHTTPHarness(t *testing.T) *httpHarness {
	t.Helper()

	h := newHarness(t)
	blobs := newFakeBlobs()
	mux := http.NewServeMux()
	routes.Register(mux, h.engine.Handler(blobs, 10<<20).Routes()...)

	return &httpHarness{harness: h, blobs: blobs, mux: mux}
}

func (h *httpHarness) do(actor *directory.Actor, req *http.Request) *httptest.ResponseRecorder {
	if actor != nil {
		req = req.WithContext(directory.ContextWithActor(req.Context(), actor))
	}
	rec := httptest.NewRecorder()
	h.mux.ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField(%s): %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHandlerCreateWithAttachment(t *testing.T) {
	h := newHTTPHarness(t)

	body, contentType := multipartBody(t, map[string]string{
		"title":  "Quarterly transfer memo",
		"source": "internal",
	}, "attachment", "memo.txt", []byte("routing slip"))

	req := httptest.NewRequest("POST", "/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := h.do(&h.clerk, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}

	var doc documents.Document
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if doc.Status != documents.StatusDraft {
		t.Errorf("status = %s, want %s", doc.Status, documents.StatusDraft)
	}
	if doc.AttachmentName == nil || *doc.AttachmentName != "memo.txt" {
		t.Error("attachment name not recorded")
	}
	if doc.AttachmentKey == nil || !strings.HasPrefix(*doc.AttachmentKey, "attachments/") {
		t.Fatalf("attachment key = %v, want attachments/ prefix", doc.AttachmentKey)
	}

	exists, err := h.blobs.Exists(context.Background(), *doc.AttachmentKey)
	if err != nil || !exists {
		t.Errorf("uploaded blob missing: exists=%v err=%v", exists, err)
	}
}

func TestHandlerCreateRejectionRemovesBlob(t *testing.T) {
	h := newHTTPHarness(t)

	// No title, so the engine rejects the command after the upload.
	body, contentType := multipartBody(t, map[string]string{
		"source": "internal",
	}, "attachment", "memo.txt", []byte("routing slip"))

	req := httptest.NewRequest("POST", "/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := h.do(&h.clerk, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body)
	}
	if len(h.blobs.uploaded) != 1 {
		t.Fatalf("uploads = %d, want 1", len(h.blobs.uploaded))
	}

	key := h.blobs.uploaded[0]
	if len(h.blobs.deleted) != 1 || h.blobs.deleted[0] != key {
		t.Errorf("rejected transition did not delete blob %s; deleted = %v", key, h.blobs.deleted)
	}
	if exists, _ := h.blobs.Exists(context.Background(), key); exists {
		t.Errorf("blob %s still present after rejected transition", key)
	}
}

func TestHandlerESignRejectionRemovesSignature(t *testing.T) {
	h := newHTTPHarness(t)
	doc := h.create(t, h.clerk, documents.SourceInternal)

	// Draft documents cannot be signed; the uploaded signature must not
	// outlive the rejected transition.
	body, contentType := multipartBody(t, nil, "signature", "sig.png", []byte("png bytes"))

	req := httptest.NewRequest("POST", "/documents/"+doc.ID.String()+"/esign", body)
	req.Header.Set("Content-Type", contentType)
	rec := h.do(&h.headRec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusConflict, rec.Body)
	}
	if len(h.blobs.uploaded) != 1 {
		t.Fatalf("uploads = %d, want 1", len(h.blobs.uploaded))
	}

	key := h.blobs.uploaded[0]
	if !strings.HasPrefix(key, "signatures/") {
		t.Errorf("signature key = %s, want signatures/ prefix", key)
	}
	if exists, _ := h.blobs.Exists(context.Background(), key); exists {
		t.Errorf("signature blob %s still present after rejected transition", key)
	}
}

func TestHandlerClassify(t *testing.T) {
	h := newHTTPHarness(t)
	doc := h.create(t, h.clerk, documents.SourceInternal)

	req := httptest.NewRequest("POST", "/documents/"+doc.ID.String()+"/classify",
		strings.NewReader(`{"classification":"confidential"}`))
	rec := h.do(&h.headRec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}

	var updated documents.Document
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Classification != documents.ClassificationConfidential {
		t.Errorf("classification = %s, want confidential", updated.Classification)
	}
}

func TestHandlerRequiresActor(t *testing.T) {
	h := newHTTPHarness(t)

	body, contentType := multipartBody(t, map[string]string{
		"title":  "x",
		"source": "internal",
	}, "", "", nil)

	req := httptest.NewRequest("POST", "/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := h.do(nil, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
