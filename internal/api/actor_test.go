package api_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"docutrail/internal/api"
	"docutrail/internal/directory"
)

func TestResolveActor(t *testing.T) {
	store := directory.NewMemoryStore()
	clerk := store.AddActor(directory.Actor{
		Username: "clerk", FullName: "Casey Clerk",
		Role: directory.RoleDeptSenderReceiver,
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var resolved *directory.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved = directory.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	wrapped := api.ResolveActor(store, logger)(next)

	serve := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/documents", nil)
		if header != "" {
			req.Header.Set(api.ActorHeader, header)
		}
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		return rec
	}

	t.Run("resolves known actor", func(t *testing.T) {
		resolved = nil
		rec := serve(clerk.ID.String())
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
		}
		if resolved == nil || resolved.ID != clerk.ID {
			t.Errorf("resolved actor = %v, want %s", resolved, clerk.ID)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		if rec := serve(""); rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		if rec := serve("not-a-uuid"); rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("unknown actor", func(t *testing.T) {
		if rec := serve(uuid.NewString()); rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}
