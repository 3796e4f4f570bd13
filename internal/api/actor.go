package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"docutrail/internal/directory"
	"docutrail/pkg/handlers"
)

// ActorHeader identifies the acting user on every API request. Upstream
// authentication is expected to validate identity; this service resolves
// the header against the actor directory.
const ActorHeader = "X-Actor-ID"

// ResolveActor returns middleware that resolves the X-Actor-ID header to a
// directory actor and attaches it to the request context. Requests with a
// missing or unknown actor are rejected with 401.
func ResolveActor(store directory.Store, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("middleware", "actor")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(ActorHeader)
			if header == "" {
				handlers.RespondError(w, logger, http.StatusUnauthorized, errors.New("missing "+ActorHeader+" header"))
				return
			}

			id, err := uuid.Parse(header)
			if err != nil {
				handlers.RespondError(w, logger, http.StatusUnauthorized, errors.New("malformed "+ActorHeader+" header"))
				return
			}

			actor, err := store.FindActor(r.Context(), id)
			if err != nil {
				if errors.Is(err, directory.ErrActorNotFound) {
					handlers.RespondError(w, logger, http.StatusUnauthorized, errors.New("unknown actor"))
					return
				}
				handlers.RespondError(w, logger, http.StatusInternalServerError, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(directory.ContextWithActor(r.Context(), actor)))
		})
	}
}
