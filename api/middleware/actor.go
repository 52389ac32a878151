package middleware

import (
	"context"
	"net/http"

	"github.com/adamkadry/backoffice-api/api/responses"
	pkgerrors "github.com/adamkadry/backoffice-api/pkg/errors"
	"github.com/adamkadry/backoffice-api/pkg/logger"
	"github.com/google/uuid"
)

const actorIDHeader = "X-Actor-Id"

type contextKey string

const actorIDKey contextKey = "actor_id"

// Actor reads the staff identity forwarded by the dashboard gateway and
// attaches it to the request context. A missing header passes through; write
// endpoints enforce presence in the service layer.
func Actor(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(actorIDHeader)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			actorID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "malformed actor identity"))
				return
			}

			ctx := context.WithValue(r.Context(), actorIDKey, actorID)
			if logg != nil {
				ctx = logg.WithActorID(ctx, actorID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorIDFromContext returns the authenticated actor id, or uuid.Nil when the
// request carried none.
func ActorIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(actorIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
