package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/chainfeed/storefront-backend/pkg/logger"
)

const sessionHeader = "X-Cart-Session"

// CartSession resolves the caller's cart session id. A client without one
// gets a freshly minted id, echoed back in the response header so it can
// be replayed on subsequent requests.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := strings.TrimSpace(r.Header.Get(sessionHeader))
			if session == "" {
				session = uuid.NewString()
			}

			w.Header().Set(sessionHeader, session)

			ctx := withSessionID(r.Context(), session)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, session)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
