package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/google/uuid"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the authenticated principal recovered from an access token.
type Identity struct {
	UserID   int64
	Username string
}

// IdentityFromContext returns the Identity placed by the restricted
// middleware, or false if the request was not authenticated.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}

// restricted guards protected resources. The token is taken verbatim from
// the Authorization header; a missing header and an invalid token produce
// distinct messages, both 401.
func (s *Server) restricted(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		token := r.Header.Get(common.AccessTokenHeaderName)
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, msgTokenRequired)
			return
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, msgTokenInvalid)
			return
		}

		identity := &Identity{UserID: claims.Subject, Username: claims.Username}
		ctx := context.WithValue(r.Context(), identityKey, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the status code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogger logs one line per request with a generated request id.
// Request bodies are never logged; they may carry credentials.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		log := s.logger.With("request_id", uuid.NewString())
		next.ServeHTTP(rec, r)

		log.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
