// Package httpapi exposes the authentication pipelines over HTTP/JSON:
// registration and login under /api/auth, and token-guarded resources
// under /api.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/services"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	jwtSecret []byte
}

func NewServer(a string, l logging.Logger, us *services.UserService, secretKey string) *Server {
	return &Server{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		jwtSecret: []byte(secretKey),
	}
}

// router wires the public auth endpoints and the guarded resource subtree.
// The restricted middleware applies only below /api/jokes; the auth
// endpoints stay open.
func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", s.registerUser).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.loginUser).Methods(http.MethodPost)

	jokes := api.PathPrefix("/jokes").Subrouter()
	jokes.Use(s.restricted)
	jokes.HandleFunc("", s.listJokes).Methods(http.MethodGet)

	return r
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.router()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
