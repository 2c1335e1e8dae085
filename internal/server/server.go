package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"daysquare/internal/config"
	"daysquare/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Server serves the endpoint form and the service registry
type Server struct {
	cfg   *config.Config
	log   logrus.FieldLogger
	store store.Store
}

// New creates a server backed by st
func New(cfg *config.Config, log logrus.FieldLogger, st store.Store) *Server {
	return &Server{cfg: cfg, log: log, store: st}
}

// Router builds the HTTP handler with all routes and middleware installed
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		RequestLogger(s.log),
		chimw.Recoverer,
	)

	limited := IPRateLimiter(s.cfg.RateLimit.Requests, s.cfg.RateLimit.RateWindow())

	r.Get("/health_check", s.healthCheck)

	r.Get("/form", s.getForm)
	r.With(limited).Post("/form", s.postForm)

	r.Route("/service", func(r chi.Router) {
		r.Get("/", s.listServices)
		r.With(limited).Post("/", s.createService)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getService)
			r.With(limited).Delete("/", s.deleteService)
			r.Get("/openapi", s.serviceOpenAPI)
		})
	})

	return r
}

// Run listens on the configured address until ctx is done
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Server.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Server.Address(), err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("Listening on %s://%s", s.cfg.Server.Scheme(), listener.Addr())
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
