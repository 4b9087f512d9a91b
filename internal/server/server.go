// Package server exposes the vocabulary service over HTTP/JSON.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/example/wordquiz/internal/logger"
)

type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

func New(addr string, handler http.Handler, log *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Run serves until Shutdown is called.
func (s *Server) Run() error {
	s.log.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
