package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"

	"github.com/panyam/designboard/services"
)

// How often idle sessions are swept, and how long they may stay idle.
const (
	sweepInterval  = time.Minute
	maxSessionIdle = 30 * time.Minute
)

type Server struct {
	Address string
	Config  *services.Config
	Logger  *slog.Logger
}

// NewRouter builds the HTTP handler for the preview server.
func NewRouter(sessions *services.SessionManager, logger *slog.Logger) http.Handler {
	router := mux.NewRouter()
	NewBoardAPI(sessions, logger).RegisterRoutes(router)
	router.Use(func(next http.Handler) http.Handler { return LogRequests(next, logger) })
	return router
}

// LogRequests logs the status, size and duration of every request.
func LogRequests(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		level := slog.LevelDebug
		if m.Code >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", m.Code,
			"bytes", m.Written,
			"duration", m.Duration)
	})
}

func (s *Server) Start(ctx context.Context, srvErr chan error, stopChan chan bool) error {
	cfg := s.Config
	if cfg == nil {
		cfg = services.DefaultConfig()
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sessions := services.NewSessionManager(cfg.SessionOptions(logger), cfg.Server.MaxSessions, logger)

	l, err := net.Listen("tcp", s.Address)
	if err != nil {
		slog.Error("error in listening on port", "port", s.Address, "err", err)
		return fmt.Errorf("failed to listen on %s: %w", s.Address, err)
	}
	server := &http.Server{
		Handler:           NewRouter(sessions, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Starting design board server on: ", "addr", l.Addr().String())
	go func() {
		if err := server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("web server failed to serve", "err", err)
			srvErr <- err
		}
	}()

	done := make(chan struct{})
	go func() {
		select {
		case <-stopChan:
		case <-ctx.Done():
		}
		close(done)
		slog.Info("Shutting down design board server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("error shutting down web server", "err", err)
		}
		slog.Info("Design board server stopped.")
	}()

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sessions.Expire(maxSessionIdle)
			case <-done:
				return
			}
		}
	}()
	return nil
}

// floatParam reads a numeric query parameter, zero when absent or malformed.
func floatParam(r *http.Request, name string) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0
	}
	return v
}
