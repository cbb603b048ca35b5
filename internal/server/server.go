package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"webdesk/internal/config"
	"webdesk/internal/desk"
)

// Server exposes the desk service over HTTP: a query surface, a
// command surface, a login endpoint and an SSE event stream. It also
// owns the transfer scheduler tick and the config watcher.
type Server struct {
	svc      *desk.Service
	hub      *Hub
	sessions *SessionStore
	logger   desk.Logger

	mu      sync.Mutex
	cfg     *config.Config
	cfgPath string

	httpSrv *http.Server
}

// New wires a Server over an already-built service and hub. cfgPath may
// be empty, in which case live config reload is disabled.
func New(svc *desk.Service, hub *Hub, cfg *config.Config, cfgPath string, logger desk.Logger) *Server {
	s := &Server{
		svc:      svc,
		hub:      hub,
		sessions: NewSessionStore(desk.UUIDGenerator{}),
		logger:   logger,
		cfg:      cfg,
		cfgPath:  cfgPath,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/items", s.handleItems)
	mux.HandleFunc("/api/children", s.handleChildren)
	mux.HandleFunc("/api/path", s.handlePath)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/transfers", s.handleTransfers)
	mux.HandleFunc("/api/command/", s.handleCommand)
	mux.HandleFunc("/api/events", s.handleEvents)

	s.httpSrv = &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, used directly by tests.
func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

// Run serves until ctx is cancelled. The transfer scheduler and the
// config watcher run alongside the listener.
func (s *Server) Run(ctx context.Context) error {
	tickCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.runTransferTicker(tickCtx)
	if s.cfgPath != "" {
		go s.watchConfig(tickCtx)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()
	s.logger.Info("server listening", "addr", s.httpSrv.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, sdCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer sdCancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	}
}

// runTransferTicker drives the cooperative transfer simulations.
func (s *Server) runTransferTicker(ctx context.Context) {
	s.mu.Lock()
	tickMillis := s.cfg.Transfer.TickMillis
	step := s.cfg.Transfer.Step
	s.mu.Unlock()
	if tickMillis <= 0 {
		tickMillis = 200
	}
	if step <= 0 {
		step = 10
	}

	ticker := time.NewTicker(time.Duration(tickMillis) * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.svc.TickTransfers(step)
		}
	}
}

// currentConfig returns the live config under the server's lock.
func (s *Server) currentConfig() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// replaceConfig swaps the live config after a reload.
func (s *Server) replaceConfig(cfg *config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}
