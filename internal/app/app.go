package app

import (
	"context"
	"io"

	"webdesk/internal/config"
	"webdesk/internal/desk"
	"webdesk/internal/server"
)

// App is the wiring layer between the CLI and the desk service: it
// builds the service, the event hub and the HTTP server from config.
type App struct {
	cfg       *config.Config
	svc       *desk.Service
	hub       *server.Hub
	server    *server.Server
	logCloser io.Closer
}

// NewApp creates a fully wired App from the given config. cfgPath, when
// non-empty, enables live config reload. The caller must call Close.
func NewApp(cfg *config.Config, cfgPath string) (*App, error) {
	logger, closer, err := newLogger(cfg.LogDir)
	if err != nil {
		return nil, err
	}
	deskLogger := &slogAdapter{l: logger}

	hub := server.NewHub()
	svc := desk.NewService(
		cfg.DeskItems(),
		cfg.DeskUsers(),
		deskLogger,
		hub,
		desk.RealClock{},
		desk.UUIDGenerator{},
	)
	svc.AddObserver(hub)

	srv := server.New(svc, hub, cfg, cfgPath, deskLogger)

	return &App{
		cfg:       cfg,
		svc:       svc,
		hub:       hub,
		server:    srv,
		logCloser: closer,
	}, nil
}

// Service exposes the core for CLI queries.
func (a *App) Service() *desk.Service { return a.svc }

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases the log writer.
func (a *App) Close() error {
	if a.logCloser != nil {
		return a.logCloser.Close()
	}
	return nil
}
