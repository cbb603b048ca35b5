package server

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"webdesk/internal/config"
)

// watchConfig reloads the user roster when the config file changes, so
// role edits take effect without a restart. Seeded items are not
// re-applied: the running collection is live state, not config.
func (s *Server) watchConfig(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Error("config watch unavailable", "error", err)
		return
	}
	defer watcher.Close()

	// Watch the directory: editors replace files rather than write
	// them in place, which would drop a watch on the file itself.
	if err := watcher.Add(filepath.Dir(s.cfgPath)); err != nil {
		s.logger.Error("config watch failed", "path", s.cfgPath, "error", err)
		return
	}
	s.logger.Info("watching config", "path", s.cfgPath)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Name != s.cfgPath {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			s.reloadConfig()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("config watch error", "error", err)
		}
	}
}

func (s *Server) reloadConfig() {
	cfg, err := config.ReadFromFile(s.cfgPath)
	if err != nil {
		s.logger.Error("config reload failed", "error", err)
		return
	}
	s.replaceConfig(cfg)
	s.svc.ReplaceUsers(cfg.DeskUsers())
	s.logger.Info("config reloaded", "users", len(cfg.Users))
}
