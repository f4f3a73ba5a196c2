package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long the file must stay quiet before it is reloaded. Editors
// and ConfigMap updates emit several events (truncate, write, rename) per save.
const settle = 100 * time.Millisecond

// Watch reloads the config at path whenever it changes and passes each valid
// result to onChange. The parent directory is watched so atomic
// rename-over-target saves are seen. A config that fails to load is logged
// and skipped; the caller keeps its previous one. Watch returns when ctx is
// cancelled.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("server config: watch %s: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("server config: new watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("server config: watch %s: %w", filepath.Dir(target), err)
	}
	slog.Info("config: watching for changes", "path", target)

	var quiet <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			quiet = time.After(settle)

		case <-quiet:
			quiet = nil
			cfg, err := Load(target)
			if err != nil {
				slog.Error("config: reload failed, keeping previous config", "path", target, "err", err)
				continue
			}
			slog.Info("config: reloaded", "path", target, "title", cfg.Report.Title, "alert_rules", len(cfg.Alerts.Rules))
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}
