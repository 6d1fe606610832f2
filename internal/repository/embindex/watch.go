package embindex

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch invalidates the loader whenever the index file is written, replaced or removed.
// It watches the parent directory so atomic rename-over replacements are seen.
// Blocks until ctx is cancelled.
func (l *Loader) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create index watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	dir := filepath.Dir(l.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	base := filepath.Base(l.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if affectsIndex(ev, base) {
				l.logger.Info("Embedding index file changed, invalidating",
					zap.String("path", ev.Name),
					zap.String("op", ev.Op.String()),
				)
				l.Invalidate()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.logger.Warn("Index watcher error", zap.Error(err))
		}
	}
}

// affectsIndex reports whether ev touches the index file. Chmod is ignored.
func affectsIndex(ev fsnotify.Event, base string) bool {
	if filepath.Base(ev.Name) != base {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}
