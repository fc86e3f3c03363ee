package store

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// watchDatabase signals wakeCh whenever the database file or its WAL changes
// on disk. The watch ends with ctx. Setup failures are returned so callers
// can fall back to polling.
func (s *Store) watchDatabase(ctx context.Context, wakeCh chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return err
	}

	base := filepath.Base(s.path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasPrefix(filepath.Base(event.Name), base) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					wake(wakeCh)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Debug().Err(err).Msg("database watcher error")
			}
		}
	}()
	return nil
}
