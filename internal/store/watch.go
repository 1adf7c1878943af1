package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"backupbridge/internal/filex"
)

// watchDebounce coalesces bursts of filesystem events into one reload.
const watchDebounce = 200 * time.Millisecond

// Watch reloads the store whenever the state file changes on disk, so
// out-of-band edits become visible without a restart. It blocks until ctx
// is done. The parent directory is watched because atomic writes replace
// the file by rename.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.statePath)
	if _, err := filex.EnsureDir(dir); err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	target := filepath.Clean(s.statePath)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn(ctx, "state watcher error", "error", err)

		case <-debounce.C:
			if err := s.Restore(); err != nil {
				s.logger.Warn(ctx, "state reload failed", "error", err)
				continue
			}
			s.logger.Info(ctx, "state reloaded after external change", "path", s.statePath)
		}
	}
}
