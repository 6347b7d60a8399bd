package file

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/ankify-cli/internal/logger"
)

// reloadOps are the operations that may leave new content at the config
// path. Editors commonly save by renaming a temp file over the original.
const reloadOps = fsnotify.Create | fsnotify.Write | fsnotify.Rename

// Watch reloads the store whenever the config file changes on disk and calls
// onChange after each successful reload. It blocks until ctx is done.
// The directory is watched rather than the file so replacements are seen.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return err
	}
	logger.Debug("Watching %s", s.filePath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleFsEvent(event, onChange)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Config watcher: %v", err)
		}
	}
}

// handleFsEvent reloads on events for the config file and reports whether
// a reload happened.
func (s *ConfigStore) handleFsEvent(event fsnotify.Event, onChange func()) bool {
	if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
		return false
	}
	if event.Op&reloadOps == 0 {
		return false
	}

	if err := s.Load(); err != nil {
		// Partially written files fail to parse; the next write retries.
		logger.Warn("Reload %s: %v", s.filePath, err)
		return false
	}
	logger.Debug("Reloaded %s", s.filePath)
	if onChange != nil {
		onChange()
	}
	return true
}
