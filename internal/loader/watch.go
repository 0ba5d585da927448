package loader

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"

	"github.com/sprintlens/sprintlens/pkg/types"
)

// Watch monitors the dataset file at path and calls onChange with the newly
// loaded snapshot each time the file is written. It runs until ctx is
// cancelled.
//
// If a reload fails (invalid JSON, broken referential integrity), the error
// is logged and the previous snapshot stays active — Watch does not call
// onChange with a bad dataset.
func Watch(ctx context.Context, path string, onChange func(*types.Snapshot)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	slog.Info("loader: watching dataset for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only reload on write or create events. Editors and exporters
			// often save via rename, so also catch fsnotify.Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			snap, err := Load(path)
			if err != nil {
				slog.Error("loader: reload failed — keeping previous snapshot",
					"path", path, "err", err)
				continue
			}

			slog.Info("loader: dataset reloaded",
				"path", path, "sprints", len(snap.Sprints), "tasks", len(snap.Tasks))
			onChange(snap)

			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("loader: watcher error", "err", err)
		}
	}
}
