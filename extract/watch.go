package extract

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settle is the time given to the file system to finish a burst of changes.
const settle = 100 * time.Millisecond

// Watch calls fn every time a file under dir matching patterns changes until
// ctx is done. Newly created directories are watched as well.
func Watch(ctx context.Context, dir string, patterns []string, log *zap.Logger, fn func() error) error {
	if log == nil {
		log = zap.NewNop()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirs(w, dir); err != nil {
		return err
	}

	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.Events:
			if !ok {
				return nil
			}
			if evt.Has(fsnotify.Create) {
				if fi, err := os.Stat(evt.Name); err == nil && fi.IsDir() {
					if err := addDirs(w, evt.Name); err != nil {
						log.Warn("Unable to watch directory", zap.String("dir", evt.Name), zap.Error(err))
					}
					continue
				}
			}
			if evt.Op == fsnotify.Chmod {
				continue
			}
			rel, err := filepath.Rel(dir, evt.Name)
			if err != nil || !Matches(patterns, rel) {
				continue
			}
			log.Debug("Style file changed", zap.String("file", rel), zap.Stringer("op", evt.Op))
			if timer == nil {
				timer = time.NewTimer(settle)
			} else {
				timer.Reset(settle)
			}
			trigger = timer.C
		case <-trigger:
			trigger = nil
			if err := fn(); err != nil {
				log.Error("Extraction failed", zap.Error(err))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error", zap.Error(err))
		}
	}
}

func addDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(path)
	})
}
