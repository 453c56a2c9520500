package assets

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-assets/pkg/meta"
)

// EventCallback is called after a watcher-driven registry change.
// kind is one of "created", "updated", "reloaded", "deleted".
type EventCallback func(kind string, path string)

// Watch watches dir and keeps reg in sync until ctx is cancelled.
//
// A written metadata file is re-read: terrains re-resolve and re-apply
// their textures, new records become new assets. A written heightfield or
// image reloads the asset it backs. A removed metadata file unregisters its
// asset. Terrains and models naming a texture that appears or disappears are
// re-resolved. cb, if non-nil, is called after each change.
//
// Changes are made under the registry lock; read assets through reg.View
// while Watch runs.
func Watch(ctx context.Context, reg *Registry, dir string, cb EventCallback) error {
	log := assetLog().Named("watch")

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, dir); err != nil {
		return err
	}
	log.Info("watcher started", zap.String("dir", dir))

	notify := func(kind, path string) {
		if cb != nil {
			cb(kind, path)
		}
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("watcher stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			path := ev.Name

			switch {
			case ev.Op&fsnotify.Create != 0 && isDir(path):
				if err := addDirsRecursive(w, path); err != nil {
					log.Warn("add dir failed", zap.String("path", path), zap.Error(err))
				}

			case meta.IsMetaFile(path) && ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				kind, err := reg.reloadMeta(path)
				if err != nil {
					// editors often write in several steps; the next event retries
					log.Debug("meta reload failed", zap.String("path", path), zap.Error(err))
					continue
				}
				log.Debug("meta reloaded", zap.String("path", path), zap.String("op", kind))
				notify(kind, path)

			case meta.IsMetaFile(path) && ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				if reg.removeFile(path) {
					notify("deleted", path)
				}

			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				known, err := reg.reloadFile(path)
				if !known {
					continue
				}
				if err != nil {
					log.Warn("asset reload failed", zap.String("path", path), zap.Error(err))
					continue
				}
				notify("reloaded", path)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", zap.Error(err))
		}
	}
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
