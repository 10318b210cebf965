package shader

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/learnopengl/internal/logger"
)

// Watcher reports shader files that changed on disk under a root directory.
// Paths are slash-separated and relative to the root, matching the paths
// given to Load with os.DirFS(root).
type Watcher struct {
	root    string
	fw      *fsnotify.Watcher
	changed chan string
	done    chan struct{}
	wg      sync.WaitGroup
	log     *zap.Logger
}

// NewWatcher watches root and every directory below it that exists now.
func NewWatcher(root string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating shader watcher: %w", err)
	}

	w := &Watcher{
		root:    root,
		fw:      fw,
		changed: make(chan string, 64),
		done:    make(chan struct{}),
		log:     logger.Named("shader").With(zap.String("root", root)),
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", root, err)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			rel, err := filepath.Rel(w.root, ev.Name)
			if err != nil {
				continue
			}
			select {
			case w.changed <- filepath.ToSlash(rel):
			case <-w.done:
				return
			default:
				// Queue full: the render loop will reload on a later event.
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-w.done:
			return
		}
	}
}

// Drain returns the distinct paths changed since the last call without blocking.
func (w *Watcher) Drain() []string {
	var paths []string
	seen := make(map[string]bool)
	for {
		select {
		case p := <-w.changed:
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		default:
			return paths
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fw.Close()
	w.wg.Wait()
	return err
}

// Uses reports whether p was built from the given source path.
func (p *Program) Uses(path string) bool {
	if p.fsys == nil {
		return false
	}
	for _, sp := range p.paths {
		if sp == path {
			return true
		}
	}
	return false
}
