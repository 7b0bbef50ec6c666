package querygen

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	typedboard "github.com/GauBen/typed-board"
)

// debounce coalesces bursts of filesystem events (editors typically fire
// several per save) into a single regeneration.
const debounce = 100 * time.Millisecond

// Watch regenerates whenever the artifact or an operation document changes.
// It runs one generation up front, then blocks until ctx is cancelled.
// Generation errors are logged and do not stop the watch: a broken
// intermediate state while editing is expected.
func Watch(ctx context.Context, cfg Config, logger *log.Logger) error {
	if err := cfg.defaults(); err != nil {
		return err
	}

	run := func() {
		res, err := Generate(cfg)
		switch {
		case err != nil:
			logger.Error("generation failed", "err", err)
		case res.Skipped:
			logger.Debug("inputs unchanged", "target", cfg.Target)
		default:
			logger.Info("generated typed requests", "files", len(res.Files), "target", cfg.Target)
		}
	}
	run()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return typedboard.NewGenerateError("", "start watcher", err)
	}
	defer watcher.Close()

	// Watch the containing directories: many editors replace files on
	// save, which drops per-file watches.
	dirs := map[string]bool{filepath.Dir(cfg.Artifact): true}
	files, err := resolveQueryFiles(cfg.Queries)
	if err != nil {
		return err
	}
	for _, f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return typedboard.NewGenerateError("", "watch "+dir, err)
		}
	}

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			select {
			case pending <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pending:
			run()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if relevant(event.Name, cfg.Artifact, files) {
				logger.Debug("input changed", "path", event.Name)
				schedule()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "err", err)
		}
	}
}

// relevant reports whether a changed path is one of the generator inputs.
func relevant(path, artifact string, queryFiles []string) bool {
	if sameFile(path, artifact) {
		return true
	}
	for _, f := range queryFiles {
		if sameFile(path, f) {
			return true
		}
	}
	return false
}

func sameFile(a, b string) bool {
	aa, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	bb, err := filepath.Abs(b)
	if err != nil {
		return false
	}
	return aa == bb
}
