package analysis

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/TFMV/bigocode/parser"
	"github.com/TFMV/bigocode/types"
	"github.com/fsnotify/fsnotify"
)

// ChangeFunc receives the classification of a changed file, or the error
// that prevented it.
type ChangeFunc func(report types.FileReport, err error)

// maxWaitFactor bounds how long a stream of events can hold back a flush,
// as a multiple of the debounce.
const maxWaitFactor = 8

// Watch re-classifies selected files under dir whenever they are written.
// Events within debounce of each other are coalesced, but pending files are
// flushed at most maxWaitFactor*debounce after the first of them arrived.
// Watch blocks until ctx is done.
func (a *Analyzer) Watch(ctx context.Context, dir string, debounce time.Duration, onChange ChangeFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := a.watchTree(w, dir, dir); err != nil {
		return err
	}
	a.logger.Info().Str("root", dir).Dur("debounce", debounce).Msg("watching")

	pending := make(map[string]struct{})
	var (
		flush    <-chan time.Time
		deadline time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := a.watchTree(w, dir, event.Name); err != nil {
						a.logger.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
					continue
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if _, ok := parser.LanguageOf(event.Name); !ok || !a.Selected(dir, event.Name) {
				continue
			}
			if len(pending) == 0 {
				deadline = time.Now().Add(maxWaitFactor * debounce)
			}
			pending[event.Name] = struct{}{}
			flush = time.After(min(debounce, time.Until(deadline)))

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn().Err(err).Msg("watch error")

		case <-flush:
			flush = nil
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			clear(pending)
			sort.Strings(paths)

			for _, path := range paths {
				report, err := a.AnalyzeFile(path)
				if err == nil {
					a.logger.Debug().Str("file", path).Str("time", string(report.Time)).Msg("reclassified")
				}
				onChange(report, err)
			}
		}
	}
}

// watchTree adds dir and every non-excluded directory below it.
func (a *Analyzer) watchTree(w *fsnotify.Watcher, root, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk directory: %w", err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && a.excluded(root, path) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
