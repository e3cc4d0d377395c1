package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchOptions configures Watch.
type WatchOptions struct {
	Extensions []string
	Exclude    []string
	// Debounce groups bursts of events into one callback.
	Debounce time.Duration
}

// Watch calls onChange with the sorted set of changed source files after
// each burst of writes, creates or renames under roots. Directories created
// later are watched too. It returns when ctx is done or onChange fails.
func Watch(ctx context.Context, roots []string, opts WatchOptions, onChange func(changed []string) error) error {
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 100 * time.Millisecond
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	for _, root := range roots {
		if err := addWatchTree(w, root, opts.Exclude); err != nil {
			return err
		}
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(opts.Debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if err := addWatchTree(w, ev.Name, opts.Exclude); err != nil {
						log.Warningf("watch %s: %v", ev.Name, err)
					}
					continue
				}
			}
			if !hasExtension(filepath.Base(ev.Name), opts.Extensions) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(opts.Debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warningf("watcher: %v", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			slices.Sort(changed)
			if err := onChange(changed); err != nil {
				return err
			}
		}
	}
}

// addWatchTree watches root and its subdirectories. fsnotify is not
// recursive. A file root is watched directly.
func addWatchTree(w *fsnotify.Watcher, root string, exclude []string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return w.Add(root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && slices.Contains(exclude, d.Name()) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
