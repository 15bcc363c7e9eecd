// Package watch re-validates profile files whenever they change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/stupside/fingerprint/internal/consistency"
	"github.com/stupside/fingerprint/internal/profile"
)

// Handler receives the report for a changed profile file, or the error that
// prevented validating it.
type Handler func(path string, r *consistency.Report, err error)

// Watcher watches one directory of profile files.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher
}

// New starts watching dir. Events are only delivered once Run is called,
// but changes made after New returns are not missed.
func New(dir string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	return &Watcher{dir: dir, watcher: w}, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run dispatches events to fn until ctx is cancelled, then closes the
// watcher.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			slog.DebugContext(ctx, "profile file changed", "path", ev.Name, "op", ev.Op.String())
			r, err := validateFile(ev.Name)
			fn(ev.Name, r, err)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.WarnContext(ctx, "watcher error", "dir", w.dir, "error", err)
		}
	}
}

// relevant reports whether ev created or rewrote a profile file. The file
// store renames complete temp files into place, which shows up as Create.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	base := filepath.Base(ev.Name)
	return filepath.Ext(base) == ".json" && !strings.HasPrefix(base, ".")
}

func validateFile(path string) (*consistency.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	p, err := profile.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return consistency.Validate(p), nil
}
