package video

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/custodiet/promokit/foundation/core/error"
	"github.com/custodiet/promokit/pkg/core/logging"
)

// DefaultDebounce is the quiet period after the last image change before a
// rebuild starts
const DefaultDebounce = 2 * time.Second

// Watcher rebuilds a slideshow whenever its image directory changes
type Watcher struct {
	dir      string
	patterns []string
	ignore   map[string]bool
	debounce time.Duration
	logger   *logging.Logger
}

// NewWatcher watches dir for files matching patterns. Paths in ignore, such
// as the playlist and the output video, never trigger a rebuild.
func NewWatcher(dir string, patterns []string, ignore []string, logger *logging.Logger) *Watcher {
	if logger == nil {
		logger = logging.New("watch")
	}
	w := &Watcher{
		dir:      dir,
		patterns: patterns,
		ignore:   make(map[string]bool),
		debounce: DefaultDebounce,
		logger:   logger,
	}
	for _, p := range ignore {
		if abs, err := filepath.Abs(p); err == nil {
			w.ignore[abs] = true
		}
	}
	return w
}

// SetDebounce changes the quiet period
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run calls build once, then again after every burst of matching changes,
// until ctx is cancelled. Build errors are logged and watching continues.
// Builds never overlap.
func (w *Watcher) Run(ctx context.Context, build func(context.Context) error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return mdwerror.Wrap(err, "failed to create file watcher").
			WithCode(mdwerror.CodeIOError).
			WithOperation("video.Watch")
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return mdwerror.Wrap(err, "failed to watch image directory").
			WithCode(mdwerror.CodeIOError).
			WithOperation("video.Watch").
			WithDetail("dir", w.dir)
	}

	w.rebuild(ctx, build)
	w.logger.Info("Watching for image changes", "dir", w.dir)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Image change detected", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				pending = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", "error", err.Error())

		case <-pending:
			w.rebuild(ctx, build)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if abs, err := filepath.Abs(event.Name); err == nil && w.ignore[abs] {
		return false
	}
	return MatchesAny(event.Name, w.patterns)
}

func (w *Watcher) rebuild(ctx context.Context, build func(context.Context) error) {
	if ctx.Err() != nil {
		return
	}
	if err := build(ctx); err != nil {
		w.logger.LogError("Slideshow rebuild failed", err)
	}
}
