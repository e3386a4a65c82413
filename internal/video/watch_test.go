package video

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcher_RebuildsOnImageChange(t *testing.T) {
	dir := t.TempDir()
	playlist := filepath.Join(dir, "slideshow_input.txt")

	w := NewWatcher(dir, []string{"*.png"}, []string{playlist}, nil)
	w.SetDebounce(50 * time.Millisecond)

	var builds atomic.Int32
	rebuilt := make(chan struct{}, 10)
	build := func(ctx context.Context) error {
		builds.Add(1)
		// Writing the playlist must not retrigger a build
		_ = os.WriteFile(playlist, []byte("file 'x'\n"), 0o644)
		rebuilt <- struct{}{}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, build) }()

	waitFor(t, rebuilt, "initial build")

	if err := os.WriteFile(filepath.Join(dir, "new.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, rebuilt, "rebuild after image change")

	time.Sleep(300 * time.Millisecond)
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
	if got := builds.Load(); got != 2 {
		t.Errorf("builds = %d, want 2", got)
	}
}

func TestWatcher_BuildErrorsKeepWatching(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(dir, nil, nil, nil)
	w.SetDebounce(20 * time.Millisecond)

	calls := make(chan struct{}, 10)
	build := func(ctx context.Context) error {
		calls <- struct{}{}
		return errors.New("encoder unavailable")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, build) }()

	waitFor(t, calls, "initial build")
	if err := os.WriteFile(filepath.Join(dir, "a.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, calls, "rebuild after failure")

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing"), nil, nil, nil)

	err := w.Run(context.Background(), func(context.Context) error { return nil })
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}
