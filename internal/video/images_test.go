package video

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/custodiet/promokit/foundation/core/error"
)

func writeImage(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
	return path
}

func TestDiscoverImages_OrdersByModTime(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	// Listing order C, A, B with times t3, t1, t2
	c := writeImage(t, dir, "C.png", base.Add(3*time.Minute))
	a := writeImage(t, dir, "A.png", base.Add(1*time.Minute))
	b := writeImage(t, dir, "B.png", base.Add(2*time.Minute))

	set, err := DiscoverImages(dir, []string{"*.png"})
	if err != nil {
		t.Fatalf("DiscoverImages() error = %v", err)
	}

	want := []string{a, b, c}
	got := set.Paths()
	if len(got) != len(want) {
		t.Fatalf("got %d images, want %d", len(got), len(want))
	}
	for i := range want {
		wantAbs, _ := filepath.Abs(want[i])
		if got[i] != wantAbs {
			t.Errorf("image %d = %v, want %v", i, got[i], wantAbs)
		}
	}
}

func TestDiscoverImages_TiesBrokenByPath(t *testing.T) {
	dir := t.TempDir()
	same := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	writeImage(t, dir, "b.png", same)
	writeImage(t, dir, "a.png", same)

	set, err := DiscoverImages(dir, nil)
	if err != nil {
		t.Fatalf("DiscoverImages() error = %v", err)
	}
	if filepath.Base(set[0].Path) != "a.png" || filepath.Base(set[1].Path) != "b.png" {
		t.Errorf("unexpected order: %v", set.Paths())
	}
}

func TestDiscoverImages_OverlappingPatterns(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeImage(t, dir, "cover.png", now)
	writeImage(t, dir, "scene.jpg", now.Add(time.Second))
	writeImage(t, dir, "notes.txt", now)

	set, err := DiscoverImages(dir, []string{"*.png", "*.jpg", "cover.*"})
	if err != nil {
		t.Fatalf("DiscoverImages() error = %v", err)
	}
	if len(set) != 2 {
		t.Errorf("expected 2 unique images, got %v", set.Paths())
	}
}

func TestDiscoverImages_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "drafts.png"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeImage(t, dir, "final.png", time.Now())

	set, err := DiscoverImages(dir, nil)
	if err != nil {
		t.Fatalf("DiscoverImages() error = %v", err)
	}
	if len(set) != 1 || filepath.Base(set[0].Path) != "final.png" {
		t.Errorf("unexpected images: %v", set.Paths())
	}
}

func TestDiscoverImages_Empty(t *testing.T) {
	dir := t.TempDir()

	_, err := DiscoverImages(dir, []string{"*.png"})
	if err == nil {
		t.Fatal("expected error for empty directory")
	}
	if !mdwerror.HasCode(err, mdwerror.CodeNoInput) {
		t.Errorf("code = %v, want %v", mdwerror.GetCode(err), mdwerror.CodeNoInput)
	}
}

func TestDiscoverImages_BadPattern(t *testing.T) {
	_, err := DiscoverImages(t.TempDir(), []string{"[.png"})
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"/assets/a.png", nil, true},
		{"/assets/a.jpg", nil, false},
		{"/assets/a.jpg", []string{"*.png", "*.jpg"}, true},
		{"/assets/slideshow_input.txt", []string{"*.png"}, false},
	}

	for _, tt := range tests {
		if got := MatchesAny(tt.path, tt.patterns); got != tt.want {
			t.Errorf("MatchesAny(%q, %v) = %v, want %v", tt.path, tt.patterns, got, tt.want)
		}
	}
}
