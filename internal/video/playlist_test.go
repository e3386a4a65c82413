package video

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwerror "github.com/custodiet/promokit/foundation/core/error"
)

func imageSet(paths ...string) ImageSet {
	set := make(ImageSet, len(paths))
	for i, p := range paths {
		set[i] = Image{Path: p, ModTime: int64(i)}
	}
	return set
}

func TestImageDuration(t *testing.T) {
	got, err := ImageDuration(67.824, 10)
	if err != nil {
		t.Fatalf("ImageDuration() error = %v", err)
	}
	if FormatSeconds(got) != "6.7824" {
		t.Errorf("FormatSeconds(ImageDuration(67.824, 10)) = %v", FormatSeconds(got))
	}
}

func TestImageDuration_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		count   int
		code    mdwerror.Code
	}{
		{"no images", 60, 0, mdwerror.CodeNoInput},
		{"zero audio", 0, 3, mdwerror.CodeInvalidInput},
		{"negative audio", -4, 3, mdwerror.CodeInvalidInput},
		{"nan audio", math.NaN(), 3, mdwerror.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImageDuration(tt.seconds, tt.count)
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := map[float64]string{
		2.5:      "2.5000",
		1.0 / 3:  "0.3333",
		6.78249:  "6.7825",
		120:      "120.0000",
		0.000049: "0.0000",
	}
	for in, want := range tests {
		if got := FormatSeconds(in); got != want {
			t.Errorf("FormatSeconds(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestBuildPlaylist(t *testing.T) {
	paths := make([]string, 10)
	for i := range paths {
		paths[i] = filepath.Join("/promo", "frame"+string(rune('0'+i))+".png")
	}
	perImage, _ := ImageDuration(67.824, 10)

	playlist, err := BuildPlaylist(imageSet(paths...), perImage)
	if err != nil {
		t.Fatalf("BuildPlaylist() error = %v", err)
	}
	if len(playlist.Entries) != 11 {
		t.Fatalf("expected 11 entries, got %d", len(playlist.Entries))
	}

	last := playlist.Entries[10]
	if last.HasDuration || last.Path != paths[9] {
		t.Errorf("last entry = %+v, want repeat of %v without duration", last, paths[9])
	}

	text := playlist.String()
	if n := strings.Count(text, "duration 6.7824\n"); n != 10 {
		t.Errorf("expected 10 duration lines, got %d:\n%s", n, text)
	}
	if !strings.HasSuffix(text, "file '/promo/frame9.png'\n") {
		t.Errorf("playlist should end with the repeated last image:\n%s", text)
	}
}

func TestPlaylist_WriteTo(t *testing.T) {
	playlist, err := BuildPlaylist(imageSet("/a.png", "/b.png", "/c.png"), 2.5)
	if err != nil {
		t.Fatal(err)
	}

	want := "file '/a.png'\nduration 2.5000\n" +
		"file '/b.png'\nduration 2.5000\n" +
		"file '/c.png'\nduration 2.5000\n" +
		"file '/c.png'\n"

	var sb strings.Builder
	n, err := playlist.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if sb.String() != want {
		t.Errorf("WriteTo() =\n%s\nwant\n%s", sb.String(), want)
	}
	if n != int64(len(want)) {
		t.Errorf("WriteTo() n = %d, want %d", n, len(want))
	}
}

func TestPlaylist_NormalizesSeparators(t *testing.T) {
	playlist, _ := BuildPlaylist(imageSet(`C:\promo\assets\cover.png`), 5)

	text := playlist.String()
	if strings.Contains(text, `\`) {
		t.Errorf("playlist contains backslashes:\n%s", text)
	}
	if !strings.Contains(text, "file 'C:/promo/assets/cover.png'") {
		t.Errorf("unexpected playlist:\n%s", text)
	}
}

func TestPlaylist_EscapesQuotes(t *testing.T) {
	playlist, _ := BuildPlaylist(imageSet("/promo/it's.png"), 5)

	if !strings.Contains(playlist.String(), `file '/promo/it'\''s.png'`) {
		t.Errorf("quote not escaped:\n%s", playlist.String())
	}
}

func TestBuildPlaylist_Empty(t *testing.T) {
	_, err := BuildPlaylist(nil, 1)
	if !mdwerror.HasCode(err, mdwerror.CodeNoInput) {
		t.Errorf("expected no input error, got %v", err)
	}
}

func TestPlaylist_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "slideshow_input.txt")
	playlist, _ := BuildPlaylist(imageSet("/a.png", "/b.png"), 1.25)

	if err := playlist.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != playlist.String() {
		t.Errorf("file content = %q, want %q", data, playlist.String())
	}
}
