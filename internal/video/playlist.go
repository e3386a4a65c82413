package video

import (
	"bufio"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	mdwerror "github.com/custodiet/promokit/foundation/core/error"
)

// PlaylistEntry is one file directive of a concat playlist
type PlaylistEntry struct {
	Path        string
	Duration    float64
	HasDuration bool
}

// Playlist is an ffconcat input listing each image with its display time
type Playlist struct {
	Entries []PlaylistEntry
}

// ImageDuration splits the audio length evenly across count images
func ImageDuration(audioSeconds float64, count int) (float64, error) {
	if count <= 0 {
		return 0, mdwerror.New("no images to distribute audio over").
			WithCode(mdwerror.CodeNoInput).
			WithOperation("video.ImageDuration")
	}
	if audioSeconds <= 0 || math.IsNaN(audioSeconds) || math.IsInf(audioSeconds, 0) {
		return 0, mdwerror.Newf("audio duration must be positive, got %v", audioSeconds).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("video.ImageDuration")
	}
	return audioSeconds / float64(count), nil
}

// FormatSeconds renders a duration with four decimals
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 4, 64)
}

// BuildPlaylist gives every image the same duration and repeats the last
// image without one. The concat demuxer ignores the duration of the final
// entry, so the repeat makes the last image hold for its full time.
func BuildPlaylist(images ImageSet, perImage float64) (*Playlist, error) {
	if len(images) == 0 {
		return nil, mdwerror.New("no images for playlist").
			WithCode(mdwerror.CodeNoInput).
			WithOperation("video.BuildPlaylist")
	}

	entries := make([]PlaylistEntry, 0, len(images)+1)
	for _, img := range images {
		entries = append(entries, PlaylistEntry{Path: img.Path, Duration: perImage, HasDuration: true})
	}
	entries = append(entries, PlaylistEntry{Path: images[len(images)-1].Path})

	return &Playlist{Entries: entries}, nil
}

// WriteTo writes the playlist in concat demuxer syntax
func (p *Playlist) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, e := range p.Entries {
		written, err := bw.WriteString("file '" + quotePath(e.Path) + "'\n")
		n += int64(written)
		if err != nil {
			return n, err
		}
		if e.HasDuration {
			written, err = bw.WriteString("duration " + FormatSeconds(e.Duration) + "\n")
			n += int64(written)
			if err != nil {
				return n, err
			}
		}
	}
	return n, bw.Flush()
}

// String returns the playlist text
func (p *Playlist) String() string {
	var sb strings.Builder
	_, _ = p.WriteTo(&sb)
	return sb.String()
}

// WriteFile writes the playlist to path, creating parent directories. The
// file is closed before WriteFile returns.
func (p *Playlist) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ioError(err, "failed to create playlist directory", path)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return ioError(err, "failed to create playlist", path)
	}
	if _, err := p.WriteTo(f); err != nil {
		f.Close()
		return ioError(err, "failed to write playlist", path)
	}
	if err := f.Close(); err != nil {
		return ioError(err, "failed to close playlist", path)
	}
	return nil
}

// quotePath uses forward slashes and escapes single quotes for the concat
// demuxer's quoting rules.
func quotePath(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	return strings.ReplaceAll(path, "'", `'\''`)
}

func ioError(err error, msg, path string) error {
	return mdwerror.Wrap(err, msg).
		WithCode(mdwerror.CodeIOError).
		WithOperation("video.Playlist").
		WithDetail("path", path)
}
