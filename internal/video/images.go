// ============================================================================
// promokit - Custodiet promo media tooling
// ============================================================================
//
// Package:     video
// Description: Image discovery, concat playlists and video composition
// Author:      Mike Stoffels
// Created:     2026-10-12
// License:     MIT
// ============================================================================

package video

import (
	"os"
	"path/filepath"
	"sort"

	mdwerror "github.com/custodiet/promokit/foundation/core/error"
)

// DefaultPatterns selects the images of a slideshow directory
var DefaultPatterns = []string{"*.png"}

// Image is one slideshow frame on disk
type Image struct {
	Path    string
	ModTime int64
}

// ImageSet is ordered by modification time, oldest first
type ImageSet []Image

// Paths returns the image paths in order
func (s ImageSet) Paths() []string {
	paths := make([]string, len(s))
	for i, img := range s {
		paths[i] = img.Path
	}
	return paths
}

// DiscoverImages globs dir with each pattern and orders the matches by
// modification time. Paths are absolute because the concat demuxer resolves
// relative entries against the playlist's directory.
func DiscoverImages(dir string, patterns []string) (ImageSet, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	seen := make(map[string]bool)
	var set ImageSet
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, mdwerror.Wrap(err, "invalid image pattern").
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("video.DiscoverImages").
				WithDetail("pattern", pattern)
		}

		for _, match := range matches {
			abs, err := filepath.Abs(match)
			if err != nil {
				abs = match
			}
			if seen[abs] {
				continue
			}

			info, err := os.Stat(abs)
			if err != nil {
				return nil, mdwerror.Wrap(err, "failed to stat image").
					WithCode(mdwerror.CodeIOError).
					WithOperation("video.DiscoverImages").
					WithDetail("path", abs)
			}
			if info.IsDir() {
				continue
			}

			seen[abs] = true
			set = append(set, Image{Path: abs, ModTime: info.ModTime().UnixNano()})
		}
	}

	if len(set) == 0 {
		return nil, mdwerror.New("no images found").
			WithCode(mdwerror.CodeNoInput).
			WithOperation("video.DiscoverImages").
			WithDetail("dir", dir).
			WithDetail("patterns", patterns)
	}

	SortByModTime(set)
	return set, nil
}

// SortByModTime orders images oldest first. Equal times fall back to the
// path so the order is reproducible.
func SortByModTime(set ImageSet) {
	sort.SliceStable(set, func(i, j int) bool {
		if set[i].ModTime != set[j].ModTime {
			return set[i].ModTime < set[j].ModTime
		}
		return set[i].Path < set[j].Path
	})
}

// MatchesAny reports whether the base name of path matches one of patterns
func MatchesAny(path string, patterns []string) bool {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
