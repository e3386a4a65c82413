// ============================================================================
// promokit - Custodiet promo media tooling
// ============================================================================
//
// Package:     version
// Description: Central version management for all commands
// Author:      Mike Stoffels
// Created:     2026-10-12
// License:     MIT
// ============================================================================

package version

// Version constants for the promokit commands
const (
	// Platform version
	Platform = "1.0.0"

	// Command versions
	Narrate   = "1.0.0"
	Video     = "1.0.0"
	Slideshow = "1.1.0"
)

// Build metadata, set with -ldflags "-X"
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// CommandVersion returns the version for a given command name
func CommandVersion(name string) string {
	switch name {
	case "narrate":
		return Narrate
	case "video":
		return Video
	case "slideshow":
		return Slideshow
	default:
		return Platform
	}
}

// Commands lists the versioned commands in display order
func Commands() []string {
	return []string{"narrate", "video", "slideshow"}
}
