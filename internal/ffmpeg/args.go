// ============================================================================
// promokit - Custodiet promo media tooling
// ============================================================================
//
// Package:     ffmpeg
// Description: Argument lists for the ffmpeg and ffprobe invocations
// Author:      Mike Stoffels
// Created:     2026-10-12
// License:     MIT
// ============================================================================

package ffmpeg

// Encoding parameters shared by all promo videos
const (
	VideoCodec   = "libx264"
	AudioCodec   = "aac"
	AudioBitrate = "192k"
	PixelFormat  = "yuv420p"
	FrameRate    = "30"
)

// StillArgs loops one image for the length of the audio track
func StillArgs(image, audio, output string) []string {
	return []string{
		"-y",
		"-loop", "1",
		"-i", image,
		"-i", audio,
		"-c:v", VideoCodec,
		"-tune", "stillimage",
		"-c:a", AudioCodec,
		"-b:a", AudioBitrate,
		"-pix_fmt", PixelFormat,
		"-shortest",
		output,
	}
}

// SlideshowArgs reads a concat playlist as the video input and muxes the
// audio track. -safe 0 allows absolute paths in the playlist.
func SlideshowArgs(playlist, audio, output string) []string {
	return []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", playlist,
		"-i", audio,
		"-c:v", VideoCodec,
		"-r", FrameRate,
		"-pix_fmt", PixelFormat,
		"-c:a", AudioCodec,
		"-b:a", AudioBitrate,
		"-shortest",
		output,
	}
}

// ProbeDurationArgs prints only the container duration in seconds
func ProbeDurationArgs(path string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
}
