package video

import (
	"context"
	"os"
	"path/filepath"

	mdwerror "github.com/custodiet/promokit/foundation/core/error"
	"github.com/custodiet/promokit/internal/ffmpeg"
	"github.com/custodiet/promokit/pkg/core/logging"
)

// Encoder runs the external video encoder
type Encoder interface {
	Encode(ctx context.Context, args []string) error
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

// StillRequest describes a video made of one image and one audio track
type StillRequest struct {
	Image  string
	Audio  string
	Output string
}

// SlideshowRequest describes a video cycling through a directory of images.
// AudioDuration in seconds overrides probing when positive.
type SlideshowRequest struct {
	ImageDir      string
	Patterns      []string
	Audio         string
	AudioDuration float64
	Playlist      string
	Output        string
}

// Result summarises a composition
type Result struct {
	Output        string
	Args          []string
	Playlist      string
	Images        int
	AudioDuration float64
	ImageDuration float64
	DryRun        bool
}

// Composer builds promo videos with an Encoder
type Composer struct {
	encoder Encoder
	logger  *logging.Logger
	dryRun  bool
}

// Option configures a Composer
type Option func(*Composer)

// WithDryRun prepares inputs and arguments without running the encoder
func WithDryRun(dryRun bool) Option {
	return func(c *Composer) {
		c.dryRun = dryRun
	}
}

// NewComposer creates a Composer
func NewComposer(encoder Encoder, logger *logging.Logger, opts ...Option) *Composer {
	if logger == nil {
		logger = logging.New("video")
	}
	c := &Composer{encoder: encoder, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ComposeStill loops one image over the audio track
func (c *Composer) ComposeStill(ctx context.Context, req StillRequest) (*Result, error) {
	if err := requireFile(req.Image, "image", "video.ComposeStill"); err != nil {
		return nil, err
	}
	if err := requireFile(req.Audio, "audio", "video.ComposeStill"); err != nil {
		return nil, err
	}

	args := ffmpeg.StillArgs(req.Image, req.Audio, req.Output)
	result := &Result{Output: req.Output, Args: args, Images: 1, DryRun: c.dryRun}

	if err := c.encode(ctx, args, req.Output); err != nil {
		return nil, err
	}

	c.logger.Info("Video created", "output", req.Output, "image", req.Image)
	return result, nil
}

// ComposeSlideshow shows every matching image for an equal share of the
// audio. Nothing is written when no image matches.
func (c *Composer) ComposeSlideshow(ctx context.Context, req SlideshowRequest) (*Result, error) {
	images, err := DiscoverImages(req.ImageDir, req.Patterns)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Images discovered", "count", len(images), "dir", req.ImageDir)

	if err := requireFile(req.Audio, "audio", "video.ComposeSlideshow"); err != nil {
		return nil, err
	}

	audioSeconds := req.AudioDuration
	if audioSeconds <= 0 {
		audioSeconds, err = c.encoder.ProbeDuration(ctx, req.Audio)
		if err != nil {
			return nil, err
		}
	}

	perImage, err := ImageDuration(audioSeconds, len(images))
	if err != nil {
		return nil, err
	}

	playlist, err := BuildPlaylist(images, perImage)
	if err != nil {
		return nil, err
	}
	if err := playlist.WriteFile(req.Playlist); err != nil {
		return nil, err
	}
	c.logger.Info("Playlist written",
		"path", req.Playlist,
		"images", len(images),
		"image_duration", FormatSeconds(perImage))

	args := ffmpeg.SlideshowArgs(req.Playlist, req.Audio, req.Output)
	result := &Result{
		Output:        req.Output,
		Args:          args,
		Playlist:      req.Playlist,
		Images:        len(images),
		AudioDuration: audioSeconds,
		ImageDuration: perImage,
		DryRun:        c.dryRun,
	}

	if err := c.encode(ctx, args, req.Output); err != nil {
		return nil, err
	}

	c.logger.Info("Slideshow created", "output", req.Output)
	return result, nil
}

func (c *Composer) encode(ctx context.Context, args []string, output string) error {
	if c.dryRun {
		c.logger.Info("Dry run, encoder skipped", "output", output)
		return nil
	}

	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return mdwerror.Wrap(err, "failed to create output directory").
				WithCode(mdwerror.CodeIOError).
				WithOperation("video.Compose").
				WithDetail("path", dir)
		}
	}
	return c.encoder.Encode(ctx, args)
}

func requireFile(path, kind, op string) error {
	if path == "" {
		return mdwerror.Newf("%s path is empty", kind).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation(op)
	}
	info, err := os.Stat(path)
	if err != nil {
		return mdwerror.Wrapf(err, "%s not found", kind).
			WithCode(mdwerror.CodeNoInput).
			WithOperation(op).
			WithDetail("path", path)
	}
	if info.IsDir() {
		return mdwerror.Newf("%s is a directory", kind).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation(op).
			WithDetail("path", path)
	}
	return nil
}
