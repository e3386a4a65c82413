package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodiet/promokit/internal/ffmpeg"
	"github.com/custodiet/promokit/internal/video"
)

var (
	slideDir      string
	slidePatterns []string
	slideAudio    string
	slideDuration float64
	slidePlaylist string
	slideOutput   string
	slideWatch    bool
	slideDryRun   bool
)

var slideshowCmd = &cobra.Command{
	Use:     "slideshow",
	Aliases: []string{"slides"},
	Short:   "Creates a slideshow video from all images",
	Long: `Shows every image of the image directory for an equal share of the
narration, oldest file first. The image order follows the file
modification time. A concat playlist is written next to the output and
fed to ffmpeg.

The audio length is read with ffprobe unless --duration (or
[slideshow] audio_duration) gives it in seconds.

Examples:
  promokit slideshow
  promokit slideshow --dir assets --pattern "*.png" --pattern "*.jpg"
  promokit slideshow --duration 67.824 --dry-run
  promokit slideshow --watch`,
	RunE: runSlideshow,
}

func init() {
	rootCmd.AddCommand(slideshowCmd)

	slideshowCmd.Flags().StringVarP(&slideDir, "dir", "d", "", "Image directory")
	slideshowCmd.Flags().StringSliceVarP(&slidePatterns, "pattern", "p", nil, "Image glob pattern, repeatable (default: *.png)")
	slideshowCmd.Flags().StringVarP(&slideAudio, "audio", "a", "", "Narration audio")
	slideshowCmd.Flags().Float64Var(&slideDuration, "duration", 0, "Audio length in seconds (default: probe with ffprobe)")
	slideshowCmd.Flags().StringVar(&slidePlaylist, "playlist", "", "Concat playlist path")
	slideshowCmd.Flags().StringVarP(&slideOutput, "output", "o", "", "Output mp4 path")
	slideshowCmd.Flags().BoolVarP(&slideWatch, "watch", "w", false, "Rebuild whenever the images change")
	slideshowCmd.Flags().BoolVar(&slideDryRun, "dry-run", false, "Write the playlist and print the ffmpeg command without running it")
}

func runSlideshow(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	sc := s.cfg.Slideshow
	overrideString(cmd, "dir", &sc.ImageDir, slideDir)
	overrideString(cmd, "audio", &sc.Audio, slideAudio)
	overrideString(cmd, "playlist", &sc.Playlist, slidePlaylist)
	overrideString(cmd, "output", &sc.Output, slideOutput)
	if cmd.Flags().Changed("pattern") {
		sc.Patterns = slidePatterns
	}
	if cmd.Flags().Changed("duration") {
		sc.AudioDuration = slideDuration
	}

	req := video.SlideshowRequest{
		ImageDir:      sc.ImageDir,
		Patterns:      sc.Patterns,
		Audio:         sc.Audio,
		AudioDuration: sc.AudioDuration,
		Playlist:      sc.Playlist,
		Output:        sc.Output,
	}

	enc := s.encoder()
	composer := video.NewComposer(enc, s.log, video.WithDryRun(slideDryRun))

	build := func(ctx context.Context) error {
		result, err := composer.ComposeSlideshow(ctx, req)
		if err != nil {
			return err
		}
		printSlideshowSummary(cmd, enc, result)
		return nil
	}

	if slideWatch {
		w := video.NewWatcher(req.ImageDir, req.Patterns, []string{req.Playlist, req.Output}, s.log)
		if err := w.Run(cmd.Context(), build); err != nil {
			return s.fail("Watching failed", err)
		}
		s.log.Info("Watch stopped")
		return nil
	}

	s.log.Info("Creating slideshow", "dir", req.ImageDir)
	if err := build(cmd.Context()); err != nil {
		return s.fail("Slideshow creation failed", err)
	}
	return nil
}

func printSlideshowSummary(cmd *cobra.Command, enc *ffmpeg.Encoder, result *video.Result) {
	rows := []row{
		{"Output", result.Output},
		{"Playlist", result.Playlist},
		{"Images", strconv.Itoa(result.Images)},
		{"Audio", video.FormatSeconds(result.AudioDuration) + " s"},
		{"Per image", video.FormatSeconds(result.ImageDuration) + " s"},
	}
	if result.DryRun {
		rows = append(rows, row{"Command", enc.CommandLine(result.Args)})
	}
	printSummary(cmd.OutOrStdout(), "Slideshow", result.DryRun, rows...)
}
