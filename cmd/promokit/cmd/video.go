package cmd

import (
	"github.com/spf13/cobra"

	"github.com/custodiet/promokit/internal/video"
)

var (
	videoImage  string
	videoAudio  string
	videoOutput string
	videoDryRun bool
)

var videoCmd = &cobra.Command{
	Use:     "video",
	Aliases: []string{"still"},
	Short:   "Creates a video from one image and the narration",
	Long: `Loops a single image for the length of the narration and encodes
an H.264/AAC mp4 with ffmpeg. The video ends with the audio track.

Examples:
  promokit video
  promokit video --image assets/cover.png --audio output/voice.mp3
  promokit video --dry-run`,
	RunE: runVideo,
}

func init() {
	rootCmd.AddCommand(videoCmd)

	videoCmd.Flags().StringVarP(&videoImage, "image", "i", "", "Image to show")
	videoCmd.Flags().StringVarP(&videoAudio, "audio", "a", "", "Narration audio")
	videoCmd.Flags().StringVarP(&videoOutput, "output", "o", "", "Output mp4 path")
	videoCmd.Flags().BoolVar(&videoDryRun, "dry-run", false, "Print the ffmpeg command without running it")
}

func runVideo(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	v := s.cfg.Video
	overrideString(cmd, "image", &v.Image, videoImage)
	overrideString(cmd, "audio", &v.Audio, videoAudio)
	overrideString(cmd, "output", &v.Output, videoOutput)

	enc := s.encoder()
	composer := video.NewComposer(enc, s.log, video.WithDryRun(videoDryRun))

	s.log.Info("Creating video", "image", v.Image, "audio", v.Audio)
	result, err := composer.ComposeStill(cmd.Context(), video.StillRequest{
		Image:  v.Image,
		Audio:  v.Audio,
		Output: v.Output,
	})
	if err != nil {
		return s.fail("Video creation failed", err)
	}

	rows := []row{
		{"Output", result.Output},
		{"Image", v.Image},
		{"Audio", v.Audio},
	}
	if result.DryRun {
		rows = append(rows, row{"Command", enc.CommandLine(result.Args)})
	}
	printSummary(cmd.OutOrStdout(), "Video", result.DryRun, rows...)
	return nil
}
