package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	mdwerror "github.com/custodiet/promokit/foundation/core/error"
	"github.com/custodiet/promokit/internal/narration"
	"github.com/custodiet/promokit/pkg/core/config"
	"github.com/custodiet/promokit/pkg/core/health"
	"github.com/custodiet/promokit/pkg/core/version"
)

var doctorOffline bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Checks tools and inputs before a run",
	Long: `Checks that ffmpeg and ffprobe are installed, that the configured
images and narration exist and that the TTS service is reachable.

Missing narration audio only degrades the report, since narrate
creates it. The command fails when a check is unhealthy.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVar(&doctorOffline, "offline", false, "Skip the TTS reachability check")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	registry := preflightRegistry(s.cfg, doctorOffline)
	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()
	report := registry.Check(ctx)

	rows := make([]row, 0, len(report.Checks))
	for _, c := range report.Checks {
		rows = append(rows, row{c.Name, statusMark(c.Status) + " " + c.Message})
	}
	printSummary(cmd.OutOrStdout(), "Preflight: "+string(report.Status), false, rows...)

	if !report.Healthy() {
		return s.fail("Preflight failed", mdwerror.New("one or more checks are unhealthy").
			WithCode(mdwerror.CodeEnvironmentError).
			WithOperation("doctor"))
	}
	return nil
}

func preflightRegistry(cfg *config.Config, offline bool) *health.Registry {
	registry := health.NewRegistry("promokit", version.Platform)

	registry.Register(health.BinaryCheck("ffmpeg", cfg.FFmpeg.Binary))
	registry.Register(health.BinaryCheck("ffprobe", cfg.FFmpeg.ProbeBinary))
	registry.Register(health.FileCheck("video image", cfg.Video.Image, health.StatusUnhealthy))
	registry.Register(health.GlobCheck("slideshow images", cfg.Slideshow.ImageDir, cfg.Slideshow.Patterns))
	registry.Register(health.FileCheck("narration audio", cfg.Slideshow.Audio, health.StatusDegraded))
	if cfg.Narration.TextFile != "" {
		registry.Register(health.FileCheck("narration text", cfg.Narration.TextFile, health.StatusUnhealthy))
	}

	if !offline {
		url := cfg.TTS.GTranslate.BaseURL
		if strings.EqualFold(cfg.TTS.Provider, narration.ProviderOpenAI) {
			url = cfg.TTS.OpenAI.BaseURL
		}
		registry.Register(health.HTTPCheck("tts service", url, nil))
	}
	return registry
}

func statusMark(s health.Status) string {
	switch s {
	case health.StatusHealthy:
		return "ok"
	case health.StatusDegraded:
		return "warn"
	default:
		return "FAIL"
	}
}
