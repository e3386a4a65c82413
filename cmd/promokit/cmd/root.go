// ============================================================================
// promokit - Custodiet promo media tooling
// ============================================================================
//
// Package:     cmd
// Description: Root command, shared flags and per-run setup
// Author:      Mike Stoffels
// Created:     2026-10-12
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	mdwerror "github.com/custodiet/promokit/foundation/core/error"
	"github.com/custodiet/promokit/internal/ffmpeg"
	"github.com/custodiet/promokit/pkg/core/config"
	"github.com/custodiet/promokit/pkg/core/logging"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "promokit",
	Short: "Custodiet promo media tooling",
	Long: `promokit produces the Custodiet promotional media.

Commands:
  narrate    - Arabic narration audio via text-to-speech
  video      - Single-image video over the narration
  slideshow  - Slideshow of all images, timed to the narration

Paths and settings come from a TOML or YAML config file
(default search: ./configs/promokit.toml, ./promokit.toml,
./promokit.yaml, ~/.config/promokit/config.toml) and can be
overridden per run with flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. SIGINT and SIGTERM cancel the running
// command and kill any encoder process it started.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	var mdwErr *mdwerror.Error
	if err != nil && !errors.As(err, &mdwErr) {
		// Usage errors; command failures are already logged
		printError("promokit", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Config file (default: ./configs/promokit.toml, env "+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Log format: text or json (default from config)")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}

// session is the state shared by one command run
type session struct {
	cfg     *config.Config
	cfgPath string
	runID   string
	log     *logging.Logger
}

func newSession(cmd *cobra.Command) (*session, error) {
	runID := uuid.NewString()
	name := cmd.Name()

	cfg, used, err := config.Discover(cfgFile)
	if err != nil {
		l := sessionLogger(cmd, name, runID, "info", logFormat)
		l.LogError("Configuration could not be loaded", err)
		return nil, err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	format := cfg.Log.Format
	if logFormat != "" {
		format = logFormat
	}

	l := sessionLogger(cmd, name, runID, level, format)
	if used != "" {
		l.Debug("Configuration loaded", "path", used)
	} else {
		l.Debug("No config file found, using defaults")
	}

	return &session{cfg: cfg, cfgPath: used, runID: runID, log: l}, nil
}

func sessionLogger(cmd *cobra.Command, name, runID, level, format string) *logging.Logger {
	return logging.Wrap(logging.NewLogger(logging.LoggerConfig{
		Name:   name,
		Level:  level,
		Format: format,
		RunID:  runID,
		Output: cmd.ErrOrStderr(),
	}), name)
}

// fail logs err once and returns it for the exit status
func (s *session) fail(msg string, err error) error {
	if mdwErr, ok := err.(*mdwerror.Error); ok {
		mdwErr.WithRunID(s.runID)
	}
	s.log.LogError(msg, err)
	return err
}

func (s *session) encoder() *ffmpeg.Encoder {
	return ffmpeg.New(ffmpeg.Config{
		Binary:      s.cfg.FFmpeg.Binary,
		ProbeBinary: s.cfg.FFmpeg.ProbeBinary,
	}, nil, s.log.With("component", "ffmpeg"))
}

// overrideString replaces dst when the flag was set on the command line
func overrideString(cmd *cobra.Command, flag string, dst *string, value string) {
	if cmd.Flags().Changed(flag) {
		*dst = value
	}
}
