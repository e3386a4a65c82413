package ffmpeg

import (
	"context"
	"errors"
	"strconv"
	"strings"

	mdwerror "github.com/custodiet/promokit/foundation/core/error"
	"github.com/custodiet/promokit/pkg/core/logging"
)

// Config locates the binaries
type Config struct {
	Binary      string
	ProbeBinary string
}

// DefaultConfig expects ffmpeg and ffprobe on PATH
func DefaultConfig() Config {
	return Config{Binary: "ffmpeg", ProbeBinary: "ffprobe"}
}

// Encoder runs ffmpeg and ffprobe through a Runner
type Encoder struct {
	binary      string
	probeBinary string
	runner      Runner
	logger      *logging.Logger
}

// New creates an Encoder. A nil runner uses ExecRunner.
func New(cfg Config, runner Runner, logger *logging.Logger) *Encoder {
	def := DefaultConfig()
	if cfg.Binary == "" {
		cfg.Binary = def.Binary
	}
	if cfg.ProbeBinary == "" {
		cfg.ProbeBinary = def.ProbeBinary
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = logging.New("ffmpeg")
	}
	return &Encoder{
		binary:      cfg.Binary,
		probeBinary: cfg.ProbeBinary,
		runner:      runner,
		logger:      logger,
	}
}

// Encode runs ffmpeg once with args and waits for it to exit
func (e *Encoder) Encode(ctx context.Context, args []string) error {
	e.logger.Debug("Running encoder", "command", e.CommandLine(args))

	timer := e.logger.StartTimer("ffmpeg")
	if _, err := e.runner.Run(ctx, e.binary, args...); err != nil {
		timer.StopWithError(err)
		return e.failure(ctx, err, "ffmpeg.Encode", e.binary)
	}
	timer.Stop()
	return nil
}

// ProbeDuration returns the duration of a media file in seconds
func (e *Encoder) ProbeDuration(ctx context.Context, path string) (float64, error) {
	out, err := e.runner.Run(ctx, e.probeBinary, ProbeDurationArgs(path)...)
	if err != nil {
		return 0, e.failure(ctx, err, "ffmpeg.ProbeDuration", e.probeBinary).WithDetail("path", path)
	}

	raw := strings.TrimSpace(string(out))
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, mdwerror.Wrap(err, "failed to parse probed duration").
			WithCode(mdwerror.CodeEncoderFailure).
			WithOperation("ffmpeg.ProbeDuration").
			WithDetail("path", path).
			WithDetail("output", raw)
	}

	e.logger.Debug("Probed audio duration", "path", path, "seconds", seconds)
	return seconds, nil
}

// CommandLine renders the ffmpeg invocation for logs and dry runs
func (e *Encoder) CommandLine(args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quote(e.binary))
	for _, a := range args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func (e *Encoder) failure(ctx context.Context, err error, op, binary string) *mdwerror.Error {
	code := mdwerror.CodeEncoderFailure
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		code = mdwerror.CodeTimeout
	}

	wrapped := mdwerror.Wrap(err, binary+" failed").
		WithCode(code).
		WithOperation(op).
		WithDetail("binary", binary)

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		wrapped.WithDetail("exit_code", exitErr.ExitCode)
	}
	return wrapped
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, " \t'\"\\$") {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return s
}
