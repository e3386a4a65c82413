package narration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	mdwerror "github.com/custodiet/promokit/foundation/core/error"
	"github.com/custodiet/promokit/pkg/core/logging"
)

// Result describes a written narration file
type Result struct {
	Output   string
	Provider string
	Language string
	Runes    int
	Bytes    int
}

// Generator turns narration text into an audio file
type Generator struct {
	synth   Synthesizer
	timeout time.Duration
	logger  *logging.Logger
}

// NewGenerator creates a Generator. A non-positive timeout uses
// DefaultTimeout; it only applies when ctx carries no deadline.
func NewGenerator(synth Synthesizer, timeout time.Duration, logger *logging.Logger) *Generator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.New("narration")
	}
	return &Generator{synth: synth, timeout: timeout, logger: logger}
}

// Generate synthesizes req and writes the audio to output. The file is only
// touched once synthesis fully succeeded; an existing file is overwritten.
func (g *Generator) Generate(ctx context.Context, req Request, output string) (*Result, error) {
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return nil, mdwerror.New("narration text is empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("narration.Generate")
	}
	if req.Language == "" {
		return nil, mdwerror.New("narration language is empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("narration.Generate")
	}
	if checker, ok := g.synth.(LanguageChecker); ok && !checker.SupportsLanguage(req.Language) {
		return nil, mdwerror.Newf("language %q is not supported by %s", req.Language, g.synth.Name()).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("narration.Generate")
	}
	if output == "" {
		return nil, mdwerror.New("output path is empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("narration.Generate")
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	runes := utf8.RuneCountInString(req.Text)
	g.logger.Info("Synthesizing narration",
		"provider", g.synth.Name(),
		"language", req.Language,
		"runes", runes)

	timer := g.logger.StartTimer("synthesis")
	audio, err := g.synth.Synthesize(ctx, req)
	if err != nil {
		timer.StopWithError(err)
		code := mdwerror.CodeExternalServiceError
		if mdwerror.GetCode(err) == mdwerror.CodeInvalidInput {
			code = mdwerror.CodeInvalidInput
		}
		return nil, mdwerror.Wrap(err, "speech synthesis failed").
			WithCode(code).
			WithOperation("narration.Generate").
			WithDetail("provider", g.synth.Name())
	}
	timer.Stop()

	if audio == nil || len(audio.Data) == 0 {
		return nil, mdwerror.New("speech synthesis returned no audio").
			WithCode(mdwerror.CodeExternalServiceError).
			WithOperation("narration.Generate").
			WithDetail("provider", g.synth.Name())
	}

	if err := writeAudio(output, audio.Data); err != nil {
		return nil, err
	}

	g.logger.Info("Narration written", "output", output, "bytes", len(audio.Data))
	return &Result{
		Output:   output,
		Provider: g.synth.Name(),
		Language: req.Language,
		Runes:    runes,
		Bytes:    len(audio.Data),
	}, nil
}

func writeAudio(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return mdwerror.Wrap(err, "failed to create output directory").
				WithCode(mdwerror.CodeIOError).
				WithOperation("narration.Generate").
				WithDetail("path", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return mdwerror.Wrap(err, "failed to write audio").
			WithCode(mdwerror.CodeIOError).
			WithOperation("narration.Generate").
			WithDetail("path", path)
	}
	return nil
}
