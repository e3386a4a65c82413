package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// stderrTailBytes bounds how much encoder diagnostics end up in errors
const stderrTailBytes = 2048

// Runner starts an external binary and waits for it to exit. It returns the
// captured stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExitError reports a binary that could not be started or exited non-zero
type ExitError struct {
	Binary   string
	ExitCode int
	Stderr   string
	Err      error
}

// Error implements the error interface
func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Binary, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Unwrap returns the underlying exec error
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExecRunner runs binaries with os/exec
type ExecRunner struct{}

// Run implements Runner. The process is killed when ctx is cancelled.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitErr := &ExitError{
			Binary:   name,
			ExitCode: -1,
			Stderr:   tail(stderr.String(), stderrTailBytes),
			Err:      err,
		}
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			exitErr.ExitCode = ee.ExitCode()
		}
		return stdout.Bytes(), exitErr
	}
	return stdout.Bytes(), nil
}

// tail keeps the last n bytes of s, trimmed of surrounding whitespace
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
