package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/custodiet/promokit/foundation/core/error"
)

func newBufferLogger(format Format, level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{
		Level:  level,
		Format: format,
		Output: &buf,
		Name:   "test",
	})
	return logger, &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatText {
		t.Errorf("ParseFormat('') = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("filtered messages were written: %q", out)
	}
	if !strings.Contains(out, "[WRN] {test} shown") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestLogger_TextFieldsSorted(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelDebug)

	logger.Info("slideshow ready", Fields{"images": 10, "duration": "6.7824"})

	if !strings.Contains(buf.String(), "[duration=6.7824 images=10]") {
		t.Errorf("unexpected text output: %q", buf.String())
	}
}

func TestLogger_JSONCorrelation(t *testing.T) {
	logger, buf := newBufferLogger(FormatJSON, LevelInfo)
	logger = logger.WithCorrelationID("run-42").WithField("component", "narrate")

	logger.Info("audio saved", String("path", "out.mp3"))

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if decoded["run_id"] != "run-42" {
		t.Errorf("run_id = %v", decoded["run_id"])
	}
	if decoded["component"] != "narrate" {
		t.Errorf("component = %v", decoded["component"])
	}
	if decoded["path"] != "out.mp3" {
		t.Errorf("path = %v", decoded["path"])
	}
	if decoded["logger"] != "test" {
		t.Errorf("logger = %v", decoded["logger"])
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	parent, buf := newBufferLogger(FormatText, LevelInfo)
	_ = parent.WithField("child", true)

	parent.Info("parent")
	if strings.Contains(buf.String(), "child") {
		t.Errorf("parent logger picked up child field: %q", buf.String())
	}
}

func TestLogger_LogError(t *testing.T) {
	t.Run("low severity is a warning", func(t *testing.T) {
		logger, buf := newBufferLogger(FormatText, LevelDebug)
		err := mdwerror.New("no images found").WithCode(mdwerror.CodeNoInput).WithOperation("video.DiscoverImages")

		logger.LogError("slideshow failed", err)

		out := buf.String()
		if !strings.Contains(out, "[WRN]") {
			t.Errorf("expected warn level: %q", out)
		}
		if !strings.Contains(out, "error_code=NO_INPUT") {
			t.Errorf("expected error code: %q", out)
		}
		if !strings.Contains(out, "operation=video.DiscoverImages") {
			t.Errorf("expected operation: %q", out)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		logger, buf := newBufferLogger(FormatText, LevelDebug)
		logger.LogError("failed", errors.New("boom"))

		out := buf.String()
		if !strings.Contains(out, "[ERR]") || !strings.Contains(out, "error_code=UNKNOWN") {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("nil error", func(t *testing.T) {
		logger, buf := newBufferLogger(FormatText, LevelDebug)
		logger.LogError("nothing", nil)
		if buf.Len() != 0 {
			t.Errorf("nil error produced output: %q", buf.String())
		}
	})
}

func TestTimer_Stop(t *testing.T) {
	logger, buf := newBufferLogger(FormatJSON, LevelDebug)

	timer := logger.StartTimer("ffmpeg").WithField("mode", "still")
	time.Sleep(2 * time.Millisecond)
	elapsed := timer.Stop()

	if elapsed <= 0 {
		t.Errorf("Stop() = %v, want > 0", elapsed)
	}
	if timer.Stop() != 0 {
		t.Error("second Stop() should return 0")
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if decoded["message"] != "ffmpeg completed" {
		t.Errorf("message = %v", decoded["message"])
	}
	if decoded["mode"] != "still" {
		t.Errorf("mode = %v", decoded["mode"])
	}
}

func TestTimer_StopWithError(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelInfo)

	logger.StartTimer("synthesis").StopWithError(errors.New("quota exceeded"))

	out := buf.String()
	if !strings.Contains(out, "[ERR]") || !strings.Contains(out, "synthesis failed") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, `error="quota exceeded"`) {
		t.Errorf("missing error: %q", out)
	}
}
