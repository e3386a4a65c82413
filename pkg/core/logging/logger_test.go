package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	logger := New("narrate")

	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.Name() != "narrate" {
		t.Errorf("Name() = %v, want narrate", logger.Name())
	}
}

func TestNewLogger_JSONWithRunID(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultLoggerConfig("slideshow")
	cfg.Format = "json"
	cfg.RunID = "3f1c"
	cfg.Output = &buf

	logger := Wrap(NewLogger(cfg), "slideshow")
	logger.Info("playlist written", "entries", 11)

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if decoded["run_id"] != "3f1c" {
		t.Errorf("run_id = %v", decoded["run_id"])
	}
	if decoded["entries"] != float64(11) {
		t.Errorf("entries = %v", decoded["entries"])
	}
	if decoded["logger"] != "slideshow" {
		t.Errorf("logger = %v", decoded["logger"])
	}
}

func TestNewLogger_InvalidSettingsFallBack(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Name: "x", Level: "chatty", Format: "xml", Output: &buf})

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug written at fallback info level: %q", out)
	}
	if !strings.Contains(out, "[INF] {x} shown") {
		t.Errorf("expected text output: %q", out)
	}
}

func TestLogger_MultipleKeyValues(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultLoggerConfig("video")
	cfg.Output = &buf
	logger := Wrap(NewLogger(cfg), "video")

	logger.Info("encoding", "image", "cover.png", "audio", "voice.mp3", "dangling")

	out := buf.String()
	if !strings.Contains(out, "[audio=voice.mp3 image=cover.png]") {
		t.Errorf("unexpected output: %q", out)
	}
	if strings.Contains(out, "dangling") {
		t.Errorf("dangling key should be dropped: %q", out)
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultLoggerConfig("video")
	cfg.Output = &buf
	logger := Wrap(NewLogger(cfg), "video").With("mode", "still")

	logger.Warn("slow encode")

	if !strings.Contains(buf.String(), "mode=still") {
		t.Errorf("child field missing: %q", buf.String())
	}
}

func TestToFields(t *testing.T) {
	if toFields() != nil {
		t.Error("toFields() with no args should be nil")
	}
	fields := toFields("a", 1, 2, "b", "c", true)
	if fields["a"] != 1 || fields["c"] != true {
		t.Errorf("toFields() = %v", fields)
	}
	if _, ok := fields["b"]; ok {
		t.Errorf("non-string key shifted pairs: %v", fields)
	}
}
