package error

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("image set is empty")

	if err.Error() != "image set is empty" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want medium", err.Severity())
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should be set")
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if Wrap(nil, "msg") != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})

	t.Run("standard error", func(t *testing.T) {
		base := errors.New("exit status 1")
		err := Wrap(base, "ffmpeg failed")

		if err.Error() != "ffmpeg failed: exit status 1" {
			t.Errorf("Error() = %q", err.Error())
		}
		if !errors.Is(err, base) {
			t.Error("errors.Is should find the cause")
		}
		if err.RootCause() != base {
			t.Errorf("RootCause() = %v, want %v", err.RootCause(), base)
		}
	})

	t.Run("inherits code", func(t *testing.T) {
		inner := New("no images").WithCode(CodeNoInput).WithRunID("run-1")
		err := Wrap(inner, "slideshow")

		if err.Code() != CodeNoInput {
			t.Errorf("Code() = %v, want %v", err.Code(), CodeNoInput)
		}
		if err.RunID() != "run-1" {
			t.Errorf("RunID() = %q", err.RunID())
		}
	})
}

func TestWithCode_Severity(t *testing.T) {
	tests := []struct {
		code     Code
		expected Severity
	}{
		{CodeNoInput, SeverityLow},
		{CodeInvalidInput, SeverityLow},
		{CodeExternalServiceError, SeverityMedium},
		{CodeEncoderFailure, SeverityMedium},
		{CodeConfigError, SeverityHigh},
		{CodeIOError, SeverityHigh},
		{CodeInternal, SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.expected {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.expected)
			}
		})
	}
}

func TestWithSeverity_NotOverriddenByCode(t *testing.T) {
	err := New("x").WithSeverity(SeverityCritical).WithCode(CodeNoInput)
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want critical", err.Severity())
	}
}

func TestHasCode_Chain(t *testing.T) {
	inner := New("probe failed").WithCode(CodeEncoderFailure)
	outer := Wrap(inner, "resolve duration").WithCode(CodeInvalidInput)

	if !HasCode(outer, CodeEncoderFailure) {
		t.Error("HasCode should find inner code")
	}
	if !HasCode(outer, CodeInvalidInput) {
		t.Error("HasCode should find outer code")
	}
	if HasCode(outer, CodeNoInput) {
		t.Error("HasCode should not find absent code")
	}
	if GetCode(outer) != CodeInvalidInput {
		t.Errorf("GetCode() = %v", GetCode(outer))
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode(plain) should be UNKNOWN")
	}
}

func TestString(t *testing.T) {
	err := New("encoder failed").
		WithCode(CodeEncoderFailure).
		WithOperation("video.ComposeStill").
		WithDetail("exit_code", 1).
		WithDetail("binary", "ffmpeg")

	s := err.String()
	for _, want := range []string{
		"Code: ENCODER_FAILURE",
		"Operation: video.ComposeStill",
		"Details: {binary=ffmpeg, exit_code=1}",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("boom"), "synthesis").
		WithCode(CodeExternalServiceError).
		WithOperation("narration.Generate")

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("Marshal() error = %v", jerr)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["code"] != "EXTERNAL_SERVICE_ERROR" {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["cause"] != "boom" {
		t.Errorf("cause = %v", decoded["cause"])
	}
	if decoded["operation"] != "narration.Generate" {
		t.Errorf("operation = %v", decoded["operation"])
	}
}
