// File: codes.go
// Title: Error Code Definitions
// Description: Standardized error codes used to classify failures of the
//              promokit pipelines (narration, still video, slideshow).
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-12
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-12 v0.1.0: Initial codes for media pipelines
// - 2026-10-19 v0.2.0: Added CodeIOError and CodeEncoderFailure

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Pipeline inputs
	CodeNoInput Code = "NO_INPUT"

	// External collaborators
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeEncoderFailure       Code = "ENCODER_FAILURE"

	// Local resources
	CodeIOError Code = "IO_ERROR"

	// Configuration and environment
	CodeConfigError      Code = "CONFIG_ERROR"
	CodeEnvironmentError Code = "ENVIRONMENT_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsExternal reports whether the code blames a collaborator outside promokit
// (the speech service or the encoder binary).
func (c Code) IsExternal() bool {
	return c == CodeExternalServiceError || c == CodeEncoderFailure || c == CodeTimeout
}
