// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels attached to errors so the logger can pick an
//              appropriate level when reporting them.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow marks bad user input that a rerun with other input fixes
	SeverityLow Severity = iota

	// SeverityMedium marks failures of external collaborators
	SeverityMedium

	// SeverityHigh marks broken local environment or configuration
	SeverityHigh

	// SeverityCritical marks internal invariants that no longer hold
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeConfigError, CodeEnvironmentError, CodeIOError:
		return SeverityHigh
	case CodeExternalServiceError, CodeEncoderFailure, CodeTimeout:
		return SeverityMedium
	case CodeInvalidInput, CodeNoInput, CodeNotFound:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
