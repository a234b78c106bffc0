// SPDX-License-Identifier: MPL-2.0

package discovery

const (
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"

	// CodeUnreadableDir marks a subdirectory the walk could not list.
	CodeUnreadableDir DiagnosticCode = "unreadable_dir"
	// CodeMixedLanguages marks a tree holding sources of more than one language.
	CodeMixedLanguages DiagnosticCode = "mixed_languages"
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// DiagnosticCode is a machine-readable diagnostic identifier.
	DiagnosticCode string

	// Diagnostic is a non-fatal observation made while scanning. Diagnostics
	// are returned to the caller rather than logged so the CLI decides how to
	// render them.
	Diagnostic struct {
		// Severity is the diagnostic level.
		Severity Severity
		// Code identifies the kind of diagnostic.
		Code DiagnosticCode
		// Message is the human-readable description.
		Message string
		// Path is the file or directory concerned.
		Path string
		// Cause is the underlying error, if any.
		Cause error
	}
)
