// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols printed ahead of summary lines.
const (
	// Success marks a completed operation.
	Success = "✓"

	// Warning marks a completed operation that skipped records.
	Warning = "!"

	// Error marks a failed operation.
	Error = "✗"
)
