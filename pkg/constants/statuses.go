// Package constants provides centralized string constants used throughout the application.
// This eliminates magic strings and provides a single source of truth for status values.
package constants

// Status constants name the outcome of reconciling one dependency declaration.
const (
	// StatusUpToDate indicates the pinned revision is the latest one.
	StatusUpToDate = "UpToDate"

	// StatusOutOfDate indicates a newer revision exists and no update was requested.
	StatusOutOfDate = "OutOfDate"

	// StatusUpdated indicates the pin was rewritten to the latest revision.
	StatusUpdated = "Updated"

	// StatusFailed indicates the declaration could not be reconciled
	// (only reported with --continue-on-fail).
	StatusFailed = "Failed"
)

// Manifest and display constants.
const (
	// ManifestName is the default manifest filename scanned by zigdeps.
	ManifestName = "build.zig.zon"

	// ConfigFileName is the optional per-project configuration file.
	ConfigFileName = ".zigdeps.yml"

	// HashDisplayLen is the number of hash characters shown in update lines.
	HashDisplayLen = 7

	// PlaceholderNA is used when a value is not available.
	PlaceholderNA = "-"
)

// Icon constants for status display in table output.
const (
	// IconSuccess marks an up to date dependency.
	IconSuccess = "🟢"

	// IconWarning marks an out of date dependency.
	IconWarning = "🟠"

	// IconUpdated marks a dependency that was updated.
	IconUpdated = "🔵"

	// IconError marks a failed dependency.
	IconError = "❌"
)

// StatusIcon returns the table icon for a status string.
func StatusIcon(status string) string {
	switch status {
	case StatusUpToDate:
		return IconSuccess
	case StatusOutOfDate:
		return IconWarning
	case StatusUpdated:
		return IconUpdated
	case StatusFailed:
		return IconError
	default:
		return ""
	}
}
