package errors

import (
	"strings"
)

// ErrorHint provides actionable resolution hints for common errors.
//
// Fields:
//   - Pattern: Substring to match in error message (case-insensitive)
//   - Hint: Brief description of the issue
//   - Resolution: Command or action to resolve the issue
type ErrorHint struct {
	Pattern    string
	Hint       string
	Resolution string
}

// CommonErrorHints maps error patterns to actionable hints.
// These are used by EnhanceErrorWithHint to add context to errors.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "executable file not found",
		Hint:       "Zig toolchain not found",
		Resolution: "Install Zig (https://ziglang.org/download/) or point --zig / ZIGDEPS_ZIG at the binary",
	},
	{
		Pattern:    "unsupported url format",
		Hint:       "Dependency URL has no revision fragment",
		Resolution: "Pin the URL with '#<revision>' or use --continue-on-fail to skip it",
	},
	{
		Pattern:    "command timed out",
		Hint:       "zig fetch took too long",
		Resolution: "Increase --timeout or oracle.timeout_seconds in .zigdeps.yml (0 disables it)",
	},
	{
		Pattern:    "older than required",
		Hint:       "Zig toolchain too old for 'zig fetch --save'",
		Resolution: "Upgrade Zig or lower oracle.min_version in .zigdeps.yml",
	},
	{
		Pattern:    "not a directory",
		Hint:       "Invalid project root",
		Resolution: "Pass the directory containing build.zig.zon, or run from it",
	},
	{
		Pattern:    "permission denied",
		Hint:       "Insufficient permissions",
		Resolution: "Check file permissions or run with appropriate privileges",
	},
	{
		Pattern:    "404 not found",
		Hint:       "Dependency URL not found",
		Resolution: "Verify the URL still exists upstream",
	},
}

// GetHint returns an actionable hint for the given error.
//
// It searches the error message for known patterns in CommonErrorHints
// and returns a formatted hint if one matches.
func GetHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := strings.ToLower(err.Error())
	for _, hint := range CommonErrorHints {
		if strings.Contains(errStr, strings.ToLower(hint.Pattern)) {
			return hint.Hint + ": " + hint.Resolution
		}
	}

	return ""
}

// EnhanceErrorWithHint adds actionable hints to an error message if a matching pattern is found.
//
// Example:
//
//	enhanced := errors.EnhanceErrorWithHint(err)
//	fmt.Fprintf(os.Stderr, "Error: %s\n", enhanced)
func EnhanceErrorWithHint(err error) string {
	if err == nil {
		return ""
	}

	if hint := GetHint(err); hint != "" {
		return err.Error() + "\n  \U0001F4A1 " + hint
	}
	return err.Error()
}
