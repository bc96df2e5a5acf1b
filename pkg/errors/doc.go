// Package errors provides the error taxonomy and exit codes for zigdeps.
//
// Error types:
//   - ConfigError: invalid root directory, config file or oracle preflight
//   - FormatError: a dependency URL without a revision fragment
//   - ExternalToolError: the oracle process exited non-zero or timed out
//   - PartialSuccessError: --continue-on-fail isolated one or more failures
//
// Exit Codes:
//
// Standard exit codes are defined for scripting integration:
//   - ExitSuccess (0): all declarations processed, including "no manifest found"
//   - ExitPartialFailure (1): some declarations failed under --continue-on-fail
//   - ExitFailure (2): a format, I/O or oracle error aborted the run
//   - ExitConfigError (3): configuration or argument error before any scan
//
// Use GetExitCode to map any returned error to one of the codes above:
//
//	os.Exit(errors.GetExitCode(err))
package errors
