package errors

// Error codes for categorizing installer failures.
const (
	// CodeValidation indicates a flag, config file value or answer was invalid.
	CodeValidation = "VALIDATION"

	// CodeUnsupportedPlatform indicates the host OS or architecture has no release.
	CodeUnsupportedPlatform = "UNSUPPORTED_PLATFORM"

	// CodeDownloadFailed indicates fetching or unpacking a release artifact failed.
	CodeDownloadFailed = "DOWNLOAD_FAILED"

	// CodePermissionDenied indicates a privileged move or write was refused.
	CodePermissionDenied = "PERMISSION_DENIED"

	// CodeSmokeTestFailed indicates an installed binary did not run.
	CodeSmokeTestFailed = "SMOKE_TEST_FAILED"

	// CodeCommandFailed indicates an external command exited non-zero.
	CodeCommandFailed = "COMMAND_FAILED"

	// CodeConfig indicates a generated configuration file could not be edited.
	CodeConfig = "CONFIG"

	// CodeAborted indicates the operator chose to stop.
	CodeAborted = "ABORTED"

	// CodeInterrupted indicates the run was cancelled by a signal.
	CodeInterrupted = "INTERRUPTED"

	// CodeInternal indicates an unexpected failure.
	CodeInternal = "INTERNAL"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// ExitCode maps an error returned by the installer to a process exit code.
// Operator exits and declines are not failures.
func ExitCode(err error) int {
	if err == nil || IsAborted(err) {
		return ExitOK
	}
	return ExitFailure
}
