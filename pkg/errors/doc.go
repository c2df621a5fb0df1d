// Package errors provides unified error types and exit codes for pipup.
//
// This package consolidates all error handling into a single location:
//   - ExitError: Command exit with specific exit code
//   - PartialSuccessError: Some upgrades succeeded, some failed
//   - ListingError: The outdated-package listing could not be obtained
//   - ImportError: The --import selection file is unreadable or malformed
//
// Per-package upgrade failures are NOT errors in this package's sense: they
// are captured in each UpgradeResult's ErrorMessage and only influence the
// final exit code through the aggregated run outcome.
//
// Error Checking:
//
// Use the Is* functions to check error types:
//
//	if exitErr, ok := errors.IsExitError(err); ok {
//	    os.Exit(exitErr.Code)
//	}
//
// Exit Codes:
//
// Standard exit codes are defined for scripting integration:
//   - ExitSuccess (0): Every selected package succeeded or was skipped by the user
//   - ExitPartialFailure (1): Failures accepted via --continue-on-error, with successes
//   - ExitFailure (2): Listing failed, or failures without the partial conditions
//   - ExitConfigError (3): Configuration, flag, or import-file validation error
package errors
