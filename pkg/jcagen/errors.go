package jcagen

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := scaffolder.CreateProject(ctx, def, target)
//	if errors.Is(err, jcagen.ErrApprovalDenied) {
//	    // Handle user refusing to overwrite the output directory
//	}
var (
	// ErrUsage indicates the command line was invalid.
	ErrUsage = errors.New("usage error")

	// ErrInvalidDefinition indicates the resource adapter definition is incomplete or invalid.
	ErrInvalidDefinition = errors.New("invalid resource adapter definition")

	// ErrInvalidMetadata indicates an XML descriptor could not be parsed or failed validation.
	ErrInvalidMetadata = errors.New("invalid metadata")

	// ErrOutputNotEmpty indicates the output directory already contains files.
	ErrOutputNotEmpty = errors.New("output directory is not empty")

	// ErrApprovalDenied indicates the user denied approval for the operation.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrVerifyFailed indicates generated files on disk differ from a fresh generation.
	ErrVerifyFailed = errors.New("generated files are out of date")
)

// usagePatterns are fragments of cobra/pflag error messages that indicate
// a command line mistake rather than a runtime failure.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"missing required argument",
	"flag needs an argument",
	"none of the others can be",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidDefinition):
		return ExitDefinitionError
	case errors.Is(err, ErrInvalidMetadata):
		return ExitMetadataError
	case errors.Is(err, ErrApprovalDenied), errors.Is(err, ErrOutputNotEmpty):
		return ExitApprovalDenied
	case errors.Is(err, ErrVerifyFailed):
		return ExitVerifyFailed
	}

	errStr := err.Error()
	for _, p := range usagePatterns {
		if strings.Contains(errStr, p) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
