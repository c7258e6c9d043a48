package jcagen

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Command completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitDefinitionError = 10 // Invalid resource adapter definition
	ExitMetadataError   = 11 // Descriptor failed to parse or validate
	ExitApprovalDenied  = 12 // User denied overwrite approval
	ExitVerifyFailed    = 13 // Generated tree differs from disk
)

const (
	// DefaultForceApprovalCountdown is the countdown duration before a forced overwrite proceeds.
	DefaultForceApprovalCountdown = 3 * time.Second

	// ConfigFileName is the optional project configuration file looked up in the working directory.
	ConfigFileName = "jcagen.yaml"

	// DefaultJCAVersion is the connector architecture version used when none is given.
	DefaultJCAVersion = "1.7"

	// DefaultBuildType selects the generated build file.
	DefaultBuildType = "ant"

	// MaxWriteConcurrency bounds parallel file writes and verifications.
	MaxWriteConcurrency = 12
)
