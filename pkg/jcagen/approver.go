package jcagen

import "context"

// Approver handles user interaction for approval workflows,
// particularly before generated files overwrite a non-empty directory.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the directory name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before writing into target.
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, target string) (bool, error)
}
