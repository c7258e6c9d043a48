package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/jcagen/pkg/jcagen"
)

// RequireDescriptorPaths validates that at least one file or directory
// argument is provided.
func RequireDescriptorPaths(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`%w: missing required argument: <path>

Usage: %s

Example:
  %s ./src/main/resources/META-INF`, jcagen.ErrUsage, cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}

// RequireDescriptorFile validates that exactly one descriptor file is
// provided.
func RequireDescriptorFile(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`%w: missing required argument: <file>

Usage: %s

Example:
  %s META-INF/ironjacamar.xml --resolve`, jcagen.ErrUsage, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: accepts 1 arg(s), received %d", jcagen.ErrUsage, len(args))
	}
	return nil
}
