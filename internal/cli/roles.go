package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vvka-141/jcagen/internal/codegen"
	"github.com/vvka-141/jcagen/pkg/jcagen"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List generator roles",
	Long: `List the generator roles in generation order.

Pass a comma-separated subset to 'jcagen generate --roles' to regenerate only
those files. Role names are case-insensitive.

Examples:
  jcagen roles
  jcagen generate -f adapter.yaml --roles ResourceAdapter,RaXml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for i, r := range codegen.Roles() {
			fmt.Fprintf(w, "%d\t%s\n", i+1, r)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

// parseRoles maps role names to roles. Empty entries are ignored.
func parseRoles(names []string) ([]codegen.Role, error) {
	var roles []codegen.Role
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		r, err := codegen.ParseRole(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w (see 'jcagen roles')", jcagen.ErrUsage, err)
		}
		roles = append(roles, r)
	}
	return roles, nil
}
