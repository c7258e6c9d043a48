package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `   _                              
  (_) ___ __ _  __ _  ___ _ __  
  | |/ __/ _' |/ _' |/ _ \ '_ \ 
  | | (_| (_| | (_| |  __/ | | |
 _/ |\___\__,_|\__, |\___|_| |_|
|__/           |___/            `

var rootCmd = &cobra.Command{
	Use:   "jcagen",
	Short: "JCA resource adapter generator and IronJacamar metadata toolkit",
	Long: asciiLogo + `

jcagen generates the skeleton of a Java EE Connector Architecture resource
adapter: one Java source file per role, an Ant or Maven build and the ra.xml
and ironjacamar.xml deployment descriptors. It also reads, validates and
rewrites IronJacamar descriptors, resolving ${key:default} expressions
against -D flags, properties files, jcagen.yaml and the environment.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid resource adapter definition
  11 - Invalid descriptor
  12 - User denied overwrite approval
  13 - Generated files differ from disk (--verify)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for jcagen")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
