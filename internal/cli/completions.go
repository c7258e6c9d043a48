package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/jcagen/internal/codegen"
)

// jcaVersions contains the supported JCA versions for shell completion.
var jcaVersions = []string{codegen.Version10, codegen.Version15, codegen.Version16, codegen.Version17}

// buildTypes contains the supported build tools for shell completion.
var buildTypes = []string{codegen.BuildAnt, codegen.BuildMaven}

func completeFrom(values []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, toComplete) {
			matches = append(matches, v)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeJCAVersions provides shell completion for --version-jca.
func completeJCAVersions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeFrom(jcaVersions, toComplete)
}

// completeBuildTypes provides shell completion for --build.
func completeBuildTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeFrom(buildTypes, toComplete)
}

// completeRoles completes the last element of a comma-separated --roles
// value, keeping the elements already typed.
func completeRoles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		done, last = toComplete[:i+1], toComplete[i+1:]
	}

	var names []string
	for _, r := range codegen.Roles() {
		names = append(names, r.String())
	}
	matches, directive := completeFrom(names, last)
	for i := range matches {
		matches[i] = done + matches[i]
	}
	return matches, directive
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeDescriptors offers XML files and directories.
func completeDescriptors(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"xml"}, cobra.ShellCompDirectiveFilterFileExt
}
