package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/jcagen/internal/codegen"
	"github.com/vvka-141/jcagen/internal/config"
	"github.com/vvka-141/jcagen/internal/logging"
	"github.com/vvka-141/jcagen/internal/scaffold"
	"github.com/vvka-141/jcagen/internal/tui"
	"github.com/vvka-141/jcagen/internal/tui/wizards"
	"github.com/vvka-141/jcagen/internal/ui"
	"github.com/vvka-141/jcagen/pkg/jcagen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a resource adapter project",
	Long: `Generate writes the sources of a JCA resource adapter into the output
directory.

The definition is taken from, in order:
  1. the YAML file given with -f
  2. the definition section of jcagen.yaml in the current directory
  3. an interactive wizard on a terminal, or line prompts when stdin is piped

A property list ends with an empty property name.

Writing into a non-empty directory requires confirmation. --force skips it
after a short countdown on a terminal and immediately otherwise.

Examples:
  # Answer the prompts and write into ./acme-ra
  jcagen generate -o acme-ra

  # Generate from a saved definition
  jcagen generate -f adapter.yaml -o acme-ra

  # Show the file list without writing anything
  jcagen generate -f adapter.yaml --dry-run

  # Fail when the checked-in sources differ from the definition
  jcagen generate -f adapter.yaml -o acme-ra --verify`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

type generateFlagValues struct {
	output, definition string
	force              bool
	dryRun, verify     bool
	roles              []string
	save               string
	jcaVersion, build  string
}

var generateFlags generateFlagValues

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateFlags.output, "output", "o", "",
		"Output directory (default: output from jcagen.yaml, or .)")
	generateCmd.Flags().StringVarP(&generateFlags.definition, "file", "f", "",
		"Definition YAML file; skips the prompts")
	generateCmd.Flags().BoolVar(&generateFlags.force, "force", false,
		"Overwrite files in a non-empty output directory without confirmation")
	generateCmd.Flags().BoolVar(&generateFlags.dryRun, "dry-run", false,
		"Print the files that would be written and exit")
	generateCmd.Flags().BoolVar(&generateFlags.verify, "verify", false,
		"Compare generated files with the output directory instead of writing\n"+
			"Exits with code 13 when they differ")
	generateCmd.Flags().StringSliceVar(&generateFlags.roles, "roles", nil,
		"Generate only these roles (comma-separated, see 'jcagen roles')")
	generateCmd.Flags().StringVar(&generateFlags.save, "save", "",
		"Write the effective definition to this YAML file")
	generateCmd.Flags().StringVar(&generateFlags.jcaVersion, "version-jca", "",
		"Override the JCA version of the definition (1.0, 1.5, 1.6, 1.7)")
	generateCmd.Flags().StringVar(&generateFlags.build, "build", "",
		"Override the build tool of the definition (ant, maven)")

	generateCmd.MarkFlagsMutuallyExclusive("dry-run", "verify")
	_ = generateCmd.RegisterFlagCompletionFunc("version-jca", completeJCAVersions)
	_ = generateCmd.RegisterFlagCompletionFunc("build", completeBuildTypes)
	_ = generateCmd.RegisterFlagCompletionFunc("roles", completeRoles)
	_ = generateCmd.RegisterFlagCompletionFunc("output", completeDirectories)
	_ = generateCmd.MarkFlagFilename("file", "yaml", "yml")
}

// loadProjectConfig loads godotenv and jcagen.yaml from dir.
// Returns nil config if jcagen.yaml does not exist (not an error).
func loadProjectConfig(dir string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", jcagen.ConfigFileName, err)
	}
	return projectCfg, nil
}

// definitionSource describes where the definition of a run came from.
type definitionSource int

const (
	sourceFile definitionSource = iota
	sourceProject
	sourceWizard
	sourcePrompts
)

// resolveDefinition returns the definition and output directory for this
// run. A nil definition means the user cancelled the wizard.
func resolveDefinition(cmd *cobra.Command, projectCfg *config.ProjectConfig, output string, interactive bool) (*codegen.Definition, string, definitionSource, error) {
	switch {
	case generateFlags.definition != "":
		def, err := config.LoadDefinition(generateFlags.definition)
		return def, output, sourceFile, err
	case projectCfg != nil && projectCfg.Definition != nil:
		return projectCfg.Definition, output, sourceProject, nil
	case interactive:
		res, err := wizards.RunDefinitionWizard(output)
		if err != nil {
			return nil, "", sourceWizard, fmt.Errorf("wizard failed: %w", err)
		}
		if res.Cancelled {
			return nil, "", sourceWizard, nil
		}
		return res.Definition, res.OutputDir, sourceWizard, nil
	default:
		p := ui.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), ui.DetectLanguage())
		def, err := p.PromptDefinition()
		return def, output, sourcePrompts, err
	}
}

// applyOverrides copies --version-jca and --build into def.
func applyOverrides(def *codegen.Definition) error {
	if v := generateFlags.jcaVersion; v != "" {
		if !slices.Contains(jcaVersions, v) {
			return fmt.Errorf("%w: unsupported --version-jca %q (want one of %v)", jcagen.ErrUsage, v, jcaVersions)
		}
		def.Version = v
	}
	if b := generateFlags.build; b != "" {
		if !slices.Contains(buildTypes, b) {
			return fmt.Errorf("%w: unsupported --build %q (want one of %v)", jcagen.ErrUsage, b, buildTypes)
		}
		def.Build = b
	}
	return nil
}

func generateMode() scaffold.Mode {
	switch {
	case generateFlags.dryRun:
		return scaffold.ModeDryRun
	case generateFlags.verify:
		return scaffold.ModeVerify
	}
	return scaffold.ModeWrite
}

// selectApprover picks how a non-empty output directory is confirmed. In
// non-interactive runs --force sets Options.Force instead of counting down.
func selectApprover(interactive, verbose bool) (jcagen.Approver, bool) {
	switch {
	case generateFlags.force && interactive:
		return ui.NewForcedApprover(verbose), false
	case generateFlags.force:
		return nil, true
	case interactive:
		return ui.NewInteractiveApprover(verbose), false
	}
	return nil, false
}

func runGenerate(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)
	interactive := tui.IsInteractive()

	projectCfg, err := loadProjectConfig(".")
	if err != nil {
		return err
	}

	output := generateFlags.output
	if output == "" && projectCfg != nil {
		output = projectCfg.Output
	}
	if output == "" {
		output = "."
	}

	def, output, source, err := resolveDefinition(cmd, projectCfg, output, interactive)
	if err != nil {
		return err
	}
	if def == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
		return nil
	}
	if err := applyOverrides(def); err != nil {
		return err
	}
	logger.Verbose("Definition source: %d, JCA %s, package %s", source, def.Version, def.Package)

	roleNames := generateFlags.roles
	if len(roleNames) == 0 && projectCfg != nil {
		roleNames = projectCfg.Roles
	}
	roles, err := parseRoles(roleNames)
	if err != nil {
		return err
	}

	files, err := codegen.NewGenerator(logger, roles...).Generate(def)
	if err != nil {
		return err
	}

	if generateFlags.save != "" {
		if err := config.SaveDefinition(generateFlags.save, def); err != nil {
			return err
		}
		logger.Info("Saved definition to %s", generateFlags.save)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	approver, force := selectApprover(interactive, verbose)
	mode := generateMode()
	progress := tui.NewProgressDisplay(cmd.ErrOrStderr(), interactive)
	if mode == scaffold.ModeWrite {
		progress.Start(fmt.Sprintf("Generating %d files into %s", len(files.Paths()), output))
	}

	result, err := scaffold.NewScaffolder(logger, approver).Apply(ctx, files, output, scaffold.Options{
		Mode:  mode,
		Force: force,
	})
	if err != nil {
		if mode == scaffold.ModeVerify {
			progress.Error("Generated files differ from " + output)
		}
		return err
	}

	switch mode {
	case scaffold.ModeDryRun:
		fmt.Fprintln(cmd.OutOrStdout(), result.Tree)
	case scaffold.ModeVerify:
		progress.Success(fmt.Sprintf("%d files in %s are up to date", len(result.Paths), output))
	default:
		progress.Success(fmt.Sprintf("Wrote %d files", len(result.Paths)))
		fmt.Fprintln(cmd.OutOrStdout(), result.Tree)
		if source != sourceFile && generateFlags.save == "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "Tip: pass --save adapter.yaml to keep these answers.")
		}
	}
	return nil
}
