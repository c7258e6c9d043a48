package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/jcagen/internal/files/scanner"
	"github.com/vvka-141/jcagen/internal/logging"
	"github.com/vvka-141/jcagen/internal/metadata"
	"github.com/vvka-141/jcagen/internal/params"
	"github.com/vvka-141/jcagen/pkg/jcagen"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Read, validate and rewrite IronJacamar descriptors",
	Long: `Metadata commands work on ironjacamar.xml and resource-adapters documents
(standalone *-ra.xml files or the resource-adapters subsystem section).

Available commands:
  validate  Parse descriptors and report every invalid one
  format    Re-serialize a descriptor, optionally resolving expressions

Expressions of the form ${key:default} are resolved against, in increasing
priority: the environment (and .env), the properties section of jcagen.yaml,
--properties-file files and -D flags.

Examples:
  jcagen metadata validate ./src/main/resources/META-INF
  jcagen metadata validate standalone-ra.xml --json
  jcagen metadata format ironjacamar.xml --resolve -D pool.max=50`,
}

var metadataValidateCmd = &cobra.Command{
	Use:   "validate <file|dir>...",
	Short: "Validate IronJacamar descriptors",
	Long: `Parse every descriptor and check the invariants of each element: pool
sizes, exactly one security mode, unique JNDI names and so on.

A directory is searched recursively for ironjacamar.xml, resource-adapters.xml
and *-ra.xml files. Hidden directories and target/ are skipped. A file given
explicitly is parsed whatever its name.

Exits with code 11 when any descriptor is invalid.`,
	Args:              RequireDescriptorPaths,
	ValidArgsFunction: completeDescriptors,
	RunE:              runMetadataValidate,
}

var metadataFormatCmd = &cobra.Command{
	Use:   "format <file>",
	Short: "Re-serialize a descriptor",
	Long: `Parse a descriptor and write it back in canonical form: defaults omitted,
config properties sorted by name. Expressions are preserved unless --resolve
is given.`,
	Args:              RequireDescriptorFile,
	ValidArgsFunction: completeDescriptors,
	RunE:              runMetadataFormat,
}

type propertyFlagValues struct {
	defines []string
	files   []string
}

var (
	validateProps propertyFlagValues
	validateJSON  bool

	formatProps   propertyFlagValues
	formatResolve bool
	formatWrite   bool
)

func addPropertyFlags(cmd *cobra.Command, v *propertyFlagValues) {
	cmd.Flags().StringArrayVarP(&v.defines, "define", "D", nil,
		"Property used by ${...} expressions, key=value (can be repeated)")
	cmd.Flags().StringSliceVar(&v.files, "properties-file", nil,
		"Load properties from .env or .properties files (can be repeated)\n"+
			"Later files override earlier ones, -D overrides all")
}

func init() {
	rootCmd.AddCommand(metadataCmd)
	metadataCmd.AddCommand(metadataValidateCmd)
	metadataCmd.AddCommand(metadataFormatCmd)

	addPropertyFlags(metadataValidateCmd, &validateProps)
	metadataValidateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output validation results as JSON")

	addPropertyFlags(metadataFormatCmd, &formatProps)
	metadataFormatCmd.Flags().BoolVar(&formatResolve, "resolve", false, "Write resolved values instead of expressions")
	metadataFormatCmd.Flags().BoolVarP(&formatWrite, "write", "w", false, "Rewrite the file in place instead of printing it")
}

// buildLookup layers the expression properties. jcagen.yaml is read from
// the current directory.
func buildLookup(v propertyFlagValues, logger jcagen.Logger) (metadata.Lookup, error) {
	projectCfg, err := loadProjectConfig(".")
	if err != nil {
		return nil, err
	}

	layers := []map[string]string{}
	if projectCfg != nil {
		layers = append(layers, projectCfg.Properties)
	}
	for _, f := range v.files {
		props, err := params.LoadFile(f)
		if err != nil {
			return nil, err
		}
		logger.Verbose("Loaded %d properties from %s", len(props), f)
		layers = append(layers, props)
	}
	defines, err := params.ParseKeyValuePairs(v.defines)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid -D value: %w", jcagen.ErrUsage, err)
	}
	layers = append(layers, defines)

	return metadata.PropertiesLookup(params.Merge(layers...), metadata.EnvLookup()), nil
}

// descriptorReport is the JSON form of one scanned descriptor.
type descriptorReport struct {
	Path        string   `json:"path"`
	Kind        string   `json:"kind"`
	Valid       bool     `json:"valid"`
	Error       string   `json:"error,omitempty"`
	Archives    []string `json:"archives,omitempty"`
	Connections int      `json:"connectionDefinitions"`
	AdminObjs   int      `json:"adminObjects"`
}

type validateReport struct {
	Valid       bool               `json:"valid"`
	Descriptors []descriptorReport `json:"descriptors"`
}

func newDescriptorReport(d scanner.Descriptor) descriptorReport {
	r := descriptorReport{Path: d.Path, Kind: d.Kind.String(), Valid: d.Err == nil}
	if d.Err != nil {
		r.Error = d.Err.Error()
		return r
	}
	for _, a := range d.Document.Activations {
		if a.Archive() != "" {
			r.Archives = append(r.Archives, a.Archive())
		}
		r.Connections += len(a.ConnectionDefinitions())
		r.AdminObjs += len(a.AdminObjects())
	}
	return r
}

func runMetadataValidate(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	lookup, err := buildLookup(validateProps, logger)
	if err != nil {
		return err
	}
	s := scanner.NewScanner(metadata.NewParser(metadata.WithLookup(lookup), metadata.WithLogger(logger)))

	report := validateReport{Valid: true, Descriptors: []descriptorReport{}}
	for _, path := range args {
		logger.Verbose("Scanning %s", path)
		result, err := s.Scan(path)
		if err != nil {
			return err
		}
		for _, d := range result.Descriptors {
			r := newDescriptorReport(d)
			report.Valid = report.Valid && r.Valid
			report.Descriptors = append(report.Descriptors, r)
		}
	}

	if validateJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	} else {
		printValidateReport(cmd.OutOrStdout(), report)
	}

	if !report.Valid {
		failed := 0
		for _, d := range report.Descriptors {
			if !d.Valid {
				failed++
			}
		}
		return fmt.Errorf("%w: %d of %d descriptor(s) failed validation", jcagen.ErrInvalidMetadata, failed, len(report.Descriptors))
	}
	return nil
}

func printValidateReport(w io.Writer, report validateReport) {
	if len(report.Descriptors) == 0 {
		fmt.Fprintln(w, "No descriptors found")
		return
	}
	for _, d := range report.Descriptors {
		if !d.Valid {
			fmt.Fprintf(w, "✗ %s\n    %s\n", d.Path, d.Error)
			continue
		}
		fmt.Fprintf(w, "✓ %s (%s: %d connection definition(s), %d admin object(s))\n",
			d.Path, d.Kind, d.Connections, d.AdminObjs)
	}
}

func runMetadataFormat(cmd *cobra.Command, args []string) error {
	path := args[0]
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	lookup, err := buildLookup(formatProps, logger)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open descriptor: %w", err)
	}
	doc, err := metadata.NewParser(metadata.WithLookup(lookup), metadata.WithLogger(logger)).ParseDocument(f, path)
	f.Close()
	if err != nil {
		return err
	}

	var opts []metadata.WriterOption
	if formatResolve {
		opts = append(opts, metadata.WithResolvedValues())
	}
	out, err := metadata.MarshalDocument(doc, opts...)
	if err != nil {
		return fmt.Errorf("failed to write descriptor: %w", err)
	}

	if formatWrite {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to rewrite %s: %w", path, err)
		}
		logger.Info("Formatted %s", path)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
