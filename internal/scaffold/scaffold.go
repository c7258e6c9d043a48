// Package scaffold places a generated resource adapter tree on disk.
//
// The Scaffolder checks the target directory, asks for approval before
// writing into a non-empty one, and then writes, verifies or only previews
// the files produced by the generator.
package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/jcagen/internal/codegen"
	"github.com/vvka-141/jcagen/pkg/jcagen"
)

// Mode selects what Apply does with the generated files.
type Mode int

const (
	ModeWrite  Mode = iota // write files, asking for approval if the directory is in use
	ModeDryRun             // render the file tree only
	ModeVerify             // compare files with what is on disk
)

// Options controls a single Apply call.
type Options struct {
	Mode  Mode
	Force bool // skip approval for non-empty directories
}

// Result describes what Apply did.
type Result struct {
	Target  string
	Paths   []string
	Tree    string
	Written bool
}

// Scaffolder writes generated file sets into an output directory.
type Scaffolder struct {
	logger   jcagen.Logger
	approver jcagen.Approver
}

// NewScaffolder creates a Scaffolder. approver may be nil, in which case a
// non-empty target fails with jcagen.ErrOutputNotEmpty unless forced.
func NewScaffolder(logger jcagen.Logger, approver jcagen.Approver) *Scaffolder {
	return &Scaffolder{
		logger:   logger,
		approver: approver,
	}
}

// Apply writes, previews or verifies files below target according to opts.
func (s *Scaffolder) Apply(ctx context.Context, files *codegen.FS, target string, opts Options) (Result, error) {
	result := Result{
		Target: target,
		Paths:  files.Paths(),
	}
	result.Tree = BuildFileTree(target, result.Paths)

	switch opts.Mode {
	case ModeDryRun:
		s.logger.Verbose("Dry run: %d files would be written to %s", len(result.Paths), target)
		return result, nil
	case ModeVerify:
		s.logger.Verbose("Verifying %d files in %s", len(result.Paths), target)
		return result, files.Verify(ctx, target)
	}

	if err := s.checkTarget(ctx, target, opts.Force); err != nil {
		return result, err
	}

	if err := os.MkdirAll(target, 0755); err != nil {
		return result, fmt.Errorf("failed to create output directory: %w", err)
	}

	s.logger.Verbose("Writing %d files to %s", len(result.Paths), target)
	if err := files.Write(ctx, target); err != nil {
		return result, fmt.Errorf("failed to write generated files: %w", err)
	}
	result.Written = true
	return result, nil
}

func (s *Scaffolder) checkTarget(ctx context.Context, target string, force bool) error {
	isEmpty, err := isDirectoryEmpty(target)
	if err != nil {
		return fmt.Errorf("failed to check target directory: %w", err)
	}
	if isEmpty || force {
		if !isEmpty {
			s.logger.Warn("Writing into non-empty directory %s (--force)", target)
		}
		return nil
	}
	if s.approver == nil {
		return fmt.Errorf("%w: '%s'\n\nGenerated files may overwrite existing ones.\n\nOptions:\n• Choose a different output directory with -o\n• Pass --force to overwrite\n• Use --dry-run to preview the file list", jcagen.ErrOutputNotEmpty, target)
	}

	approved, err := s.approver.RequestApproval(ctx, target)
	if err != nil {
		return fmt.Errorf("approval failed: %w", err)
	}
	if !approved {
		return fmt.Errorf("%w: not writing into %s", jcagen.ErrApprovalDenied, target)
	}
	return nil
}

// isDirectoryEmpty reports whether path is missing, empty, or holds only
// project settings (jcagen.yaml and .env).
// Returns (false, error) if path is not a directory or cannot be read.
func isDirectoryEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check directory: %w", err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("path exists but is not a directory")
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("failed to read directory: %w", err)
	}
	for _, entry := range entries {
		switch entry.Name() {
		case jcagen.ConfigFileName, ".env":
		default:
			return false, nil
		}
	}
	return true, nil
}

type treeNode struct {
	children map[string]*treeNode
}

// BuildFileTree renders slash-separated paths below rootPath as a tree:
//
//	/work/acme/
//	├── build.xml
//	└── src/
//	    └── main/
func BuildFileTree(rootPath string, paths []string) string {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		absPath = rootPath
	}

	root := &treeNode{children: map[string]*treeNode{}}
	for _, p := range paths {
		node := root
		for _, part := range strings.Split(p, "/") {
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{children: map[string]*treeNode{}}
				node.children[part] = child
			}
			node = child
		}
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimSuffix(absPath, string(os.PathSeparator)) + "/\n")
	writeTree(&sb, root, "")
	return sb.String()
}

func writeTree(sb *strings.Builder, node *treeNode, indent string) {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		child := node.children[name]
		branch, next := "├── ", "│   "
		if i == len(names)-1 {
			branch, next = "└── ", "    "
		}
		if len(child.children) > 0 {
			name += "/"
		}
		sb.WriteString(indent + branch + name + "\n")
		writeTree(sb, child, indent+next)
	}
}
