package codegen

import (
	"fmt"
	"path"
	"strings"
)

// A Jenny is a single generator producing zero or more files from a
// Definition. Jennies are looked up by Role in the registry.
//
// Concrete jennies implement either OneToOne or OneToMany.
type Jenny interface {
	// JennyName returns the name of the generator. It appears in conflict and
	// error messages.
	JennyName() string
}

// OneToOne is a Jenny that emits at most one file. A nil File with a nil
// error means the jenny does not apply to the definition.
type OneToOne interface {
	Jenny
	Generate(def *Definition) (*File, error)
}

// OneToMany is a Jenny that emits one file per item in the definition, such
// as one class per connection factory.
type OneToMany interface {
	Jenny
	Generate(def *Definition) (Files, error)
}

// File is a single generated file.
type File struct {
	// RelativePath is the slash-separated path, relative to the output
	// directory, the file is written to.
	RelativePath string

	// Data is the content of the file.
	Data []byte

	// From is the stack of jennies that produced or rewrote the file.
	From []Jenny
}

// Validate checks that the file has a clean relative path.
func (f *File) Validate() error {
	switch {
	case f.RelativePath == "":
		return fmt.Errorf("generated file has an empty path")
	case path.IsAbs(f.RelativePath) || strings.HasPrefix(f.RelativePath, "\\"):
		return fmt.Errorf("generated file path must be relative, got %s", f.RelativePath)
	case path.Clean(f.RelativePath) != f.RelativePath:
		return fmt.Errorf("generated file path %s is not clean", f.RelativePath)
	case strings.HasPrefix(f.RelativePath, "../"):
		return fmt.Errorf("generated file path %s escapes the output directory", f.RelativePath)
	}
	return nil
}

// Owner names the jenny that first produced the file.
func (f *File) Owner() string {
	if len(f.From) == 0 {
		return "unknown"
	}
	return f.From[0].JennyName()
}

// Files is a set of generated files.
type Files []File

// Validate checks every file, and that no two files share a path.
func (fs Files) Validate() error {
	seen := make(map[string]string, len(fs))
	for i := range fs {
		if err := fs[i].Validate(); err != nil {
			return err
		}
		if owner, dup := seen[fs[i].RelativePath]; dup {
			return fmt.Errorf("%s produced by both %s and %s", fs[i].RelativePath, owner, fs[i].Owner())
		}
		seen[fs[i].RelativePath] = fs[i].Owner()
	}
	return nil
}

// A FileMapper rewrites a generated file. It runs after every jenny in a
// JennyList.
type FileMapper func(File) (File, error)
