package codegen

import (
	"fmt"

	"github.com/vvka-141/jcagen/pkg/jcagen"
)

// Generator turns a Definition into the file tree of a resource adapter
// project.
type Generator struct {
	logger jcagen.Logger
	roles  []Role
}

// NewGenerator returns a Generator for roles, or for every registered role
// when none are given.
func NewGenerator(logger jcagen.Logger, roles ...Role) *Generator {
	return &Generator{logger: logger, roles: roles}
}

// Generate applies defaults to def, validates it and runs the jennies.
func (g *Generator) Generate(def *Definition) (*FS, error) {
	def.ApplyDefaults()
	if err := def.Validate(); err != nil {
		return nil, err
	}

	jl, err := NewJennyListFor(g.roles...)
	if err != nil {
		return nil, err
	}
	g.logger.Verbose("Running %d generators for package %s (JCA %s)", jl.Len(), def.Package, def.Version)

	fs, err := jl.GenerateFS(def)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	for _, p := range fs.Paths() {
		g.logger.Verbose("Generated %s", p)
	}
	return fs, nil
}
