package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vvka-141/jcagen/internal/codegen"
	"github.com/vvka-141/jcagen/pkg/jcagen"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig is the content of jcagen.yaml.
type ProjectConfig struct {
	// Output is the default output directory of generate.
	Output string `yaml:"output,omitempty"`

	// Properties resolve ${...} expressions in descriptors.
	Properties map[string]string `yaml:"properties,omitempty"`

	// Roles restricts generate to the named generator roles.
	Roles []string `yaml:"roles,omitempty"`

	// Definition is used by generate when no -f flag is given.
	Definition *codegen.Definition `yaml:"-"`
}

// Load reads jcagen.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, jcagen.ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var raw struct {
		ProjectConfig `yaml:",inline"`
		Definition    yaml.Node `yaml:"definition"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	cfg := raw.ProjectConfig
	if raw.Definition.Kind != 0 {
		def := &codegen.Definition{Outbound: true}
		if err := raw.Definition.Decode(def); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", configPath, jcagen.ErrInvalidDefinition, err)
		}
		cfg.Definition = def
	}
	return &cfg, nil
}

// LoadDefinition reads a resource adapter definition from a YAML file.
// Unknown keys are rejected. Outbound defaults to true.
func LoadDefinition(path string) (*codegen.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open definition: %w", err)
	}
	defer f.Close()

	def, err := DecodeDefinition(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// DecodeDefinition reads a definition document from r.
func DecodeDefinition(r io.Reader) (*codegen.Definition, error) {
	def := &codegen.Definition{Outbound: true}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(def); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", jcagen.ErrInvalidDefinition, err)
	}
	return def, nil
}

// SaveDefinition writes def as YAML to path.
func SaveDefinition(path string, def *codegen.Definition) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return fmt.Errorf("failed to encode definition: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode definition: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write definition: %w", err)
	}
	return nil
}
