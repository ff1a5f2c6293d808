// Package config loads the optional .msrvcheck.yaml tool configuration.
// A missing config file is not an error: every field has a working default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the optional tool config looked up in the workspace root.
const FileName = ".msrvcheck.yaml"

// File represents .msrvcheck.yaml.
type File struct {
	// Fallback overrides the manifest consulted when a crate omits its own
	// rust-version. Relative to the workspace root; default Cargo.toml.
	Fallback string `yaml:"fallback,omitempty"`
	// Discovery sets the default crate discovery strategy: auto, tracked, or walk.
	Discovery string `yaml:"discovery,omitempty"`
	// Exclude lists directory names skipped during walk discovery.
	Exclude []string `yaml:"exclude,omitempty"`
	// Command and Args override the verification command (default: cargo check).
	Command string   `yaml:"command,omitempty"`
	Args    []string `yaml:"args,omitempty"`
}

// Load reads the config at path. A missing file yields the zero config.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates .msrvcheck.yaml content.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func validate(f *File) error {
	switch f.Discovery {
	case "", "auto", "tracked", "walk":
	default:
		return fmt.Errorf("config: unknown discovery %q (must be auto, tracked, or walk)", f.Discovery)
	}
	if f.Fallback != "" {
		if err := validatePath(f.Fallback, "fallback"); err != nil {
			return err
		}
	}
	for i, e := range f.Exclude {
		if e == "" || strings.ContainsRune(e, filepath.Separator) {
			return fmt.Errorf("config: exclude[%d] must be a plain directory name: %q", i, e)
		}
	}
	return nil
}

// validatePath ensures a path is relative and does not escape the workspace.
func validatePath(p, label string) error {
	if filepath.IsAbs(p) {
		return fmt.Errorf("config: %s: absolute path is not allowed: %s", label, p)
	}
	cleaned := filepath.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("config: %s: path must not escape workspace (contains ..): %s", label, p)
	}
	return nil
}
