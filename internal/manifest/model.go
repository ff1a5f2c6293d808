package manifest

import "fmt"

// FileName is the manifest file name Cargo expects in every crate directory.
const FileName = "Cargo.toml"

// Manifest represents a parsed Cargo.toml. A manifest may describe a crate
// ([package]), a workspace root ([workspace]), or both at once.
type Manifest struct {
	Package   *Package   `toml:"package"`
	Workspace *Workspace `toml:"workspace"`
}

// Package is the [package] section of a crate manifest.
type Package struct {
	Name        string            `toml:"name"`
	Version     InheritableString `toml:"version"`
	Edition     InheritableString `toml:"edition"`
	RustVersion InheritableString `toml:"rust-version"`
	Publish     *bool             `toml:"publish"`
}

// Workspace is the [workspace] section of a root manifest.
type Workspace struct {
	Members []string          `toml:"members"`
	Exclude []string          `toml:"exclude"`
	Package *WorkspacePackage `toml:"package"`
}

// WorkspacePackage is [workspace.package]: key defaults that member crates
// may inherit with the `key.workspace = true` form.
type WorkspacePackage struct {
	Version     string `toml:"version"`
	Edition     string `toml:"edition"`
	RustVersion string `toml:"rust-version"`
}

// InheritableString is a manifest value that is either a literal string or
// the Cargo inheritance marker `key.workspace = true`.
type InheritableString struct {
	Value     string
	Workspace bool
}

// UnmarshalTOML accepts both `key = "value"` and `key = { workspace = true }`.
func (s *InheritableString) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case string:
		s.Value = t
		return nil
	case map[string]any:
		w, ok := t["workspace"].(bool)
		if !ok || !w {
			return fmt.Errorf("expected workspace = true, got %v", t)
		}
		s.Workspace = true
		return nil
	default:
		return fmt.Errorf("expected string or workspace = true, got %T", v)
	}
}

// IsSet returns whether the value is declared at all, literally or inherited.
func (s InheritableString) IsSet() bool {
	return s.Value != "" || s.Workspace
}

// IsCrate returns whether the manifest describes a crate.
func (m *Manifest) IsCrate() bool {
	return m.Package != nil
}

// IsWorkspaceRoot returns whether the manifest declares a workspace.
func (m *Manifest) IsWorkspaceRoot() bool {
	return m.Workspace != nil
}
