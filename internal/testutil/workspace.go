package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// Crate describes one crate fixture in a throwaway Cargo workspace.
type Crate struct {
	Name        string
	Dir         string // workspace-relative; defaults to Name
	RustVersion string // empty means no rust-version key
	Inherit     bool   // write rust-version.workspace = true instead
}

// CreateWorkspace writes a Cargo workspace under a temp dir and returns its
// root. rootRustVersion, when non-empty, becomes the root manifest's
// [workspace.package] rust-version.
func CreateWorkspace(t *testing.T, rootRustVersion string, crates ...Crate) string {
	t.Helper()
	root := t.TempDir()

	var b strings.Builder
	b.WriteString("[workspace]\nmembers = [")
	for i, c := range crates {
		if i > 0 {
			b.WriteString(", ")
		}
		dir := c.Dir
		if dir == "" {
			dir = c.Name
		}
		fmt.Fprintf(&b, "%q", dir)
	}
	b.WriteString("]\n")
	if rootRustVersion != "" {
		fmt.Fprintf(&b, "\n[workspace.package]\nrust-version = %q\n", rootRustVersion)
	}
	if err := os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte(b.String()), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}

	for _, c := range crates {
		WriteCrate(t, root, c)
	}
	return root
}

// WriteCrate writes a single crate fixture under root and returns its directory.
func WriteCrate(t *testing.T, root string, c Crate) string {
	t.Helper()
	dir := c.Dir
	if dir == "" {
		dir = c.Name
	}
	abs := filepath.Join(root, dir)
	if err := os.MkdirAll(filepath.Join(abs, "src"), 0755); err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[package]\nname = %q\nversion = \"0.1.0\"\nedition = \"2021\"\n", c.Name)
	switch {
	case c.Inherit:
		b.WriteString("rust-version.workspace = true\n")
	case c.RustVersion != "":
		fmt.Fprintf(&b, "rust-version = %q\n", c.RustVersion)
	}
	if err := os.WriteFile(filepath.Join(abs, "Cargo.toml"), []byte(b.String()), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(abs, "src", "lib.rs"), []byte("// fixture\n"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	return abs
}

// CommitWorkspace turns the workspace into a git repository with every
// current file tracked.
func CommitWorkspace(t *testing.T, root string) {
	t.Helper()
	run(t, root, "git", "init")
	run(t, root, "git", "config", "user.email", "test@example.com")
	run(t, root, "git", "config", "user.name", "Test")
	run(t, root, "git", "add", ".")
	run(t, root, "git", "commit", "-m", "initial commit")
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v", name, args, err)
	}
}
