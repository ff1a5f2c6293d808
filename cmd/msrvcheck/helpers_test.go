package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/msrvcheck/internal/testutil"
)

// setupWorkspace creates a temp Cargo workspace whose root manifest declares
// a fallback rust-version, with one crate declaring its own and one not.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	return testutil.CreateWorkspace(t, "1.79.0",
		testutil.Crate{Name: "solana-address", Dir: "address", RustVersion: "1.81.0"},
		testutil.Crate{Name: "solana-instruction", Dir: "instruction"},
	)
}

func removeFile(t *testing.T, root, rel string) {
	t.Helper()
	if err := os.Remove(filepath.Join(root, rel)); err != nil {
		t.Fatal(err)
	}
}
