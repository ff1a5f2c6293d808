package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// StubCargo installs a fake cargo binary on PATH that appends its argv to a
// log file and returns the log path. When failOn is non-empty, invocations
// whose argv mentions it exit nonzero (after logging).
func StubCargo(t *testing.T, failOn string) string {
	t.Helper()
	bin := t.TempDir()
	log := filepath.Join(bin, "cargo.log")

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "echo \"$*\" >> %q\n", log)
	if failOn != "" {
		fmt.Fprintf(&b, "case \"$*\" in *%s*) exit 1;; esac\n", failOn)
	}
	b.WriteString("exit 0\n")

	writeStub(t, filepath.Join(bin, "cargo"), b.String())
	prependPath(t, bin)
	return log
}

// StubRustup installs a fake rustup binary on PATH whose `toolchain list`
// output contains the given toolchain names.
func StubRustup(t *testing.T, toolchains ...string) {
	t.Helper()
	bin := t.TempDir()

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	for _, tc := range toolchains {
		fmt.Fprintf(&b, "echo %q\n", tc)
	}

	writeStub(t, filepath.Join(bin, "rustup"), b.String())
	prependPath(t, bin)
}

// Invocations returns the logged argv lines from a stub binary's log file.
// A missing log means the stub was never called.
func Invocations(t *testing.T, log string) []string {
	t.Helper()
	data, err := os.ReadFile(log) //nolint:gosec // test log path
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatal(err)
	}
	var lines []string
	for _, l := range strings.Split(string(data), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func writeStub(t *testing.T, path, script string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(script), 0755); err != nil { //nolint:gosec // stub must be executable
		t.Fatal(err)
	}
}

func prependPath(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}
