package toolchain

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Options configures the external verification command.
type Options struct {
	Command string   // verification binary, default "cargo"
	Args    []string // subcommand and base args, default ["check"]
}

func (o Options) withDefaults() Options {
	if o.Command == "" {
		o.Command = "cargo"
	}
	if len(o.Args) == 0 {
		o.Args = []string{"check"}
	}
	return o
}

// CommandLine builds the argv for verifying a single crate with the given
// toolchain version, e.g. ["cargo", "+1.81.0", "check", "-p", "solana-address"].
func CommandLine(version, crate string, opts Options, extra []string) []string {
	opts = opts.withDefaults()
	argv := []string{opts.Command, "+" + version}
	argv = append(argv, opts.Args...)
	argv = append(argv, "-p", crate)
	argv = append(argv, extra...)
	return argv
}

// Check runs the verification command for a single crate from the workspace
// root, pinned to the given toolchain version.
func Check(root, version, crate string, opts Options, extra []string, stdout, stderr io.Writer) error {
	argv := CommandLine(version, crate, opts, extra)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = root
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", strings.Join(argv, " "), err)
	}
	return nil
}

// Installed returns the toolchain names known to rustup.
func Installed() ([]string, error) {
	out, err := output(".", "rustup", "toolchain", "list")
	if err != nil {
		return nil, err
	}
	return parseToolchains(out), nil
}

// parseToolchains extracts toolchain names from `rustup toolchain list`
// output, dropping annotations such as "(default)".
func parseToolchains(out string) []string {
	var toolchains []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		toolchains = append(toolchains, fields[0])
	}
	return toolchains
}

// HasToolchain reports whether version matches one of the installed
// toolchain names. Names carry a target triple suffix ("1.81.0-x86_64-..."),
// so matching is on the name itself or its version prefix.
func HasToolchain(installed []string, version string) bool {
	for _, tc := range installed {
		if tc == version || strings.HasPrefix(tc, version+"-") {
			return true
		}
	}
	return false
}

// Install runs `rustup toolchain install` for the given version.
func Install(version string, stdout, stderr io.Writer) error {
	cmd := exec.Command("rustup", "toolchain", "install", version)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("rustup toolchain install %s: %w", version, err)
	}
	return nil
}

// IsCargoInstalled returns true if cargo is available on the system PATH.
func IsCargoInstalled() bool {
	_, err := exec.LookPath("cargo")
	return err == nil
}

// IsRustupInstalled returns true if rustup is available on the system PATH.
func IsRustupInstalled() bool {
	_, err := exec.LookPath("rustup")
	return err == nil
}

// output executes a command and returns its stdout.
func output(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}
