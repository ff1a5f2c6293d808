package git

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// IsInstalled returns true if git is available on the system PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo returns true if the directory is a git repository.
func IsRepo(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// LsFiles returns the paths of all tracked files, relative to dir.
func LsFiles(dir string) ([]string, error) {
	out, err := output(dir, "ls-files", "-z")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, f := range strings.Split(out, "\x00") {
		if f != "" {
			files = append(files, f)
		}
	}
	return files, nil
}

// Init runs git init in the given directory.
func Init(dir string) error {
	return runQuiet(dir, "init")
}

// Add stages the given paths in the repository.
func Add(dir string, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	return runQuiet(dir, args...)
}

// Commit creates a commit with the given message.
// If user.name or user.email is not configured globally, it sets repo-local fallback values.
func Commit(dir, message string) error {
	if err := ensureCommitIdentity(dir); err != nil {
		return fmt.Errorf("setting commit identity: %w", err)
	}
	return runQuiet(dir, "commit", "-m", message)
}

// ensureCommitIdentity sets repo-local user.name/user.email if they are not configured.
func ensureCommitIdentity(dir string) error {
	if _, err := output(dir, "config", "user.name"); err != nil {
		if err2 := runQuiet(dir, "config", "user.name", "msrvcheck"); err2 != nil {
			return err2
		}
	}
	if _, err := output(dir, "config", "user.email"); err != nil {
		if err2 := runQuiet(dir, "config", "user.email", "msrvcheck@localhost"); err2 != nil {
			return err2
		}
	}
	return nil
}

// output executes a git command and returns its stdout. Stderr is discarded.
func output(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}

// runQuiet executes a git command without printing stdout.
// Stderr is captured and included in the error message on failure.
func runQuiet(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, stderr.String())
	}
	return nil
}
