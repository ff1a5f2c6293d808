package workspace

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fbkclanna/msrvcheck/internal/git"
	"github.com/fbkclanna/msrvcheck/internal/manifest"
)

// Discovery selects how candidate crate directories are found. The concrete
// strategies differ for files git does not know about: walk visits every
// directory on disk, tracked only what is committed or staged. Stale or
// generated crate directories therefore show up under walk but not tracked.
type Discovery string

const (
	DiscoveryAuto    Discovery = "auto"
	DiscoveryTracked Discovery = "tracked"
	DiscoveryWalk    Discovery = "walk"
)

// ParseDiscovery parses a discovery string, defaulting to "auto".
func ParseDiscovery(s string) (Discovery, error) {
	switch Discovery(s) {
	case DiscoveryAuto, "":
		return DiscoveryAuto, nil
	case DiscoveryTracked:
		return DiscoveryTracked, nil
	case DiscoveryWalk:
		return DiscoveryWalk, nil
	default:
		return "", fmt.Errorf("unknown discovery %q (must be auto, tracked, or walk)", s)
	}
}

// discoverDirs returns candidate crate directories. Auto picks tracked
// inside a git checkout and walk everywhere else.
func discoverDirs(root string, d Discovery, exclude []string) ([]string, error) {
	if d == DiscoveryAuto {
		if git.IsInstalled() && git.IsRepo(root) {
			d = DiscoveryTracked
		} else {
			d = DiscoveryWalk
		}
	}
	if d == DiscoveryTracked {
		return discoverTracked(root)
	}
	return discoverWalk(root, exclude)
}

// discoverTracked lists tracked files and keeps the directory of every
// Cargo.toml among them.
func discoverTracked(root string) ([]string, error) {
	files, err := git.LsFiles(root)
	if err != nil {
		return nil, fmt.Errorf("listing tracked files: %w", err)
	}
	var dirs []string
	for _, f := range files {
		if filepath.Base(f) == manifest.FileName {
			dirs = append(dirs, filepath.Join(root, filepath.Dir(f)))
		}
	}
	return dirs, nil
}

// discoverWalk walks the workspace tree, skipping hidden directories,
// target/, and config-excluded directory names.
func discoverWalk(root string, exclude []string) ([]string, error) {
	skip := map[string]bool{"target": true}
	for _, e := range exclude {
		skip[e] = true
	}

	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (skip[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == manifest.FileName {
			dirs = append(dirs, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking workspace: %w", err)
	}
	return dirs, nil
}
