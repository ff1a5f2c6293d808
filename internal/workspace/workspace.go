package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fbkclanna/msrvcheck/internal/config"
	"github.com/fbkclanna/msrvcheck/internal/lock"
	"github.com/fbkclanna/msrvcheck/internal/manifest"
)

// Crate is one unit of the workspace: a directory whose Cargo.toml has a
// [package] section. Its name is the declared package name, which is what
// cargo's -p selector expects.
type Crate struct {
	Name         string
	Dir          string // absolute
	RelDir       string // relative to the workspace root
	ManifestPath string
	Manifest     *manifest.Manifest
}

// Context holds the resolved paths and loaded config for a workspace.
type Context struct {
	Root         string
	FallbackPath string
	LockPath     string
	Config       *config.File
	Fallback     *manifest.Manifest
	Crates       []Crate
	Lock         *lock.File // may be nil

	fallbackRaw []byte
}

// Load resolves workspace paths, loads config and the fallback manifest, and
// discovers the crate set using the given strategy (and the lock if present).
func Load(root string, discovery Discovery) (*Context, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, err
	}
	if discovery == DiscoveryAuto && cfg.Discovery != "" {
		discovery = Discovery(cfg.Discovery)
	}

	fallbackPath := filepath.Join(root, manifest.FileName)
	if cfg.Fallback != "" {
		fallbackPath = filepath.Join(root, cfg.Fallback)
	}
	raw, err := os.ReadFile(fallbackPath)
	if err != nil {
		return nil, fmt.Errorf("reading fallback manifest: %w", err)
	}
	fb, err := manifest.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("fallback manifest %s: %w", fallbackPath, err)
	}

	ctx := &Context{
		Root:         root,
		FallbackPath: fallbackPath,
		LockPath:     filepath.Join(root, lock.FileName),
		Config:       cfg,
		Fallback:     fb,
		fallbackRaw:  raw,
	}

	if err := ctx.discoverCrates(discovery); err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(ctx.LockPath); statErr == nil {
		lf, err := lock.Load(ctx.LockPath)
		if err != nil {
			return nil, err
		}
		ctx.Lock = lf
	}

	return ctx, nil
}

// discoverCrates fills ctx.Crates from candidate directories. A candidate
// without a manifest file is skipped silently; a manifest without [package]
// (a pure workspace root) is not a crate.
func (c *Context) discoverCrates(discovery Discovery) error {
	dirs, err := discoverDirs(c.Root, discovery, c.Config.Exclude)
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		mp := filepath.Join(dir, manifest.FileName)
		if _, err := os.Stat(mp); err != nil {
			continue
		}
		m, err := manifest.Load(mp)
		if err != nil {
			return err
		}
		if !m.IsCrate() {
			continue
		}
		rel, err := filepath.Rel(c.Root, dir)
		if err != nil {
			return fmt.Errorf("resolving crate path %s: %w", dir, err)
		}
		c.Crates = append(c.Crates, Crate{
			Name:         m.Package.Name,
			Dir:          dir,
			RelDir:       rel,
			ManifestPath: mp,
			Manifest:     m,
		})
	}

	sort.Slice(c.Crates, func(i, j int) bool {
		return c.Crates[i].RelDir < c.Crates[j].RelDir
	})
	return nil
}

// VersionSource identifies where a crate's resolved minimum version came from.
type VersionSource string

const (
	// SourceManifest is the crate's own rust-version declaration.
	SourceManifest VersionSource = "manifest"
	// SourceInherit is the `rust-version.workspace = true` inheritance form.
	SourceInherit VersionSource = "inherit"
	// SourceFallback is the designated fallback manifest's declaration.
	SourceFallback VersionSource = "fallback"
	// SourceLock is a pin from msrv.lock.yaml.
	SourceLock VersionSource = "lock"
	// SourceNone means nothing is declared anywhere.
	SourceNone VersionSource = "none"
)

// ResolveVersion returns the minimum toolchain version for a crate and where
// it came from. A crate without its own declaration resolves to the fallback
// manifest's declared version; if that is also absent the result is empty.
func (c *Context) ResolveVersion(cr Crate) (string, VersionSource) {
	rv := cr.Manifest.Package.RustVersion
	if rv.Value != "" {
		return rv.Value, SourceManifest
	}
	if rv.Workspace {
		if v := c.FallbackVersion(); v != "" {
			return v, SourceInherit
		}
		return "", SourceNone
	}
	if v := c.FallbackVersion(); v != "" {
		return v, SourceFallback
	}
	return "", SourceNone
}

// FallbackVersion is the fallback manifest's own declared minimum version:
// the first rust-version assignment in its text, wherever it appears
// ([workspace.package] in a root manifest, [package] in a designated crate).
func (c *Context) FallbackVersion() string {
	return manifest.RawValue(c.fallbackRaw, "rust-version")
}

// FilterByName returns crates matching --only / --skip flags.
func FilterByName(crates []Crate, only, skip []string) []Crate {
	if len(only) == 0 && len(skip) == 0 {
		return crates
	}
	onlySet := toSet(only)
	skipSet := toSet(skip)

	var result []Crate
	for _, cr := range crates {
		if len(onlySet) > 0 && !onlySet[cr.Name] {
			continue
		}
		if skipSet[cr.Name] {
			continue
		}
		result = append(result, cr)
	}
	return result
}

func toSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}
