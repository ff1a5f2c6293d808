package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/msrvcheck/internal/testutil"
)

func TestLoad_walkDiscovery(t *testing.T) {
	root := testutil.CreateWorkspace(t, "1.79.0",
		testutil.Crate{Name: "solana-address", Dir: "address", RustVersion: "1.81.0"},
		testutil.Crate{Name: "solana-instruction", Dir: "instruction"},
	)

	ctx, err := Load(root, DiscoveryWalk)
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx.Crates) != 2 {
		t.Fatalf("crates count = %d, want 2", len(ctx.Crates))
	}
	// Sorted by workspace-relative path.
	if ctx.Crates[0].Name != "solana-address" || ctx.Crates[1].Name != "solana-instruction" {
		t.Errorf("unexpected crate order: %v, %v", ctx.Crates[0].Name, ctx.Crates[1].Name)
	}
	if ctx.Crates[0].RelDir != "address" {
		t.Errorf("RelDir = %q, want address", ctx.Crates[0].RelDir)
	}
}

func TestLoad_skipsDirWithoutManifest(t *testing.T) {
	root := testutil.CreateWorkspace(t, "1.79.0",
		testutil.Crate{Name: "solana-address", Dir: "address", RustVersion: "1.81.0"},
	)
	// A candidate directory with no manifest must be excluded entirely.
	if err := os.MkdirAll(filepath.Join(root, "docs", "src"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "docs", "src", "notes.md"), []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, err := Load(root, DiscoveryWalk)
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx.Crates) != 1 {
		t.Errorf("crates count = %d, want 1", len(ctx.Crates))
	}
}

func TestLoad_rootManifestIsNotACrate(t *testing.T) {
	root := testutil.CreateWorkspace(t, "1.79.0",
		testutil.Crate{Name: "solana-address", Dir: "address", RustVersion: "1.81.0"},
	)

	ctx, err := Load(root, DiscoveryWalk)
	if err != nil {
		t.Fatal(err)
	}
	for _, cr := range ctx.Crates {
		if cr.RelDir == "." {
			t.Errorf("pure [workspace] root manifest should not be a crate: %+v", cr)
		}
	}
}

func TestLoad_missingRootManifest(t *testing.T) {
	if _, err := Load(t.TempDir(), DiscoveryWalk); err == nil {
		t.Fatal("expected error when the fallback manifest is missing")
	}
}

func TestLoad_trackedDiscovery(t *testing.T) {
	root := testutil.CreateWorkspace(t, "1.79.0",
		testutil.Crate{Name: "solana-address", Dir: "address", RustVersion: "1.81.0"},
	)
	testutil.CommitWorkspace(t, root)

	// Untracked crate written after the commit.
	testutil.WriteCrate(t, root, testutil.Crate{Name: "solana-scratch", Dir: "scratch"})

	ctx, err := Load(root, DiscoveryTracked)
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx.Crates) != 1 || ctx.Crates[0].Name != "solana-address" {
		t.Errorf("tracked discovery should skip untracked crates, got %+v", ctx.Crates)
	}

	ctx, err = Load(root, DiscoveryWalk)
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx.Crates) != 2 {
		t.Errorf("walk discovery should include untracked crates, got %d", len(ctx.Crates))
	}
}

func TestLoad_trackedSkipsDeletedManifest(t *testing.T) {
	root := testutil.CreateWorkspace(t, "1.79.0",
		testutil.Crate{Name: "solana-address", Dir: "address", RustVersion: "1.81.0"},
		testutil.Crate{Name: "solana-stale", Dir: "stale"},
	)
	testutil.CommitWorkspace(t, root)

	// Tracked but gone from disk: the candidate must be skipped, not an error.
	if err := os.Remove(filepath.Join(root, "stale", "Cargo.toml")); err != nil {
		t.Fatal(err)
	}

	ctx, err := Load(root, DiscoveryTracked)
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx.Crates) != 1 || ctx.Crates[0].Name != "solana-address" {
		t.Errorf("deleted manifest should be skipped, got %+v", ctx.Crates)
	}
}

func TestLoad_walkSkipsExcludedDirs(t *testing.T) {
	root := testutil.CreateWorkspace(t, "1.79.0",
		testutil.Crate{Name: "solana-address", Dir: "address", RustVersion: "1.81.0"},
	)
	testutil.WriteCrate(t, root, testutil.Crate{Name: "vendored-dep", Dir: "vendor/dep"})
	cfg := []byte("exclude: [vendor]\n")
	if err := os.WriteFile(filepath.Join(root, ".msrvcheck.yaml"), cfg, 0644); err != nil {
		t.Fatal(err)
	}

	ctx, err := Load(root, DiscoveryWalk)
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx.Crates) != 1 {
		t.Errorf("excluded directory was not skipped: %+v", ctx.Crates)
	}
}

func TestLoad_configFallbackOverride(t *testing.T) {
	root := testutil.CreateWorkspace(t, "",
		testutil.Crate{Name: "solana-program", Dir: "program", RustVersion: "1.80.0"},
		testutil.Crate{Name: "solana-sysvar", Dir: "sysvar"},
	)
	cfg := []byte("fallback: program/Cargo.toml\n")
	if err := os.WriteFile(filepath.Join(root, ".msrvcheck.yaml"), cfg, 0644); err != nil {
		t.Fatal(err)
	}

	ctx, err := Load(root, DiscoveryWalk)
	if err != nil {
		t.Fatal(err)
	}

	var sysvar Crate
	for _, cr := range ctx.Crates {
		if cr.Name == "solana-sysvar" {
			sysvar = cr
		}
	}
	v, src := ctx.ResolveVersion(sysvar)
	if v != "1.80.0" || src != SourceFallback {
		t.Errorf("resolved = %q (%s), want 1.80.0 (fallback)", v, src)
	}
}

func TestResolveVersion(t *testing.T) {
	root := testutil.CreateWorkspace(t, "1.79.0",
		testutil.Crate{Name: "solana-address", Dir: "address", RustVersion: "1.81.0"},
		testutil.Crate{Name: "solana-instruction", Dir: "instruction"},
		testutil.Crate{Name: "solana-sysvar", Dir: "sysvar", Inherit: true},
	)

	ctx, err := Load(root, DiscoveryWalk)
	if err != nil {
		t.Fatal(err)
	}

	byName := make(map[string]Crate, len(ctx.Crates))
	for _, cr := range ctx.Crates {
		byName[cr.Name] = cr
	}

	v, src := ctx.ResolveVersion(byName["solana-address"])
	if v != "1.81.0" || src != SourceManifest {
		t.Errorf("own declaration: got %q (%s)", v, src)
	}

	v, src = ctx.ResolveVersion(byName["solana-instruction"])
	if v != "1.79.0" || src != SourceFallback {
		t.Errorf("fallback: got %q (%s)", v, src)
	}

	v, src = ctx.ResolveVersion(byName["solana-sysvar"])
	if v != "1.79.0" || src != SourceInherit {
		t.Errorf("inherit: got %q (%s)", v, src)
	}
}

func TestResolveVersion_nothingDeclared(t *testing.T) {
	root := testutil.CreateWorkspace(t, "",
		testutil.Crate{Name: "solana-address", Dir: "address"},
	)

	ctx, err := Load(root, DiscoveryWalk)
	if err != nil {
		t.Fatal(err)
	}
	v, src := ctx.ResolveVersion(ctx.Crates[0])
	if v != "" || src != SourceNone {
		t.Errorf("got %q (%s), want empty (none)", v, src)
	}
}

func TestFilterByName(t *testing.T) {
	crates := []Crate{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	got := FilterByName(crates, nil, nil)
	if len(got) != 3 {
		t.Errorf("no filters: got %d crates", len(got))
	}

	got = FilterByName(crates, []string{"b"}, nil)
	if len(got) != 1 || got[0].Name != "b" {
		t.Errorf("--only b: got %+v", got)
	}

	got = FilterByName(crates, nil, []string{"b"})
	if len(got) != 2 {
		t.Errorf("--skip b: got %+v", got)
	}

	got = FilterByName(crates, []string{"a", "b"}, []string{"b"})
	if len(got) != 1 || got[0].Name != "a" {
		t.Errorf("--only a,b --skip b: got %+v", got)
	}
}

func TestParseDiscovery(t *testing.T) {
	if d, err := ParseDiscovery(""); err != nil || d != DiscoveryAuto {
		t.Errorf("empty: got %v, %v", d, err)
	}
	if d, err := ParseDiscovery("tracked"); err != nil || d != DiscoveryTracked {
		t.Errorf("tracked: got %v, %v", d, err)
	}
	if _, err := ParseDiscovery("everything"); err == nil {
		t.Error("expected error for unknown discovery")
	}
}
