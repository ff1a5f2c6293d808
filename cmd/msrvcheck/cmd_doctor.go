package main

import (
	"fmt"
	"os/exec"
	"sort"

	msrv "github.com/fbkclanna/msrvcheck/internal/version"

	"github.com/fbkclanna/msrvcheck/internal/git"
	"github.com/fbkclanna/msrvcheck/internal/toolchain"
	"github.com/fbkclanna/msrvcheck/internal/workspace"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment for common issues",
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	ok := true

	// Check cargo.
	fmt.Print("Checking cargo... ")
	cargoPath, err := exec.LookPath("cargo")
	if err != nil {
		fmt.Println("NOT FOUND")
		fmt.Println("  cargo is required. Install it from https://rustup.rs/")
		ok = false
	} else {
		fmt.Printf("found at %s\n", cargoPath)
	}

	// Check rustup.
	fmt.Print("Checking rustup... ")
	var installed []string
	if !toolchain.IsRustupInstalled() {
		fmt.Println("NOT FOUND")
		fmt.Println("  rustup is required to select pinned toolchains.")
		ok = false
	} else if installed, err = toolchain.Installed(); err != nil {
		fmt.Println("ERROR")
		fmt.Printf("  %v\n", err)
		ok = false
	} else {
		fmt.Printf("%d toolchains installed\n", len(installed))
	}

	// Check git. Only tracked discovery needs it.
	fmt.Print("Checking git... ")
	if git.IsInstalled() {
		fmt.Println("found")
	} else {
		fmt.Println("NOT FOUND (tracked discovery unavailable; walk discovery still works)")
	}

	root, _ := cmd.Flags().GetString("root")
	ctx, loadErr := workspace.Load(root, workspace.DiscoveryAuto)
	if loadErr != nil {
		fmt.Printf("No Cargo workspace found at %s (skipping crate checks): %v\n", root, loadErr)
	} else {
		fmt.Printf("Workspace: %d crates\n", len(ctx.Crates))
		fmt.Printf("Checking fallback manifest %s... ", ctx.FallbackPath)
		if v := ctx.FallbackVersion(); v != "" {
			fmt.Printf("declares rust-version %s\n", v)
		} else {
			fmt.Println("declares NO rust-version (crates without their own will fail)")
		}
		if !checkCrateVersions(ctx, installed) {
			ok = false
		}
	}

	if ok {
		fmt.Println("\nAll checks passed.")
		return nil
	}
	fmt.Println("\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

// checkCrateVersions verifies that every crate resolves to a valid minimum
// version and that a matching toolchain is installed for each distinct
// version. A crate resolving to nothing means the fallback manifest lacks a
// rust-version declaration, which would only surface later as a toolchain
// selection failure during check.
func checkCrateVersions(ctx *workspace.Context, installed []string) bool {
	ok := true

	needed := make(map[string]bool)
	for _, cr := range ctx.Crates {
		ver, source := ctx.ResolveVersion(cr)
		if ver == "" {
			fmt.Printf("  %s: no rust-version declared in its manifest or in the fallback %s\n",
				cr.Name, ctx.FallbackPath)
			ok = false
			continue
		}
		if _, err := msrv.Normalize(ver); err != nil {
			fmt.Printf("  %s: %v\n", cr.Name, err)
			ok = false
			continue
		}
		fmt.Printf("  %s: %s (%s)\n", cr.Name, ver, source)
		needed[ver] = true
	}

	versions := make([]string, 0, len(needed))
	for ver := range needed {
		versions = append(versions, ver)
	}
	sort.Strings(versions)

	for _, ver := range versions {
		fmt.Printf("  Checking toolchain %s... ", ver)
		if toolchain.HasToolchain(installed, ver) {
			fmt.Println("installed")
		} else {
			fmt.Printf("MISSING (rustup toolchain install %s)\n", ver)
			ok = false
		}
	}

	return ok
}
