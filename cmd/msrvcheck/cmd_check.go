package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fbkclanna/msrvcheck/internal/lock"
	"github.com/fbkclanna/msrvcheck/internal/manifest"
	"github.com/fbkclanna/msrvcheck/internal/toolchain"
	"github.com/fbkclanna/msrvcheck/internal/ui"
	"github.com/fbkclanna/msrvcheck/internal/workspace"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [-- <cargo args...>]",
		Short: "Type-check every crate with its resolved minimum toolchain",
		RunE:  runCheck,
	}
	cmd.Flags().String("discovery", "auto", "Crate discovery: auto, tracked, or walk")
	cmd.Flags().StringSlice("only", nil, "Check only these crates")
	cmd.Flags().StringSlice("skip", nil, "Skip these crates")
	cmd.Flags().Bool("lock", false, "Use pinned versions from msrv.lock.yaml")
	cmd.Flags().Bool("dry-run", false, "Print verification commands without running them")
	cmd.Flags().Bool("interactive", false, "Pick crates to check interactively")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("root")
	discoveryStr, _ := cmd.Flags().GetString("discovery")
	only, _ := cmd.Flags().GetStringSlice("only")
	skip, _ := cmd.Flags().GetStringSlice("skip")
	useLock, _ := cmd.Flags().GetBool("lock")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	interactive, _ := cmd.Flags().GetBool("interactive")

	discovery, err := workspace.ParseDiscovery(discoveryStr)
	if err != nil {
		return err
	}

	ctx, err := workspace.Load(root, discovery)
	if err != nil {
		return err
	}

	crates := workspace.FilterByName(ctx.Crates, only, skip)

	if interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("--interactive requires a terminal")
		}
		crates, err = pickCrates(crates)
		if err != nil {
			return err
		}
	}

	if useLock && ctx.Lock == nil {
		return fmt.Errorf("--lock specified but no %s found", lock.FileName)
	}

	opts := toolchain.Options{Command: ctx.Config.Command, Args: ctx.Config.Args}
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	progress := ui.NewProgress(errOut, len(crates))

	for _, cr := range crates {
		ver, source := ctx.ResolveVersion(cr)
		if useLock {
			if lc, ok := ctx.Lock.Crates[cr.Name]; ok {
				ver, source = lc.Version, workspace.SourceLock
			}
		}
		if ver == "" {
			return fmt.Errorf("crate %s: no minimum toolchain version resolved (declare rust-version in %s or in the fallback manifest %s)",
				cr.Name, cr.RelDir+"/"+manifest.FileName, ctx.FallbackPath)
		}

		if dryRun {
			argv := toolchain.CommandLine(ver, cr.Name, opts, args)
			_, _ = fmt.Fprintln(out, strings.Join(argv, " "))
			continue
		}

		progress.Log("Checking %s with %s (%s) ...", cr.Name, ver, source)
		if err := toolchain.Check(ctx.Root, ver, cr.Name, opts, args, out, errOut); err != nil {
			return fmt.Errorf("crate %s: %w", cr.Name, err)
		}
		progress.Done(fmt.Sprintf("%s ok @ %s", cr.Name, ver))
	}

	if !dryRun {
		_, _ = fmt.Fprintln(out, "Check complete.")
	}
	return nil
}
