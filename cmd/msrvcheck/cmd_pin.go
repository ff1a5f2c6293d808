package main

import (
	"fmt"
	"time"

	"github.com/fbkclanna/msrvcheck/internal/lock"
	"github.com/fbkclanna/msrvcheck/internal/workspace"
	"github.com/spf13/cobra"
)

func newPinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Record each crate's resolved minimum version in msrv.lock.yaml",
		RunE:  runPin,
	}
	cmd.Flags().String("discovery", "auto", "Crate discovery: auto, tracked, or walk")
	return cmd
}

func runPin(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	discoveryStr, _ := cmd.Flags().GetString("discovery")

	discovery, err := workspace.ParseDiscovery(discoveryStr)
	if err != nil {
		return err
	}

	ctx, err := workspace.Load(root, discovery)
	if err != nil {
		return err
	}

	lf := &lock.File{
		Version:     1,
		GeneratedAt: time.Now().Format(time.RFC3339),
		ToolVersion: version,
		Crates:      make(map[string]*lock.Crate, len(ctx.Crates)),
	}
	for _, cr := range ctx.Crates {
		ver, source := ctx.ResolveVersion(cr)
		if ver == "" {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s resolves to no version; not pinned\n", cr.Name)
			continue
		}
		lf.Crates[cr.Name] = &lock.Crate{
			Version: ver,
			Source:  string(source),
		}
	}

	if err := lock.Save(ctx.LockPath, lf); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Pinned %d crates to %s.\n", len(lf.Crates), lock.FileName)
	return nil
}
