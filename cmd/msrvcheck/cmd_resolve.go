package main

import (
	"encoding/json"
	"fmt"

	msrv "github.com/fbkclanna/msrvcheck/internal/version"

	"github.com/fbkclanna/msrvcheck/internal/ui"
	"github.com/fbkclanna/msrvcheck/internal/workspace"
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show the resolved minimum toolchain version of each crate",
		RunE:  runResolve,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().Bool("max", false, "Print only the highest resolved version")
	cmd.Flags().String("discovery", "auto", "Crate discovery: auto, tracked, or walk")
	cmd.Flags().StringSlice("only", nil, "Include only these crates")
	cmd.Flags().StringSlice("skip", nil, "Exclude these crates")
	return cmd
}

type crateVersion struct {
	Crate   string `json:"crate"`
	Version string `json:"version,omitempty"`
	Source  string `json:"source"`
	Pinned  string `json:"pinned,omitempty"`
}

func runResolve(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	asJSON, _ := cmd.Flags().GetBool("json")
	maxOnly, _ := cmd.Flags().GetBool("max")
	discoveryStr, _ := cmd.Flags().GetString("discovery")
	only, _ := cmd.Flags().GetStringSlice("only")
	skip, _ := cmd.Flags().GetStringSlice("skip")

	discovery, err := workspace.ParseDiscovery(discoveryStr)
	if err != nil {
		return err
	}

	ctx, err := workspace.Load(root, discovery)
	if err != nil {
		return err
	}
	crates := workspace.FilterByName(ctx.Crates, only, skip)

	resolved := make([]crateVersion, 0, len(crates))
	for _, cr := range crates {
		ver, source := ctx.ResolveVersion(cr)
		cv := crateVersion{Crate: cr.Name, Version: ver, Source: string(source)}
		if ctx.Lock != nil {
			if lc, ok := ctx.Lock.Crates[cr.Name]; ok && lc.Version != ver {
				cv.Pinned = lc.Version
			}
		}
		resolved = append(resolved, cv)
	}

	out := cmd.OutOrStdout()

	if maxOnly {
		var versions []string
		for _, cv := range resolved {
			if cv.Version != "" {
				versions = append(versions, cv.Version)
			}
		}
		if len(versions) == 0 {
			return fmt.Errorf("no crate resolves to a minimum toolchain version")
		}
		highest, err := msrv.Max(versions)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, highest)
		return nil
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resolved)
	}

	tbl := ui.NewTable(out, "CRATE", "VERSION", "SOURCE", "PINNED")
	for _, cv := range resolved {
		tbl.Row(cv.Crate, ui.Dash(cv.Version), cv.Source, ui.Dash(cv.Pinned))
	}
	return tbl.Flush()
}
