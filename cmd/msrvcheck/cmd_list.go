package main

import (
	"encoding/json"

	"github.com/fbkclanna/msrvcheck/internal/ui"
	"github.com/fbkclanna/msrvcheck/internal/workspace"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the crates discovered in the workspace",
		RunE:  runList,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().String("discovery", "auto", "Crate discovery: auto, tracked, or walk")
	return cmd
}

type crateInfo struct {
	Crate       string `json:"crate"`
	Path        string `json:"path"`
	Edition     string `json:"edition,omitempty"`
	RustVersion string `json:"rust_version,omitempty"`
}

func runList(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	asJSON, _ := cmd.Flags().GetBool("json")
	discoveryStr, _ := cmd.Flags().GetString("discovery")

	discovery, err := workspace.ParseDiscovery(discoveryStr)
	if err != nil {
		return err
	}

	ctx, err := workspace.Load(root, discovery)
	if err != nil {
		return err
	}

	infos := make([]crateInfo, 0, len(ctx.Crates))
	for _, cr := range ctx.Crates {
		p := cr.Manifest.Package
		info := crateInfo{Crate: cr.Name, Path: cr.RelDir}
		if p.Edition.Workspace {
			info.Edition = workspaceEdition(ctx)
		} else {
			info.Edition = p.Edition.Value
		}
		if p.RustVersion.Workspace {
			info.RustVersion = "(workspace)"
		} else {
			info.RustVersion = p.RustVersion.Value
		}
		infos = append(infos, info)
	}

	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tbl := ui.NewTable(out, "CRATE", "PATH", "EDITION", "RUST-VERSION")
	for _, info := range infos {
		tbl.Row(info.Crate, info.Path, ui.Dash(info.Edition), ui.Dash(info.RustVersion))
	}
	return tbl.Flush()
}

// workspaceEdition resolves an inherited edition against the fallback
// manifest's [workspace.package] section.
func workspaceEdition(ctx *workspace.Context) string {
	if ws := ctx.Fallback.Workspace; ws != nil && ws.Package != nil {
		return ws.Package.Edition
	}
	return ""
}
