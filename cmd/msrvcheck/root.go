package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "msrvcheck",
		Short:   "Verify each crate of a Cargo workspace against its minimum supported Rust version",
		Version: version,
	}

	cmd.PersistentFlags().String("root", ".", "Workspace root directory")

	cmd.AddCommand(
		newCheckCmd(),
		newResolveCmd(),
		newListCmd(),
		newPinCmd(),
		newDoctorCmd(),
	)

	return cmd
}
