package cmd

import (
	"fmt"

	"github.com/rskv-p/hier/constant"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/rskv-p/hier/cmd.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", constant.AppName, Version)
		return nil
	},
}
