package cmd

import (
	"github.com/rskv-p/hier/script"

	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Replay the reference composite sequence",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, stats, err := buildSink(current.cfg, current.runID, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return finish(s, stats, script.Demo(cmd.Context(), s))
	},
}
