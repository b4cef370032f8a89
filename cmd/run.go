package cmd

import (
	"fmt"
	"os"

	"github.com/rskv-p/hier/script"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Execute a scenario script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := parseFile(args[0])
		if err != nil {
			return err
		}

		s, stats, err := buildSink(current.cfg, current.runID, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		r := script.NewRunner(
			script.WithSink(s),
			script.WithOutput(cmd.OutOrStdout()),
			script.WithKeepGoing(current.cfg.KeepGoing),
		)
		return finish(s, stats, r.Run(cmd.Context(), steps))
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <script>",
	Short: "Parse a scenario script without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := parseFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d steps ok\n", args[0], len(steps))
		return nil
	},
}

func parseFile(path string) ([]script.Step, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return script.Parse(f)
}

func init() {
	runCmd.Flags().BoolVar(&flagKeepGoing, "keep-going", false, "run every step and report all failures")
}
