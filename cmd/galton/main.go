package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers every subcommand; running it without one launches the
// terminal UI.
func newRootCmd() *cobra.Command {
	v := newViper()

	rootCmd := &cobra.Command{
		Use:   "galton",
		Short: "binomial distribution vs. random walk, in the terminal",
		Long: `galton contrasts the theoretical binomial distribution of ten left/right
choices with paths you build yourself.

In automatic mode the board shows how many of the balls are expected in
each bucket. In manual mode you pick left or right at every row and the
finished paths pile up at their endpoints.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(v)
		},
	}
	addSettingsFlags(rootCmd.PersistentFlags())
	bindFlags(v, rootCmd.PersistentFlags())

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(v)
		},
	}

	rootCmd.AddCommand(
		tuiCmd,
		newDistCmd(v),
		newWalkCmd(v),
		newSimulateCmd(v),
		newSweepCmd(v),
		newReplayCmd(v),
		newExportCmd(v),
		newPresetsCmd(),
	)
	return rootCmd
}
