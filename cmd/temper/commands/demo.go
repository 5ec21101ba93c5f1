package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/temper/internal/app"
)

func (c *CLI) newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run two builds without and two builds with the timing cache",
		Long: "Resets the timing cache, then builds twice without it, once capturing it " +
			"and once reusing it, and compares the compile times.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noReset, _ := cmd.Flags().GetBool("no-reset")

			summary, err := c.app.Demo(cmd.Context(), app.DemoOptions{NoReset: noReset})
			if summary != nil && len(summary.Runs) > 0 {
				renderDemo(cmd.OutOrStdout(), summary)
			}
			return err
		},
	}
	cmd.Flags().Bool("no-reset", false, "Keep existing timing caches instead of deleting them first")
	return cmd
}
