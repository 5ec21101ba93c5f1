package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/temper/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the network once and validate it with one inference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			useCache, _ := cmd.Flags().GetBool("cache")
			savePlan, _ := cmd.Flags().GetBool("save-plan")

			report, err := c.app.Build(cmd.Context(), app.BuildOptions{
				UseCache: useCache,
				SavePlan: savePlan,
			})
			if err != nil {
				return err
			}
			renderBuild(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().BoolP("cache", "c", false, "Load, attach and capture the persisted timing cache")
	cmd.Flags().Bool("save-plan", false, "Write the compiled plan to the configured plan file")
	return cmd
}
