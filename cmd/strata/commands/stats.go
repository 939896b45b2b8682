package commands

import "github.com/spf13/cobra"

func (c *CLI) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Warm the manifest pool and print the resolution counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			samples, err := c.app.Stats(cmd.Context(), manifestFlag(cmd))
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			for _, s := range samples {
				p.line("%s", s)
			}
			return nil
		},
	}
}
