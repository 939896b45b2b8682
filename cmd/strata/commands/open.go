package commands

import "github.com/spf13/cobra"

func (c *CLI) newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <locator>",
		Short: "Write the bytes behind a strata://, cas:// or file:// locator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.app.Open(cmd.Context(), manifestFlag(cmd), args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
