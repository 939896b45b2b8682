package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/strata/internal/app"
	"go.trai.ch/strata/internal/ui/style"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <unit> <artifact>",
		Short: "Resolve an artifact as seen from a unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runtimes, _ := cmd.Flags().GetStringArray("runtime")
			edges, _ := cmd.Flags().GetStringArray("edge")
			raw, _ := cmd.Flags().GetBool("raw")

			opts := app.ResolveOptions{Manifest: manifestFlag(cmd)}
			for _, s := range runtimes {
				rt, err := app.ParseRuntimeArtifact(s)
				if err != nil {
					return err
				}
				opts.Runtime = append(opts.Runtime, rt)
			}
			for _, s := range edges {
				e, err := app.ParseEdge(s)
				if err != nil {
					return err
				}
				opts.Edges = append(opts.Edges, e)
			}

			res, err := c.app.Resolve(cmd.Context(), args[0], args[1], opts)
			if err != nil {
				return err
			}

			if raw {
				_, err = cmd.OutOrStdout().Write(res.Data)
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			p.line("%s %s", p.good(style.Check), res.Locator)
			p.line("  %s %s", p.muted("digest:"), res.Digest)
			p.line("  %s %d bytes", p.muted("size:"), len(res.Data))
			return nil
		},
	}
	cmd.Flags().StringArrayP("runtime", "r", nil, "Register a runtime artifact from a file (unit:artifact=path)")
	cmd.Flags().StringArrayP("edge", "e", nil, "Add a visibility edge before resolving (source=target)")
	cmd.Flags().Bool("raw", false, "Write the artifact bytes instead of a summary")
	return cmd
}
