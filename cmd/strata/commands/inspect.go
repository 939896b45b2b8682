package commands

import (
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/strata/internal/app"
	"go.trai.ch/strata/internal/ui/style"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the pools, domains and units built from a manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			owners, _ := cmd.Flags().GetBool("owners")

			report, err := c.app.Inspect(cmd.Context(), manifestFlag(cmd))
			if err != nil {
				return err
			}

			printReport(newPrinter(cmd.OutOrStdout()), report, owners)
			return nil
		},
	}
	cmd.Flags().Bool("owners", false, "List the static namespace owners of every domain")
	return cmd
}

func printReport(p *printer, report *app.Report, owners bool) {
	for _, pr := range report.Pools {
		p.line("%s %s", p.heading("pool "+pr.ID), p.muted("("+pr.Name+")"))
		if len(pr.Ancestors) > 0 {
			p.line("  %s %s", p.muted("ancestors:"), strings.Join(pr.Ancestors, ", "))
		}

		for _, d := range pr.Domains {
			p.line("  %s %s", style.Circle, d.Name)
			for _, u := range d.Units {
				p.line("    %s %s %s", style.Dot, u.Name,
					p.muted("namespaces: "+list(u.Namespaces)+"  reads: "+list(u.Reads)))
				for _, a := range u.Artifacts {
					p.line("        %s", a)
				}
			}
			if owners {
				for _, ns := range slices.Sorted(maps.Keys(d.Owners)) {
					p.line("      %s %s %s", ns, style.Arrow, d.Owners[ns])
				}
			}
		}
	}

	if len(report.Edges) > 0 {
		p.line("%s", p.heading("edges"))
		for _, e := range report.Edges {
			p.line("  %s %s %s", e.Source, style.Arrow, e.Target)
		}
	}
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
