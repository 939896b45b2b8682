package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/ui/style"
	"go.trai.ch/zerr"
)

func (c *CLI) newWarmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warm",
		Short: "Resolve every artifact of every unit and report digests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := c.app.Warm(cmd.Context(), manifestFlag(cmd))
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					p.line("%s %s %s %s", p.bad(style.Cross), r.Unit, r.Artifact, p.muted(r.Err.Error()))
					continue
				}
				p.line("%s %s %s %s", p.good(style.Check), r.Unit, r.Artifact, p.muted(r.Digest))
			}
			p.line("%d resolved, %d failed", len(results)-failed, failed)

			if failed > 0 {
				return zerr.With(domain.Classify(domain.ErrWarmIncomplete), "failed", failed)
			}
			return nil
		},
	}
}
