package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/animedex/internal/imagecheck"
	"github.com/nikbrunner/animedex/internal/tui/layout"
)

func newCheckCmd(cc *cliContext) *cobra.Command {
	var concurrency int
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report image URLs that are missing or unreachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("concurrency") {
				concurrency = cc.cfg.CheckConcurrency
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = time.Duration(cc.cfg.CheckTimeout)
			}

			store, err := cc.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			results := imagecheck.Check(cmd.Context(), store.Get(), imagecheck.Options{
				Concurrency: concurrency,
				Timeout:     timeout,
				OnProgress: func(completed, total int) {
					fmt.Fprintf(errOut, "\rChecking images... %d/%d", completed, total)
				},
			})
			if len(results) > 0 {
				fmt.Fprintln(errOut)
			}

			summary := imagecheck.Summarize(results)
			log := cc.logger.Component("imagecheck")
			log.Info().
				Int("ok", summary.Healthy).
				Int("missing", summary.Missing).
				Int("unreachable", summary.Unreachable).
				Msg("image check finished")

			textCfg := layout.DefaultConfig().Text
			for _, r := range imagecheck.Broken(results) {
				title, _ := layout.TruncateText(r.Entry.DisplayTitle(), 30, textCfg)
				reason := r.Error
				if r.Status == imagecheck.Missing {
					reason = fmt.Sprintf("HTTP %d", r.StatusCode)
				}
				fmt.Fprintf(out, "%-11s %6d  %s  Image %d  %s  (%s)\n",
					r.Status, r.Entry.ID, layout.PadRight(title, 30), r.ImageIndex+1, r.URL, reason)
			}

			fmt.Fprintf(out, "%d images checked: %d ok, %d missing, %d unreachable\n",
				len(results), summary.Healthy, summary.Missing, summary.Unreachable)
			return nil
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 8, "parallel requests")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "per-request timeout")

	return cmd
}
