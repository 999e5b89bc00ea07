package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/animedex/internal/model"
	"github.com/nikbrunner/animedex/internal/picker"
	"github.com/nikbrunner/animedex/internal/search"
	"github.com/nikbrunner/animedex/internal/tui"
)

func newSearchCmd(cc *cliContext) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Quick search, select and open a cover",
		Long: `Search titles case-insensitively. A single match is opened directly;
several matches open a picker. The selected entry's first image opens in the browser.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			store, err := cc.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			results := search.Filter(store.Get(), query)
			if len(results) == 0 {
				fmt.Fprintf(out, "No entries found for '%s'\n", query)
				return nil
			}

			if printOnly {
				for _, e := range results {
					fmt.Fprintf(out, "%d\t%s\n", e.ID, e.DisplayTitle())
				}
				return nil
			}

			var selected *model.Entry
			if len(results) == 1 {
				selected = &results[0]
			} else {
				p := picker.New(results, query)
				program := tea.NewProgram(p, tea.WithContext(cmd.Context()))
				finalModel, err := program.Run()
				if err != nil {
					return fmt.Errorf("run picker: %w", err)
				}

				finalPicker := finalModel.(picker.Picker)
				if finalPicker.Cancelled() {
					return nil
				}
				selected = finalPicker.SelectedEntry()
			}

			if selected == nil {
				return nil
			}

			if !selected.HasImages() {
				fmt.Fprintf(out, "%s has no images\n", selected.DisplayTitle())
				return nil
			}

			fmt.Fprintf(out, "Opening: %s\n", selected.DisplayTitle())
			return tui.OpenURL(selected.Cover())
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "print every match instead of opening one")

	return cmd
}
