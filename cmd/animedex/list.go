package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/animedex/internal/listing"
	"github.com/nikbrunner/animedex/internal/model"
	"github.com/nikbrunner/animedex/internal/tui/layout"
)

// listOutput is the --json shape of the list command.
type listOutput struct {
	Meta    listing.Meta  `json:"meta"`
	Query   string        `json:"query"`
	Images  string        `json:"images"`
	Window  []int         `json:"window"`
	Entries []model.Entry `json:"entries"`
}

func newListCmd(cc *cliContext) *cobra.Command {
	var flags filterFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the catalog",
		Long:  "Filter the catalog by title and images, then print the requested page as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := flags.state()
			if err != nil {
				return err
			}

			store, err := cc.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			result := listing.Derive(store.Get(), state)
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(listOutput{
					Meta:    result.Meta(),
					Query:   result.Query,
					Images:  result.Mode.String(),
					Window:  result.Window.Pages(),
					Entries: result.Entries,
				})
			}

			if len(result.Entries) == 0 {
				fmt.Fprintln(out, "No entries match the current filters.")
				return nil
			}

			fmt.Fprintf(out, "\n%d entries · page %d of %d · images: %s\n\n",
				len(result.Filtered), result.Page, result.TotalPages, result.Mode)
			fmt.Fprintln(out, renderTable(result))

			if result.Window != nil {
				fmt.Fprintf(out, "\n%s\n", result.Window)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page and its metadata as JSON")

	return cmd
}

// renderTable renders the visible page with bubbles/table.
func renderTable(result listing.Result) string {
	textCfg := layout.DefaultConfig().Text

	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "ID", Width: 8},
		{Title: "Title", Width: 36},
		{Title: "English", Width: 28},
		{Title: "Images", Width: 6},
	}

	rows := make([]table.Row, 0, len(result.Entries))
	for i, e := range result.Entries {
		title, _ := layout.TruncateText(e.DisplayTitle(), 34, textCfg)
		english, _ := layout.TruncateText(e.Subtitle(), 26, textCfg)
		rows = append(rows, table.Row{
			strconv.Itoa(result.Offset() + i + 1),
			strconv.Itoa(e.ID),
			title,
			english,
			strconv.Itoa(len(e.Images)),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // height includes the header line
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	// Unfocused tables still highlight the cursor row
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t.View()
}
