package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/animedex/internal/exporter"
	"github.com/nikbrunner/animedex/internal/listing"
)

func newExportCmd(cc *cliContext) *cobra.Command {
	var flags filterFlags
	var title string

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Write one page of the catalog as an HTML card grid",
		Long:  "Export the requested page as a standalone HTML file (default ~/Downloads/animedex-export-DATE.html)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := flags.state()
			if err != nil {
				return err
			}

			outputPath := ""
			if len(args) == 1 {
				outputPath = args[0]
			}
			if outputPath == "" {
				outputPath, err = exporter.DefaultExportPath()
				if err != nil {
					return fmt.Errorf("resolve export path: %w", err)
				}
			}

			store, err := cc.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			result := listing.Derive(store.Get(), state)

			if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
				return fmt.Errorf("create export directory: %w", err)
			}

			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}

			if err := exporter.ExportHTML(f, result, title); err != nil {
				f.Close()
				return fmt.Errorf("export: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("export: %w", err)
			}

			log := cc.logger.Component("export")
			log.Info().
				Str("path", outputPath).
				Int("entries", len(result.Entries)).
				Int("page", result.Page).
				Msg("exported page")

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries (page %d of %d) to %s\n",
				len(result.Entries), result.Page, result.TotalPages, outputPath)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&title, "title", "animedex", "page heading")

	return cmd
}
