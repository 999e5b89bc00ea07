package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/animedex/internal/importer"
	"github.com/nikbrunner/animedex/internal/storage"
)

func newImportCmd(cc *cliContext) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON catalog or HTML export into the SQLite database",
		Long: `Read entries from a JSON catalog (.json) or an animedex HTML export (.html)
and merge them into the configured SQLite database. Entries whose ID already
exists are skipped unless --replace is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := cc.logger.Component("import")

			incoming, err := importer.ReadFile(ctx, args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			db, err := storage.NewSQLiteStorage(cc.cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			existing, err := db.Load(ctx)
			if err != nil {
				return err
			}
			if replace {
				existing = nil
			}

			merged, added, skipped := importer.Merge(existing, incoming)
			if err := db.Save(ctx, merged); err != nil {
				return err
			}

			with, without, err := db.CountByImages(ctx)
			if err != nil {
				return err
			}

			log.Info().
				Str("file", args[0]).
				Str("database", cc.cfg.Database).
				Int("added", added).
				Int("skipped", skipped).
				Int("with_images", with).
				Int("without_images", without).
				Msg("import finished")

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries into %s", added, cc.cfg.Database)
			if skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d duplicates skipped)", skipped)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "replace the database contents instead of merging")

	return cmd
}
