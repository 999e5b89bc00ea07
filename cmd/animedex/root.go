package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/animedex/internal/catalog"
	"github.com/nikbrunner/animedex/internal/listing"
	"github.com/nikbrunner/animedex/internal/logging"
	"github.com/nikbrunner/animedex/internal/storage"
	"github.com/nikbrunner/animedex/internal/tui"
)

// cliContext is shared by every command. PersistentPreRunE fills cfg and logger.
type cliContext struct {
	configPath string
	source     string
	logLevel   string

	cfg    *storage.Config
	logger *logging.Logger
}

func newRootCmd() *cobra.Command {
	cc := &cliContext{}

	cmd := &cobra.Command{
		Use:   "animedex",
		Short: "Browse an anime catalog in the terminal",
		Long: `animedex - search, filter and page through an anime catalog

Run without arguments to open the interactive browser.`,
		Example: rootCmdExample,
		Args:    cobra.NoArgs,
		// Errors are reported once by Execute; usage is noise for runtime failures
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// The TUI owns the terminal, so only subcommands log to stderr
			return cc.setup(cmd, cmd != cmd.Root())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if cc.logger == nil {
				return nil
			}
			return cc.logger.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), cc)
		},
	}

	cmd.PersistentFlags().StringVar(&cc.configPath, "config", "", "config file (default ~/.config/animedex/config.json)")
	cmd.PersistentFlags().StringVar(&cc.source, "source", "", "catalog location: JSON file, SQLite database or http(s) URL")
	cmd.PersistentFlags().StringVar(&cc.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newListCmd(cc),
		newSearchCmd(cc),
		newExportCmd(cc),
		newImportCmd(cc),
		newCheckCmd(cc),
		newConfigCmd(cc),
	)

	return cmd
}

const rootCmdExample = `  # Open the interactive browser
  animedex

  # Print page 2 of the entries that have images
  animedex list --images with --page 2

  # Find an entry and open its cover
  animedex search naruto

  # Use a remote catalog
  animedex --source https://example.com/catalog.json list`

// setup loads config with env and flag overrides applied, then builds the logger.
func (cc *cliContext) setup(cmd *cobra.Command, console bool) error {
	path := cc.configPath
	if path == "" {
		var err error
		path, err = storage.DefaultConfigFilePath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
	}

	cfg, err := storage.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return err
	}

	// Flags win over file and environment
	if cc.source != "" {
		cfg.Source = cc.source
	}
	if cc.logLevel != "" {
		cfg.LogLevel = cc.logLevel
	}
	cc.cfg = cfg

	logger, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: console,
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	cc.logger = logger

	cc.logger.Debug().
		Str("config", path).
		Str("source", cfg.Source).
		Msg("configuration loaded")

	return nil
}

// openSource opens the configured catalog source. The returned close func is never nil.
func (cc *cliContext) openSource() (storage.Source, func(), error) {
	src, err := storage.OpenSource(cc.cfg.Source, time.Duration(cc.cfg.HTTPTimeout))
	if err != nil {
		return nil, func() {}, err
	}

	closeFn := func() {}
	if c, ok := src.(io.Closer); ok {
		closeFn = func() {
			if err := c.Close(); err != nil {
				cc.logger.Warn().Err(err).Msg("closing catalog source")
			}
		}
	}
	return src, closeFn, nil
}

// loadCatalog loads the configured source into a new store. Non-interactive
// commands have nothing to show without a catalog, so a failed load is returned.
func (cc *cliContext) loadCatalog(ctx context.Context) (*catalog.Store, error) {
	src, closeSource, err := cc.openSource()
	if err != nil {
		return nil, err
	}
	defer closeSource()

	store := catalog.NewStore(cc.logger.Logger)
	if err := store.Load(ctx, src); err != nil {
		return nil, err
	}
	return store, nil
}

// runTUI runs the full interactive browser. A failed load is shown inside the UI.
func runTUI(ctx context.Context, cc *cliContext) error {
	src, closeSource, err := cc.openSource()
	if err != nil {
		return err
	}
	defer closeSource()

	app := tui.NewApp(tui.AppParams{
		Store:  catalog.NewStore(cc.logger.Logger),
		Source: src,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}

// filterFlags are the listing flags shared by list and export.
type filterFlags struct {
	query  string
	images string
	page   int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "case-insensitive title search")
	cmd.Flags().StringVar(&f.images, "images", "all", "image filter: "+strings.Join(listing.FilterModeNames(), ", "))
	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "page number (clamped to the valid range)")
}

// state converts the flags into a FilterState.
func (f *filterFlags) state() (listing.FilterState, error) {
	mode, err := listing.ParseFilterMode(f.images)
	if err != nil {
		return listing.FilterState{}, err
	}
	return listing.FilterState{Query: f.query, Mode: mode, Page: f.page}, nil
}
