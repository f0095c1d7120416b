package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jonandersen/folio/internal/config"
	"github.com/jonandersen/folio/internal/logging"
	"github.com/jonandersen/folio/internal/tui"
)

// uiOptions holds dependencies for the ui command.
type uiOptions struct {
	refresh time.Duration
}

// newUIModel builds the dashboard model and the client behind it.
func newUIModel(cfg *config.Config, logger logging.Logger) tui.Model {
	co := clientOptions{
		baseURL:   cfg.APIBaseURL,
		timeout:   cfg.RequestTimeout,
		rateLimit: cfg.RateLimit,
		logger:    logger.With("component", "client"),
	}
	return tui.New(cfg, co.newClient(), logger.With("component", "tui"))
}

func runUI(cmd *cobra.Command, opts uiOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("refresh") {
		cfg.RefreshInterval = opts.refresh
	}

	logger, sync, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer sync()

	logger.Infof("starting dashboard against %s", cfg.APIBaseURL)

	p := tea.NewProgram(newUIModel(cfg, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Errorf("dashboard exited: %v", err)
		return err
	}
	return nil
}

func init() {
	var opts uiOptions

	uiCmd := &cobra.Command{
		Use:   "ui",
		Short: "Interactive portfolio dashboard",
		Long: `Launch the full-screen portfolio dashboard.

The dashboard shows the portfolio summary and one card per holding, with
a search box for adding new symbols.

Keyboard shortcuts:
  / or tab  Focus the search box (esc leaves it)
  ↑/↓       Select a holding
  e         Edit the selected quantity
  x         Remove the selected holding
  r         Refresh data
  q         Quit the application`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, opts)
		},
	}

	uiCmd.Flags().DurationVar(&opts.refresh, "refresh", config.DefaultRefreshInterval, "Auto-refresh interval (0 disables)")
	uiCmd.SilenceUsage = true
	rootCmd.AddCommand(uiCmd)
}
