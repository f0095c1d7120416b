package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonandersen/folio/internal/config"
	"github.com/jonandersen/folio/internal/logging"
	"github.com/jonandersen/folio/pkg/folioapi"
)

// clientOptions holds what every backend-facing command needs.
type clientOptions struct {
	baseURL   string
	timeout   time.Duration
	rateLimit int
	jsonMode  bool
	logger    logging.Logger
}

// newClient builds a backend client from the options.
func (o clientOptions) newClient() *folioapi.Client {
	opts := []folioapi.ClientOption{
		folioapi.WithTimeout(o.timeout),
		folioapi.WithRateLimit(o.rateLimit),
	}
	if o.logger != nil {
		opts = append(opts, folioapi.WithLogger(o.logger))
	}
	return folioapi.NewClient(o.baseURL, opts...)
}

// requestTimeout returns the configured timeout or the client default.
func (o clientOptions) requestTimeout() time.Duration {
	if o.timeout > 0 {
		return o.timeout
	}
	return folioapi.DefaultTimeout
}

// loadClientOptions reads the config file and opens the log file. The
// returned func flushes the logger.
func loadClientOptions() (clientOptions, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return clientOptions{}, nil, err
	}

	logger, sync, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return clientOptions{}, nil, fmt.Errorf("failed to open log: %w", err)
	}

	return clientOptions{
		baseURL:   cfg.APIBaseURL,
		timeout:   cfg.RequestTimeout,
		rateLimit: cfg.RateLimit,
		jsonMode:  GetJSONMode(),
		logger:    logger.With("cmd", "cli"),
	}, sync, nil
}

// loadConfig loads and validates the config at configPath.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// withClient wraps fn so it runs with options loaded from the config file
// into *co. The log is flushed when fn returns.
func withClient(co *clientOptions, fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		loaded, sync, err := loadClientOptions()
		if err != nil {
			return err
		}
		defer sync()

		loaded.logger.Infof("running %s", cmd.CommandPath())
		*co = loaded
		return fn(cmd, args)
	}
}
