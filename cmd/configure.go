package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jonandersen/folio/internal/config"
	"github.com/jonandersen/folio/internal/logging"
	"github.com/jonandersen/folio/internal/output"
)

// prompter abstracts interactive input for testing.
type prompter interface {
	IsTerminal() bool
	ReadLine(prompt string) (string, error)
}

// terminalPrompter implements prompter on stdin.
type terminalPrompter struct {
	fd      int
	scanner *bufio.Scanner
	writer  io.Writer
}

func newTerminalPrompter(in *os.File, w io.Writer) *terminalPrompter {
	return &terminalPrompter{fd: int(in.Fd()), scanner: bufio.NewScanner(in), writer: w}
}

func (p *terminalPrompter) IsTerminal() bool {
	return term.IsTerminal(p.fd)
}

func (p *terminalPrompter) ReadLine(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.writer, prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// configureOptions holds dependencies for the configure command.
// This allows for dependency injection in tests.
type configureOptions struct {
	configPath string
	prompt     prompter
	jsonMode   bool
}

// configureFlags are the values settable from the command line.
type configureFlags struct {
	apiURL    string
	timeout   time.Duration
	rateLimit int
	refresh   time.Duration
	logLevel  string
	logFile   string
	show      bool
}

// newConfigureCmd creates the configure command with the given options.
func newConfigureCmd(opts configureOptions) *cobra.Command {
	var flags configureFlags

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Configure the backend connection",
		Long: `Write folio's config file.

Pass the settings as flags, or run without flags in a terminal to be
prompted for each one. Press enter at a prompt to keep the current value.

Examples:
  folio configure --api-url http://localhost:8000
  folio configure --refresh 30s --log-level debug
  folio configure --show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(cmd, opts, flags)
		},
	}

	cmd.Flags().StringVar(&flags.apiURL, "api-url", "", "Backend base URL")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Per-request timeout")
	cmd.Flags().IntVar(&flags.rateLimit, "rate-limit", 0, "Maximum requests per second (0 disables limiting)")
	cmd.Flags().DurationVar(&flags.refresh, "refresh", 0, "Dashboard auto-refresh interval (0 disables)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "Log file path")
	cmd.Flags().BoolVar(&flags.show, "show", false, "Print the current configuration and exit")

	// Don't show usage info on validation errors - just show the error
	cmd.SilenceUsage = true

	return cmd
}

func runConfigure(cmd *cobra.Command, opts configureOptions, flags configureFlags) error {
	if opts.configPath == "" {
		opts.configPath = configPath()
	}
	if opts.prompt == nil {
		opts.prompt = newTerminalPrompter(os.Stdin, cmd.OutOrStdout())
	}
	opts.jsonMode = opts.jsonMode || GetJSONMode()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if flags.show {
		return showConfiguration(cmd, opts, cfg)
	}

	if anyConfigureFlagSet(cmd) {
		applyConfigureFlags(cmd, cfg, flags)
	} else {
		if !opts.prompt.IsTerminal() {
			return fmt.Errorf("configure requires flags or an interactive terminal\nRun 'folio configure --help' for the available flags")
		}
		if err := promptConfiguration(opts.prompt, cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}

	if err := config.Save(opts.configPath, cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", opts.configPath)
	return nil
}

var configureFlagNames = []string{"api-url", "timeout", "rate-limit", "refresh", "log-level", "log-file"}

func anyConfigureFlagSet(cmd *cobra.Command) bool {
	for _, name := range configureFlagNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func applyConfigureFlags(cmd *cobra.Command, cfg *config.Config, flags configureFlags) {
	changed := cmd.Flags().Changed
	if changed("api-url") {
		cfg.APIBaseURL = strings.TrimSuffix(strings.TrimSpace(flags.apiURL), "/")
	}
	if changed("timeout") {
		cfg.RequestTimeout = flags.timeout
	}
	if changed("rate-limit") {
		cfg.RateLimit = flags.rateLimit
	}
	if changed("refresh") {
		cfg.RefreshInterval = flags.refresh
	}
	if changed("log-level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(flags.logLevel))
	}
	if changed("log-file") {
		cfg.LogFile = flags.logFile
	}
}

// promptConfiguration asks for each setting, keeping the current value on empty input.
func promptConfiguration(p prompter, cfg *config.Config) error {
	read := func(label, current string) (string, error) {
		v, err := p.ReadLine(fmt.Sprintf("%s [%s]: ", label, current))
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
		}
		if v == "" {
			return current, nil
		}
		return v, nil
	}

	v, err := read("Backend URL", cfg.APIBaseURL)
	if err != nil {
		return err
	}
	cfg.APIBaseURL = strings.TrimSuffix(v, "/")

	if v, err = read("Request timeout", cfg.RequestTimeout.String()); err != nil {
		return err
	}
	if cfg.RequestTimeout, err = time.ParseDuration(v); err != nil {
		return fmt.Errorf("invalid request timeout %q: %w", v, err)
	}

	if v, err = read("Rate limit (req/s)", strconv.Itoa(cfg.RateLimit)); err != nil {
		return err
	}
	if cfg.RateLimit, err = strconv.Atoi(v); err != nil {
		return fmt.Errorf("invalid rate limit %q: %w", v, err)
	}

	if v, err = read("Refresh interval", cfg.RefreshInterval.String()); err != nil {
		return err
	}
	if cfg.RefreshInterval, err = time.ParseDuration(v); err != nil {
		return fmt.Errorf("invalid refresh interval %q: %w", v, err)
	}

	if v, err = read("Log level", cfg.LogLevel); err != nil {
		return err
	}
	cfg.LogLevel = strings.ToLower(v)

	return nil
}

// showConfiguration prints the effective configuration.
func showConfiguration(cmd *cobra.Command, opts configureOptions, cfg *config.Config) error {
	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	if opts.jsonMode {
		return formatter.Print(map[string]any{
			"config_file":      opts.configPath,
			"api_base_url":     cfg.APIBaseURL,
			"request_timeout":  cfg.RequestTimeout.String(),
			"rate_limit":       cfg.RateLimit,
			"refresh_interval": cfg.RefreshInterval.String(),
			"log_level":        cfg.LogLevel,
			"log_file":         cfg.LogFile,
		})
	}
	return formatter.Table([]string{"Setting", "Value"}, [][]string{
		{"Config file", opts.configPath},
		{"Backend URL", cfg.APIBaseURL},
		{"Request timeout", cfg.RequestTimeout.String()},
		{"Rate limit", strconv.Itoa(cfg.RateLimit)},
		{"Refresh interval", cfg.RefreshInterval.String()},
		{"Log level", cfg.LogLevel},
		{"Log file", cfg.LogFile},
	})
}

func init() {
	rootCmd.AddCommand(newConfigureCmd(configureOptions{}))
}
