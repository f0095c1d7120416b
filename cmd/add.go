package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonandersen/folio/internal/output"
)

// addOptions holds dependencies for the add command.
type addOptions struct {
	clientOptions
}

// mutationResult is the JSON shape of the add, remove and set commands.
type mutationResult struct {
	Status   string   `json:"status"`
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
}

// newAddCmd creates the add command with the given options.
func newAddCmd(opts addOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add SYMBOL [NAME]",
		Short: "Add a holding",
		Long: `Add a symbol to the portfolio. The backend starts it at quantity 1.

Examples:
  folio add AAPL
  folio add AAPL "Apple Inc."`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, opts, args)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runAdd(cmd *cobra.Command, opts addOptions, args []string) error {
	symbol := normalizeSymbol(args[0])
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	name := symbol
	if len(args) > 1 && strings.TrimSpace(args[1]) != "" {
		name = strings.TrimSpace(args[1])
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.requestTimeout())
	defer cancel()

	if err := opts.newClient().AddHolding(ctx, symbol, name); err != nil {
		return fmt.Errorf("failed to add %s: %w", symbol, err)
	}

	if opts.jsonMode {
		return output.New(cmd.OutOrStdout(), true).Print(mutationResult{Status: "added", Symbol: symbol, Name: name})
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", symbol, name)
	return nil
}

// normalizeSymbol trims and upper-cases a ticker typed on the command line.
func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func init() {
	var opts addOptions

	addCmd := newAddCmd(opts)
	addCmd.RunE = withClient(&opts.clientOptions, func(cmd *cobra.Command, args []string) error {
		return runAdd(cmd, opts, args)
	})

	rootCmd.AddCommand(addCmd)
}
