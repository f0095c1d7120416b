package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonandersen/folio/internal/output"
)

// removeOptions holds dependencies for the remove command.
type removeOptions struct {
	clientOptions
}

// newRemoveCmd creates the remove command with the given options.
func newRemoveCmd(opts removeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove SYMBOL",
		Aliases: []string{"rm"},
		Short:   "Remove a holding",
		Long: `Remove a symbol from the portfolio.

Example:
  folio remove AAPL`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, opts, args[0])
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runRemove(cmd *cobra.Command, opts removeOptions, arg string) error {
	symbol := normalizeSymbol(arg)
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.requestTimeout())
	defer cancel()

	if err := opts.newClient().DeleteHolding(ctx, symbol); err != nil {
		return fmt.Errorf("failed to remove %s: %w", symbol, err)
	}

	if opts.jsonMode {
		return output.New(cmd.OutOrStdout(), true).Print(mutationResult{Status: "removed", Symbol: symbol})
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", symbol)
	return nil
}

func init() {
	var opts removeOptions

	removeCmd := newRemoveCmd(opts)
	removeCmd.RunE = withClient(&opts.clientOptions, func(cmd *cobra.Command, args []string) error {
		return runRemove(cmd, opts, args[0])
	})

	rootCmd.AddCommand(removeCmd)
}
