package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonandersen/folio/internal/output"
	"github.com/jonandersen/folio/internal/portfolio"
)

// setOptions holds dependencies for the set command.
type setOptions struct {
	clientOptions
}

// newSetCmd creates the set command with the given options.
func newSetCmd(opts setOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set SYMBOL QUANTITY",
		Short: "Set the quantity of a holding",
		Long: `Set how many units of a holding the portfolio contains.
The quantity must be a non-negative number; fractions are allowed.

Examples:
  folio set AAPL 10
  folio set BTC 0.25`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, opts, args[0], args[1])
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runSet(cmd *cobra.Command, opts setOptions, arg, raw string) error {
	symbol := normalizeSymbol(arg)
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	quantity, err := portfolio.ParseQuantity(raw)
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", raw, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.requestTimeout())
	defer cancel()

	if err := opts.newClient().UpdateQuantity(ctx, symbol, quantity); err != nil {
		return fmt.Errorf("failed to update %s: %w", symbol, err)
	}

	if opts.jsonMode {
		return output.New(cmd.OutOrStdout(), true).Print(mutationResult{Status: "updated", Symbol: symbol, Quantity: &quantity})
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s quantity to %s\n", symbol, strconv.FormatFloat(quantity, 'f', -1, 64))
	return nil
}

func init() {
	var opts setOptions

	setCmd := newSetCmd(opts)
	setCmd.RunE = withClient(&opts.clientOptions, func(cmd *cobra.Command, args []string) error {
		return runSet(cmd, opts, args[0], args[1])
	})

	rootCmd.AddCommand(setCmd)
}
