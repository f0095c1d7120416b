package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonandersen/folio/internal/currency"
	"github.com/jonandersen/folio/internal/output"
	"github.com/jonandersen/folio/internal/portfolio"
	"github.com/jonandersen/folio/pkg/folioapi"
)

// holdingsOptions holds dependencies for the holdings command.
type holdingsOptions struct {
	clientOptions
}

// holdingsReport is the JSON shape of the holdings command.
type holdingsReport struct {
	Holdings []folioapi.Holding `json:"holdings"`
	Summary  portfolio.Summary  `json:"summary"`
}

// newHoldingsCmd creates the holdings command with the given options.
func newHoldingsCmd(opts holdingsOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "holdings",
		Aliases: []string{"ls"},
		Short:   "List holdings and the portfolio summary",
		Long: `List every holding with its price, daily change and total value,
followed by the portfolio total and the sector breakdown.

Examples:
  folio holdings          # Table output
  folio holdings --json   # JSON output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHoldings(cmd, opts)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runHoldings(cmd *cobra.Command, opts holdingsOptions) error {
	ctx, cancel := context.WithTimeout(context.Background(), opts.requestTimeout())
	defer cancel()

	holdings, err := opts.newClient().ListHoldings(ctx)
	if err != nil {
		return fmt.Errorf("failed to list holdings: %w", err)
	}

	summary := portfolio.ComputeSummary(holdings)
	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)

	if opts.jsonMode {
		return formatter.Print(holdingsReport{Holdings: holdings, Summary: summary})
	}

	if len(holdings) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No holdings")
	} else {
		headers := []string{"Symbol", "Name", "Industry", "Qty", "Price", "Change", "Total", "Total (EUR)"}
		rows := make([][]string, 0, len(holdings))
		for _, h := range holdings {
			rows = append(rows, []string{
				h.Symbol,
				h.Name,
				h.Industry,
				strconv.FormatFloat(h.Quantity, 'f', -1, 64),
				currency.USD(h.Price),
				output.Colorize(fmt.Sprintf("%+.2f%%", h.Change), h.Change),
				currency.USD(h.Value()),
				currency.EUR(h.Value()),
			})
		}
		if err := formatter.Table(headers, rows); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintf(out, "Total Value:  %s\n", currency.Pair(summary.TotalValue))
	_, _ = fmt.Fprintf(out, "Holdings:     %d\n", summary.TotalHoldings)
	for _, s := range summary.Sectors {
		_, _ = fmt.Fprintf(out, "  %-20s %d\n", s.Sector, s.Count)
	}
	return nil
}

func init() {
	var opts holdingsOptions

	holdingsCmd := newHoldingsCmd(opts)
	holdingsCmd.RunE = withClient(&opts.clientOptions, func(cmd *cobra.Command, args []string) error {
		return runHoldings(cmd, opts)
	})

	rootCmd.AddCommand(holdingsCmd)
}
