package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonandersen/folio/internal/output"
	"github.com/jonandersen/folio/pkg/folioapi"
)

// searchOptions holds dependencies for the search command.
type searchOptions struct {
	clientOptions
	limit int
}

// newSearchCmd creates the search command with the given options.
func newSearchCmd(opts searchOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search for symbols",
		Long: `Search the backend for symbols matching a company name or ticker.
At most 10 candidates are shown.

Examples:
  folio search apple
  folio search "bank of america" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, args)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runSearch(cmd *cobra.Command, opts searchOptions, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}
	limit := opts.limit
	if limit <= 0 || limit > folioapi.MaxSearchResults {
		limit = folioapi.MaxSearchResults
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.requestTimeout())
	defer cancel()

	results, err := opts.newClient().Search(ctx, query)
	if err != nil {
		return err
	}
	candidates := folioapi.Candidates(results, limit)

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	if opts.jsonMode {
		return formatter.Print(candidates)
	}

	if len(candidates) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No results found")
		return nil
	}

	headers := []string{"Symbol", "Description", "Type"}
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, []string{c.Symbol, c.DisplayName(), c.Type})
	}
	return formatter.Table(headers, rows)
}

func init() {
	var opts searchOptions

	searchCmd := newSearchCmd(opts)
	searchCmd.RunE = withClient(&opts.clientOptions, func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, opts, args)
	})
	searchCmd.Flags().IntVarP(&opts.limit, "limit", "n", folioapi.MaxSearchResults, "Maximum number of results (1-10)")

	rootCmd.AddCommand(searchCmd)
}
