package folioapi

import (
	"context"
	"fmt"
	"strings"
)

const pathSearch = "/api/search"

// MaxSearchResults is how many candidates a search shows at most.
const MaxSearchResults = 10

// Search looks up candidate symbols matching query.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	var resp SearchResponse
	if err := c.get(ctx, pathSearch, map[string]string{"q": query}, &resp); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return resp.Result, nil
}

// Candidates keeps the first limit results and drops entries without a symbol.
func Candidates(results []SearchResult, limit int) []SearchResult {
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		if strings.TrimSpace(r.Symbol) == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
