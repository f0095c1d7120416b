package tui

import (
	"context"

	"github.com/jonandersen/folio/pkg/folioapi"
)

// Type aliases for API models so TUI code can use short names.
type (
	Holding      = folioapi.Holding
	SearchResult = folioapi.SearchResult
)

// PortfolioClient is the part of folioapi.Client the dashboard talks to.
type PortfolioClient interface {
	ListHoldings(ctx context.Context) ([]Holding, error)
	AddHolding(ctx context.Context, symbol, name string) error
	DeleteHolding(ctx context.Context, symbol string) error
	UpdateQuantity(ctx context.Context, symbol string, quantity float64) error
	Search(ctx context.Context, query string) ([]SearchResult, error)
	CheckLogo(ctx context.Context, url string) error
}

var _ PortfolioClient = (*folioapi.Client)(nil)
