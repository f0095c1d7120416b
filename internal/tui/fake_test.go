package tui

import (
	"context"
	"sync"
	"time"

	"github.com/jonandersen/folio/internal/config"
)

type quantityUpdate struct {
	Symbol   string
	Quantity float64
}

// fakeClient is an in-memory PortfolioClient.
type fakeClient struct {
	mu sync.Mutex

	holdings      []Holding
	searchResults []SearchResult

	listErr   error
	addErr    error
	deleteErr error
	updateErr error
	searchErr error
	logoErr   error

	listCalls  int
	added      [][2]string
	deleted    []string
	updates    []quantityUpdate
	queries    []string
	logoChecks []string
}

func newFakeClient(holdings ...Holding) *fakeClient {
	return &fakeClient{holdings: holdings}
}

func (f *fakeClient) ListHoldings(ctx context.Context) ([]Holding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]Holding, len(f.holdings))
	copy(out, f.holdings)
	return out, nil
}

func (f *fakeClient) AddHolding(ctx context.Context, symbol, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, [2]string{symbol, name})
	if f.addErr != nil {
		return f.addErr
	}
	f.holdings = append(f.holdings, Holding{Symbol: symbol, Name: name, Price: 100})
	return nil
}

func (f *fakeClient) DeleteHolding(ctx context.Context, symbol string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, symbol)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.holdings[:0]
	for _, h := range f.holdings {
		if h.Symbol != symbol {
			kept = append(kept, h)
		}
	}
	f.holdings = kept
	return nil
}

func (f *fakeClient) UpdateQuantity(ctx context.Context, symbol string, quantity float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, quantityUpdate{Symbol: symbol, Quantity: quantity})
	return f.updateErr
}

func (f *fakeClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults, nil
}

func (f *fakeClient) CheckLogo(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoChecks = append(f.logoChecks, url)
	return f.logoErr
}

func testHoldings() []Holding {
	return []Holding{
		{Symbol: "AAPL", Name: "Apple Inc.", Industry: "Technology", Price: 150, Change: 1.25, Quantity: 10},
		{Symbol: "XOM", Name: "Exxon Mobil", Industry: "Energy", Price: 10, Change: -0.5, Quantity: 1},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		APIBaseURL:     "http://localhost:8000",
		RequestTimeout: 5 * time.Second,
		RateLimit:      10,
	}
}
