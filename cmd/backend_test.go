package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonandersen/folio/pkg/folioapi"
)

// fakeBackend is an in-memory portfolio server.
type fakeBackend struct {
	mu       sync.Mutex
	holdings []folioapi.Holding
	results  []folioapi.SearchResult
	queries  []string
	fail     int
}

func newFakeBackend(t *testing.T, holdings ...folioapi.Holding) (*fakeBackend, *httptest.Server) {
	t.Helper()
	b := &fakeBackend{holdings: holdings}
	server := httptest.NewServer(http.HandlerFunc(b.serveHTTP))
	t.Cleanup(server.Close)
	return b, server
}

func (b *fakeBackend) serveHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fail != 0 {
		w.WriteHeader(b.fail)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "backend unavailable"})
		return
	}

	var req struct {
		Symbol   string  `json:"symbol"`
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
	}
	if r.Method == http.MethodPost {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	switch r.URL.Path {
	case "/api/stocks":
		writeJSON(w, b.holdings)
	case "/api/search":
		b.queries = append(b.queries, r.URL.Query().Get("q"))
		writeJSON(w, folioapi.SearchResponse{Count: len(b.results), Result: b.results})
	case "/api/add-stock":
		b.holdings = append(b.holdings, folioapi.Holding{Symbol: req.Symbol, Name: req.Name, Quantity: 1})
		writeJSON(w, map[string]string{"status": "success"})
	case "/api/delete-stock":
		kept := b.holdings[:0]
		for _, h := range b.holdings {
			if h.Symbol != req.Symbol {
				kept = append(kept, h)
			}
		}
		b.holdings = kept
		writeJSON(w, map[string]string{"status": "success"})
	case "/api/update-stock":
		for i := range b.holdings {
			if b.holdings[i].Symbol == req.Symbol {
				b.holdings[i].Quantity = req.Quantity
			}
		}
		writeJSON(w, map[string]string{"status": "success"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *fakeBackend) find(symbol string) (folioapi.Holding, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, h := range b.holdings {
		if h.Symbol == symbol {
			return h, true
		}
	}
	return folioapi.Holding{}, false
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func testClientOptions(baseURL string) clientOptions {
	return clientOptions{
		baseURL: baseURL,
		timeout: 5 * time.Second,
	}
}

func testHoldings() []folioapi.Holding {
	return []folioapi.Holding{
		{Symbol: "AAPL", Name: "Apple Inc.", Industry: "Technology", Price: 150, Change: 1.25, Quantity: 10},
		{Symbol: "XOM", Name: "Exxon Mobil", Industry: "Energy", Price: 100, Change: -0.5, Quantity: 2},
		{Symbol: "MSFT", Name: "Microsoft", Industry: "Technology", Price: 400, Change: 0, Quantity: 1},
	}
}
