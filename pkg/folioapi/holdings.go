package folioapi

import (
	"context"
	"fmt"
	"strings"
)

const (
	pathStocks      = "/api/stocks"
	pathAddStock    = "/api/add-stock"
	pathDeleteStock = "/api/delete-stock"
	pathUpdateStock = "/api/update-stock"
)

// ListHoldings retrieves every holding with its current price.
func (c *Client) ListHoldings(ctx context.Context) ([]Holding, error) {
	var holdings []Holding
	if err := c.get(ctx, pathStocks, nil, &holdings); err != nil {
		return nil, fmt.Errorf("failed to fetch holdings: %w", err)
	}
	if holdings == nil {
		holdings = []Holding{}
	}
	return holdings, nil
}

// AddHolding adds a symbol to the portfolio. Adding a symbol that is already
// held is left to the backend.
func (c *Client) AddHolding(ctx context.Context, symbol, name string) error {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	var ack statusResponse
	if err := c.post(ctx, pathAddStock, addRequest{Symbol: symbol, Name: name}, &ack); err != nil {
		return fmt.Errorf("failed to add %s: %w", symbol, err)
	}
	return nil
}

// DeleteHolding removes a symbol from the portfolio.
func (c *Client) DeleteHolding(ctx context.Context, symbol string) error {
	var ack statusResponse
	if err := c.post(ctx, pathDeleteStock, deleteRequest{Symbol: symbol}, &ack); err != nil {
		return fmt.Errorf("failed to delete %s: %w", symbol, err)
	}
	return nil
}

// UpdateQuantity sets the owned quantity of a symbol.
func (c *Client) UpdateQuantity(ctx context.Context, symbol string, quantity float64) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must not be negative: %v", quantity)
	}
	var ack statusResponse
	if err := c.post(ctx, pathUpdateStock, updateRequest{Symbol: symbol, Quantity: quantity}, &ack); err != nil {
		return fmt.Errorf("failed to update %s: %w", symbol, err)
	}
	return nil
}
