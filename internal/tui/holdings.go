package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonandersen/folio/internal/logging"
	"github.com/jonandersen/folio/internal/portfolio"
)

// DefaultRequestTimeout bounds each backend call made by the dashboard.
const DefaultRequestTimeout = 30 * time.Second

// HoldingsController keeps the holdings book in step with the backend. It
// applies quantity edits optimistically and rebuilds the book from the
// backend after adds and deletes.
//
// Methods returning tea.Cmd change the book synchronously and do the network
// call inside the command. Handle* methods apply the resulting messages.
type HoldingsController struct {
	client  PortfolioClient
	book    *portfolio.Book
	logger  logging.Logger
	timeout time.Duration
}

// NewHoldingsController creates a controller over an empty book.
func NewHoldingsController(client PortfolioClient, logger logging.Logger, timeout time.Duration) *HoldingsController {
	if logger == nil {
		logger = logging.Nop()
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &HoldingsController{
		client:  client,
		book:    portfolio.NewBook(),
		logger:  logger,
		timeout: timeout,
	}
}

// Book returns the holdings book.
func (c *HoldingsController) Book() *portfolio.Book {
	return c.book
}

// LoadPortfolio fetches the full holdings list. Only the response to the
// latest call is applied.
func (c *HoldingsController) LoadPortfolio() tea.Cmd {
	seq := c.book.NextLoad()
	client, timeout := c.client, c.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		holdings, err := client.ListHoldings(ctx)
		if err != nil {
			return HoldingsErrorMsg{Seq: seq, Err: err}
		}
		return HoldingsLoadedMsg{Seq: seq, Holdings: holdings}
	}
}

// HandleLoaded applies a load response. It reports false for stale responses.
func (c *HoldingsController) HandleLoaded(msg HoldingsLoadedMsg) bool {
	if !c.book.FinishLoad(msg.Seq) {
		c.logger.Debugf("discarding stale holdings load %d", msg.Seq)
		return false
	}
	return c.book.Replace(msg.Seq, msg.Holdings)
}

// HandleLoadError records a failed load. It reports false for stale responses.
func (c *HoldingsController) HandleLoadError(msg HoldingsErrorMsg) bool {
	if !c.book.FinishLoad(msg.Seq) {
		c.logger.Debugf("discarding stale holdings error %d: %v", msg.Seq, msg.Err)
		return false
	}
	c.logger.Errorf("failed to load holdings: %v", msg.Err)
	return true
}

// SetQuantity applies a quantity edit locally and saves it in the background.
// Input that is not a finite, non-negative number, or an unknown symbol,
// changes nothing and returns nil.
func (c *HoldingsController) SetQuantity(symbol, raw string, price float64) tea.Cmd {
	quantity, err := portfolio.ParseQuantity(raw)
	if err != nil {
		c.logger.Debugf("ignoring quantity %q for %s: %v", raw, symbol, err)
		return nil
	}

	seq, ok := c.book.SetQuantity(symbol, quantity, price)
	if !ok {
		c.logger.Debugf("ignoring quantity edit for %s", symbol)
		return nil
	}

	client, timeout := c.client, c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := client.UpdateQuantity(ctx, symbol, quantity); err != nil {
			return QuantityErrorMsg{Symbol: symbol, Seq: seq, Err: err}
		}
		return QuantitySavedMsg{Symbol: symbol, Seq: seq}
	}
}

// HandleQuantitySaved confirms a saved edit.
func (c *HoldingsController) HandleQuantitySaved(msg QuantitySavedMsg) {
	if !c.book.ConfirmEdit(msg.Symbol, msg.Seq) {
		c.logger.Debugf("ignoring superseded save of %s (%d)", msg.Symbol, msg.Seq)
	}
}

// HandleQuantityError marks a failed edit diverged and notifies, unless a
// newer edit of the same symbol superseded it. The local value stays on
// screen until the next successful load.
func (c *HoldingsController) HandleQuantityError(msg QuantityErrorMsg) tea.Cmd {
	c.logger.Errorf("failed to save quantity of %s: %v", msg.Symbol, msg.Err)
	if !c.book.FailEdit(msg.Symbol, msg.Seq) && !c.book.IsLatestEdit(msg.Symbol, msg.Seq) {
		return nil
	}
	return Notify(SaveFailedText)
}

// AddHolding adds symbol to the portfolio. Nothing changes locally until the
// reload that follows a successful add.
func (c *HoldingsController) AddHolding(symbol, name string) tea.Cmd {
	client, timeout := c.client, c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := client.AddHolding(ctx, symbol, name); err != nil {
			return HoldingAddErrorMsg{Symbol: symbol, Err: err}
		}
		return HoldingAddedMsg{Symbol: symbol}
	}
}

// HandleAdded reloads the portfolio after an add.
func (c *HoldingsController) HandleAdded(msg HoldingAddedMsg) tea.Cmd {
	c.logger.Infof("added %s", msg.Symbol)
	return c.LoadPortfolio()
}

// HandleAddError reports a failed add.
func (c *HoldingsController) HandleAddError(msg HoldingAddErrorMsg) tea.Cmd {
	c.logger.Errorf("failed to add %s: %v", msg.Symbol, msg.Err)
	return Notify(addFailureText(msg.Err))
}

// RemoveHolding deletes symbol from the portfolio. The entry is flagged
// while the delete is in flight.
func (c *HoldingsController) RemoveHolding(symbol string) tea.Cmd {
	if !c.book.MarkRemoving(symbol) {
		return nil
	}

	client, timeout := c.client, c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := client.DeleteHolding(ctx, symbol); err != nil {
			return HoldingRemoveErrorMsg{Symbol: symbol, Err: err}
		}
		return HoldingRemovedMsg{Symbol: symbol}
	}
}

// HandleRemoved drops the entry and reloads the portfolio.
func (c *HoldingsController) HandleRemoved(msg HoldingRemovedMsg) tea.Cmd {
	c.logger.Infof("removed %s", msg.Symbol)
	c.book.Drop(msg.Symbol)
	return c.LoadPortfolio()
}

// HandleRemoveError restores the entry and reports the failure.
func (c *HoldingsController) HandleRemoveError(msg HoldingRemoveErrorMsg) tea.Cmd {
	c.logger.Errorf("failed to remove %s: %v", msg.Symbol, msg.Err)
	c.book.RestoreRemoving(msg.Symbol)
	return Notify(RemoveFailedText)
}

// CanRefresh reports whether a background refresh may run now: no load is in
// flight and no edit or delete is waiting on the backend.
func (c *HoldingsController) CanRefresh() bool {
	return !c.book.Loading() && !c.book.Busy()
}
