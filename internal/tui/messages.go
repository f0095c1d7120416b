package tui

import "time"

// Message types for async operations

// HoldingsLoadedMsg is sent when a load of the holdings list succeeds.
type HoldingsLoadedMsg struct {
	Seq      uint64
	Holdings []Holding
}

// HoldingsErrorMsg is sent when a load of the holdings list fails.
type HoldingsErrorMsg struct {
	Seq uint64
	Err error
}

// QuantitySavedMsg is sent when a quantity update is accepted.
type QuantitySavedMsg struct {
	Symbol string
	Seq    uint64
}

// QuantityErrorMsg is sent when a quantity update fails.
type QuantityErrorMsg struct {
	Symbol string
	Seq    uint64
	Err    error
}

// HoldingAddedMsg is sent when a symbol was added.
type HoldingAddedMsg struct {
	Symbol string
}

// HoldingAddErrorMsg is sent when adding a symbol fails.
type HoldingAddErrorMsg struct {
	Symbol string
	Err    error
}

// HoldingRemovedMsg is sent when a symbol was deleted.
type HoldingRemovedMsg struct {
	Symbol string
}

// HoldingRemoveErrorMsg is sent when deleting a symbol fails.
type HoldingRemoveErrorMsg struct {
	Symbol string
	Err    error
}

// SearchTickMsg fires when the debounce window of a keystroke closes.
type SearchTickMsg struct {
	Seq   uint64
	Query string
}

// SearchResultsMsg carries the response to a search.
type SearchResultsMsg struct {
	Seq     uint64
	Results []SearchResult
}

// SearchErrorMsg is sent when a search fails.
type SearchErrorMsg struct {
	Seq uint64
	Err error
}

// LogoCheckedMsg reports whether a logo URL could be loaded.
type LogoCheckedMsg struct {
	Symbol string
	URL    string
	Err    error
}

// NotifyMsg raises a blocking notification.
type NotifyMsg struct {
	Text string
}

// TickMsg is sent periodically for auto-refresh.
type TickMsg time.Time
