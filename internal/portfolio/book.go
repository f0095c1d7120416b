package portfolio

import (
	"github.com/jonandersen/folio/pkg/folioapi"
)

// Confirmation tracks whether a holding shown on screen agrees with the backend.
type Confirmation int

const (
	// Confirmed entries match the last successful load or update.
	Confirmed Confirmation = iota
	// Pending entries have a quantity update in flight.
	Pending
	// Diverged entries failed to save; the displayed quantity is local only.
	Diverged
	// Removing entries have a delete in flight.
	Removing
)

// String returns the lower-case name of the state.
func (c Confirmation) String() string {
	switch c {
	case Confirmed:
		return "confirmed"
	case Pending:
		return "pending"
	case Diverged:
		return "diverged"
	case Removing:
		return "removing"
	default:
		return "unknown"
	}
}

// Entry is a holding as displayed, with its confirmation state.
type Entry struct {
	folioapi.Holding
	State Confirmation

	editSeq uint64
	prior   Confirmation
}

// unsettled reports whether a mutation of the entry is waiting on the backend.
func (e Entry) unsettled() bool {
	return e.State == Pending || e.State == Removing
}

// editPending reports whether a quantity save is in flight.
func (e Entry) editPending() bool {
	return e.State == Pending || (e.State == Removing && e.prior == Pending)
}

// Total is the displayed value of the holding.
func (e Entry) Total() float64 {
	return e.Price * e.Quantity
}

// Book is the in-memory list of holdings the dashboard renders from. It is
// the only place displayed quantities live; totals are always derived from it.
//
// A Book is not safe for concurrent use. It is owned by the UI event loop.
type Book struct {
	order   []string
	entries map[string]*Entry
	// lastEdit is the newest edit seq issued per symbol; it survives reloads.
	lastEdit map[string]uint64

	loadSeq  uint64
	editSeq  uint64
	loaded   bool
	inFlight int
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{
		entries:  make(map[string]*Entry),
		lastEdit: make(map[string]uint64),
	}
}

// NextLoad reserves the sequence number for a new load request.
func (b *Book) NextLoad() uint64 {
	b.loadSeq++
	b.inFlight++
	return b.loadSeq
}

// IsCurrentLoad reports whether seq is the most recently dispatched load.
func (b *Book) IsCurrentLoad(seq uint64) bool {
	return seq == b.loadSeq
}

// FinishLoad records that the load with seq has completed, successfully or not.
// It reports whether seq is still current.
func (b *Book) FinishLoad(seq uint64) bool {
	if b.inFlight > 0 {
		b.inFlight--
	}
	return b.IsCurrentLoad(seq)
}

// Loading reports whether any load is in flight.
func (b *Book) Loading() bool {
	return b.inFlight > 0
}

// Loaded reports whether the book has been filled at least once.
func (b *Book) Loaded() bool {
	return b.loaded
}

// Replace swaps in the holdings of load seq. Responses older than the latest
// dispatched load are discarded and Replace returns false.
//
// Entries with a save or delete still in flight keep their state and edit
// seq; a pending quantity also keeps its local value, since the response may
// predate the edit.
func (b *Book) Replace(seq uint64, holdings []folioapi.Holding) bool {
	if !b.IsCurrentLoad(seq) {
		return false
	}

	prev := b.entries
	b.order = make([]string, 0, len(holdings))
	b.entries = make(map[string]*Entry, len(holdings))
	for _, h := range holdings {
		if _, dup := b.entries[h.Symbol]; dup {
			continue
		}
		e := &Entry{Holding: h, State: Confirmed}
		if old, ok := prev[h.Symbol]; ok && old.unsettled() {
			if old.editPending() {
				e.Quantity = old.Quantity
			}
			e.State, e.prior, e.editSeq = old.State, old.prior, old.editSeq
		}
		b.order = append(b.order, h.Symbol)
		b.entries[h.Symbol] = e
	}
	b.loaded = true
	return true
}

// Len returns the number of holdings.
func (b *Book) Len() int {
	return len(b.order)
}

// Get returns the entry for symbol.
func (b *Book) Get(symbol string) (Entry, bool) {
	e, ok := b.entries[symbol]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Entries returns the entries in backend order.
func (b *Book) Entries() []Entry {
	out := make([]Entry, 0, len(b.order))
	for _, sym := range b.order {
		out = append(out, *b.entries[sym])
	}
	return out
}

// Holdings returns the displayed holdings in backend order.
func (b *Book) Holdings() []folioapi.Holding {
	out := make([]folioapi.Holding, 0, len(b.order))
	for _, sym := range b.order {
		out = append(out, b.entries[sym].Holding)
	}
	return out
}

// Summary aggregates the displayed holdings.
func (b *Book) Summary() Summary {
	return ComputeSummary(b.Holdings())
}

// SetQuantity applies a local quantity edit at the given price and marks the
// entry Pending. It returns the edit sequence the save must be confirmed with.
func (b *Book) SetQuantity(symbol string, quantity, price float64) (uint64, bool) {
	e, ok := b.entries[symbol]
	if !ok || quantity < 0 || e.State == Removing {
		return 0, false
	}
	b.editSeq++
	e.Quantity = quantity
	e.Price = price
	e.State = Pending
	e.editSeq = b.editSeq
	b.lastEdit[symbol] = b.editSeq
	return e.editSeq, true
}

// IsLatestEdit reports whether seq is the newest edit issued for symbol,
// even if the entry has since been reloaded or dropped.
func (b *Book) IsLatestEdit(symbol string, seq uint64) bool {
	return seq != 0 && b.lastEdit[symbol] == seq
}

// ConfirmEdit marks a saved edit Confirmed. Results for superseded edits are
// ignored and ConfirmEdit returns false.
func (b *Book) ConfirmEdit(symbol string, seq uint64) bool {
	return b.settleEdit(symbol, seq, Confirmed)
}

// FailEdit marks a failed edit Diverged. The local quantity is kept.
func (b *Book) FailEdit(symbol string, seq uint64) bool {
	return b.settleEdit(symbol, seq, Diverged)
}

func (b *Book) settleEdit(symbol string, seq uint64, state Confirmation) bool {
	e, ok := b.entries[symbol]
	if !ok || e.editSeq != seq {
		return false
	}
	switch {
	case e.State == Pending:
		e.State = state
	case e.State == Removing && e.prior == Pending:
		e.prior = state
	default:
		return false
	}
	return true
}

// MarkRemoving flags an entry while its delete is in flight.
func (b *Book) MarkRemoving(symbol string) bool {
	e, ok := b.entries[symbol]
	if !ok || e.State == Removing {
		return false
	}
	e.prior = e.State
	e.State = Removing
	return true
}

// RestoreRemoving puts an entry back to the state it had before a failed delete.
func (b *Book) RestoreRemoving(symbol string) bool {
	e, ok := b.entries[symbol]
	if !ok || e.State != Removing {
		return false
	}
	e.State = e.prior
	return true
}

// Drop removes an entry whose delete the backend confirmed.
func (b *Book) Drop(symbol string) bool {
	if _, ok := b.entries[symbol]; !ok {
		return false
	}
	delete(b.entries, symbol)
	for i, sym := range b.order {
		if sym == symbol {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// Busy reports whether any entry has a mutation in flight.
func (b *Book) Busy() bool {
	for _, e := range b.entries {
		if e.State == Pending || e.State == Removing {
			return true
		}
	}
	return false
}
