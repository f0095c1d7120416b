package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jonandersen/folio/internal/currency"
	"github.com/jonandersen/folio/internal/portfolio"
	"github.com/jonandersen/folio/pkg/folioapi"
)

// PortfolioState represents the loading state of portfolio data.
type PortfolioState int

const (
	PortfolioStateLoading PortfolioState = iota
	PortfolioStateLoaded
	PortfolioStateError
)

// PortfolioMode represents the input mode of the holdings list.
type PortfolioMode int

const (
	PortfolioModeNormal PortfolioMode = iota
	PortfolioModeEditing
	PortfolioModeDeleting
)

// cardHeight is the rendered height of one holding card, borders included.
const cardHeight = 6

// PortfolioModel holds the state for the holdings view.
type PortfolioModel struct {
	State       PortfolioState
	Err         error
	LastUpdated time.Time
	Mode        PortfolioMode
	Selected    int
	EditInput   textinput.Model
	Target      string

	// BaseURL is named in the load error hint.
	BaseURL string

	controller *HoldingsController
	client     PortfolioClient
	logos      map[string]*folioapi.Logo
	probed     map[string]bool
	height     int
}

// NewPortfolioModel creates a new holdings view over controller.
func NewPortfolioModel(controller *HoldingsController, client PortfolioClient, baseURL string) *PortfolioModel {
	ti := textinput.New()
	ti.Placeholder = "Quantity"
	ti.CharLimit = 20
	ti.Width = 12

	return &PortfolioModel{
		State:      PortfolioStateLoading,
		BaseURL:    baseURL,
		EditInput:  ti,
		controller: controller,
		client:     client,
		logos:      make(map[string]*folioapi.Logo),
		probed:     make(map[string]bool),
		height:     4 * cardHeight,
	}
}

// SetHeight sets the height available to the card list.
func (m *PortfolioModel) SetHeight(height int) {
	m.height = height
}

// SelectedEntry returns the entry under the cursor.
func (m *PortfolioModel) SelectedEntry() (portfolio.Entry, bool) {
	entries := m.controller.Book().Entries()
	if m.Selected < 0 || m.Selected >= len(entries) {
		return portfolio.Entry{}, false
	}
	return entries[m.Selected], true
}

// Update handles messages for the holdings view.
func (m *PortfolioModel) Update(msg tea.Msg) (*PortfolioModel, tea.Cmd) {
	c := m.controller

	switch msg := msg.(type) {
	case HoldingsLoadedMsg:
		if !c.HandleLoaded(msg) {
			return m, nil
		}
		m.State = PortfolioStateLoaded
		m.Err = nil
		m.LastUpdated = time.Now()
		m.syncLogos()
		m.clampSelection()
		return m, m.probeSelectedLogo()

	case HoldingsErrorMsg:
		if c.HandleLoadError(msg) {
			m.State = PortfolioStateError
			m.Err = msg.Err
		}
		return m, nil

	case QuantitySavedMsg:
		c.HandleQuantitySaved(msg)
		return m, nil

	case QuantityErrorMsg:
		return m, c.HandleQuantityError(msg)

	case HoldingAddedMsg:
		return m, c.HandleAdded(msg)

	case HoldingAddErrorMsg:
		return m, c.HandleAddError(msg)

	case HoldingRemovedMsg:
		cmd := c.HandleRemoved(msg)
		m.clampSelection()
		return m, tea.Batch(cmd, m.probeSelectedLogo())

	case HoldingRemoveErrorMsg:
		return m, c.HandleRemoveError(msg)

	case LogoCheckedMsg:
		m.handleLogoChecked(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// Reload starts a load, showing the loading state only before the first
// successful load.
func (m *PortfolioModel) Reload() tea.Cmd {
	if !m.controller.Book().Loaded() {
		m.State = PortfolioStateLoading
	}
	return m.controller.LoadPortfolio()
}

// InputActive reports whether the view is capturing keys for a prompt.
func (m *PortfolioModel) InputActive() bool {
	return m.Mode != PortfolioModeNormal
}

func (m *PortfolioModel) handleKey(msg tea.KeyMsg) (*PortfolioModel, tea.Cmd) {
	var cmd tea.Cmd

	switch m.Mode {
	case PortfolioModeEditing:
		switch msg.String() {
		case "enter":
			raw := m.EditInput.Value()
			target := m.Target
			m.Mode = PortfolioModeNormal
			m.Target = ""
			m.EditInput.Blur()
			m.EditInput.Reset()
			if entry, ok := m.controller.Book().Get(target); ok {
				return m, m.controller.SetQuantity(target, raw, entry.Price)
			}
			return m, nil
		case "esc":
			m.Mode = PortfolioModeNormal
			m.Target = ""
			m.EditInput.Blur()
			m.EditInput.Reset()
			return m, nil
		default:
			m.EditInput, cmd = m.EditInput.Update(msg)
			return m, cmd
		}

	case PortfolioModeDeleting:
		switch msg.String() {
		case "y", "Y":
			target := m.Target
			m.Mode = PortfolioModeNormal
			m.Target = ""
			return m, m.controller.RemoveHolding(target)
		case "n", "N", "esc":
			m.Mode = PortfolioModeNormal
			m.Target = ""
		}
		return m, nil
	}

	entries := m.controller.Book().Entries()
	switch msg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
			return m, m.probeSelectedLogo()
		}
	case "down", "j":
		if m.Selected < len(entries)-1 {
			m.Selected++
			return m, m.probeSelectedLogo()
		}
	case "e":
		entry, ok := m.SelectedEntry()
		if !ok || entry.State == portfolio.Removing {
			return m, nil
		}
		m.Mode = PortfolioModeEditing
		m.Target = entry.Symbol
		m.EditInput.SetValue(formatQuantity(entry.Quantity))
		m.EditInput.CursorEnd()
		m.EditInput.Focus()
		return m, textinput.Blink
	case "x", "d":
		entry, ok := m.SelectedEntry()
		if !ok || entry.State == portfolio.Removing {
			return m, nil
		}
		m.Mode = PortfolioModeDeleting
		m.Target = entry.Symbol
	}

	return m, nil
}

func (m *PortfolioModel) clampSelection() {
	n := m.controller.Book().Len()
	if m.Selected >= n {
		m.Selected = n - 1
	}
	if m.Selected < 0 {
		m.Selected = 0
	}
}

// syncLogos keeps the fallback state of logos whose URL did not change.
func (m *PortfolioModel) syncLogos() {
	logos := make(map[string]*folioapi.Logo)
	for _, e := range m.controller.Book().Entries() {
		if old, ok := m.logos[e.Symbol]; ok && (e.Logo == "" || old.Primary == e.Logo) {
			logos[e.Symbol] = old
			continue
		}
		logo := folioapi.NewLogo(e.Symbol, e.Logo, folioapi.CardLogoSize)
		logos[e.Symbol] = &logo
	}
	m.logos = logos
}

// probeSelectedLogo checks the selected card's logo once per URL.
func (m *PortfolioModel) probeSelectedLogo() tea.Cmd {
	entry, ok := m.SelectedEntry()
	if !ok || m.client == nil {
		return nil
	}
	logo, ok := m.logos[entry.Symbol]
	if !ok || logo.FellBack() {
		return nil
	}
	url := logo.URL()
	if m.probed[url] {
		return nil
	}
	m.probed[url] = true

	client, symbol := m.client, entry.Symbol
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return LogoCheckedMsg{Symbol: symbol, URL: url, Err: client.CheckLogo(ctx, url)}
	}
}

func (m *PortfolioModel) handleLogoChecked(msg LogoCheckedMsg) {
	if msg.Err == nil {
		return
	}
	logo, ok := m.logos[msg.Symbol]
	if !ok || logo.URL() != msg.URL {
		return
	}
	logo.Fail()
}

// Logos returns the current logo of every holding.
func (m *PortfolioModel) Logos() map[string]folioapi.Logo {
	out := make(map[string]folioapi.Logo, len(m.logos))
	for sym, l := range m.logos {
		out[sym] = *l
	}
	return out
}

// View renders the holdings view.
func (m *PortfolioModel) View() string {
	var b strings.Builder
	book := m.controller.Book()

	b.WriteString(RenderSummary(book.Summary()))
	b.WriteString("\n\n")

	switch m.State {
	case PortfolioStateLoading:
		b.WriteString("Loading portfolio...")
		return b.String()

	case PortfolioStateError:
		b.WriteString(ErrorStyle.Render(LoadFailedText))
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render(fmt.Sprintf("Make sure the server is running at %s.", m.BaseURL)))
		b.WriteString("\n\nPress 'r' to retry")
		return b.String()
	}

	entries := book.Entries()
	if len(entries) == 0 {
		b.WriteString(LabelStyle.Render("No holdings yet. Press / to search for a stock."))
		return b.String()
	}

	b.WriteString(SummaryStyle.Render("Holdings"))
	b.WriteString(LabelStyle.Render(fmt.Sprintf(" (%d)", len(entries))))
	if book.Loading() {
		b.WriteString(LabelStyle.Render("  refreshing..."))
	}
	b.WriteString("\n")

	opts := CardOptions{
		Selected: m.Selected,
		Logos:    m.Logos(),
		Limit:    m.height / cardHeight,
	}
	if m.Mode == PortfolioModeEditing {
		opts.Editing = m.EditInput.View()
	}
	b.WriteString(RenderCards(entries, opts))

	if m.Mode == PortfolioModeDeleting {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render(fmt.Sprintf("Remove %s from portfolio? (y/n)", m.Target)))
	}

	b.WriteString("\n")
	b.WriteString(LabelStyle.Render(fmt.Sprintf("Updated: %s", m.LastUpdated.Format("3:04:05 PM"))))

	return b.String()
}

// RenderSummary renders the portfolio totals and sector breakdown.
func RenderSummary(s portfolio.Summary) string {
	var b strings.Builder

	b.WriteString(SummaryStyle.Render("Portfolio Summary"))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Total Value: "))
	b.WriteString(ValueStyle.Render(currency.USD(s.TotalValue)))
	b.WriteString(LabelStyle.Render(" (" + currency.EUR(s.TotalValue) + ")"))
	b.WriteString("  ")
	b.WriteString(LabelStyle.Render("Holdings: "))
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%d", s.TotalHoldings)))
	b.WriteString("\n")

	b.WriteString(LabelStyle.Render("Sectors: "))
	if len(s.Sectors) == 0 {
		b.WriteString(LabelStyle.Render("-"))
		return b.String()
	}
	parts := make([]string, 0, len(s.Sectors))
	for _, sc := range s.Sectors {
		parts = append(parts, ValueStyle.Render(sc.Sector)+" "+LabelStyle.Render(fmt.Sprintf("%d", sc.Count)))
	}
	b.WriteString(strings.Join(parts, LabelStyle.Render(" • ")))

	return b.String()
}

// CardOptions controls how RenderCards lays out the card list.
type CardOptions struct {
	// Selected is the index of the highlighted card.
	Selected int
	// Logos maps symbols to their resolved logo. Missing symbols use the derived URL.
	Logos map[string]folioapi.Logo
	// Editing, when set, replaces the selected card's quantity.
	Editing string
	// Limit caps the number of cards shown; the window follows Selected.
	Limit int
}

// RenderCards renders one card per entry.
func RenderCards(entries []portfolio.Entry, opts CardOptions) string {
	start, end := 0, len(entries)
	if opts.Limit > 0 && len(entries) > opts.Limit {
		if opts.Selected >= opts.Limit {
			start = opts.Selected - opts.Limit + 1
		}
		end = start + opts.Limit
		if end > len(entries) {
			end = len(entries)
		}
	}

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		e := entries[i]
		logo, ok := opts.Logos[e.Symbol]
		if !ok {
			logo = folioapi.NewLogo(e.Symbol, e.Logo, folioapi.CardLogoSize)
		}
		editing := ""
		if i == opts.Selected {
			editing = opts.Editing
		}
		cards = append(cards, renderCard(e, logo, i == opts.Selected, editing))
	}

	out := lipgloss.JoinVertical(lipgloss.Left, cards...)
	if start > 0 || end < len(entries) {
		out += "\n" + LabelStyle.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(entries)))
	}
	return out
}

func renderCard(e portfolio.Entry, logo folioapi.Logo, selected bool, editing string) string {
	var b strings.Builder

	title := KeyStyle.Render(e.Symbol)
	if e.Name != "" {
		title += "  " + ValueStyle.Render(truncate(e.Name, 40))
	}
	if marker := confirmationMarker(e.State); marker != "" {
		title += "  " + marker
	}
	b.WriteString(title)
	b.WriteString("\n")

	industry := e.Industry
	if industry == "" {
		industry = portfolio.DefaultSector
	}
	b.WriteString(LabelStyle.Render(industry))
	b.WriteString("   ")
	b.WriteString(LabelStyle.Render(logo.URL()))
	b.WriteString("\n")

	b.WriteString(LabelStyle.Render("Price: "))
	b.WriteString(currency.USD(e.Price))
	b.WriteString(LabelStyle.Render(" (" + currency.EUR(e.Price) + ")"))
	b.WriteString("  ")
	b.WriteString(formatChange(e.Change))
	b.WriteString("\n")

	b.WriteString(LabelStyle.Render("Qty: "))
	if editing != "" {
		b.WriteString(editing)
	} else {
		b.WriteString(ValueStyle.Render(formatQuantity(e.Quantity)))
	}
	b.WriteString("  ")
	b.WriteString(LabelStyle.Render("Total: "))
	b.WriteString(ValueStyle.Render(currency.USD(e.Total())))
	b.WriteString(LabelStyle.Render(" (" + currency.EUR(e.Total()) + ")"))

	style := CardStyle
	if selected {
		style = SelectedCardStyle
	}
	return style.Render(b.String())
}

func confirmationMarker(state portfolio.Confirmation) string {
	switch state {
	case portfolio.Pending:
		return LabelStyle.Render("…")
	case portfolio.Diverged:
		return WarningStyle.Render("!")
	case portfolio.Removing:
		return ErrorStyle.Render("×")
	default:
		return ""
	}
}
