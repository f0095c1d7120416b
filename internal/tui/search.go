package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonandersen/folio/internal/logging"
	"github.com/jonandersen/folio/pkg/folioapi"
)

// SearchDebounce is the quiet period after the last keystroke before a
// search is sent.
const SearchDebounce = 300 * time.Millisecond

// NoResultsText is the inert row shown when a search finds nothing usable.
const NoResultsText = "No results found"

// SearchModel is the symbol search box and its result dropdown.
type SearchModel struct {
	Input     textinput.Model
	Results   []SearchResult
	Visible   bool
	NoResults bool
	Cursor    int
	Debounce  time.Duration

	client   PortfolioClient
	logger   logging.Logger
	onSelect func(symbol, name string) tea.Cmd
	seq      uint64
	timeout  time.Duration
}

// NewSearchModel creates a search box. onSelect is called with the symbol and
// display name of the chosen result.
func NewSearchModel(client PortfolioClient, logger logging.Logger, onSelect func(symbol, name string) tea.Cmd) *SearchModel {
	if logger == nil {
		logger = logging.Nop()
	}
	ti := textinput.New()
	ti.Placeholder = "Search stocks (e.g., AAPL)"
	ti.CharLimit = 64
	ti.Width = 40

	return &SearchModel{
		Input:    ti,
		Debounce: SearchDebounce,
		client:   client,
		logger:   logger,
		onSelect: onSelect,
		timeout:  DefaultRequestTimeout,
	}
}

// Focus puts the cursor in the search box.
func (m *SearchModel) Focus() tea.Cmd {
	return m.Input.Focus()
}

// Focused reports whether the search box has the cursor.
func (m *SearchModel) Focused() bool {
	return m.Input.Focused()
}

// Blur leaves the search box and hides the dropdown. Searches still in
// flight are discarded.
func (m *SearchModel) Blur() {
	m.Input.Blur()
	m.hide()
	m.seq++
}

func (m *SearchModel) hide() {
	m.Visible = false
	m.NoResults = false
	m.Results = nil
	m.Cursor = 0
}

// Update handles messages for the search box.
func (m *SearchModel) Update(msg tea.Msg) (*SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case SearchTickMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		return m, m.search(msg.Seq, msg.Query)

	case SearchResultsMsg:
		if msg.Seq != m.seq {
			m.logger.Debugf("discarding stale search results %d", msg.Seq)
			return m, nil
		}
		m.Results = folioapi.Candidates(msg.Results, folioapi.MaxSearchResults)
		m.NoResults = len(m.Results) == 0
		m.Visible = true
		m.Cursor = 0
		return m, nil

	case SearchErrorMsg:
		if msg.Seq == m.seq {
			m.logger.Warnf("search failed: %v", msg.Err)
		}
		return m, nil

	case tea.KeyMsg:
		if !m.Input.Focused() {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *SearchModel) handleKey(msg tea.KeyMsg) (*SearchModel, tea.Cmd) {
	switch msg.String() {
	case "up", "ctrl+p":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.Cursor < len(m.Results)-1 {
			m.Cursor++
		}
		return m, nil
	case "enter":
		return m, m.selectCurrent()
	}

	before := m.Input.Value()
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if m.Input.Value() == before {
		return m, cmd
	}

	m.seq++
	query := strings.TrimSpace(m.Input.Value())
	if query == "" {
		m.hide()
		return m, cmd
	}

	seq := m.seq
	tick := tea.Tick(m.Debounce, func(time.Time) tea.Msg {
		return SearchTickMsg{Seq: seq, Query: query}
	})
	return m, tea.Batch(cmd, tick)
}

// selectCurrent hands the highlighted result to onSelect and resets the box.
func (m *SearchModel) selectCurrent() tea.Cmd {
	if !m.Visible || m.NoResults || m.Cursor >= len(m.Results) {
		return nil
	}
	r := m.Results[m.Cursor]

	m.hide()
	m.Input.Reset()
	m.seq++

	if m.onSelect == nil {
		return nil
	}
	return m.onSelect(r.Symbol, r.DisplayName())
}

func (m *SearchModel) search(seq uint64, query string) tea.Cmd {
	client, timeout := m.client, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		results, err := client.Search(ctx, query)
		if err != nil {
			return SearchErrorMsg{Seq: seq, Err: err}
		}
		return SearchResultsMsg{Seq: seq, Results: results}
	}
}

// View renders the search box and, when visible, the dropdown.
func (m *SearchModel) View() string {
	var b strings.Builder
	b.WriteString(InputStyle.Render(m.Input.View()))

	if !m.Visible {
		return b.String()
	}
	b.WriteString("\n")

	if m.NoResults {
		b.WriteString(DropdownStyle.Render(LabelStyle.Render(NoResultsText)))
		return b.String()
	}

	rows := make([]string, 0, len(m.Results)+1)
	for i, r := range m.Results {
		row := fmt.Sprintf("%-8s  %s", r.Symbol, truncate(r.Description, 40))
		if i == m.Cursor {
			rows = append(rows, SelectedRowStyle.Render("> "+row))
			continue
		}
		rows = append(rows, "  "+row)
	}
	if m.Cursor < len(m.Results) {
		r := m.Results[m.Cursor]
		logo := folioapi.NewLogo(r.Symbol, "", folioapi.ResultLogoSize)
		rows = append(rows, LabelStyle.Render("  "+logo.URL()))
	}
	b.WriteString(DropdownStyle.Render(strings.Join(rows, "\n")))
	return b.String()
}
