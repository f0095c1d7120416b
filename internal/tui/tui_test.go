package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonandersen/folio/internal/logging"
	"github.com/jonandersen/folio/internal/portfolio"
)

func newTestModel(t *testing.T, client *fakeClient) Model {
	t.Helper()
	m := New(testConfig(), client, logging.Nop())
	m.width = 100
	m.height = 40
	m.ready = true
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)
	return model, cmd
}

// initModel runs Init and applies the first load.
func initModel(t *testing.T, m Model) Model {
	t.Helper()
	cmd := m.Init()
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	return m
}

func TestNew(t *testing.T) {
	m := New(testConfig(), newFakeClient(), nil)
	assert.Equal(t, FocusHoldings, m.focus)
	assert.Equal(t, PortfolioStateLoading, m.portfolio.State)
}

func TestModelInit(t *testing.T) {
	client := newFakeClient(testHoldings()...)
	m := initModel(t, newTestModel(t, client))

	assert.Equal(t, 1, client.listCalls)
	assert.Equal(t, PortfolioStateLoaded, m.portfolio.State)
}

func TestModelView_NotReady(t *testing.T) {
	m := New(testConfig(), newFakeClient(), nil)

	assert.Equal(t, "Loading...", m.View())
}

func TestModelView(t *testing.T) {
	m := initModel(t, newTestModel(t, newFakeClient(testHoldings()...)))

	view := m.View()

	// Should contain header
	assert.Contains(t, view, "folio")
	assert.Contains(t, view, "Holdings")
	// Should contain footer with key hints
	assert.Contains(t, view, "search")
	assert.Contains(t, view, "quit")
	assert.Contains(t, view, "AAPL")
}

func TestModelWindowSize(t *testing.T) {
	m := New(testConfig(), newFakeClient(), nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})

	assert.True(t, m.ready)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 36, m.portfolio.height)
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, newFakeClient())

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelSearchAddsHolding(t *testing.T) {
	client := newFakeClient(testHoldings()...)
	client.searchResults = []SearchResult{{Symbol: "MSFT", Description: "Microsoft Corp"}}
	m := initModel(t, newTestModel(t, client))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.Equal(t, FocusSearch, m.focus)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("MSFT")})
	m, cmd := update(t, m, SearchTickMsg{Seq: m.search.seq, Query: "MSFT"})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	view := m.View()
	assert.Contains(t, view, "Microsoft Corp")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.search.Visible)

	m, reload := update(t, m, cmd())
	require.NotNil(t, reload)
	m, _ = update(t, m, reload())

	assert.Equal(t, [][2]string{{"MSFT", "Microsoft Corp"}}, client.added)
	_, ok := m.holdings.Book().Get("MSFT")
	assert.True(t, ok)
}

func TestModelSearchEscHidesDropdown(t *testing.T) {
	client := newFakeClient()
	client.searchResults = []SearchResult{{Symbol: "AAPL"}}
	m := newTestModel(t, client)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("A")})
	m, cmd := update(t, m, SearchTickMsg{Seq: m.search.seq, Query: "A"})
	m, _ = update(t, m, cmd())
	require.True(t, m.search.Visible)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, FocusHoldings, m.focus)
	assert.False(t, m.search.Visible)
}

func TestModelSearchTypingQDoesNotQuit(t *testing.T) {
	m := newTestModel(t, newFakeClient())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	assert.Equal(t, "q", m.search.Input.Value())
}

func TestModelNotificationBlocksKeys(t *testing.T) {
	client := newFakeClient(testHoldings()...)
	m := initModel(t, newTestModel(t, client))

	m, _ = update(t, m, NotifyMsg{Text: SaveFailedText})
	assert.Contains(t, m.View(), SaveFailedText)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	assert.True(t, m.notice.Visible())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.notice.Visible())
	assert.NotContains(t, m.View(), SaveFailedText)
}

func TestModelAddFailureNotifies(t *testing.T) {
	m := initModel(t, newTestModel(t, newFakeClient(testHoldings()...)))

	m, cmd := update(t, m, HoldingAddErrorMsg{Symbol: "MSFT", Err: assert.AnError})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, "Failed to add stock: Unknown error", m.notice.Text())
}

func TestModelManualRefresh(t *testing.T) {
	client := newFakeClient(testHoldings()...)
	m := initModel(t, newTestModel(t, client))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, 2, client.listCalls)
	assert.Equal(t, PortfolioStateLoaded, m.portfolio.State)
}

func TestModelRefreshTick(t *testing.T) {
	client := newFakeClient(testHoldings()...)
	m := initModel(t, newTestModel(t, client))

	update(t, m, TickMsg(time.Now()))

	assert.True(t, m.holdings.Book().Loading())
}

func TestModelRefreshTickSkippedWhilePending(t *testing.T) {
	client := newFakeClient(testHoldings()...)
	m := initModel(t, newTestModel(t, client))
	require.NotNil(t, m.holdings.SetQuantity("AAPL", "2", 150))

	update(t, m, TickMsg(time.Now()))

	assert.False(t, m.holdings.Book().Loading())
	e, _ := m.holdings.Book().Get("AAPL")
	assert.Equal(t, portfolio.Pending, e.State)
}

func TestModelRefreshDisabled(t *testing.T) {
	m := newTestModel(t, newFakeClient())

	assert.Nil(t, m.tickCmd())

	m.refreshInterval = time.Minute
	assert.NotNil(t, m.tickCmd())
}

func TestModelLoadErrorView(t *testing.T) {
	client := newFakeClient()
	client.listErr = assert.AnError
	m := initModel(t, newTestModel(t, client))

	view := m.View()
	assert.Contains(t, view, LoadFailedText)
	assert.Contains(t, view, "$0.00")
}

func TestModelFooterModes(t *testing.T) {
	m := initModel(t, newTestModel(t, newFakeClient(testHoldings()...)))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Contains(t, m.View(), "confirm")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	assert.Contains(t, m.View(), "save")
}
