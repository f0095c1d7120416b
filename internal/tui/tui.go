// Package tui implements the full-screen portfolio dashboard.
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jonandersen/folio/internal/config"
	"github.com/jonandersen/folio/internal/logging"
)

// Focus is the part of the screen receiving keys.
type Focus int

const (
	FocusHoldings Focus = iota
	FocusSearch
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	focus  Focus
	width  int
	height int
	ready  bool

	cfg    *config.Config
	logger logging.Logger

	// Child view models
	holdings  *HoldingsController
	portfolio *PortfolioModel
	search    *SearchModel
	notice    *NotificationModel

	// Refresh settings
	refreshInterval time.Duration
}

// New creates a new TUI model.
func New(cfg *config.Config, client PortfolioClient, logger logging.Logger) Model {
	if logger == nil {
		logger = logging.Nop()
	}
	holdings := NewHoldingsController(client, logger, cfg.RequestTimeout)
	search := NewSearchModel(client, logger, holdings.AddHolding)
	search.timeout = holdings.timeout

	return Model{
		focus:           FocusHoldings,
		cfg:             cfg,
		logger:          logger,
		holdings:        holdings,
		portfolio:       NewPortfolioModel(holdings, client, cfg.APIBaseURL),
		search:          search,
		notice:          NewNotificationModel(),
		refreshInterval: cfg.RefreshInterval,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.portfolio.Reload(),
		m.tickCmd(),
	)
}

// tickCmd returns a command that sends a tick message after the refresh
// interval. A zero interval disables auto-refresh.
func (m Model) tickCmd() tea.Cmd {
	if m.refreshInterval <= 0 {
		return nil
	}
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		// Leave room for header, footer, summary and the search box
		listHeight := m.height - 14
		if listHeight < cardHeight {
			listHeight = cardHeight
		}
		m.portfolio.SetHeight(listHeight)

	case NotifyMsg:
		m.notice.Show(msg.Text)

	case HoldingsLoadedMsg, HoldingsErrorMsg,
		QuantitySavedMsg, QuantityErrorMsg,
		HoldingAddedMsg, HoldingAddErrorMsg,
		HoldingRemovedMsg, HoldingRemoveErrorMsg,
		LogoCheckedMsg:
		m.portfolio, cmd = m.portfolio.Update(msg)
		cmds = append(cmds, cmd)

	case SearchTickMsg, SearchResultsMsg, SearchErrorMsg:
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)

	case TickMsg:
		// Skip while a load is running or an edit is unconfirmed
		if m.holdings.CanRefresh() {
			cmds = append(cmds, m.portfolio.Reload())
		}
		cmds = append(cmds, m.tickCmd())
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// A notification blocks everything else until dismissed
	if m.notice.Visible() {
		m.notice, cmd = m.notice.Update(msg)
		return m, cmd
	}

	if m.focus == FocusSearch {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "tab":
			m.search.Blur()
			m.focus = FocusHoldings
			return m, nil
		}
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	// Prompts on the holdings list consume all keys
	if m.portfolio.InputActive() {
		m.portfolio, cmd = m.portfolio.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		// Esc doesn't quit in normal mode
		return m, nil
	case "/", "tab":
		m.focus = FocusSearch
		return m, m.search.Focus()
	case "r":
		// Manual refresh
		return m, m.portfolio.Reload()
	}

	m.portfolio, cmd = m.portfolio.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	content := m.renderContent()

	// Calculate content height
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight

	// Pad content to fill available space
	contentLines := strings.Split(content, "\n")
	for len(contentLines) < contentHeight {
		contentLines = append(contentLines, "")
	}
	if len(contentLines) > contentHeight {
		contentLines = contentLines[:contentHeight]
	}
	content = strings.Join(contentLines, "\n")

	return header + "\n" + content + "\n" + footer
}

// renderHeader renders the header bar.
func (m Model) renderHeader() string {
	title := HeaderStyle.Render("folio")

	section := "Holdings"
	if m.focus == FocusSearch {
		section = "Search"
	}
	headerContent := title + "  " + lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1).
		Render(section)
	headerContent += LabelStyle.Render(m.cfg.APIBaseURL)

	// Pad to full width
	padding := m.width - lipgloss.Width(headerContent)
	if padding > 0 {
		headerContent += strings.Repeat(" ", padding)
	}

	return lipgloss.NewStyle().
		Background(ColorBackground).
		Width(m.width).
		Render(headerContent)
}

// renderContent renders the main content area.
func (m Model) renderContent() string {
	if m.notice.Visible() {
		box := m.notice.View()
		if m.width > 0 && m.height > 2 {
			box = lipgloss.Place(m.width-4, m.height-4, lipgloss.Center, lipgloss.Center, box)
		}
		return ContentStyle.Render(box)
	}

	content := m.search.View() + "\n\n" + m.portfolio.View()
	return ContentStyle.Render(content)
}

// renderFooter renders the footer bar with key hints.
func (m Model) renderFooter() string {
	type hint struct{ key, desc string }
	var keys []hint

	switch {
	case m.notice.Visible():
		keys = []hint{{"enter", "dismiss"}}
	case m.focus == FocusSearch:
		keys = []hint{
			{"↑/↓", "navigate"},
			{"enter", "add"},
			{"esc", "close"},
		}
	case m.portfolio.Mode == PortfolioModeEditing:
		keys = []hint{
			{"enter", "save"},
			{"esc", "cancel"},
		}
	case m.portfolio.Mode == PortfolioModeDeleting:
		keys = []hint{
			{"y", "confirm"},
			{"n", "cancel"},
		}
	default:
		keys = []hint{
			{"↑/↓", "navigate"},
			{"/", "search"},
			{"e", "edit qty"},
			{"x", "remove"},
			{"r", "refresh"},
			{"q", "quit"},
		}
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, KeyStyle.Render(k.key)+" "+DescStyle.Render(k.desc))
	}

	footerContent := strings.Join(parts, "  •  ")

	// Pad to full width
	padding := m.width - lipgloss.Width(footerContent)
	if padding > 0 {
		footerContent += strings.Repeat(" ", padding)
	}

	return lipgloss.NewStyle().
		Background(ColorBackground).
		Width(m.width).
		Render(footerContent)
}
