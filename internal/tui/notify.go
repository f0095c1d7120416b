package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonandersen/folio/pkg/folioapi"
)

// Notification texts for failed mutations.
const (
	SaveFailedText       = "Failed to save changes. Please try again."
	AddNetworkFailedText = "Failed to add stock due to network error."
	RemoveFailedText     = "Failed to remove stock."
	LoadFailedText       = "Failed to load stock data."
)

// Notify returns a command that raises a notification with text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Text: text}
	}
}

// addFailureText describes a failed add: the backend's message for
// application errors, a fixed text for network errors.
func addFailureText(err error) string {
	if folioapi.IsTransport(err) {
		return AddNetworkFailedText
	}
	msg := "Unknown error"
	if apiErr, ok := folioapi.AsAPIError(err); ok && strings.TrimSpace(apiErr.Message) != "" {
		msg = apiErr.Message
	}
	return "Failed to add stock: " + msg
}

// NotificationModel is a modal message. While visible it swallows every
// key; enter, esc or space dismiss it. Further notifications queue behind it.
type NotificationModel struct {
	queue []string
}

// NewNotificationModel creates an empty notification model.
func NewNotificationModel() *NotificationModel {
	return &NotificationModel{}
}

// Show queues text for display.
func (m *NotificationModel) Show(text string) {
	m.queue = append(m.queue, text)
}

// Visible reports whether a notification is on screen.
func (m *NotificationModel) Visible() bool {
	return len(m.queue) > 0
}

// Text returns the notification on screen.
func (m *NotificationModel) Text() string {
	if len(m.queue) == 0 {
		return ""
	}
	return m.queue[0]
}

// Update handles keys while the notification is visible.
func (m *NotificationModel) Update(msg tea.Msg) (*NotificationModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.Visible() {
		return m, nil
	}
	switch key.String() {
	case "enter", "esc", " ":
		m.queue = m.queue[1:]
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// View renders the notification box.
func (m *NotificationModel) View() string {
	if !m.Visible() {
		return ""
	}
	var b strings.Builder
	b.WriteString(WarningStyle.Render(m.Text()))
	b.WriteString("\n\n")
	b.WriteString(KeyStyle.Render("enter") + " " + DescStyle.Render("dismiss"))
	return NotificationStyle.Render(b.String())
}
