package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"contact-manager/internal/domains/contact/model"
)

const dateLayout = "Jan 2, 2006"

// ListModel shows every contact in a table. It refetches whenever the
// parent's refresh key changes and deletes after a y/n confirmation.
type ListModel struct {
	api     ContactAPI
	timeout time.Duration
	keys    listKeys

	table    table.Model
	contacts []model.Contact
	active   bool

	loading    bool
	banner     string
	confirming *model.Contact
	deleting   bool
	refreshKey int
}

// NewListModel creates a list that loads on Init.
func NewListModel(api ContactAPI, timeout time.Duration) ListModel {
	t := table.New(
		table.WithColumns(columns(60)),
		table.WithHeight(12),
	)

	return ListModel{
		api:     api,
		timeout: timeout,
		keys:    ListKeyMap(),
		table:   t,
		loading: true,
	}
}

// columns sizes Name, Email, Phone and Date Added to fit width
func columns(width int) []table.Column {
	if width < 60 {
		width = 60
	}
	date := 14
	phone := 16
	rest := width - date - phone - 8
	name := rest * 2 / 5
	email := rest - name
	return []table.Column{
		{Title: "Name", Width: name},
		{Title: "Email", Width: email},
		{Title: "Phone", Width: phone},
		{Title: "Date Added", Width: date},
	}
}

func (m ListModel) Init() tea.Cmd {
	return fetchContacts(m.api, m.timeout)
}

// Focus gives the table keyboard focus.
func (m *ListModel) Focus() {
	m.active = true
	m.table.Focus()
}

// Blur drops keyboard focus and any pending confirmation.
func (m *ListModel) Blur() {
	m.active = false
	m.confirming = nil
	m.table.Blur()
}

// SetSize fits the table into the pane.
func (m *ListModel) SetSize(width, height int) {
	m.table.SetColumns(columns(width))
	m.table.SetWidth(width)
	if height > 8 {
		m.table.SetHeight(height - 8)
	}
}

// SetRefreshKey refetches when key differs from the last one seen.
func (m *ListModel) SetRefreshKey(key int) tea.Cmd {
	if key == m.refreshKey {
		return nil
	}
	m.refreshKey = key
	return m.load()
}

func (m *ListModel) load() tea.Cmd {
	m.loading = true
	m.banner = ""
	return fetchContacts(m.api, m.timeout)
}

func (m ListModel) Contacts() []model.Contact { return m.contacts }

func (m ListModel) Banner() string { return m.banner }

func (m ListModel) Loading() bool { return m.loading }

// Confirming returns the contact awaiting delete confirmation, if any.
func (m ListModel) Confirming() *model.Contact { return m.confirming }

func (m ListModel) RefreshKey() int { return m.refreshKey }

// Update handles keys while focused plus the results of its own commands.
func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ContactsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			// Previous rows stay on screen
			m.banner = failureText(msg.Err, MsgFetchFailed, MsgFetchError)
			return m, nil
		}
		m.setContacts(msg.Contacts)
		return m, nil

	case ContactDeletedMsg:
		m.deleting = false
		if msg.Err != nil {
			m.banner = failureText(msg.Err, MsgDeleteFailed, MsgDeleteError)
			return m, nil
		}
		return m, mutated

	case tea.KeyMsg:
		if !m.active {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ListModel) handleKey(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	if m.confirming != nil {
		target := m.confirming
		m.confirming = nil
		if key.Matches(msg, m.keys.Confirm) {
			m.deleting = true
			return m, deleteContact(m.api, m.timeout, target.ID)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Delete):
		if m.deleting {
			return m, nil
		}
		if sel := m.selected(); sel != nil {
			c := *sel
			m.confirming = &c
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.load()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ListModel) setContacts(contacts []model.Contact) {
	if contacts == nil {
		contacts = []model.Contact{}
	}
	m.contacts = contacts

	rows := make([]table.Row, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, table.Row{
			c.Name,
			c.Email,
			c.Phone,
			c.CreatedAt.Local().Format(dateLayout),
		})
	}
	m.table.SetRows(rows)

	if len(rows) > 0 && m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m ListModel) selected() *model.Contact {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.contacts) {
		return nil
	}
	return &m.contacts[i]
}

// View renders the list pane.
func (m ListModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Contacts List"))
	b.WriteString("\n")

	if m.banner != "" {
		b.WriteString(bannerStyle.Render(m.banner))
		b.WriteString("\n")
	}

	switch {
	case m.loading && len(m.contacts) == 0:
		b.WriteString(mutedStyle.Render(MsgLoadingList))
		b.WriteString("\n")
	case len(m.contacts) == 0:
		b.WriteString(mutedStyle.Render(MsgEmptyList))
		b.WriteString("\n")
	default:
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if m.confirming != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Delete %s? (y/n)", m.confirming.Name)))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("Total contacts: %d", len(m.contacts))))
	return b.String()
}
