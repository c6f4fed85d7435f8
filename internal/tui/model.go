package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the root program model. It owns the refresh counter: every
// successful mutation bumps it and the list refetches when it changes.
type Model struct {
	form FormModel
	list ListModel
	keys globalKeys
	help help.Model

	focus      Focus
	refreshKey int

	width  int
	height int
}

// NewModel wires a form and a list to api. timeout bounds each request.
func NewModel(api ContactAPI, timeout time.Duration) Model {
	m := Model{
		form:  NewFormModel(api, timeout),
		list:  NewListModel(api, timeout),
		keys:  GlobalKeyMap(),
		help:  help.New(),
		focus: FocusForm,
	}
	m.form.Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.list.Init()
}

func (m Model) Focus() Focus { return m.focus }

func (m Model) RefreshKey() int { return m.refreshKey }

func (m Model) Form() FormModel { return m.form }

func (m Model) List() ListModel { return m.list }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		_, listWidth := PaneWidths(msg.Width)
		m.list.SetSize(listWidth-4, msg.Height-4)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.SwitchFocus) && m.list.Confirming() == nil:
			m.toggleFocus()
			return m, nil
		}

		if m.focus == FocusForm {
			m.form, cmd = m.form.Update(msg)
		} else {
			m.list, cmd = m.list.Update(msg)
		}
		return m, cmd

	case MutatedMsg:
		m.refreshKey++
		return m, m.list.SetRefreshKey(m.refreshKey)

	case ContactCreatedMsg, NoticeExpiredMsg:
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case ContactsLoadedMsg, ContactDeletedMsg:
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) toggleFocus() {
	if m.focus == FocusForm {
		m.focus = FocusList
		m.form.Blur()
		m.list.Focus()
		return
	}
	m.focus = FocusForm
	m.list.Blur()
	m.form.Focus()
}

func (m Model) View() string {
	formStyle, listStyle := FocusedBorder(), UnfocusedBorder()
	var helpKeys help.KeyMap = m.form.keys
	if m.focus == FocusList {
		formStyle, listStyle = UnfocusedBorder(), FocusedBorder()
		helpKeys = m.list.keys
	}

	if m.width > 0 {
		formWidth, listWidth := PaneWidths(m.width)
		formStyle = formStyle.Width(formWidth - 2)
		listStyle = listStyle.Width(listWidth - 2)
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		formStyle.Render(m.form.View()),
		listStyle.Render(m.list.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Contact Manager"),
		panes,
		m.help.View(helpKeys),
	)
}
