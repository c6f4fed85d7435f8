package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-manager/internal/domains/contact/model"
)

func newTestModel(api ContactAPI) Model {
	m := NewModel(api, time.Second)
	m.form.noticeTTL = time.Millisecond
	return m
}

// update feeds msg to m and returns the concrete model
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// drain feeds every message produced by cmd back into m until none remain
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := runCmd(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]

		var next tea.Cmd
		m, next = update(t, m, msg)
		queue = append(queue, runCmd(next)...)
	}
	return m
}

func TestNewModel_Defaults(t *testing.T) {
	m := newTestModel(&fakeAPI{})

	assert.Equal(t, FocusForm, m.Focus())
	assert.Equal(t, 0, m.RefreshKey())
	assert.True(t, m.List().Loading())
	assert.NotNil(t, m.Init())
}

func TestModel_InitLoadsList(t *testing.T) {
	api := &fakeAPI{contacts: []model.Contact{contactFixture("1", "Ada")}}
	m := newTestModel(api)

	m = drain(t, m, m.Init())
	assert.Len(t, m.List().Contacts(), 1)
	assert.Equal(t, 1, api.listCalls)
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := newTestModel(&fakeAPI{})

	_, cmd := update(t, m, keyCtrlC)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_TabSwitchesFocus(t *testing.T) {
	m := newTestModel(&fakeAPI{})

	m, _ = update(t, m, keyTab)
	assert.Equal(t, FocusList, m.Focus())

	// Keys now go to the list, not the form
	m, _ = update(t, m, runes("x"))
	assert.Empty(t, m.Form().Value(model.FieldName))

	m, _ = update(t, m, keyTab)
	assert.Equal(t, FocusForm, m.Focus())

	m, _ = update(t, m, runes("x"))
	assert.Equal(t, "x", m.Form().Value(model.FieldName))
}

func TestModel_TabCancelsPendingDelete(t *testing.T) {
	api := &fakeAPI{contacts: []model.Contact{contactFixture("1", "Ada")}}
	m := newTestModel(api)
	m = drain(t, m, m.Init())

	m, _ = update(t, m, keyTab)
	m, _ = update(t, m, runes("d"))
	require.NotNil(t, m.List().Confirming())

	m, _ = update(t, m, keyTab)
	assert.Equal(t, FocusList, m.Focus())
	// tab is not y, so the pending delete is cancelled instead
	assert.Nil(t, m.List().Confirming())
}

func TestModel_MutationBumpsRefreshKey(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(api)
	m = drain(t, m, m.Init())

	m, cmd := update(t, m, MutatedMsg{})
	assert.Equal(t, 1, m.RefreshKey())
	require.NotNil(t, cmd)

	m = drain(t, m, cmd)
	assert.Equal(t, 2, api.listCalls)
	assert.Equal(t, 1, m.List().RefreshKey())
}

func TestModel_AddContactRefreshesList(t *testing.T) {
	api := &fakeAPI{contacts: []model.Contact{contactFixture("1", "Ada")}}
	m := newTestModel(api)
	m = drain(t, m, m.Init())

	m.form = fillForm(m.form, "Grace Hopper", "grace@example.com", "555-0199")
	m, cmd := update(t, m, keyCtrlS)
	require.True(t, m.Form().Submitting())

	m = drain(t, m, cmd)

	assert.False(t, m.Form().Submitting())
	assert.Equal(t, 1, m.RefreshKey())
	require.Len(t, m.List().Contacts(), 2)
	assert.Equal(t, "Grace Hopper", m.List().Contacts()[0].Name)
	// notice ttl elapsed while draining
	assert.Empty(t, m.Form().Notice())
}

func TestModel_DeleteContactRefreshesList(t *testing.T) {
	api := &fakeAPI{contacts: []model.Contact{
		contactFixture("2", "Grace"),
		contactFixture("1", "Ada"),
	}}
	m := newTestModel(api)
	m = drain(t, m, m.Init())

	m, _ = update(t, m, keyTab)
	m, _ = update(t, m, runes("d"))
	m, cmd := update(t, m, runes("y"))
	m = drain(t, m, cmd)

	assert.Equal(t, []string{"2"}, api.deleted)
	assert.Equal(t, 1, m.RefreshKey())
	require.Len(t, m.List().Contacts(), 1)
	assert.Equal(t, "Ada", m.List().Contacts()[0].Name)
}

func TestModel_ViewRendersBothPanes(t *testing.T) {
	m := newTestModel(&fakeAPI{})
	m = drain(t, m, m.Init())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()

	assert.Contains(t, view, "Add New Contact")
	assert.Contains(t, view, "Contacts List")
	assert.Contains(t, view, MsgEmptyList)
}
