package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-manager/internal/client"
	"contact-manager/internal/domains/contact/model"
)

// loadedList returns a focused list that has completed its first fetch
func loadedList(t *testing.T, api *fakeAPI) ListModel {
	t.Helper()

	m := NewListModel(api, time.Second)
	m.Focus()

	loaded, ok := findMsg[ContactsLoadedMsg](runCmd(m.Init()))
	require.True(t, ok)
	m, _ = m.Update(loaded)
	return m
}

func TestList_LoadingState(t *testing.T) {
	m := NewListModel(&fakeAPI{}, time.Second)

	assert.True(t, m.Loading())
	assert.Contains(t, m.View(), MsgLoadingList)
	assert.Contains(t, m.View(), "Total contacts: 0")
}

func TestList_LoadsContacts(t *testing.T) {
	api := &fakeAPI{contacts: []model.Contact{
		contactFixture("2", "Grace"),
		contactFixture("1", "Ada"),
	}}
	m := loadedList(t, api)

	assert.False(t, m.Loading())
	require.Len(t, m.Contacts(), 2)
	assert.Equal(t, "Grace", m.Contacts()[0].Name)

	view := m.View()
	assert.Contains(t, view, "Grace")
	assert.Contains(t, view, "Jan 15, 2024")
	assert.Contains(t, view, "Total contacts: 2")
	assert.NotContains(t, view, MsgLoadingList)
}

func TestList_EmptyMessage(t *testing.T) {
	m := loadedList(t, &fakeAPI{})

	assert.NotNil(t, m.Contacts())
	assert.Contains(t, m.View(), MsgEmptyList)
	assert.Contains(t, m.View(), "Total contacts: 0")
}

func TestList_FetchFailureKeepsRows(t *testing.T) {
	api := &fakeAPI{contacts: []model.Contact{contactFixture("1", "Ada")}}
	m := loadedList(t, api)

	api.listErr = &client.APIError{Status: 500, Message: "Failed to fetch contacts"}
	loaded, ok := findMsg[ContactsLoadedMsg](runCmd(m.load()))
	require.True(t, ok)
	m, _ = m.Update(loaded)

	assert.Equal(t, MsgFetchFailed, m.Banner())
	require.Len(t, m.Contacts(), 1)
	assert.Contains(t, m.View(), "Total contacts: 1")

	api.listErr = errors.New("connection refused")
	loaded, _ = findMsg[ContactsLoadedMsg](runCmd(m.load()))
	m, _ = m.Update(loaded)
	assert.Equal(t, MsgFetchError, m.Banner())
}

func TestList_RefreshClearsBanner(t *testing.T) {
	m := loadedList(t, &fakeAPI{})
	m.banner = MsgFetchError

	m, cmd := m.Update(runes("r"))
	require.NotNil(t, cmd)
	assert.Empty(t, m.Banner())
	assert.True(t, m.Loading())
}

func TestList_SetRefreshKey(t *testing.T) {
	api := &fakeAPI{}
	m := loadedList(t, api)

	assert.Nil(t, m.SetRefreshKey(0))

	cmd := m.SetRefreshKey(1)
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.RefreshKey())
	assert.Nil(t, m.SetRefreshKey(1))

	_, ok := findMsg[ContactsLoadedMsg](runCmd(cmd))
	assert.True(t, ok)
	assert.Equal(t, 2, api.listCalls)
}

func TestList_DeleteConfirmed(t *testing.T) {
	api := &fakeAPI{contacts: []model.Contact{
		contactFixture("2", "Grace"),
		contactFixture("1", "Ada"),
	}}
	m := loadedList(t, api)

	m, _ = m.Update(keyDown)
	m, cmd := m.Update(runes("d"))
	assert.Nil(t, cmd)
	require.NotNil(t, m.Confirming())
	assert.Equal(t, "1", m.Confirming().ID)
	assert.Contains(t, m.View(), "Delete Ada? (y/n)")

	m, cmd = m.Update(runes("y"))
	require.NotNil(t, cmd)
	assert.Nil(t, m.Confirming())

	deleted, ok := findMsg[ContactDeletedMsg](runCmd(cmd))
	require.True(t, ok)
	assert.Equal(t, "1", deleted.ID)
	assert.Equal(t, []string{"1"}, api.deleted)

	m, cmd = m.Update(deleted)
	_, ok = findMsg[MutatedMsg](runCmd(cmd))
	assert.True(t, ok)
	assert.Empty(t, m.Banner())
}

func TestList_DeleteCancelled(t *testing.T) {
	api := &fakeAPI{contacts: []model.Contact{contactFixture("1", "Ada")}}
	m := loadedList(t, api)

	m, _ = m.Update(runes("d"))
	require.NotNil(t, m.Confirming())

	m, cmd := m.Update(runes("n"))
	assert.Nil(t, cmd)
	assert.Nil(t, m.Confirming())
	assert.Empty(t, api.deleted)
}

func TestList_DeleteOnEmptyListIsNoop(t *testing.T) {
	m := loadedList(t, &fakeAPI{})

	m, cmd := m.Update(runes("d"))
	assert.Nil(t, cmd)
	assert.Nil(t, m.Confirming())
}

func TestList_DeleteFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "not found", err: &client.APIError{Status: 404, Message: "Contact not found"}, want: MsgDeleteFailed},
		{name: "unreachable", err: errors.New("timeout"), want: MsgDeleteError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loadedList(t, &fakeAPI{contacts: []model.Contact{contactFixture("1", "Ada")}})

			m, cmd := m.Update(ContactDeletedMsg{ID: "1", Err: tt.err})
			assert.Nil(t, cmd)
			assert.Equal(t, tt.want, m.Banner())
			assert.Len(t, m.Contacts(), 1)
		})
	}
}

func TestList_BlurCancelsConfirmation(t *testing.T) {
	m := loadedList(t, &fakeAPI{contacts: []model.Contact{contactFixture("1", "Ada")}})
	m, _ = m.Update(runes("d"))
	require.NotNil(t, m.Confirming())

	m.Blur()
	assert.Nil(t, m.Confirming())

	m, cmd := m.Update(runes("d"))
	assert.Nil(t, cmd)
	assert.Nil(t, m.Confirming())
}
