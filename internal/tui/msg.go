// Package tui is the terminal client for the contacts API: a form that adds
// contacts next to a table that lists and deletes them.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"contact-manager/internal/client"
	"contact-manager/internal/domains/contact/model"
)

// ContactAPI is the server surface the UI needs. *client.Client satisfies it.
type ContactAPI interface {
	List(ctx context.Context) ([]model.Contact, error)
	Create(ctx context.Context, req model.CreateContactRequest) (*model.Contact, error)
	Delete(ctx context.Context, id string) error
}

var _ ContactAPI = (*client.Client)(nil)

// Focus is the component receiving key presses.
type Focus int

const (
	FocusForm Focus = iota
	FocusList
)

// User-facing messages
const (
	MsgContactAdded  = "Contact added successfully!"
	MsgAddFailed     = "Failed to add contact"
	MsgSubmitError   = "Error submitting form"
	MsgFetchFailed   = "Failed to fetch contacts"
	MsgFetchError    = "Error fetching contacts"
	MsgDeleteFailed  = "Failed to delete contact"
	MsgDeleteError   = "Error deleting contact"
	MsgEmptyList     = "No contacts yet. Add one to get started!"
	MsgLoadingList   = "Loading contacts..."
	MsgSubmitting    = "Adding..."
	defaultNoticeTTL = 3 * time.Second
)

// --- tea.Msg types ---

// ContactsLoadedMsg carries the result of a List call.
type ContactsLoadedMsg struct {
	Contacts []model.Contact
	Err      error
}

// ContactCreatedMsg carries the result of a Create call.
type ContactCreatedMsg struct {
	Contact *model.Contact
	Err     error
}

// ContactDeletedMsg carries the result of a Delete call.
type ContactDeletedMsg struct {
	ID  string
	Err error
}

// MutatedMsg tells the parent the server-side collection changed.
type MutatedMsg struct{}

// NoticeExpiredMsg clears the success notice with the same Seq.
type NoticeExpiredMsg struct {
	Seq int
}

// --- commands ---

func fetchContacts(api ContactAPI, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		contacts, err := api.List(ctx)
		return ContactsLoadedMsg{Contacts: contacts, Err: err}
	}
}

func createContact(api ContactAPI, timeout time.Duration, req model.CreateContactRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		created, err := api.Create(ctx, req)
		return ContactCreatedMsg{Contact: created, Err: err}
	}
}

func deleteContact(api ContactAPI, timeout time.Duration, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return ContactDeletedMsg{ID: id, Err: api.Delete(ctx, id)}
	}
}

func mutated() tea.Msg {
	return MutatedMsg{}
}

func isAPIError(err error) (*client.APIError, bool) {
	return client.IsAPIError(err)
}

// failureText picks the server-rejected or transport-failure message
func failureText(err error, rejected, unreachable string) string {
	if _, ok := isAPIError(err); ok {
		return rejected
	}
	return unreachable
}
