package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"contact-manager/internal/domains/contact/model"
)

// fakeAPI is an in-memory ContactAPI. Newest contacts come first.
type fakeAPI struct {
	mu sync.Mutex

	contacts []model.Contact
	nextID   int

	listErr   error
	createErr error
	deleteErr error

	listCalls int
	created   []model.CreateContactRequest
	deleted   []string
}

func (f *fakeAPI) List(ctx context.Context) ([]model.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Contact, len(f.contacts))
	copy(out, f.contacts)
	return out, nil
}

func (f *fakeAPI) Create(ctx context.Context, req model.CreateContactRequest) (*model.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.created = append(f.created, req)
	if f.createErr != nil {
		return nil, f.createErr
	}

	f.nextID++
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := model.Contact{
		ID:        fmt.Sprintf("id-%d", f.nextID),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.contacts = append([]model.Contact{c}, f.contacts...)
	return &c, nil
}

func (f *fakeAPI) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, c := range f.contacts {
		if c.ID == id {
			f.contacts = append(f.contacts[:i], f.contacts[i+1:]...)
			return nil
		}
	}
	return nil
}

func contactFixture(id, name string) model.Contact {
	created := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	return model.Contact{
		ID:        id,
		Name:      name,
		Email:     name + "@example.com",
		Phone:     "555-0100",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// runCmd executes cmd and flattens any batches into a list of messages
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// findMsg returns the first message of type T
func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyCtrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// typeInto sends s one rune at a time to the focused form field
func typeInto(m FormModel, s string) FormModel {
	for _, r := range s {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

// fillForm types a valid contact, moving through the fields with down
func fillForm(m FormModel, name, email, phone string) FormModel {
	m = typeInto(m, name)
	m, _ = m.Update(keyDown)
	m = typeInto(m, email)
	m, _ = m.Update(keyDown)
	m = typeInto(m, phone)
	return m
}
