package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"contact-manager/internal/domains/contact/model"
)

const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldMessage
	fieldCount
)

var fieldKeys = [fieldCount]string{model.FieldName, model.FieldEmail, model.FieldPhone, model.FieldMessage}

var fieldLabels = [fieldCount]string{"Name *", "Email *", "Phone *", "Message"}

var fieldPlaceholders = [fieldCount]string{"John Doe", "john@example.com", "+1 (555) 123-4567", "Optional message..."}

// FormModel is the add-contact form. Draft values and field errors are local;
// the parent hears about a successful submit through MutatedMsg.
type FormModel struct {
	api     ContactAPI
	timeout time.Duration
	keys    formKeys

	inputs  []textinput.Model
	focused int
	active  bool

	errors     map[string]string
	formErr    string
	notice     string
	noticeSeq  int
	noticeTTL  time.Duration
	submitting bool
}

// NewFormModel creates an empty form with the name field selected.
func NewFormModel(api ContactAPI, timeout time.Duration) FormModel {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[i]
		ti.Prompt = "› "
		ti.CharLimit = 256
		ti.Width = 30
		ti.Cursor.SetMode(cursor.CursorStatic)
		inputs[i] = ti
	}
	inputs[fieldMessage].CharLimit = 1000

	m := FormModel{
		api:       api,
		timeout:   timeout,
		keys:      FormKeyMap(),
		inputs:    inputs,
		errors:    make(map[string]string),
		noticeTTL: defaultNoticeTTL,
	}
	return m
}

// Focus gives the form keyboard focus.
func (m *FormModel) Focus() {
	m.active = true
	m.setField(m.focused)
}

// Blur removes keyboard focus from every input.
func (m *FormModel) Blur() {
	m.active = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *FormModel) setField(i int) {
	if i < 0 {
		i = 0
	}
	if i >= fieldCount {
		i = fieldCount - 1
	}
	m.focused = i
	for j := range m.inputs {
		if j == i && m.active {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// Value returns the draft value of a field by wire name.
func (m FormModel) Value(field string) string {
	for i, k := range fieldKeys {
		if k == field {
			return m.inputs[i].Value()
		}
	}
	return ""
}

// FieldError returns the error shown under a field, if any.
func (m FormModel) FieldError(field string) string {
	return m.errors[field]
}

func (m FormModel) Submitting() bool { return m.submitting }

func (m FormModel) Notice() string { return m.notice }

func (m FormModel) FormError() string { return m.formErr }

func (m FormModel) Init() tea.Cmd {
	return nil
}

// Update handles keys while focused plus the results of its own commands.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ContactCreatedMsg:
		return m.handleCreated(msg)

	case NoticeExpiredMsg:
		if msg.Seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		if !m.active {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m FormModel) handleKey(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Next):
		if msg.String() == "enter" && m.focused == fieldCount-1 {
			return m.submit()
		}
		m.setField(m.focused + 1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.setField(m.focused - 1)
		return m, nil
	}

	before := m.inputs[m.focused].Value()

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)

	// Typing in a field clears its error
	if m.inputs[m.focused].Value() != before {
		m.clearError(fieldKeys[m.focused])
	}
	return m, cmd
}

func (m *FormModel) clearError(field string) {
	if _, ok := m.errors[field]; !ok {
		return
	}
	errs := make(map[string]string, len(m.errors))
	for k, v := range m.errors {
		if k != field {
			errs[k] = v
		}
	}
	m.errors = errs
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	name := m.inputs[fieldName].Value()
	email := m.inputs[fieldEmail].Value()
	phone := m.inputs[fieldPhone].Value()

	if errs := model.FieldErrors(name, email, phone); len(errs) > 0 {
		m.errors = errs
		m.formErr = ""
		return m, nil
	}

	m.errors = make(map[string]string)
	m.formErr = ""
	m.submitting = true

	req := model.CreateContactRequest{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Message: m.inputs[fieldMessage].Value(),
	}
	return m, createContact(m.api, m.timeout, req)
}

func (m FormModel) handleCreated(msg ContactCreatedMsg) (FormModel, tea.Cmd) {
	m.submitting = false

	if msg.Err != nil {
		m.errors = make(map[string]string)
		m.formErr = MsgSubmitError
		if apiErr, ok := isAPIError(msg.Err); ok {
			m.formErr = apiErr.Message
			if m.formErr == "" {
				m.formErr = MsgAddFailed
			}
		}
		return m, nil
	}

	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.errors = make(map[string]string)
	m.formErr = ""
	m.setField(fieldName)

	m.noticeSeq++
	m.notice = MsgContactAdded
	seq := m.noticeSeq

	expire := tea.Tick(m.noticeTTL, func(time.Time) tea.Msg {
		return NoticeExpiredMsg{Seq: seq}
	})
	return m, tea.Batch(mutated, expire)
}

// View renders the form.
func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Add New Contact"))
	b.WriteString("\n")

	if m.formErr != "" {
		b.WriteString(bannerStyle.Render(m.formErr))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(successStyle.Render(m.notice))
		b.WriteString("\n")
	}

	for i := range m.inputs {
		b.WriteString(labelStyle.Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if e := m.errors[fieldKeys[i]]; e != "" {
			b.WriteString(errorStyle.Render(e))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.submitting {
		b.WriteString(mutedStyle.Render(MsgSubmitting))
	} else {
		b.WriteString(mutedStyle.Render("ctrl+s to add contact"))
	}

	return b.String()
}
