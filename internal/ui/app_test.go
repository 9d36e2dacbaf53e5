package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"phonebook/internal/client/api"
	"phonebook/internal/models"
	"phonebook/internal/phonebook"
)

type stubRemote struct {
	contacts []models.Contact
	updated  []models.Contact
	deleted  []string
	deleteFn func(string) error
}

func (s *stubRemote) FetchAll(context.Context) ([]models.Contact, error) { return s.contacts, nil }

func (s *stubRemote) Create(_ context.Context, c models.Contact) (models.Contact, error) {
	c.ID = "42"
	return c, nil
}

func (s *stubRemote) Update(_ context.Context, c models.Contact) (models.Contact, error) {
	s.updated = append(s.updated, c)
	return c, nil
}

func (s *stubRemote) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	if s.deleteFn != nil {
		return s.deleteFn(id)
	}
	return nil
}

func newTestModel(t *testing.T, remote *stubRemote) Model {
	t.Helper()
	expiry := phonebook.NewExpiry(time.Hour)
	t.Cleanup(expiry.Stop)

	m := New(Options{
		Remote:    remote,
		Logger:    zaptest.NewLogger(t),
		Expiry:    expiry,
		ServerURL: "http://test",
	})
	next, _ := m.Update(m.runner.Load(context.Background()))
	return next.(Model)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func TestModel_LoadsContacts(t *testing.T) {
	m := newTestModel(t, &stubRemote{contacts: []models.Contact{{ID: "1", Name: "Ann", Number: "123"}}})

	assert.True(t, m.State().Loaded)
	assert.Contains(t, m.View(), "Ann 123")
	assert.Contains(t, m.View(), "ONLINE")
}

func TestModel_AddContact(t *testing.T) {
	m := newTestModel(t, &stubRemote{})

	m = typeText(t, m, "Bob")
	m, _ = send(t, m, key(tea.KeyTab))
	m = typeText(t, m, "555")
	assert.Equal(t, "Bob", m.State().Name)
	assert.Equal(t, "555", m.State().Number)

	m, cmd := send(t, m, key(tea.KeyEnter))
	require.NotNil(t, cmd)

	m, _ = send(t, m, cmd())
	assert.Equal(t, []models.Contact{{ID: "42", Name: "Bob", Number: "555"}}, m.State().Contacts.All())
	assert.Equal(t, phonebook.MsgAdded, m.State().Notice.Message)
	assert.Empty(t, m.name.Value(), "inputs are cleared")
	assert.Empty(t, m.number.Value())
	assert.Contains(t, m.View(), phonebook.MsgAdded)
}

func TestModel_UpdateNeedsConfirmation(t *testing.T) {
	remote := &stubRemote{contacts: []models.Contact{{ID: "1", Name: "Ann", Number: "123"}}}
	m := newTestModel(t, remote)

	m = typeText(t, m, "Ann")
	m, _ = send(t, m, key(tea.KeyTab))
	m = typeText(t, m, "999")
	m, cmd := send(t, m, key(tea.KeyEnter))
	assert.Nil(t, cmd)
	require.NotNil(t, m.State().Pending)
	assert.Contains(t, m.View(), "[y/n]")

	// Other keys are ignored while the prompt is open.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.NotNil(t, m.State().Pending)

	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	assert.Equal(t, []models.Contact{{ID: "1", Name: "Ann", Number: "999"}}, remote.updated)
	assert.Equal(t, []models.Contact{{ID: "1", Name: "Ann", Number: "999"}}, m.State().Contacts.All())
	assert.Equal(t, phonebook.MsgUpdated, m.State().Notice.Message)
}

func TestModel_DeclineKeepsForm(t *testing.T) {
	remote := &stubRemote{contacts: []models.Contact{{ID: "1", Name: "Ann", Number: "123"}}}
	m := newTestModel(t, remote)

	m = typeText(t, m, "Ann")
	m, _ = send(t, m, key(tea.KeyEnter))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})

	assert.Nil(t, cmd)
	assert.Nil(t, m.State().Pending)
	assert.Empty(t, remote.updated)
	assert.Equal(t, "Ann", m.name.Value())
}

func TestModel_DeleteSelected(t *testing.T) {
	remote := &stubRemote{
		contacts: []models.Contact{
			{ID: "1", Name: "Ann", Number: "999"},
			{ID: "2", Name: "Bob", Number: "555"},
		},
		deleteFn: func(id string) error { return &api.NotFoundError{ID: id} },
	}
	m := newTestModel(t, remote)

	m, _ = send(t, m, key(tea.KeyCtrlD))
	m, cmd := send(t, m, key(tea.KeyEnter))
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	assert.Equal(t, []string{"1"}, remote.deleted)
	assert.Equal(t, "999 of Ann has been removed", m.State().Notice.Message)
	assert.Equal(t, []models.Contact{{ID: "2", Name: "Bob", Number: "555"}}, m.State().Contacts.All())
}

func TestModel_CursorAndSearch(t *testing.T) {
	m := newTestModel(t, &stubRemote{contacts: []models.Contact{
		{ID: "1", Name: "Ann", Number: "1"},
		{ID: "2", Name: "Bob", Number: "2"},
		{ID: "3", Name: "Cid", Number: "3"},
	}})

	m, _ = send(t, m, key(tea.KeyDown))
	m, _ = send(t, m, key(tea.KeyDown))
	m, _ = send(t, m, key(tea.KeyDown))
	c, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "3", c.ID)

	// name -> number -> search
	m, _ = send(t, m, key(tea.KeyTab))
	m, _ = send(t, m, key(tea.KeyTab))
	m = typeText(t, m, "bo")
	assert.Equal(t, "bo", m.State().Query)
	assert.Equal(t, 0, m.cursor, "cursor is clamped to the filtered list")
	c, ok = m.selected()
	require.True(t, ok)
	assert.Equal(t, "2", c.ID)
	assert.NotContains(t, m.View(), "Cid")

	m, _ = send(t, m, key(tea.KeyEsc))
	assert.Empty(t, m.State().Query)
}

func TestModel_ExpiryClearsNotice(t *testing.T) {
	m := newTestModel(t, &stubRemote{})
	m, _ = send(t, m, phonebook.SubmitFailed{Created: true, Err: &api.ValidationError{Message: "name missing"}})
	id := m.State().Notice.ID
	require.Equal(t, "name missing", m.State().Notice.Message)

	m, _ = send(t, m, phonebook.NotificationExpired{ID: id})
	assert.False(t, m.State().Notice.Visible())
	assert.NotContains(t, m.View(), "name missing")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, &stubRemote{})
	m, cmd := send(t, m, key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.Equal(t, "Bye!\n", m.View())
	assert.Error(t, m.ctx.Err())
}
