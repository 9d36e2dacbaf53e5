// Package phonebook implements the contact list synchronisation protocol: a
// pure reducer over an immutable State, and the runtimes that execute the
// remote calls and timers the reducer asks for.
package phonebook

import (
	"phonebook/internal/client/storage"
	"phonebook/internal/models"
)

// Notification messages.
const (
	MsgAdded   = "Person added successfully!"
	MsgUpdated = "Person updated successfully!"
	MsgDeleted = "Person deleted successfully!"
)

// IntentKind tells what a pending confirmation would do once accepted.
type IntentKind int

const (
	IntentUpdate IntentKind = iota + 1
	IntentDelete
)

// Confirmation is a request for the user to approve an overwrite or a
// deletion. Contact is the record that will be sent (update) or removed
// (delete).
type Confirmation struct {
	Kind     IntentKind
	Contact  models.Contact
	Previous models.Contact
}

// Prompt is the question shown to the user.
func (c Confirmation) Prompt() string {
	if c.Kind == IntentDelete {
		return "Are you sure you want to delete " + c.Contact.Name + "?"
	}
	return c.Contact.Name + " is already added to phonebook, replace the old number with a new one?"
}

// Notice is the single notification currently on screen.
type Notice struct {
	ID      uint64
	Message string
}

// Visible reports whether there is something to show.
func (n Notice) Visible() bool { return n.Message != "" }

// State is the whole application state. It is treated as a value: Reduce
// never mutates the State it is given.
type State struct {
	Contacts storage.Contacts
	Loaded   bool
	Query    string

	// Form input.
	Name   string
	Number string

	Pending *Confirmation
	Notice  Notice

	noticeSeq uint64
}

// Visible returns the contacts matching the current search query.
func (s State) Visible() []models.Contact {
	var out []models.Contact
	for c := range s.Contacts.Filter(s.Query) {
		out = append(out, c)
	}
	return out
}

// notify replaces the current notice and schedules its expiry.
func (s State) notify(msg string) (State, []Effect) {
	s.noticeSeq++
	s.Notice = Notice{ID: s.noticeSeq, Message: msg}
	return s, []Effect{ScheduleExpiry{NoticeID: s.noticeSeq}}
}

func (s State) clearForm() State {
	s.Name, s.Number = "", ""
	return s
}

func removedMessage(c models.Contact) string {
	return c.Number + " of " + c.Name + " has been removed"
}
