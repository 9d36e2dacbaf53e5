package phonebook

import "phonebook/internal/models"

// Action is an event fed into Reduce.
type Action interface{ action() }

// Loaded carries the result of the initial fetch.
type Loaded struct {
	Contacts []models.Contact
	Err      error
}

// FormChanged reports the current content of the name and number inputs.
type FormChanged struct {
	Name   string
	Number string
}

// SubmitRequested is the user pressing submit on the form.
type SubmitRequested struct {
	Name   string
	Number string
}

// ConfirmationResolved answers the pending confirmation.
type ConfirmationResolved struct {
	Accepted bool
}

// SubmitSucceeded carries the record the server returned.
type SubmitSucceeded struct {
	Created bool
	Contact models.Contact
}

// SubmitFailed carries a create or update failure. Contact is the record
// the request was made with; Previous is the stored record an update was
// meant to replace.
type SubmitFailed struct {
	Created  bool
	Contact  models.Contact
	Previous models.Contact
	Err      error
}

// DeleteRequested is the user asking to delete the contact with ID.
type DeleteRequested struct {
	ID string
}

// DeleteSucceeded confirms the remote removal.
type DeleteSucceeded struct {
	Contact models.Contact
}

// DeleteFailed carries a delete failure along with the record as it was
// before the deletion was attempted.
type DeleteFailed struct {
	Contact models.Contact
	Err     error
}

// SearchChanged updates the filter query.
type SearchChanged struct {
	Query string
}

// NotificationExpired asks to clear the notice with the given id.
type NotificationExpired struct {
	ID uint64
}

func (Loaded) action()               {}
func (FormChanged) action()          {}
func (SubmitRequested) action()      {}
func (ConfirmationResolved) action() {}
func (SubmitSucceeded) action()      {}
func (SubmitFailed) action()         {}
func (DeleteRequested) action()      {}
func (DeleteSucceeded) action()      {}
func (DeleteFailed) action()         {}
func (SearchChanged) action()        {}
func (NotificationExpired) action()  {}

// Effect is a side effect Reduce asks the runtime to perform.
type Effect interface{ effect() }

// CreateContact posts a new contact. The runtime gives it a provisional id.
type CreateContact struct {
	Contact models.Contact
}

// UpdateContact sends the new version of an existing contact. Previous is
// the record as the store held it when the update was confirmed.
type UpdateContact struct {
	Contact  models.Contact
	Previous models.Contact
}

// DeleteContact removes Contact remotely.
type DeleteContact struct {
	Contact models.Contact
}

// ScheduleExpiry clears the notice with NoticeID after the notice TTL,
// cancelling whatever expiry was scheduled before.
type ScheduleExpiry struct {
	NoticeID uint64
}

func (CreateContact) effect()  {}
func (UpdateContact) effect()  {}
func (DeleteContact) effect()  {}
func (ScheduleExpiry) effect() {}
