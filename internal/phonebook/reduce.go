package phonebook

import (
	"errors"

	"phonebook/internal/client/api"
	"phonebook/internal/client/storage"
	"phonebook/internal/models"
)

// Reduce returns the state that follows s once a is applied, along with the
// effects the runtime has to carry out. It never mutates s.
func Reduce(s State, a Action) (State, []Effect) {
	switch a := a.(type) {
	case Loaded:
		if a.Err != nil {
			return s, nil
		}
		s.Contacts = storage.Load(a.Contacts)
		s.Loaded = true
		return s, nil

	case FormChanged:
		s.Name, s.Number = a.Name, a.Number
		return s, nil

	case SearchChanged:
		s.Query = a.Query
		return s, nil

	case SubmitRequested:
		s.Name, s.Number = a.Name, a.Number
		if existing, ok := s.Contacts.FindByName(a.Name); ok {
			s.Pending = &Confirmation{
				Kind:     IntentUpdate,
				Contact:  existing.WithNumber(a.Number),
				Previous: existing,
			}
			return s, nil
		}
		s.Pending = nil
		return s, []Effect{CreateContact{Contact: models.Contact{Name: a.Name, Number: a.Number}}}

	case DeleteRequested:
		c, ok := s.Contacts.FindByID(a.ID)
		if !ok {
			return s, nil
		}
		s.Pending = &Confirmation{Kind: IntentDelete, Contact: c, Previous: c}
		return s, nil

	case ConfirmationResolved:
		p := s.Pending
		s.Pending = nil
		if p == nil || !a.Accepted {
			return s, nil
		}
		if p.Kind == IntentDelete {
			return s, []Effect{DeleteContact{Contact: p.Contact}}
		}
		return s, []Effect{UpdateContact{Contact: p.Contact, Previous: p.Previous}}

	case SubmitSucceeded:
		s.Contacts = s.Contacts.UpsertByID(a.Contact)
		s = s.clearForm()
		if a.Created {
			return s.notify(MsgAdded)
		}
		return s.notify(MsgUpdated)

	case SubmitFailed:
		if msg, ok := validationMessage(a.Err); ok {
			return s.notify(msg)
		}
		// An update whose target vanished is reconciled like a delete.
		if api.Classify(a.Err) == api.KindNotFound && !a.Created {
			s.Contacts, _ = s.Contacts.RemoveByID(a.Previous.ID)
			return s.notify(removedMessage(a.Previous))
		}
		return s, nil

	case DeleteSucceeded:
		s.Contacts, _ = s.Contacts.RemoveByID(a.Contact.ID)
		return s.notify(MsgDeleted)

	case DeleteFailed:
		if api.Classify(a.Err) == api.KindNotFound {
			s.Contacts, _ = s.Contacts.RemoveByID(a.Contact.ID)
			return s.notify(removedMessage(a.Contact))
		}
		if msg, ok := validationMessage(a.Err); ok {
			return s.notify(msg)
		}
		return s, nil

	case NotificationExpired:
		if a.ID == s.Notice.ID {
			s.Notice.Message = ""
		}
		return s, nil
	}
	return s, nil
}

func validationMessage(err error) (string, bool) {
	var vErr *api.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message, true
	}
	return "", false
}
