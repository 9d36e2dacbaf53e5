// Package storage holds the client-side list of contacts the UI renders from.
package storage

import (
	"iter"
	"slices"
	"strings"

	"phonebook/internal/models"
)

// Contacts is an ordered, immutable list of contacts. Every mutation returns
// a new value and leaves the receiver untouched, so a Contacts can be shared
// freely between states.
type Contacts struct {
	items []models.Contact
}

// Load replaces the whole sequence, keeping the order it was given in.
// Later duplicates of an id are dropped.
func Load(contacts []models.Contact) Contacts {
	items := make([]models.Contact, 0, len(contacts))
	seen := make(map[string]struct{}, len(contacts))
	for _, c := range contacts {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		items = append(items, c)
	}
	return Contacts{items: items}
}

// Len returns the number of contacts
func (s Contacts) Len() int { return len(s.items) }

// All returns a copy of every contact in order.
func (s Contacts) All() []models.Contact { return slices.Clone(s.items) }

// At returns the contact at position i.
func (s Contacts) At(i int) models.Contact { return s.items[i] }

// Filter yields the contacts whose name contains query ignoring case, or
// whose number contains query verbatim. An empty query yields everything.
// The sequence is evaluated lazily on every range over it.
func (s Contacts) Filter(query string) iter.Seq[models.Contact] {
	items := s.items
	lower := strings.ToLower(query)
	return func(yield func(models.Contact) bool) {
		for _, c := range items {
			if !matches(c, query, lower) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

func matches(c models.Contact, query, lower string) bool {
	return strings.Contains(strings.ToLower(c.Name), lower) || strings.Contains(c.Number, query)
}

// FindByName returns the first contact whose name equals name exactly.
func (s Contacts) FindByName(name string) (models.Contact, bool) {
	i := slices.IndexFunc(s.items, func(c models.Contact) bool { return c.Name == name })
	if i < 0 {
		return models.Contact{}, false
	}
	return s.items[i], true
}

// FindByID returns the contact with the given id.
func (s Contacts) FindByID(id string) (models.Contact, bool) {
	i := s.index(id)
	if i < 0 {
		return models.Contact{}, false
	}
	return s.items[i], true
}

// UpsertByID replaces the contact with the same id in place, or appends c
// when no such contact exists.
func (s Contacts) UpsertByID(c models.Contact) Contacts {
	items := slices.Clone(s.items)
	if i := s.index(c.ID); i >= 0 {
		items[i] = c
	} else {
		items = append(items, c)
	}
	return Contacts{items: items}
}

// RemoveByID drops the contact with the given id. The boolean reports
// whether it was present; when it was not, the receiver is returned as is.
func (s Contacts) RemoveByID(id string) (Contacts, bool) {
	i := s.index(id)
	if i < 0 {
		return s, false
	}
	return Contacts{items: slices.Delete(slices.Clone(s.items), i, i+1)}, true
}

func (s Contacts) index(id string) int {
	return slices.IndexFunc(s.items, func(c models.Contact) bool { return c.ID == id })
}
