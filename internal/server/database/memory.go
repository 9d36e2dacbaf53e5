package database

import (
	"context"
	"slices"
	"sync"

	"phonebook/internal/models"
)

// Memory implements [Store] in process memory, keeping insertion order.
type Memory struct {
	mu       sync.Mutex
	index    map[string]int
	contacts []models.Contact
}

var _ Store = (*Memory)(nil)

func NewMemory(cs ...models.Contact) *Memory {
	m := &Memory{index: make(map[string]int, len(cs))}
	for _, c := range cs {
		if c.ID == "" {
			c.ID = newID()
		}
		m.index[c.ID] = len(m.contacts)
		m.contacts = append(m.contacts, c)
	}
	return m
}

func (m *Memory) List(_ context.Context) ([]models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.contacts), nil
}

func (m *Memory) Get(_ context.Context, id string) (models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index[id]
	if !ok {
		return models.Contact{}, ErrNotFound
	}
	return m.contacts[i], nil
}

// owner returns the index of the person named name, or -1.
func (m *Memory) owner(name string) int {
	return slices.IndexFunc(m.contacts, func(c models.Contact) bool { return c.Name == name })
}

func (m *Memory) Create(_ context.Context, c models.Contact) (models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owner(c.Name) >= 0 {
		return models.Contact{}, ErrNameTaken
	}
retry:
	c.ID = newID()
	if _, loaded := m.index[c.ID]; loaded {
		goto retry
	}
	m.index[c.ID] = len(m.contacts)
	m.contacts = append(m.contacts, c)
	return c, nil
}

func (m *Memory) Update(_ context.Context, c models.Contact) (models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index[c.ID]
	if !ok {
		return models.Contact{}, ErrNotFound
	}
	if j := m.owner(c.Name); j >= 0 && j != i {
		return models.Contact{}, ErrNameTaken
	}
	m.contacts[i] = c
	return c, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index[id]
	if !ok {
		return ErrNotFound
	}
	m.contacts = slices.Delete(m.contacts, i, i+1)
	delete(m.index, id)
	for j := i; j < len(m.contacts); j++ {
		m.index[m.contacts[j].ID] = j
	}
	return nil
}

func (m *Memory) Close() {}
