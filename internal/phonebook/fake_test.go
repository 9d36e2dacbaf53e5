package phonebook

import (
	"context"
	"sync"

	"phonebook/internal/client/api"
	"phonebook/internal/models"
)

// fakeRemote records calls and answers with canned results.
type fakeRemote struct {
	mu sync.Mutex

	contacts []models.Contact
	fetchErr error

	createFn func(models.Contact) (models.Contact, error)
	updateFn func(models.Contact) (models.Contact, error)
	deleteFn func(string) error

	created []models.Contact
	updated []models.Contact
	deleted []string
}

var _ Remote = (*fakeRemote)(nil)

func (f *fakeRemote) FetchAll(context.Context) ([]models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contacts, f.fetchErr
}

func (f *fakeRemote) Create(_ context.Context, c models.Contact) (models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, c)
	if f.createFn != nil {
		return f.createFn(c)
	}
	return c, nil
}

func (f *fakeRemote) Update(_ context.Context, c models.Contact) (models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, c)
	if f.updateFn != nil {
		return f.updateFn(c)
	}
	return c, nil
}

func (f *fakeRemote) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return nil
}

func notFound(id string) error { return &api.NotFoundError{ID: id} }

func invalid(msg string) error { return &api.ValidationError{Status: 400, Message: msg} }

func unreachable() error {
	return &api.NetworkError{Op: "test", Err: context.DeadlineExceeded}
}
