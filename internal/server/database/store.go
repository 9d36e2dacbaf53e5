// Package database stores the persons served by the reference server.
package database

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"phonebook/internal/models"
)

var (
	ErrNotFound  = errors.New("database: person not found")
	ErrNameTaken = errors.New("database: name already taken")
)

// Store is the persistence behind the persons API.
type Store interface {
	List(ctx context.Context) ([]models.Contact, error)
	Get(ctx context.Context, id string) (models.Contact, error)
	// Create stores c under a freshly assigned id, ignoring c.ID. It fails
	// with ErrNameTaken when another person already has c.Name.
	Create(ctx context.Context, c models.Contact) (models.Contact, error)
	// Update fails with ErrNameTaken when c.Name belongs to another person.
	Update(ctx context.Context, c models.Contact) (models.Contact, error)
	Delete(ctx context.Context, id string) error
	Close()
}

func newID() string { return uuid.Must(uuid.NewV7()).String() }
