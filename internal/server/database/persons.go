package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"phonebook/internal/models"
)

const uniqueViolation = "23505"

// List returns every person in creation order
func (db *DB) List(ctx context.Context) ([]models.Contact, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name, number FROM persons ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Number); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Get retrieves a person by id
func (db *DB) Get(ctx context.Context, id string) (models.Contact, error) {
	return db.one(ctx, `SELECT id, name, number FROM persons WHERE id = $1`, id)
}

// Create inserts a new person under a fresh id
func (db *DB) Create(ctx context.Context, c models.Contact) (models.Contact, error) {
	c.ID = newID()
	_, err := db.Pool.Exec(ctx, `INSERT INTO persons (id, name, number) VALUES ($1, $2, $3)`, c.ID, c.Name, c.Number)
	if err != nil {
		return models.Contact{}, nameTaken(err)
	}
	return c, nil
}

// Update replaces the name and number of an existing person
func (db *DB) Update(ctx context.Context, c models.Contact) (models.Contact, error) {
	return db.one(ctx, `
		UPDATE persons SET name = $2, number = $3
		WHERE id = $1
		RETURNING id, name, number
	`, c.ID, c.Name, c.Number)
}

// Delete removes a person
func (db *DB) Delete(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) one(ctx context.Context, query string, args ...any) (models.Contact, error) {
	var c models.Contact
	err := db.Pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Number)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Contact{}, ErrNotFound
	}
	if err != nil {
		return models.Contact{}, nameTaken(err)
	}
	return c, nil
}

// nameTaken maps a violation of persons_name_key to ErrNameTaken.
func nameTaken(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "persons_name_key" {
		return ErrNameTaken
	}
	return err
}
