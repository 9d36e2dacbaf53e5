package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"phonebook/internal/server/database"
)

type handler[I, O any] = func(context.Context, *I) (*O, error)

// withStoreErrors answers store sentinels with the matching client error and
// hands every failure to report, when set.
func withStoreErrors[I, O any](fn handler[I, O], report func(context.Context, error)) handler[I, O] {
	return func(ctx context.Context, in *I) (*O, error) {
		out, err := fn(ctx, in)
		if err == nil {
			return out, nil
		}
		switch {
		case errors.Is(err, database.ErrNotFound):
			err = huma.Error404NotFound("person not found")
		case errors.Is(err, database.ErrNameTaken):
			err = huma.Error400BadRequest("name must be unique")
		}
		if report != nil {
			report(ctx, err)
		}
		return nil, err
	}
}

// responds sets the success status of an operation, when non-zero, and the
// error statuses it documents.
func responds(status int, errs ...int) func(*huma.Operation) {
	return func(o *huma.Operation) {
		if status != 0 {
			o.DefaultStatus = status
		}
		o.Errors = errs
	}
}
