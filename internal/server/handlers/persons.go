package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"phonebook/internal/models"
	"phonebook/internal/server/database"
)

// Publisher receives an event for every successful change.
type Publisher interface {
	Publish(models.Event)
}

type Persons struct {
	Store        database.Store
	Events       Publisher
	ErrorHandler func(context.Context, error)
}

// PersonBody is the request body of create and update. Fields are optional
// in the schema so that missing values get the phonebook's own messages.
type PersonBody struct {
	ID     string `json:"id,omitempty"     doc:"Existing id to update; anything else is ignored"`
	Name   string `json:"name,omitempty"   example:"Arto Hellas"`
	Number string `json:"number,omitempty" example:"040-123456"`
}

func (b PersonBody) validate() error {
	switch {
	case strings.TrimSpace(b.Name) == "" && strings.TrimSpace(b.Number) == "":
		return huma.Error400BadRequest("name or number missing")
	case strings.TrimSpace(b.Name) == "":
		return huma.Error400BadRequest("name missing")
	case strings.TrimSpace(b.Number) == "":
		return huma.Error400BadRequest("number missing")
	}
	return nil
}

func (h *Persons) Register(api huma.API) {
	huma.Get(api, "/persons",
		withStoreErrors(h.list, h.ErrorHandler),
		responds(0, http.StatusInternalServerError),
	)
	huma.Get(api, "/persons/{id}",
		withStoreErrors(h.get, h.ErrorHandler),
		responds(0, http.StatusNotFound, http.StatusInternalServerError),
	)
	huma.Post(api, "/persons",
		withStoreErrors(h.create, h.ErrorHandler),
		responds(http.StatusCreated, http.StatusBadRequest, http.StatusInternalServerError),
	)
	huma.Put(api, "/persons/{id}",
		withStoreErrors(h.put, h.ErrorHandler),
		responds(0, http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError),
	)
	huma.Delete(api, "/persons/{id}",
		withStoreErrors(h.del, h.ErrorHandler),
		responds(0, http.StatusNotFound, http.StatusInternalServerError),
	)
}

type PersonsListOutput struct {
	Body []models.Contact
}

func (h *Persons) list(ctx context.Context, _ *struct{}) (*PersonsListOutput, error) {
	contacts, err := h.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	return &PersonsListOutput{Body: contacts}, nil
}

type PersonOutput struct {
	Status int
	Body   models.Contact
}

func (h *Persons) get(ctx context.Context, input *struct {
	ID string `path:"id" doc:"ID of the person to get"`
}) (*PersonOutput, error) {
	contact, err := h.Store.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &PersonOutput{Body: contact}, nil
}

// create adds a person. A body carrying the id of an existing person
// updates that person instead; any other id is dropped. Names are unique.
func (h *Persons) create(ctx context.Context, input *struct {
	Body PersonBody
}) (*PersonOutput, error) {
	if err := input.Body.validate(); err != nil {
		return nil, err
	}
	contact := models.Contact{Name: input.Body.Name, Number: input.Body.Number}

	if input.Body.ID != "" {
		_, err := h.Store.Get(ctx, input.Body.ID)
		switch {
		case err == nil:
			contact.ID = input.Body.ID
			updated, err := h.Store.Update(ctx, contact)
			if err != nil {
				return nil, err
			}
			h.publish(models.EventUpdated, updated)
			return &PersonOutput{Status: http.StatusOK, Body: updated}, nil
		case !errors.Is(err, database.ErrNotFound):
			return nil, err
		}
	}

	created, err := h.Store.Create(ctx, contact)
	if err != nil {
		return nil, err
	}
	h.publish(models.EventCreated, created)
	return &PersonOutput{Status: http.StatusCreated, Body: created}, nil
}

func (h *Persons) put(ctx context.Context, input *struct {
	ID   string `path:"id" doc:"ID of the person to update"`
	Body PersonBody
}) (*PersonOutput, error) {
	if err := input.Body.validate(); err != nil {
		return nil, err
	}
	updated, err := h.Store.Update(ctx, models.Contact{ID: input.ID, Name: input.Body.Name, Number: input.Body.Number})
	if err != nil {
		return nil, err
	}
	h.publish(models.EventUpdated, updated)
	return &PersonOutput{Status: http.StatusOK, Body: updated}, nil
}

func (h *Persons) del(ctx context.Context, input *struct {
	ID string `path:"id" doc:"ID of the person to delete"`
}) (*struct{}, error) {
	contact, err := h.Store.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := h.Store.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	h.publish(models.EventDeleted, contact)
	return nil, nil
}

func (h *Persons) publish(t models.EventType, c models.Contact) {
	if h.Events != nil {
		h.Events.Publish(models.NewEvent(t, c))
	}
}
