package phonebook

import (
	"context"
	"math/rand/v2"
	"strconv"

	"go.uber.org/zap"

	"phonebook/internal/client/api"
	"phonebook/internal/models"
)

// Remote is the backing store the runner talks to. *api.Client implements it.
type Remote interface {
	FetchAll(ctx context.Context) ([]models.Contact, error)
	Create(ctx context.Context, c models.Contact) (models.Contact, error)
	Update(ctx context.Context, c models.Contact) (models.Contact, error)
	Delete(ctx context.Context, id string) error
}

var _ Remote = (*api.Client)(nil)

// Runner performs remote effects and turns their outcome into actions.
// Failures are logged here and nowhere else.
type Runner struct {
	remote Remote
	logger *zap.Logger
	newID  func() string
}

// NewRunner returns a runner backed by remote.
func NewRunner(remote Remote, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{remote: remote, logger: logger, newID: ProvisionalID}
}

// ProvisionalID returns a random placeholder id for a contact the server has
// not seen yet.
func ProvisionalID() string {
	return strconv.Itoa(rand.IntN(10000) + 1)
}

// Load fetches the initial contact list.
func (r *Runner) Load(ctx context.Context) Action {
	contacts, err := r.remote.FetchAll(ctx)
	if err != nil {
		r.logFailure("failed to fetch contacts", err)
		return Loaded{Err: err}
	}
	r.logger.Info("contacts loaded", zap.Int("count", len(contacts)))
	return Loaded{Contacts: contacts}
}

// Run executes a remote effect. It returns nil for effects that are not
// remote calls.
func (r *Runner) Run(ctx context.Context, eff Effect) Action {
	switch eff := eff.(type) {
	case CreateContact:
		c := eff.Contact
		c.ID = r.newID()
		created, err := r.remote.Create(ctx, c)
		if err != nil {
			r.logFailure("failed to add person", err, zap.String("name", c.Name))
			return SubmitFailed{Created: true, Contact: c, Err: err}
		}
		return SubmitSucceeded{Created: true, Contact: created}

	case UpdateContact:
		updated, err := r.remote.Update(ctx, eff.Contact)
		if err != nil {
			r.logFailure("failed to update person", err, zap.String("id", eff.Contact.ID))
			return SubmitFailed{Contact: eff.Contact, Previous: eff.Previous, Err: err}
		}
		return SubmitSucceeded{Contact: updated}

	case DeleteContact:
		if err := r.remote.Delete(ctx, eff.Contact.ID); err != nil {
			r.logFailure("failed to delete person", err, zap.String("id", eff.Contact.ID))
			return DeleteFailed{Contact: eff.Contact, Err: err}
		}
		return DeleteSucceeded{Contact: eff.Contact}
	}
	return nil
}

func (r *Runner) logFailure(msg string, err error, fields ...zap.Field) {
	kind := api.Classify(err)
	fields = append(fields, zap.Error(err), zap.Stringer("kind", kind))
	if kind == api.KindNetwork {
		r.logger.Error(msg, fields...)
		return
	}
	r.logger.Warn(msg, fields...)
}
