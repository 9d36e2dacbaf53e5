package phonebook

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"phonebook/internal/models"
)

// Controller drives the reducer synchronously: remote effects run inline and
// pending confirmations are answered through a callback. The command line
// uses it; the TUI runs the same reducer through bubbletea instead.
type Controller struct {
	runner  *Runner
	expiry  *Expiry
	confirm func(Confirmation) bool
	logger  *zap.Logger

	mu    sync.Mutex
	state State
	wg    sync.WaitGroup
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithConfirm sets the function answering overwrite and delete
// confirmations. Without it every confirmation is declined.
func WithConfirm(fn func(Confirmation) bool) ControllerOption {
	return func(c *Controller) { c.confirm = fn }
}

// WithNoticeTTL sets how long notices stay visible.
func WithNoticeTTL(ttl time.Duration) ControllerOption {
	return func(c *Controller) { c.expiry = NewExpiry(ttl) }
}

// WithLogger sets the controller logger.
func WithLogger(l *zap.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// NewController returns a controller backed by remote.
func NewController(remote Remote, opts ...ControllerOption) *Controller {
	c := &Controller{
		expiry:  NewExpiry(DefaultNoticeTTL),
		confirm: func(Confirmation) bool { return false },
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.runner = NewRunner(remote, c.logger)
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load fetches the contact list once. The error is returned for the caller
// to report; the state is left empty on failure.
func (c *Controller) Load(ctx context.Context) error {
	a := c.runner.Load(ctx)
	c.Dispatch(ctx, a)
	return a.(Loaded).Err
}

// Submit adds a contact, or updates the number of the contact with the same
// name once the overwrite is confirmed.
func (c *Controller) Submit(ctx context.Context, name, number string) State {
	return c.Dispatch(ctx, SubmitRequested{Name: name, Number: number})
}

// Delete removes the contact with id once the deletion is confirmed.
func (c *Controller) Delete(ctx context.Context, id string) State {
	return c.Dispatch(ctx, DeleteRequested{ID: id})
}

// Search sets the filter query and returns the matching contacts.
func (c *Controller) Search(query string) []models.Contact {
	return c.Dispatch(context.Background(), SearchChanged{Query: query}).Visible()
}

// Dispatch applies a and every action that follows from it, and returns the
// resulting state.
func (c *Controller) Dispatch(ctx context.Context, a Action) State {
	queue := []Action{a}
	var s State
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		var effects []Effect
		c.mu.Lock()
		c.state, effects = Reduce(c.state, next)
		s = c.state
		c.mu.Unlock()

		for _, eff := range effects {
			if se, ok := eff.(ScheduleExpiry); ok {
				c.scheduleExpiry(se.NoticeID)
				continue
			}
			if res := c.runner.Run(ctx, eff); res != nil {
				queue = append(queue, res)
			}
		}

		if _, resolving := next.(ConfirmationResolved); !resolving && s.Pending != nil {
			queue = append(queue, ConfirmationResolved{Accepted: c.confirm(*s.Pending)})
		}
	}
	return s
}

func (c *Controller) scheduleExpiry(id uint64) {
	wait := c.expiry.Schedule(id)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if a := wait(); a != nil {
			c.mu.Lock()
			c.state, _ = Reduce(c.state, a)
			c.mu.Unlock()
		}
	}()
}

// Close cancels the pending notice expiry and waits for it to return.
func (c *Controller) Close() {
	c.expiry.Stop()
	c.wg.Wait()
}
