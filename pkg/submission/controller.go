// Package submission drives a form save: validation gate, a single POST of the
// payload, the success or failure notification and the reset of the form.
package submission

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-profileform/pkg/async"
	"github.com/goliatone/go-profileform/pkg/form"
	"github.com/goliatone/go-profileform/pkg/notify"
	"github.com/goliatone/go-profileform/pkg/profile"
)

// Phase is the controller's position in the save cycle.
type Phase string

const (
	Idle       Phase = "idle"
	Validating Phase = "validating"
	Invalid    Phase = "invalid"
	Submitting Phase = "submitting"
	Succeeded  Phase = "succeeded"
	Failed     Phase = "failed"
)

// Submitter sends a payload to the profile service.
type Submitter interface {
	CreateProfile(ctx context.Context, payload profile.Payload) (profile.Created, error)
}

// Outcome is the terminal result of one Save.
type Outcome struct {
	State   Phase
	ID      string
	Message string
	Err     error
}

// Controller owns the save cycle of a form.State.
type Controller struct {
	form      *form.State
	submitter Submitter
	notifier  notify.Notifier
	composer  *notify.Composer
	logger    *zap.Logger
	mu        sync.Locker

	phase   Phase
	message string
	savedID string
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets where success and failure notifications go.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithComposer overrides the notification templates.
func WithComposer(composer *notify.Composer) Option {
	return func(c *Controller) {
		if composer != nil {
			c.composer = composer
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLocker shares the lock that serialises every mutation of the form
// state. Callers must not hold it while calling Controller methods.
func WithLocker(l sync.Locker) Option {
	return func(c *Controller) {
		if l != nil {
			c.mu = l
		}
	}
}

// NewController builds a controller for state that submits through submitter.
func NewController(state *form.State, submitter Submitter, options ...Option) *Controller {
	c := &Controller{
		form:      state,
		submitter: submitter,
		notifier:  notify.NotifierFunc(func(context.Context, notify.Notification) {}),
		composer:  notify.MustComposer(notify.DefaultTemplates()),
		logger:    zap.NewNop(),
		mu:        &sync.Mutex{},
		phase:     Idle,
	}
	if c.form == nil {
		c.form = form.NewState()
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Save validates the form. An invalid form has every field marked touched and
// the returned task resolves immediately with an Invalid outcome; no request
// is made. A valid form is posted exactly once and the task resolves after
// the outcome has been applied to the form.
func (c *Controller) Save(ctx context.Context) (*async.Task[Outcome], error) {
	c.mu.Lock()
	if c.phase == Submitting {
		c.mu.Unlock()
		return nil, ErrSubmitting
	}
	c.phase = Validating
	if !c.form.Valid() {
		c.form.MarkAllTouched()
		c.phase = Idle
		c.mu.Unlock()
		c.logger.Debug("save blocked by invalid form")
		return async.Resolved(Outcome{State: Invalid}, nil), nil
	}
	payload := profile.NewPayload(c.form.Values())
	c.phase = Submitting
	c.mu.Unlock()

	task, complete := async.New[Outcome]()
	go func() {
		created, err := c.submit(ctx, payload)
		outcome, n := c.finish(created, err)
		c.notifier.Notify(ctx, n)
		complete(outcome, nil)
	}()
	return task, nil
}

func (c *Controller) submit(ctx context.Context, payload profile.Payload) (profile.Created, error) {
	if c.submitter == nil {
		return profile.Created{}, errNoSubmitter
	}
	return c.submitter.CreateProfile(ctx, payload)
}

func (c *Controller) finish(created profile.Created, err error) (Outcome, notify.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.phase = Idle }()

	if err != nil {
		c.logger.Warn("profile save failed", zap.Error(err))
		message, renderErr := c.composer.Failure()
		if renderErr != nil {
			c.logger.Error("render failure message", zap.Error(renderErr))
			message = notify.DefaultTemplates().Failure
		}
		c.message = message
		return Outcome{State: Failed, Message: message, Err: err},
			notify.Notification{Level: notify.LevelError, Title: c.composer.Title(), Message: message}
	}

	message, renderErr := c.composer.Success(created.Message, created.ID)
	if renderErr != nil {
		c.logger.Error("render success message", zap.Error(renderErr))
		message = fmt.Sprintf("%s : ID %s", created.Message, created.ID)
	}
	c.message = message
	c.savedID = created.ID
	c.form.Reset()
	c.logger.Info("profile saved", zap.String("id", created.ID))
	return Outcome{State: Succeeded, ID: created.ID, Message: message},
		notify.Notification{Level: notify.LevelSuccess, Title: c.composer.Title(), Message: message}
}

// Clear resets the form to its defaults and forgets the last message and
// saved id. It is refused while a submission is in flight.
func (c *Controller) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == Submitting {
		return ErrSubmitting
	}
	c.form.Reset()
	c.message = ""
	c.savedID = ""
	c.phase = Idle
	return nil
}

// State returns the current phase.
func (c *Controller) State() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Message returns the text of the last notification.
func (c *Controller) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// SavedID returns the id assigned by the last successful save.
func (c *Controller) SavedID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.savedID
}
