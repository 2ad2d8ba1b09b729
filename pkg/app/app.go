// Package app wires the form engine together: it owns the form state and
// routes input events to the occupation provider, the photo encoder and the
// submission controller. Every mutation of the state happens under one lock,
// so async continuations apply one at a time.
package app

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-profileform/pkg/api"
	"github.com/goliatone/go-profileform/pkg/async"
	"github.com/goliatone/go-profileform/pkg/form"
	"github.com/goliatone/go-profileform/pkg/notify"
	"github.com/goliatone/go-profileform/pkg/occupations"
	"github.com/goliatone/go-profileform/pkg/photo"
	"github.com/goliatone/go-profileform/pkg/profile"
	"github.com/goliatone/go-profileform/pkg/submission"
)

// Service is the remote profile service used by the form.
type Service interface {
	occupations.Fetcher
	submission.Submitter
}

// App is the form application.
type App struct {
	mu         sync.Mutex
	state      *form.State
	provider   *occupations.Provider
	encoder    *photo.Encoder
	controller *submission.Controller
	logger     *zap.Logger
}

// View is a consistent snapshot of what a front-end renders.
type View struct {
	Values      profile.Profile
	Errors      map[profile.Field]string
	Valid       bool
	Pristine    bool
	Occupations []string
	Phase       submission.Phase
	Message     string
	SavedID     string
}

type settings struct {
	service   Service
	notifier  notify.Notifier
	composer  *notify.Composer
	logger    *zap.Logger
	encoderOp []photo.Option
}

// Option configures an App.
type Option func(*settings)

// WithService sets the profile service. The default is an api.Client for
// api.DefaultBaseURL.
func WithService(service Service) Option {
	return func(s *settings) {
		if service != nil {
			s.service = service
		}
	}
}

// WithNotifier sets the notification sink.
func WithNotifier(n notify.Notifier) Option {
	return func(s *settings) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithComposer overrides the notification templates.
func WithComposer(c *notify.Composer) Option {
	return func(s *settings) {
		if c != nil {
			s.composer = c
		}
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPhotoOptions forwards options to the photo encoder.
func WithPhotoOptions(options ...photo.Option) Option {
	return func(s *settings) {
		s.encoderOp = append(s.encoderOp, options...)
	}
}

// New builds an App with a fresh form state.
func New(options ...Option) *App {
	cfg := settings{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.service == nil {
		cfg.service = api.New(api.WithLogger(cfg.logger))
	}
	if cfg.notifier == nil {
		cfg.notifier = notify.Log(cfg.logger)
	}

	a := &App{
		state:  form.NewState(),
		logger: cfg.logger,
	}
	a.provider = occupations.NewProvider(cfg.service, occupations.WithLogger(cfg.logger))
	a.encoder = photo.NewEncoder(append([]photo.Option{photo.WithLogger(cfg.logger)}, cfg.encoderOp...)...)
	a.controller = submission.NewController(a.state, cfg.service,
		submission.WithLocker(&a.mu),
		submission.WithNotifier(cfg.notifier),
		submission.WithComposer(cfg.composer),
		submission.WithLogger(cfg.logger),
	)
	return a
}

// Start loads the occupation options. The task never fails; a failed load
// leaves the option list empty.
func (a *App) Start(ctx context.Context) *async.Task[[]string] {
	return a.provider.Load(ctx)
}

// Occupations returns the selectable occupations.
func (a *App) Occupations() []string {
	return a.provider.Options()
}

// SetField applies a user edit and marks the field touched.
func (a *App) SetField(field profile.Field, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.state.Set(field, value); err != nil {
		return err
	}
	a.state.Touch(field)
	return nil
}

// Blur marks field as visited.
func (a *App) Blur(field profile.Field) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Touch(field)
}

// TypePhone stores the digits of raw and returns the text to echo.
func (a *App) TypePhone(raw string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Touch(profile.FieldPhone)
	return a.state.SetPhoneInput(raw)
}

// PickPhoto encodes the first of files and stores the payload. An empty
// selection leaves the state untouched. A read failure is shown as the photo
// field reason. The task resolves after the state has been updated.
func (a *App) PickPhoto(ctx context.Context, files []photo.Source) *async.Task[string] {
	encoded := a.encoder.Encode(ctx, files)
	task, complete := async.New[string]()
	go func() {
		payload, err := encoded.Wait(context.Background())
		a.mu.Lock()
		switch {
		case errors.Is(err, photo.ErrNoFile):
		case err != nil:
			a.state.Touch(profile.FieldProfilePhoto)
			a.state.Annotate(profile.FieldProfilePhoto, err.Error())
		default:
			a.state.Touch(profile.FieldProfilePhoto)
			a.state.SetPhoto(payload)
		}
		a.mu.Unlock()
		complete(payload, err)
	}()
	return task
}

// Save submits the form. See submission.Controller.Save.
func (a *App) Save(ctx context.Context) (*async.Task[submission.Outcome], error) {
	return a.controller.Save(ctx)
}

// Clear resets the form. See submission.Controller.Clear.
func (a *App) Clear() error {
	return a.controller.Clear()
}

// Result returns the validation result of field.
func (a *App) Result(field profile.Field) (valid bool, reason string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	res := a.state.Result(field)
	return res.Valid, res.Reason
}

// View snapshots the form for rendering.
func (a *App) View() View {
	a.mu.Lock()
	v := View{
		Values:   a.state.Values(),
		Errors:   a.state.Errors(),
		Valid:    a.state.Valid(),
		Pristine: a.state.Pristine(),
	}
	a.mu.Unlock()

	v.Occupations = a.provider.Options()
	v.Phase = a.controller.State()
	v.Message = a.controller.Message()
	v.SavedID = a.controller.SavedID()
	return v
}
