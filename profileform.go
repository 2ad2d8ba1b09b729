// Package profileform assembles the profile form engine from plain options so
// callers can embed it without wiring each component.
package profileform

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-profileform/pkg/api"
	"github.com/goliatone/go-profileform/pkg/app"
	"github.com/goliatone/go-profileform/pkg/notify"
	"github.com/goliatone/go-profileform/pkg/photo"
	"github.com/goliatone/go-profileform/pkg/profile"
	"github.com/goliatone/go-profileform/pkg/submission"
)

// Profile aliases profile.Profile for callers of the root package.
type Profile = profile.Profile

// Field aliases profile.Field.
type Field = profile.Field

// Notification aliases notify.Notification.
type Notification = notify.Notification

// Outcome aliases submission.Outcome.
type Outcome = submission.Outcome

// Templates aliases notify.Templates.
type Templates = notify.Templates

// Options holds the settings applied by New.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	MaxPhotoBytes int64
	Templates     Templates
	HTTPClient    *http.Client
	Logger        *zap.Logger
	Notifier      notify.Notifier
}

// Option mutates Options.
type Option func(*Options)

// WithBaseURL points the form at a profile service.
func WithBaseURL(base string) Option {
	return func(o *Options) { o.BaseURL = base }
}

// WithTimeout bounds every HTTP call. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// WithMaxPhotoBytes rejects photos larger than n bytes.
func WithMaxPhotoBytes(n int64) Option {
	return func(o *Options) { o.MaxPhotoBytes = n }
}

// WithTemplates overrides the notification text.
func WithTemplates(t Templates) Option {
	return func(o *Options) { o.Templates = t }
}

// WithHTTPClient supplies the HTTP client; WithTimeout is then ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) { o.HTTPClient = client }
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithNotifier sets where save notifications are delivered.
func WithNotifier(n notify.Notifier) Option {
	return func(o *Options) { o.Notifier = n }
}

// New builds a form application talking to the configured profile service.
func New(options ...Option) (*app.App, error) {
	opts := Options{
		BaseURL:   api.DefaultBaseURL,
		Templates: notify.DefaultTemplates(),
		Logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	composer, err := notify.NewComposer(opts.Templates)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	client := api.New(
		api.WithBaseURL(opts.BaseURL),
		api.WithHTTPClient(httpClient),
		api.WithLogger(opts.Logger),
	)

	var photoOpts []photo.Option
	if opts.MaxPhotoBytes > 0 {
		photoOpts = append(photoOpts, photo.WithMaxBytes(opts.MaxPhotoBytes))
	}

	return app.New(
		app.WithService(client),
		app.WithNotifier(opts.Notifier),
		app.WithComposer(composer),
		app.WithLogger(opts.Logger),
		app.WithPhotoOptions(photoOpts...),
	), nil
}
