// Package occupations loads the selectable occupation values once at start up.
// A failed load degrades to an empty option list without surfacing an error.
package occupations

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-profileform/pkg/async"
)

// Fetcher retrieves the occupation list from the remote service.
type Fetcher interface {
	Occupations(ctx context.Context) ([]string, error)
}

// Provider holds the option list fetched from a Fetcher.
type Provider struct {
	fetcher Fetcher
	logger  *zap.Logger

	mu      sync.RWMutex
	options []string
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger used to record fetch failures.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProvider constructs a Provider around fetcher.
func NewProvider(fetcher Fetcher, options ...Option) *Provider {
	p := &Provider{
		fetcher: fetcher,
		logger:  zap.NewNop(),
		options: []string{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Load issues a single fetch. The task always resolves without error: on
// failure the options become empty.
func (p *Provider) Load(ctx context.Context) *async.Task[[]string] {
	return async.Go(func() ([]string, error) {
		items, err := p.fetch(ctx)
		if err != nil {
			p.logger.Debug("occupations fetch failed", zap.Error(err))
			items = []string{}
		}
		p.mu.Lock()
		p.options = items
		p.mu.Unlock()
		return append([]string{}, items...), nil
	})
}

func (p *Provider) fetch(ctx context.Context) ([]string, error) {
	if p.fetcher == nil {
		return nil, errNoFetcher
	}
	items, err := p.fetcher.Occupations(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// Options returns a copy of the current option list.
func (p *Provider) Options() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string{}, p.options...)
}
