package occupations

import "net/http"

const (
	defaultRoutePath   = "/occupations"
	defaultSearchParam = "q"
)

// GuardFunc can reject a request before the list is served.
type GuardFunc func(r *http.Request) error

// Options configures the component.
type Options struct {
	RoutePath   string
	SearchParam string
	Guard       GuardFunc

	Items []string
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions returns the component defaults.
func DefaultOptions() Options {
	return Options{
		RoutePath:   defaultRoutePath,
		SearchParam: defaultSearchParam,
	}
}

// NewOptions applies fns over DefaultOptions.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.SearchParam == "" {
		opts.SearchParam = defaultSearchParam
	}
	if opts.Items != nil {
		opts.Items = append([]string{}, opts.Items...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		o.SearchParam = name
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}

// WithItems replaces the embedded list.
func WithItems(items []string) OptionFn {
	return func(o *Options) {
		if items == nil {
			o.Items = nil
			return
		}
		o.Items = append([]string{}, items...)
	}
}
