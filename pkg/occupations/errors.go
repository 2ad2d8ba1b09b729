package occupations

import "errors"

var errNoFetcher = errors.New("occupations: fetcher is nil")
