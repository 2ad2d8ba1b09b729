package occupations

import (
	"bufio"
	"embed"
	"errors"
	"io"
	"strings"
	"sync"
)

//go:embed data/occupations.txt
var dataFS embed.FS

const defaultListPath = "data/occupations.txt"

var errMissingReader = errors.New("occupations: missing reader")

var (
	defaultOnce  sync.Once
	defaultItems []string
	defaultErr   error
)

// DefaultOccupations returns a copy of the embedded occupation list.
func DefaultOccupations() ([]string, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()
		defaultItems, defaultErr = LoadOccupations(f)
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]string{}, defaultItems...), nil
}

// LoadOccupations reads one occupation per line. Blank lines, # comments and
// duplicates are skipped; file order is kept.
func LoadOccupations(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, errMissingReader
	}
	scanner := bufio.NewScanner(r)
	items := make([]string, 0, 16)
	seen := map[string]struct{}{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Filter returns the items containing query, ignoring case. An empty query
// returns every item.
func Filter(items []string, query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if query == "" || strings.Contains(strings.ToLower(item), query) {
			out = append(out, item)
		}
	}
	return out
}
