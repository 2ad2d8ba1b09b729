package occupations

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubFetcher struct {
	items []string
	err   error
	calls int
}

func (s *stubFetcher) Occupations(context.Context) ([]string, error) {
	s.calls++
	return s.items, s.err
}

func TestLoad_PopulatesOptions(t *testing.T) {
	fetcher := &stubFetcher{items: []string{"Developer", "Tester"}}
	p := NewProvider(fetcher)

	if got := p.Options(); len(got) != 0 {
		t.Fatalf("expected no options before load, got %v", got)
	}

	got, err := p.Load(context.Background()).Wait(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"Developer", "Tester"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("task result mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, p.Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected exactly one fetch, got %d", fetcher.calls)
	}
}

func TestLoad_FailureDegradesToEmpty(t *testing.T) {
	p := NewProvider(&stubFetcher{err: errors.New("connection refused")})

	got, err := p.Load(context.Background()).Wait(context.Background())
	if err != nil {
		t.Fatalf("failure must not surface, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil options, got %#v", got)
	}
	if opts := p.Options(); len(opts) != 0 {
		t.Fatalf("expected empty options, got %v", opts)
	}
}

func TestLoad_NilFetcher(t *testing.T) {
	got, err := NewProvider(nil).Load(context.Background()).Wait(context.Background())
	if err != nil || len(got) != 0 {
		t.Fatalf("expected silent empty result, got %v %v", got, err)
	}
}
