package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMemory_CreateAndFind(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return fixed }

	record := &Record{ID: "abc", FirstName: "Ada", BirthDay: "07/03/1990"}
	if err := m.Create(context.Background(), record); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := m.FindByID(context.Background(), "abc")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	want := Record{
		ID:        "abc",
		FirstName: "Ada",
		BirthDay:  "07/03/1990",
		CreatedBy: SystemUserID,
		CreatedAt: fixed,
		UpdatedAt: fixed,
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	got.FirstName = "changed"
	again, _ := m.FindByID(context.Background(), "abc")
	if again.FirstName != "Ada" {
		t.Fatalf("FindByID must return a copy")
	}
}

func TestMemory_Errors(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Create(ctx, &Record{}); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	if err := m.Create(ctx, &Record{ID: "x"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := m.Create(ctx, &Record{ID: "x"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if _, err := m.FindByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := m.Create(cancelled, &Record{ID: "y"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("expected one record, got %d", m.Len())
	}
}
