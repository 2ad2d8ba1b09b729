// Package testsupport holds fixtures and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-profileform/pkg/profile"
)

// ValidProfile returns values that pass every field rule. BirthDay uses the
// stored layout so payloads carry 07/03/1990.
func ValidProfile() profile.Profile {
	return profile.Profile{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		Phone:        "0812345678",
		ProfilePhoto: "iVBORw0KGgo=",
		BirthDay:     "1990-03-07",
		Occupation:   "Developer",
		Sex:          string(profile.SexMale),
	}
}

// Context returns a context cancelled when the test ends or after five
// seconds, whichever comes first.
func Context(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden diffs got against the golden file at path, ignoring
// surrounding whitespace.
func CompareGolden(t *testing.T, path string, got []byte) string {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return ""
	}
	want := strings.TrimSpace(string(MustReadGolden(t, path)))
	return cmp.Diff(want, strings.TrimSpace(string(got)))
}
