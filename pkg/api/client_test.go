package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-profileform/pkg/profile"
)

func TestOccupations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != OccupationsPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"items":["Developer","Tester"]}`)
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL+"/"), WithHTTPClient(srv.Client()))
	got, err := c.Occupations(context.Background())
	if err != nil {
		t.Fatalf("occupations: %v", err)
	}
	if diff := cmp.Diff([]string{"Developer", "Tester"}, got); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestOccupations_Failures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"malformed": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"items":`)
		},
		"missing items": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"data":[]}`)
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			_, err := New(WithBaseURL(srv.URL)).Occupations(context.Background())
			if err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestCreateProfile(t *testing.T) {
	payload := profile.Payload{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Phone:         "0812345678",
		ProfileBase64: "iVBORw0KGgo=",
		BirthDay:      "10/12/1815",
		Occupation:    "Developer",
		Sex:           "Female",
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != ProfilesPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var got profile.Payload
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if diff := cmp.Diff(payload, got); diff != "" {
			t.Errorf("payload mismatch (-want +got):\n%s", diff)
		}
		_, _ = io.WriteString(w, `{"id":"42","message":"Created"}`)
	}))
	defer srv.Close()

	got, err := New(WithBaseURL(srv.URL)).CreateProfile(context.Background(), payload)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if diff := cmp.Diff(profile.Created{ID: "42", Message: "Created"}, got); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateProfile_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "all fields are required", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := New(WithBaseURL(srv.URL)).CreateProfile(context.Background(), profile.Payload{})
	var statusErr StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 StatusError, got %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New(WithBaseURL("  "))
	if c.BaseURL() != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", c.BaseURL())
	}
}
