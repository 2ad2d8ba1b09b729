package occupations

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

type listPayload struct {
	Items []string `json:"items"`
}

func serve(t *testing.T, h http.Handler, method, target string) (*http.Response, listPayload) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	res := rec.Result()
	var payload listPayload
	if method == http.MethodGet && res.StatusCode == http.StatusOK {
		if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return res, payload
}

func TestDefaultOccupations(t *testing.T) {
	got, err := DefaultOccupations()
	if err != nil {
		t.Fatalf("default occupations: %v", err)
	}
	want := []string{"Developer", "Tester", "System Analyst", "Project Manager", "Support"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("default list mismatch (-want +got):\n%s", diff)
	}

	got[0] = "mutated"
	again, _ := DefaultOccupations()
	if again[0] != "Developer" {
		t.Fatalf("DefaultOccupations must return a copy")
	}
}

func TestLoadOccupations(t *testing.T) {
	got, err := LoadOccupations(strings.NewReader("# header\n\n Nurse \nPilot\nNurse\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"Nurse", "Pilot"}, got); diff != "" {
		t.Fatalf("load mismatch (-want +got):\n%s", diff)
	}
	if _, err := LoadOccupations(nil); err == nil {
		t.Fatalf("expected error for nil reader")
	}
}

func TestHandler_ListsItems(t *testing.T) {
	res, payload := serve(t, Handler(), http.MethodGet, "/api/occupations")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	if len(payload.Items) != 5 {
		t.Fatalf("expected 5 items, got %v", payload.Items)
	}
}

func TestHandler_FilterAndCustomItems(t *testing.T) {
	h := Handler(WithItems([]string{"Developer", "DevOps", "Tester"}))
	_, payload := serve(t, h, http.MethodGet, "/api/occupations?q=dev")
	if diff := cmp.Diff([]string{"Developer", "DevOps"}, payload.Items); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}

	_, empty := serve(t, Handler(WithItems([]string{})), http.MethodGet, "/")
	if empty.Items == nil || len(empty.Items) != 0 {
		t.Fatalf("expected empty items array, got %#v", empty.Items)
	}
}

func TestHandler_MethodAndGuard(t *testing.T) {
	res, _ := serve(t, Handler(), http.MethodPost, "/")
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.StatusCode)
	}
	if allow := res.Header.Get("Allow"); allow != "GET, HEAD, OPTIONS" {
		t.Fatalf("unexpected Allow header %q", allow)
	}

	guarded := Handler(WithGuard(func(*http.Request) error {
		return StatusError{Code: http.StatusUnauthorized, Err: errors.New("nope")}
	}))
	if res, _ := serve(t, guarded, http.MethodGet, "/"); res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}

	plain := Handler(WithGuard(func(*http.Request) error { return errors.New("denied") }))
	if res, _ := serve(t, plain, http.MethodGet, "/"); res.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.StatusCode)
	}

	if res, _ := serve(t, Handler(), http.MethodHead, "/"); res.StatusCode != http.StatusOK {
		t.Fatalf("expected HEAD 200, got %d", res.StatusCode)
	}

	res, _ = serve(t, guarded, http.MethodOptions, "/")
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("expected OPTIONS 204, got %d", res.StatusCode)
	}
	if allow := res.Header.Get("Allow"); allow != "GET, HEAD, OPTIONS" {
		t.Fatalf("unexpected OPTIONS Allow header %q", allow)
	}
}

func TestRegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := New().RegisterRoutes(mux, "/api/")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/api/occupations" {
		t.Fatalf("unexpected pattern %q", pattern)
	}
	res, payload := serve(t, mux, http.MethodGet, "/api/occupations")
	if res.StatusCode != http.StatusOK || len(payload.Items) != 5 {
		t.Fatalf("unexpected response %d %v", res.StatusCode, payload.Items)
	}

	if _, err := New().RegisterRoutes(nil, "/api"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
	if got := MountPath("api", "items"); got != "/api/items" {
		t.Fatalf("unexpected mount path %q", got)
	}
}
