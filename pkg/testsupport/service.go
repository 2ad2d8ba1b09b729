package testsupport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-profileform/pkg/api"
	"github.com/goliatone/go-profileform/pkg/profile"
)

// ProfileService is an in-process fake of the profile API. It records every
// POST body it receives.
type ProfileService struct {
	URL string

	occupations       []string
	occupationsStatus int
	profileStatus     int
	created           profile.Created

	mu     sync.Mutex
	bodies [][]byte
}

// ServiceOption configures a ProfileService.
type ServiceOption func(*ProfileService)

// WithOccupations sets the listed occupations.
func WithOccupations(items ...string) ServiceOption {
	return func(s *ProfileService) { s.occupations = items }
}

// WithOccupationsStatus makes GET /api/occupations fail with code.
func WithOccupationsStatus(code int) ServiceOption {
	return func(s *ProfileService) { s.occupationsStatus = code }
}

// WithProfileStatus makes POST /api/profiles fail with code.
func WithProfileStatus(code int) ServiceOption {
	return func(s *ProfileService) { s.profileStatus = code }
}

// WithCreated sets the success body of POST /api/profiles.
func WithCreated(created profile.Created) ServiceOption {
	return func(s *ProfileService) { s.created = created }
}

// NewProfileService starts a fake answering {"id":"42","message":"Created"}
// and listing Developer and Tester unless configured otherwise. It stops
// when the test ends.
func NewProfileService(t *testing.T, options ...ServiceOption) *ProfileService {
	t.Helper()
	s := &ProfileService{
		occupations: []string{"Developer", "Tester"},
		created:     profile.Created{ID: "42", Message: "Created"},
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc(api.OccupationsPath, s.handleOccupations)
	mux.HandleFunc(api.ProfilesPath, s.handleProfiles)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	s.URL = srv.URL
	return s
}

// Client returns an api.Client pointed at the fake.
func (s *ProfileService) Client() *api.Client {
	return api.New(api.WithBaseURL(s.URL))
}

// Posts returns the decoded POST bodies.
func (s *ProfileService) Posts() []profile.Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]profile.Payload, 0, len(s.bodies))
	for _, body := range s.bodies {
		var p profile.Payload
		_ = json.Unmarshal(body, &p)
		out = append(out, p)
	}
	return out
}

// RawPosts returns the POST bodies as received.
func (s *ProfileService) RawPosts() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.bodies...)
}

func (s *ProfileService) handleOccupations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if s.occupationsStatus != 0 {
		http.Error(w, http.StatusText(s.occupationsStatus), s.occupationsStatus)
		return
	}
	writeJSON(w, profile.OccupationList{Items: s.occupations})
}

func (s *ProfileService) handleProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.bodies = append(s.bodies, body)
	s.mu.Unlock()

	if s.profileStatus != 0 {
		http.Error(w, "failed to save", s.profileStatus)
		return
	}
	writeJSON(w, s.created)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
