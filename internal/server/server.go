// Package server implements the profile service consumed by the form: the
// occupation list and profile creation, behind CORS and rate limiting.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-profileform/components/occupations"
	"github.com/goliatone/go-profileform/internal/store"
	"github.com/goliatone/go-profileform/pkg/api"
	"github.com/goliatone/go-profileform/pkg/profile"
)

const (
	defaultBodyLimit int64 = 10 << 20
	defaultRateLimit       = 100
)

// Server serves the profile API.
type Server struct {
	repo        store.Repository
	logger      *zap.Logger
	occupations []string
	rateLimit   int
	bodyLimit   int64
	newID       func() string

	contract *contract
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOccupations replaces the embedded occupation list.
func WithOccupations(items []string) Option {
	return func(s *Server) {
		if items != nil {
			s.occupations = append([]string{}, items...)
		}
	}
}

// WithRateLimit caps requests per client IP per minute. Zero or less
// disables the limiter.
func WithRateLimit(perMinute int) Option {
	return func(s *Server) {
		s.rateLimit = perMinute
	}
}

// WithBodyLimit caps request bodies in bytes.
func WithBodyLimit(limit int64) Option {
	return func(s *Server) {
		if limit > 0 {
			s.bodyLimit = limit
		}
	}
}

// WithIDGenerator overrides profile id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewID returns a random 32 character hexadecimal id.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// New builds a server storing profiles in repo.
func New(ctx context.Context, repo store.Repository, options ...Option) (*Server, error) {
	if repo == nil {
		return nil, errors.New("server: repository is nil")
	}
	s := &Server{
		repo:      repo,
		logger:    zap.NewNop(),
		rateLimit: defaultRateLimit,
		bodyLimit: defaultBodyLimit,
		newID:     NewID,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	c, err := loadContract(ctx)
	if err != nil {
		return nil, err
	}
	s.contract = c
	s.router = s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	if s.rateLimit > 0 {
		r.Use(httprate.LimitByIP(s.rateLimit, time.Minute))
	}

	var fns []occupations.OptionFn
	if s.occupations != nil {
		fns = append(fns, occupations.WithItems(s.occupations))
	}
	if _, err := occupations.New(fns...).RegisterRoutes(r, "/api"); err != nil {
		s.logger.Error("register occupations", zap.Error(err))
	}
	r.Post(api.ProfilesPath, s.createProfile)
	r.Options("/*", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func (s *Server) createProfile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.bodyLimit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, msgBodyTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	var req createProfileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	if err := s.contract.check(r); err != nil {
		s.logger.Debug("request rejected by contract", zap.Error(err))
		http.Error(w, contractReason(err), http.StatusBadRequest)
		return
	}

	req = req.sanitize()
	if reason := req.check(); reason != "" {
		http.Error(w, reason, http.StatusBadRequest)
		return
	}

	record := &store.Record{
		ID:            s.newID(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		ProfileBase64: req.ProfileBase64,
		BirthDay:      req.BirthDay,
		Occupation:    req.Occupation,
		Sex:           req.Sex,
		CreatedBy:     store.SystemUserID,
	}
	if err := s.repo.Create(r.Context(), record); err != nil {
		s.logger.Error("insert profile", zap.Error(err))
		http.Error(w, msgSaveFailed, http.StatusInternalServerError)
		return
	}

	s.logger.Info("profile created", zap.String("id", record.ID))
	writeJSON(w, http.StatusOK, profile.Created{ID: record.ID, Message: msgSaved})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests
// for at most shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("profile service listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("waiting for pending requests before shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
