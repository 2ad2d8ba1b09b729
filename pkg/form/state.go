package form

import (
	"github.com/goliatone/go-profileform/pkg/profile"
	"github.com/goliatone/go-profileform/pkg/validation"
)

// Listener observes user driven value changes.
type Listener func(field profile.Field, value string)

// State holds the current profile values together with per-field touched and
// dirty flags and the validation result of every field. Results are recomputed
// on each change. State is not safe for concurrent use; the owning controller
// serialises access.
type State struct {
	values      profile.Profile
	touched     map[profile.Field]bool
	dirty       map[profile.Field]bool
	results     map[profile.Field]validation.Result
	annotations map[profile.Field]string
	listeners   []Listener
}

// NewState returns a state seeded with profile.Defaults.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// OnChange registers a listener for Set and SetPhoto. Silent updates (phone
// input normalisation) do not notify listeners.
func (s *State) OnChange(listener Listener) {
	if listener == nil {
		return
	}
	s.listeners = append(s.listeners, listener)
}

// Values returns a copy of the current values.
func (s *State) Values() profile.Profile {
	return s.values
}

// Get returns the value of field.
func (s *State) Get(field profile.Field) (string, bool) {
	return s.values.Get(field)
}

// Set records a user edit: the value is stored, the field becomes dirty, its
// result is recomputed and listeners are notified.
func (s *State) Set(field profile.Field, value string) error {
	if _, ok := s.values.Get(field); !ok {
		return ErrUnknownField
	}
	if field == profile.FieldProfilePhoto {
		return ErrPhotoNotSettable
	}
	s.apply(field, value, true)
	return nil
}

// SetPhoneInput normalises raw phone input to its digits, stores it without
// marking the field dirty or notifying listeners, and returns the text the
// input should echo.
func (s *State) SetPhoneInput(raw string) string {
	digits := validation.DigitsOnly(raw)
	s.apply(profile.FieldPhone, digits, false)
	return digits
}

// SetPhoto stores the encoded photo payload and marks the field dirty.
func (s *State) SetPhoto(payload string) {
	delete(s.annotations, profile.FieldProfilePhoto)
	s.apply(profile.FieldProfilePhoto, payload, true)
}

// Annotate attaches a reason to field that is shown alongside its validation
// state until the field changes or the form resets. It does not affect
// validity.
func (s *State) Annotate(field profile.Field, reason string) {
	if reason == "" {
		delete(s.annotations, field)
		return
	}
	s.annotations[field] = reason
}

func (s *State) apply(field profile.Field, value string, notify bool) {
	s.values = s.values.With(field, value)
	s.results[field] = validation.Validate(field, value)
	if !notify {
		return
	}
	s.dirty[field] = true
	for _, listener := range s.listeners {
		listener(field, value)
	}
}

// Touch marks field as visited.
func (s *State) Touch(field profile.Field) {
	s.touched[field] = true
}

// MarkAllTouched marks every field visited so validation messages show.
func (s *State) MarkAllTouched() {
	for _, field := range profile.Fields() {
		s.touched[field] = true
	}
}

// Touched reports whether field has been visited.
func (s *State) Touched(field profile.Field) bool {
	return s.touched[field]
}

// Dirty reports whether field has been changed by the user.
func (s *State) Dirty(field profile.Field) bool {
	return s.dirty[field]
}

// Pristine reports whether no field is dirty or touched.
func (s *State) Pristine() bool {
	return len(s.dirty) == 0 && len(s.touched) == 0
}

// Result returns the validation result currently held for field.
func (s *State) Result(field profile.Field) validation.Result {
	if res, ok := s.results[field]; ok {
		return res
	}
	return validation.Validate(field, "")
}

// Valid reports whether every field passes its rule.
func (s *State) Valid() bool {
	for _, field := range profile.Fields() {
		if !s.Result(field).Valid {
			return false
		}
	}
	return true
}

// Errors returns the messages that should be visible: reasons of touched,
// invalid fields plus any annotations.
func (s *State) Errors() map[profile.Field]string {
	out := make(map[profile.Field]string)
	for _, field := range profile.Fields() {
		if note, ok := s.annotations[field]; ok {
			out[field] = note
			continue
		}
		if !s.touched[field] {
			continue
		}
		if res := s.Result(field); !res.Valid {
			out[field] = res.Reason
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Reset restores profile.Defaults and clears touched, dirty and annotations.
func (s *State) Reset() {
	s.values = profile.Defaults()
	s.touched = make(map[profile.Field]bool)
	s.dirty = make(map[profile.Field]bool)
	s.annotations = make(map[profile.Field]string)
	s.results = make(map[profile.Field]validation.Result, len(profile.Fields()))
	for _, field := range profile.Fields() {
		value, _ := s.values.Get(field)
		s.results[field] = validation.Validate(field, value)
	}
}
