package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-profileform/pkg/profile"
)

func fillValid(t *testing.T, s *State) {
	t.Helper()
	values := map[profile.Field]string{
		profile.FieldFirstName:  "Ada",
		profile.FieldLastName:   "Lovelace",
		profile.FieldEmail:      "ada@example.com",
		profile.FieldBirthDay:   "1815-12-10",
		profile.FieldOccupation: "Developer",
		profile.FieldSex:        "Female",
	}
	for field, value := range values {
		if err := s.Set(field, value); err != nil {
			t.Fatalf("set %s: %v", field, err)
		}
	}
	s.SetPhoneInput("0812345678")
	s.SetPhoto("iVBORw0KGgo=")
}

func TestNewState_Defaults(t *testing.T) {
	s := NewState()

	if diff := cmp.Diff(profile.Defaults(), s.Values()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if s.Valid() {
		t.Fatalf("fresh form must be invalid")
	}
	if !s.Result(profile.FieldSex).Valid {
		t.Fatalf("default sex should be valid")
	}
	if !s.Pristine() {
		t.Fatalf("fresh form must be pristine")
	}
	if errs := s.Errors(); errs != nil {
		t.Fatalf("untouched form should not show errors, got %v", errs)
	}
}

func TestState_ValidityIsConjunction(t *testing.T) {
	s := NewState()
	fillValid(t, s)
	if !s.Valid() {
		t.Fatalf("expected valid form, invalid fields: %v", invalidFields(s))
	}

	if err := s.Set(profile.FieldEmail, "not-an-email"); err != nil {
		t.Fatalf("set email: %v", err)
	}
	if s.Valid() {
		t.Fatalf("one invalid field must make the form invalid")
	}
	if got := invalidFields(s); len(got) != 1 || got[0] != profile.FieldEmail {
		t.Fatalf("expected only email invalid, got %v", got)
	}
}

func TestState_SetMarksDirtyAndNotifies(t *testing.T) {
	s := NewState()
	var seen []profile.Field
	s.OnChange(func(field profile.Field, _ string) {
		seen = append(seen, field)
	})

	if err := s.Set(profile.FieldFirstName, "Ada"); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.SetPhoto("abc")

	if !s.Dirty(profile.FieldFirstName) || !s.Dirty(profile.FieldProfilePhoto) {
		t.Fatalf("expected firstName and photo dirty")
	}
	want := []profile.Field{profile.FieldFirstName, profile.FieldProfilePhoto}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("listener calls mismatch (-want +got):\n%s", diff)
	}
}

func TestState_SetPhoneInputIsSilent(t *testing.T) {
	s := NewState()
	calls := 0
	s.OnChange(func(profile.Field, string) { calls++ })

	echo := s.SetPhoneInput("(081) 234-5678")
	if echo != "0812345678" {
		t.Fatalf("expected digits echo, got %q", echo)
	}
	if got, _ := s.Get(profile.FieldPhone); got != echo {
		t.Fatalf("stored value %q differs from echo %q", got, echo)
	}
	if s.Dirty(profile.FieldPhone) {
		t.Fatalf("phone normalisation must not mark dirty")
	}
	if calls != 0 {
		t.Fatalf("phone normalisation must not notify listeners, got %d calls", calls)
	}
	if !s.Result(profile.FieldPhone).Valid {
		t.Fatalf("validity must be recomputed on silent update")
	}
}

func TestState_PhotoOnlyFromEncoder(t *testing.T) {
	s := NewState()
	if err := s.Set(profile.FieldProfilePhoto, "typed"); !errors.Is(err, ErrPhotoNotSettable) {
		t.Fatalf("expected ErrPhotoNotSettable, got %v", err)
	}
	if got, _ := s.Get(profile.FieldProfilePhoto); got != "" {
		t.Fatalf("photo must stay unset, got %q", got)
	}
	if err := s.Set(profile.Field("nickname"), "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestState_ErrorsOnlyForTouched(t *testing.T) {
	s := NewState()
	s.Touch(profile.FieldEmail)

	errs := s.Errors()
	if len(errs) != 1 || errs[profile.FieldEmail] != "required" {
		t.Fatalf("expected only email error, got %v", errs)
	}

	s.MarkAllTouched()
	errs = s.Errors()
	if len(errs) != 7 {
		t.Fatalf("expected 7 visible errors after touching all, got %v", errs)
	}
	if _, ok := errs[profile.FieldSex]; ok {
		t.Fatalf("default sex must not report an error")
	}
}

func TestState_AnnotationClearedBySetPhoto(t *testing.T) {
	s := NewState()
	s.Annotate(profile.FieldProfilePhoto, "could not read file")
	if got := s.Errors()[profile.FieldProfilePhoto]; got != "could not read file" {
		t.Fatalf("expected annotation, got %q", got)
	}
	s.SetPhoto("abc")
	if _, ok := s.Errors()[profile.FieldProfilePhoto]; ok {
		t.Fatalf("annotation should clear once a photo is set")
	}
}

func TestState_Reset(t *testing.T) {
	s := NewState()
	fillValid(t, s)
	s.MarkAllTouched()

	s.Reset()

	if diff := cmp.Diff(profile.Defaults(), s.Values()); diff != "" {
		t.Fatalf("reset values mismatch (-want +got):\n%s", diff)
	}
	if !s.Pristine() {
		t.Fatalf("reset must clear touched and dirty flags")
	}
	if s.Valid() {
		t.Fatalf("reset form must be invalid again")
	}
}

func invalidFields(s *State) []profile.Field {
	var out []profile.Field
	for _, field := range profile.Fields() {
		if !s.Result(field).Valid {
			out = append(out, field)
		}
	}
	return out
}
