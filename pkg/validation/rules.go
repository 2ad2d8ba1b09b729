package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-profileform/pkg/profile"
)

var validate = validator.New()

// Rule validates the raw value of a single field.
type Rule interface {
	Validate(value string) error
}

// RuleFunc adapts a function into a Rule.
type RuleFunc func(value string) error

// Validate calls the underlying function.
func (fn RuleFunc) Validate(value string) error {
	return fn(value)
}

// Result is the outcome of applying a field's rule to a value.
type Result struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// tagRule checks a value against validator tags, reporting the first failing
// tag through a stable sentinel error.
type tagRule struct {
	tags    string
	trim    bool
	reasons map[string]error
}

func (r tagRule) Validate(value string) error {
	if r.trim {
		value = strings.TrimSpace(value)
	}
	err := validate.Var(value, r.tags)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		tag := fieldErrs[0].Tag()
		if tag == "required" {
			return ErrRequired
		}
		if mapped, ok := r.reasons[tag]; ok {
			return mapped
		}
	}
	return err
}

var rules = map[profile.Field]Rule{
	profile.FieldFirstName:    tagRule{tags: "required", trim: true},
	profile.FieldLastName:     tagRule{tags: "required", trim: true},
	profile.FieldEmail:        tagRule{tags: "required,email", reasons: map[string]error{"email": ErrEmail}},
	profile.FieldPhone:        tagRule{tags: "required,number,min=9,max=10", reasons: phoneErrors},
	profile.FieldProfilePhoto: tagRule{tags: "required"},
	profile.FieldBirthDay:     tagRule{tags: "required", trim: true},
	profile.FieldOccupation:   tagRule{tags: "required"},
	profile.FieldSex:          RuleFunc(validateSex),
}

var phoneErrors = map[string]error{
	"number": ErrPhone,
	"min":    ErrPhone,
	"max":    ErrPhone,
}

func validateSex(value string) error {
	if value == "" {
		return ErrRequired
	}
	if !profile.Sex(value).Valid() {
		return ErrSex
	}
	return nil
}

// RuleFor returns the rule bound to field.
func RuleFor(field profile.Field) (Rule, bool) {
	rule, ok := rules[field]
	return rule, ok
}

// Check applies the field's rule and returns the raw error.
func Check(field profile.Field, value string) error {
	rule, ok := rules[field]
	if !ok {
		return ErrUnknownField
	}
	return rule.Validate(value)
}

// Validate applies the field's rule to value. It is a pure function of its
// arguments.
func Validate(field profile.Field, value string) Result {
	if err := Check(field, value); err != nil {
		return Result{Valid: false, Reason: err.Error()}
	}
	return Result{Valid: true}
}

// ValidateProfile validates every field of p and returns the failing ones.
func ValidateProfile(p profile.Profile) map[profile.Field]Result {
	out := make(map[profile.Field]Result)
	for _, field := range profile.Fields() {
		value, _ := p.Get(field)
		if res := Validate(field, value); !res.Valid {
			out[field] = res
		}
	}
	return out
}

// DigitsOnly strips every character that is not an ASCII digit.
func DigitsOnly(input string) string {
	if input == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
