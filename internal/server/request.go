package server

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-profileform/pkg/profile"
)

const (
	msgInvalidJSON    = "invalid JSON"
	msgAllRequired    = "all fields are required"
	msgPhoneDigits    = "phone must contain digits only"
	msgBirthDayFormat = "birthDay must be in format DD/MM/YYYY"
	msgSex            = "sex must be Male or Female"
	msgSaveFailed     = "failed to save"
	msgBodyTooLarge   = "request body too large"
	msgSaved          = "save data success"
)

// createProfileRequest mirrors profile.Payload with the server side rules.
type createProfileRequest struct {
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	Email         string `json:"email" validate:"required"`
	Phone         string `json:"phone" validate:"required,number"`
	ProfileBase64 string `json:"profileBase64" validate:"required"`
	BirthDay      string `json:"birthDay" validate:"required,wiredate"`
	Occupation    string `json:"occupation" validate:"required"`
	Sex           string `json:"sex" validate:"required,oneof=Male Female"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("wiredate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(profile.WireDateLayout, fl.Field().String())
		return err == nil
	})
	return v
}

// check returns the client facing reason of the first violated rule, or "".
// Missing values are reported before format problems.
func (req createProfileRequest) check() string {
	err := validate.Struct(req)
	if err == nil {
		return ""
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return msgAllRequired
		}
	}
	switch fe := fieldErrs[0]; fe.Field() {
	case "Phone":
		return msgPhoneDigits
	case "BirthDay":
		return msgBirthDayFormat
	case "Sex":
		return msgSex
	default:
		return fe.Error()
	}
}

var textPolicy = bluemonday.StrictPolicy()

// sanitize strips markup from the free text fields.
func (req createProfileRequest) sanitize() createProfileRequest {
	clean := func(s string) string {
		return strings.TrimSpace(textPolicy.Sanitize(s))
	}
	req.FirstName = clean(req.FirstName)
	req.LastName = clean(req.LastName)
	req.Occupation = clean(req.Occupation)
	return req
}
