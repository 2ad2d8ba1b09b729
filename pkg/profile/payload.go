package profile

import (
	"fmt"
	"strings"
	"time"
)

// Payload is the JSON body of POST /api/profiles.
type Payload struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	ProfileBase64 string `json:"profileBase64"`
	BirthDay      string `json:"birthDay"`
	Occupation    string `json:"occupation"`
	Sex           string `json:"sex"`
}

// Created is the success body returned by the profile service.
type Created struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// OccupationList is the body returned by GET /api/occupations.
type OccupationList struct {
	Items []string `json:"items"`
}

// NewPayload passes every value through unchanged except the birth date,
// which is reformatted with FormatBirthDay.
func NewPayload(p Profile) Payload {
	return Payload{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Email:         p.Email,
		Phone:         p.Phone,
		ProfileBase64: p.ProfilePhoto,
		BirthDay:      FormatBirthDay(p.BirthDay),
		Occupation:    p.Occupation,
		Sex:           p.Sex,
	}
}

// WireDateLayout is the DD/MM/YYYY layout used on the wire.
const WireDateLayout = "02/01/2006"

// StoredDateLayout is the layout the terminal date input stores.
const StoredDateLayout = "2006-01-02"

var dateLayouts = []string{
	StoredDateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	WireDateLayout,
}

// ParseDate parses a stored date value in any of the accepted layouts.
func ParseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("profile: empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("profile: unrecognised date %q", raw)
}

// FormatBirthDay renders raw as DD/MM/YYYY. It returns "" when raw is not a
// valid date.
func FormatBirthDay(raw string) string {
	t, err := ParseDate(raw)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", t.Day(), int(t.Month()), t.Year())
}
