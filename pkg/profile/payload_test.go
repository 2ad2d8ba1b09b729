package profile_test

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-profileform/pkg/profile"
)

func TestFormatBirthDay(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "stored layout", raw: "1990-03-07", want: "07/03/1990"},
		{name: "rfc3339", raw: "2001-12-25T10:30:00Z", want: "25/12/2001"},
		{name: "rfc3339 with offset keeps local day", raw: "2001-01-01T23:30:00-05:00", want: "01/01/2001"},
		{name: "already wire formatted", raw: "09/11/1989", want: "09/11/1989"},
		{name: "padded whitespace", raw: "  1990-03-07 ", want: "07/03/1990"},
		{name: "empty", raw: "", want: ""},
		{name: "garbage", raw: "yesterday", want: ""},
		{name: "impossible date", raw: "1990-02-30", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := profile.FormatBirthDay(tc.raw); got != tc.want {
				t.Fatalf("FormatBirthDay(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestFormatBirthDayIsWireOrEmpty(t *testing.T) {
	wire := regexp.MustCompile(`^[0-9]{2}/[0-9]{2}/[0-9]{4}$`)
	inputs := []string{
		"1990-03-07", "0001-01-01", "2024-02-29", "2023-02-29", "31/12/1999",
		"12/31/1999", "1999-1-1", "x", "", "2020-06-15T00:00:00.123456Z",
	}
	for _, in := range inputs {
		got := profile.FormatBirthDay(in)
		if got != "" && !wire.MatchString(got) {
			t.Fatalf("FormatBirthDay(%q) = %q, want DD/MM/YYYY or empty", in, got)
		}
	}
}

func TestNewPayload(t *testing.T) {
	p := profile.Profile{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		Phone:        "0812345678",
		ProfilePhoto: "iVBORw0KGgo=",
		BirthDay:     "1815-12-10",
		Occupation:   "Developer",
		Sex:          "Female",
	}

	want := profile.Payload{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Phone:         "0812345678",
		ProfileBase64: "iVBORw0KGgo=",
		BirthDay:      "10/12/1815",
		Occupation:    "Developer",
		Sex:           "Female",
	}
	if diff := cmp.Diff(want, profile.NewPayload(p)); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultsAndAccessors(t *testing.T) {
	p := profile.Defaults()
	if p.Sex != "Male" {
		t.Fatalf("expected default sex Male, got %q", p.Sex)
	}
	for _, field := range profile.Fields() {
		value, ok := p.Get(field)
		if !ok {
			t.Fatalf("field %s not addressable", field)
		}
		if field != profile.FieldSex && value != "" {
			t.Fatalf("expected %s empty by default, got %q", field, value)
		}
	}

	updated := p.With(profile.FieldOccupation, "Tester")
	if updated.Occupation != "Tester" || p.Occupation != "" {
		t.Fatalf("With must return a modified copy, got %+v / %+v", updated, p)
	}
	if _, ok := p.Get(profile.Field("nickname")); ok {
		t.Fatalf("unknown field must not resolve")
	}
}
