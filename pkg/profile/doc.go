// Package profile defines the single entity collected by the profile form:
// the field identifiers, the held values, the sex enumeration and the wire
// payload sent to the profile service. Values are kept as the strings the
// user produced; the birth date is only normalised to the DD/MM/YYYY wire
// format when a payload is built, and an unparseable date becomes an empty
// string instead of failing the submission.
package profile
