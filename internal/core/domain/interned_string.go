package domain

import (
	"strings"
	"unique"
)

// InternedString wraps a unique.Handle[string].
// Unit and namespace names repeat across every domain of a pool, so they are interned.
// Two InternedStrings are equal exactly when their strings are equal.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// NewInternedStrings interns every element of s.
func NewInternedStrings(s []string) []InternedString {
	res := make([]InternedString, len(s))
	for i, v := range s {
		res[i] = NewInternedString(v)
	}
	return res
}

// Strings converts interned names back to plain strings.
func Strings(is []InternedString) []string {
	res := make([]string, len(is))
	for i, v := range is {
		res[i] = v.String()
	}
	return res
}

// String returns the underlying string value.
// The zero InternedString yields "".
func (is InternedString) String() string {
	if is.IsZero() {
		return ""
	}
	return is.h.Value()
}

// IsZero reports whether is was never assigned.
func (is InternedString) IsZero() bool {
	return is == InternedString{}
}

// Compare orders interned strings by their values.
func (is InternedString) Compare(other InternedString) int {
	return strings.Compare(is.String(), other.String())
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}
