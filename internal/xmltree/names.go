package xmltree

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrNotWellFormed is the sentinel wrapped by every rendering failure.
var ErrNotWellFormed = errors.New("not well-formed")

// Error reports the name or content that could not be rendered.
type Error struct {
	Name   string // Element or attribute name involved
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%q: %s", e.Name, e.Reason)
}

func (e *Error) Unwrap() error {
	return ErrNotWellFormed
}

func newError(name, reason string) error {
	return &Error{Name: name, Reason: reason}
}

// IsNCName reports whether s is a non-colonized XML name.
func IsNCName(s string) bool {
	if s == "" || !utf8.ValidString(s) {
		return false
	}
	for i, r := range s {
		if r == ':' {
			return false
		}
		if i == 0 && !isNameStartChar(r) {
			return false
		}
		if !isNameChar(r) {
			return false
		}
	}
	return true
}

// IsQName reports whether s is an optionally prefixed XML name.
func IsQName(s string) bool {
	prefix, local, found := strings.Cut(s, ":")
	if !found {
		return IsNCName(s)
	}
	return IsNCName(prefix) && IsNCName(local)
}

// CheckName fails with an *Error when name is not an optionally prefixed
// XML name. etree splits names at the first colon and drops an empty prefix,
// so names must be checked before they are handed to it.
func CheckName(name string) error {
	if !IsQName(name) {
		return newError(name, "invalid XML name")
	}
	return nil
}

// validateChars rejects content outside the XML Char production.
func validateChars(name, s string) error {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return newError(name, fmt.Sprintf("invalid UTF-8 at byte %d", i))
		}
		if !isChar(r) {
			return newError(name, fmt.Sprintf("invalid character %U at byte %d", r, i))
		}
		i += size
	}
	return nil
}

func isChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

func isNameStartChar(r rune) bool {
	switch {
	case r == ':' || r == '_':
		return true
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r >= 0xC0 && r <= 0xD6, r >= 0xD8 && r <= 0xF6, r >= 0xF8 && r <= 0x2FF:
		return true
	case r >= 0x370 && r <= 0x37D, r >= 0x37F && r <= 0x1FFF:
		return true
	case r >= 0x200C && r <= 0x200D, r >= 0x2070 && r <= 0x218F:
		return true
	case r >= 0x2C00 && r <= 0x2FEF, r >= 0x3001 && r <= 0xD7FF:
		return true
	case r >= 0xF900 && r <= 0xFDCF, r >= 0xFDF0 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0xEFFFF:
		return true
	}
	return false
}

func isNameChar(r rune) bool {
	if isNameStartChar(r) {
		return true
	}
	switch {
	case r == '-' || r == '.' || r == 0xB7:
		return true
	case r >= '0' && r <= '9':
		return true
	case r >= 0x300 && r <= 0x36F, r >= 0x203F && r <= 0x2040:
		return true
	}
	return false
}
