package xmp

import (
	"regexp"
	"strings"
)

var (
	uriIllegalChar  = regexp.MustCompile(`[^A-Za-z0-9:/?#\[\]@!$&'()*+,;=.\-_~%]`)
	uriBadEscape    = regexp.MustCompile(`%[^0-9A-Fa-f]`)
	uriShortEscape  = regexp.MustCompile(`%[0-9A-Fa-f](?:[^0-9A-Fa-f]|$)`)
	uriComponents   = regexp.MustCompile(`^(?:([^:/?#]+):)?(?://([^/?#]*))?([^?#]*)(?:\?([^#]*))?(?:#(.*))?`)
	uriSchemeSyntax = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+\-.]*$`)
)

// IsURI reports whether s parses as an absolute URI per RFC 3986.
//
// Any scheme is accepted, so "mailto:a@example.com" and "urn:isbn:0451450523"
// are URIs just as "http://www.adobe.com" is. Strings containing characters
// outside the URI character set (spaces, for example) never are.
func IsURI(s string) bool {
	if s == "" {
		return false
	}
	if uriIllegalChar.MatchString(s) {
		return false
	}
	if uriBadEscape.MatchString(s) || uriShortEscape.MatchString(s) {
		return false
	}

	m := uriComponents.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	scheme, authority, path := m[1], m[2], m[3]
	if scheme == "" {
		return false
	}
	if authority != "" {
		if path != "" && !strings.HasPrefix(path, "/") {
			return false
		}
	} else if strings.HasPrefix(path, "//") {
		return false
	}
	return uriSchemeSyntax.MatchString(scheme)
}
