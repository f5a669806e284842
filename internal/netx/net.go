// Package netx contains small helpers for working with server URLs
// entered by the user.
package netx

import (
	"errors"
	"net/url"
	"strings"
)

var ErrInvalidServerURL = errors.New("invalid server URL format")

// NormalizeServerURL trims the input and prefixes "https://" when no
// scheme is present. Anything that already starts with http:// or
// https:// is returned as is (minus surrounding whitespace).
func NormalizeServerURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return "https://" + trimmed
	}
	return trimmed
}

// ValidateServerURL checks that the (normalized) URL parses and has a
// hostname. An empty input is rejected before normalization so the caller
// can distinguish "nothing entered" from "garbage entered".
func ValidateServerURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("server URL is required")
	}

	u, err := url.Parse(NormalizeServerURL(raw))
	if err != nil {
		return ErrInvalidServerURL
	}
	if u.Hostname() == "" {
		return ErrInvalidServerURL
	}
	return nil
}
