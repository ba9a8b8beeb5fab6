package link

import (
	"errors"
	"fmt"
	"strings"

	"alicia-launcher/internal/domain"
)

const schemaSeparator = "://"

var (
	ErrMalformedURL = errors.New("malformed launch url")
	ErrMissingUser  = errors.New("launch url has no username")
	ErrMissingToken = errors.New("launch url has no token")
)

// Parse splits a launch string of the form schema://path?k1=v1&k2=v2.
// Values are taken verbatim; no percent-decoding is done.
func Parse(raw string) (*domain.LaunchURL, error) {
	parsed := &domain.LaunchURL{Query: make(map[string]string)}
	if raw == "" {
		return parsed, nil
	}

	schemaEnd := strings.Index(raw, schemaSeparator)
	if schemaEnd < 0 {
		return nil, fmt.Errorf("%w: missing schema separator %q", ErrMalformedURL, schemaSeparator)
	}
	parsed.Schema = raw[:schemaEnd]

	rest := raw[schemaEnd+len(schemaSeparator):]
	path, query, hasQuery := strings.Cut(rest, "?")
	parsed.Path = path
	if !hasQuery {
		return parsed, nil
	}

	// Empty segments are kept as an ""="" entry.
	for _, segment := range strings.Split(query, "&") {
		key, value, _ := strings.Cut(segment, "=")
		parsed.Query[key] = value
	}

	return parsed, nil
}

// Credentials extracts the username and token query parameters of a launch URL.
func Credentials(u *domain.LaunchURL) (domain.Credentials, error) {
	creds := domain.Credentials{
		LoginID: u.Get("username"),
		AuthKey: u.Get("token"),
	}

	if creds.LoginID == "" {
		return creds, ErrMissingUser
	}
	if creds.AuthKey == "" {
		return creds, ErrMissingToken
	}

	return creds, nil
}
