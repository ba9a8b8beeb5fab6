package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alicia-launcher/internal/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		expectError bool
		validate    func(*testing.T, *domain.LaunchURL)
	}{
		{
			name: "Empty input",
			url:  "",
			validate: func(t *testing.T, u *domain.LaunchURL) {
				assert.Empty(t, u.Schema)
				assert.Empty(t, u.Path)
				assert.NotNil(t, u.Query)
				assert.Empty(t, u.Query)
			},
		},
		{
			name: "Login link",
			url:  "a2launch://login?username=bob&token=xyz",
			validate: func(t *testing.T, u *domain.LaunchURL) {
				assert.Equal(t, "a2launch", u.Schema)
				assert.Equal(t, "login", u.Path)
				assert.Equal(t, map[string]string{"username": "bob", "token": "xyz"}, u.Query)
			},
		},
		{
			name: "No query",
			url:  "a2launch://login",
			validate: func(t *testing.T, u *domain.LaunchURL) {
				assert.Equal(t, "a2launch", u.Schema)
				assert.Equal(t, "login", u.Path)
				assert.Empty(t, u.Query)
			},
		},
		{
			name: "Duplicate key keeps the last value",
			url:  "s://p?k=1&k=2",
			validate: func(t *testing.T, u *domain.LaunchURL) {
				assert.Equal(t, "2", u.Get("k"))
				assert.Len(t, u.Query, 1)
			},
		},
		{
			name: "Segment without equals sign",
			url:  "s://p?flag",
			validate: func(t *testing.T, u *domain.LaunchURL) {
				value, ok := u.Query["flag"]
				assert.True(t, ok)
				assert.Equal(t, "", value)
			},
		},
		{
			name: "Value split on first equals sign only",
			url:  "s://p?token=a=b=c",
			validate: func(t *testing.T, u *domain.LaunchURL) {
				assert.Equal(t, "a=b=c", u.Get("token"))
			},
		},
		{
			name: "Empty segments produce an empty key",
			url:  "s://p?a=1&&b=2",
			validate: func(t *testing.T, u *domain.LaunchURL) {
				assert.Equal(t, map[string]string{"a": "1", "": "", "b": "2"}, u.Query)
			},
		},
		{
			name: "Values are not percent-decoded",
			url:  "s://p?name=a%20b+c",
			validate: func(t *testing.T, u *domain.LaunchURL) {
				assert.Equal(t, "a%20b+c", u.Get("name"))
			},
		},
		{
			name: "Empty query after question mark",
			url:  "s://p?",
			validate: func(t *testing.T, u *domain.LaunchURL) {
				assert.Equal(t, "p", u.Path)
				assert.Equal(t, map[string]string{"": ""}, u.Query)
			},
		},
		{
			name: "Question mark before separator is part of the schema",
			url:  "s?x://p?k=v",
			validate: func(t *testing.T, u *domain.LaunchURL) {
				assert.Equal(t, "s?x", u.Schema)
				assert.Equal(t, "p", u.Path)
				assert.Equal(t, "v", u.Get("k"))
			},
		},
		{
			name: "Empty schema and path",
			url:  ":///?k=v",
			validate: func(t *testing.T, u *domain.LaunchURL) {
				assert.Empty(t, u.Schema)
				assert.Equal(t, "/", u.Path)
			},
		},
		{
			name:        "Missing separator",
			url:         "a2launch:login?username=bob",
			expectError: true,
		},
		{
			name:        "Plain text",
			url:         "hello",
			expectError: true,
		},
		{
			name:        "Single slash separator",
			url:         "a2launch:/login",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.url)
			if tt.expectError {
				assert.ErrorIs(t, err, ErrMalformedURL)
				assert.Nil(t, parsed)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, parsed)

			if tt.validate != nil {
				tt.validate(t, parsed)
			}
		})
	}
}

func TestCredentials(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		expected    domain.Credentials
		expectError error
	}{
		{
			name:     "Username and token",
			url:      "a2launch://login?username=bob&token=xyz",
			expected: domain.Credentials{LoginID: "bob", AuthKey: "xyz"},
		},
		{
			name:        "Missing username",
			url:         "a2launch://login?token=xyz",
			expectError: ErrMissingUser,
		},
		{
			name:        "Missing token",
			url:         "a2launch://login?username=bob",
			expectError: ErrMissingToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.url)
			require.NoError(t, err)

			creds, err := Credentials(parsed)
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, creds)
		})
	}
}
