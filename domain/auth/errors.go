package auth

import "errors"

var (
	// ErrConfiguration is returned when the client credentials file is missing,
	// unreadable, not valid JSON or lacks a client id, secret or redirect URI
	ErrConfiguration = errors.New("invalid client credentials")

	// ErrTokenCorrupt is returned when a stored token file exists but cannot be parsed
	ErrTokenCorrupt = errors.New("stored token is corrupt")

	// ErrMissingAuthCode is returned when there is no stored token and no authorization code
	ErrMissingAuthCode = errors.New("authorization code not provided")

	// ErrAuthExchange is returned when the authorization code could not be exchanged for a token
	ErrAuthExchange = errors.New("authorization code exchange failed")

	// ErrTokenPersist is returned when an exchanged token could not be written to the token file
	ErrTokenPersist = errors.New("failed to store token")
)
