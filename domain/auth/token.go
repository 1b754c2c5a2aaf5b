package auth

import (
	"bytes"
	"fmt"
	"time"
)

// Token is a stored OAuth token. The bytes it was read from (or received as)
// are kept so that it can be written back unchanged.
type Token struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	Expiry       time.Time

	raw []byte
}

type tokenFields struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	RefreshToken string    `json:"refresh_token"`
	Expiry       time.Time `json:"expiry"`
	ExpiryDate   int64     `json:"expiry_date"` // milliseconds, as written by the Node.js client
}

// ParseToken parses token JSON. Unknown fields are ignored but preserved in Raw.
func ParseToken(data []byte) (*Token, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: not a JSON object", ErrTokenCorrupt)
	}

	var f tokenFields
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenCorrupt, err)
	}
	if f.AccessToken == "" {
		return nil, fmt.Errorf("%w: access_token is missing", ErrTokenCorrupt)
	}

	expiry := f.Expiry
	if expiry.IsZero() && f.ExpiryDate > 0 {
		expiry = time.UnixMilli(f.ExpiryDate).UTC()
	}

	return &Token{
		AccessToken:  f.AccessToken,
		TokenType:    f.TokenType,
		RefreshToken: f.RefreshToken,
		Expiry:       expiry,
		raw:          append([]byte(nil), data...),
	}, nil
}

// Raw returns the token exactly as it was parsed
func (t *Token) Raw() []byte {
	return append([]byte(nil), t.raw...)
}

// HasRefreshToken reports whether the token can be refreshed by the OAuth client
func (t *Token) HasRefreshToken() bool {
	return t.RefreshToken != ""
}
