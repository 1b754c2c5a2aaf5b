package auth

import "context"

// TokenExchanger trades a one-time authorization code for a token.
// Implementations talk to the OAuth provider; tests substitute fakes.
type TokenExchanger interface {
	Exchange(ctx context.Context, creds *Credentials, code string) (*Token, error)
}

// TokenOrigin records where a session's token came from
type TokenOrigin string

const (
	TokenFromFile     TokenOrigin = "file"
	TokenFromExchange TokenOrigin = "exchange"
)

// Session is an authorized client handle: the client registration together
// with a token that the storage adapter can use for API calls
type Session struct {
	Credentials *Credentials
	Token       *Token
	Origin      TokenOrigin
}
