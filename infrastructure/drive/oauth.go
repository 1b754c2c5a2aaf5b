package drive

import (
	"context"
	"fmt"
	"net/http"

	"drive-uploader/domain/auth"
	"drive-uploader/domain/distribution"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Scopes requested during authorization. drive.file limits access to files the app created.
var Scopes = []string{drive.DriveFileScope}

// OAuth2Config builds the OAuth client configuration for creds
func OAuth2Config(creds *auth.Credentials) *oauth2.Config {
	endpoint := google.Endpoint
	if creds.AuthURI != "" {
		endpoint.AuthURL = creds.AuthURI
	}
	if creds.TokenURI != "" {
		endpoint.TokenURL = creds.TokenURI
	}
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.RedirectURL(),
		Scopes:       Scopes,
		Endpoint:     endpoint,
	}
}

// AuthCodeURL returns the consent page URL where the user obtains an authorization code
func AuthCodeURL(creds *auth.Credentials) string {
	return OAuth2Config(creds).AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// OAuthExchanger implements auth.TokenExchanger against the provider's token endpoint
type OAuthExchanger struct {
	httpClient *http.Client
}

// NewOAuthExchanger creates an exchanger. A nil client uses http.DefaultClient.
func NewOAuthExchanger(httpClient *http.Client) *OAuthExchanger {
	return &OAuthExchanger{httpClient: httpClient}
}

// Exchange implements auth.TokenExchanger
func (e *OAuthExchanger) Exchange(ctx context.Context, creds *auth.Credentials, code string) (*auth.Token, error) {
	if e.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
	}

	tok, err := OAuth2Config(creds).Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to exchange auth code: %w", err)
	}

	raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(tok)
	if err != nil {
		return nil, fmt.Errorf("unable to encode token: %w", err)
	}
	return auth.ParseToken(raw)
}

// oauth2Token converts a stored token for use by the OAuth HTTP client
func oauth2Token(t *auth.Token) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry,
	}
}

// newOAuthDriveService creates a Drive service authorized with the session's token.
// Refreshes performed by the OAuth client are kept in memory and not written back.
func newOAuthDriveService(ctx context.Context, session *auth.Session) (*GoogleDriveService, error) {
	client := OAuth2Config(session.Credentials).Client(ctx, oauth2Token(session.Token))
	srv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create drive service: %w", err)
	}

	return &GoogleDriveService{service: srv}, nil
}

// Connector builds Drive clients from authorized sessions
type Connector struct {
	opts []ClientOption
}

// NewConnector creates a connector; opts are applied to every client it builds
func NewConnector(opts ...ClientOption) *Connector {
	return &Connector{opts: opts}
}

// Connect returns a Drive client authorized by session
func (c *Connector) Connect(ctx context.Context, session *auth.Session) (distribution.RemoteStorage, error) {
	client, err := NewClient(ctx, session, c.opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}
