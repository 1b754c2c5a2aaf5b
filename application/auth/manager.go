package auth

import (
	"context"
	"fmt"
	"io"

	"drive-uploader/domain/auth"
	"drive-uploader/infrastructure/filesystem"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Paths identifies the credential files a Manager works with
type Paths struct {
	CredentialsFile string // OAuth client secrets JSON
	TokenFile       string // Where the token is stored between runs
}

// Manager loads client credentials and produces an authorized session,
// either from a stored token or by exchanging an authorization code
type Manager struct {
	fs        afero.Fs
	exchanger auth.TokenExchanger
	paths     Paths
	log       *logrus.Entry
	output    io.Writer
}

// NewManager creates a new credential manager
func NewManager(fs afero.Fs, exchanger auth.TokenExchanger, paths Paths, log *logrus.Entry, output io.Writer) *Manager {
	if output == nil {
		output = io.Discard
	}
	return &Manager{
		fs:        fs,
		exchanger: exchanger,
		paths:     paths,
		log:       log,
		output:    output,
	}
}

// LoadCredentials reads and validates the client credentials file
func (m *Manager) LoadCredentials() (*auth.Credentials, error) {
	data, err := afero.ReadFile(m.fs, m.paths.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read %s: %v", auth.ErrConfiguration, m.paths.CredentialsFile, err)
	}

	creds, err := auth.ParseCredentials(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.paths.CredentialsFile, err)
	}
	return creds, nil
}

// Authenticate returns an authorized session. A stored token is used as-is.
// Without one, authCode is exchanged and the result is written to the token file.
func (m *Manager) Authenticate(ctx context.Context, authCode string) (*auth.Session, error) {
	creds, err := m.LoadCredentials()
	if err != nil {
		return nil, err
	}
	m.log.WithField("client_id", creds.ClientID).Debug("loaded client credentials")

	exists, err := filesystem.Exists(m.fs, m.paths.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to stat %s: %v", auth.ErrTokenCorrupt, m.paths.TokenFile, err)
	}
	if exists {
		token, err := m.loadToken()
		if err != nil {
			return nil, err
		}
		m.log.WithField("token_file", m.paths.TokenFile).Debug("using stored token")
		return &auth.Session{Credentials: creds, Token: token, Origin: auth.TokenFromFile}, nil
	}

	if authCode == "" {
		return nil, fmt.Errorf("%w: no token at %s and GOOGLE_AUTH_CODE is not set", auth.ErrMissingAuthCode, m.paths.TokenFile)
	}

	token, err := m.exchanger.Exchange(ctx, creds, authCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrAuthExchange, err)
	}

	if err := filesystem.WriteFile(m.fs, m.paths.TokenFile, token.Raw(), 0600); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", auth.ErrTokenPersist, m.paths.TokenFile, err)
	}
	fmt.Fprintf(m.output, "      Token stored to %s\n", m.paths.TokenFile)
	m.log.WithField("token_file", m.paths.TokenFile).Info("stored exchanged token")

	return &auth.Session{Credentials: creds, Token: token, Origin: auth.TokenFromExchange}, nil
}

func (m *Manager) loadToken() (*auth.Token, error) {
	data, err := afero.ReadFile(m.fs, m.paths.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read %s: %v", auth.ErrTokenCorrupt, m.paths.TokenFile, err)
	}

	token, err := auth.ParseToken(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.paths.TokenFile, err)
	}
	return token, nil
}
