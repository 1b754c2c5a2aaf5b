package auth

import (
	"fmt"
	"strings"
)

// Credentials is an OAuth client registration loaded from a client secrets file
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURIs []string
	AuthURI      string // Optional, provider default when empty
	TokenURI     string // Optional, provider default when empty
}

type credentialsFile struct {
	Installed *credentialsSection `json:"installed"`
	Web       *credentialsSection `json:"web"`
}

type credentialsSection struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	RedirectURIs []string `json:"redirect_uris"`
	AuthURI      string   `json:"auth_uri"`
	TokenURI     string   `json:"token_uri"`
}

// ParseCredentials parses a client secrets file in the format issued by the
// Google Cloud console. The "installed" section is preferred over "web".
func ParseCredentials(data []byte) (*Credentials, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrConfiguration)
	}

	var f credentialsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	section := f.Installed
	if section == nil {
		section = f.Web
	}
	if section == nil {
		return nil, fmt.Errorf("%w: no \"installed\" or \"web\" section", ErrConfiguration)
	}

	creds := &Credentials{
		ClientID:     strings.TrimSpace(section.ClientID),
		ClientSecret: strings.TrimSpace(section.ClientSecret),
		AuthURI:      section.AuthURI,
		TokenURI:     section.TokenURI,
	}
	for _, uri := range section.RedirectURIs {
		if uri = strings.TrimSpace(uri); uri != "" {
			creds.RedirectURIs = append(creds.RedirectURIs, uri)
		}
	}

	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return creds, nil
}

// Validate checks that the credentials can be used for a code exchange
func (c *Credentials) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: client_id is required", ErrConfiguration)
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("%w: client_secret is required", ErrConfiguration)
	}
	if len(c.RedirectURIs) == 0 {
		return fmt.Errorf("%w: at least one redirect URI is required", ErrConfiguration)
	}
	return nil
}

// RedirectURL returns the redirect target used for the code exchange
func (c *Credentials) RedirectURL() string {
	if len(c.RedirectURIs) == 0 {
		return ""
	}
	return c.RedirectURIs[0]
}
