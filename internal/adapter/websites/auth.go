package websites

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const DefaultAuthority = "https://login.microsoftonline.com"

type Credentials struct {
	Authority    string
	TenantID     string
	ClientID     string
	ClientSecret string
	AccessToken  string

	// Resource is the audience of the token, normally the management endpoint.
	Resource string
	Timeout  time.Duration
}

// NewHTTPClient returns an HTTP client that attaches an Azure AD bearer token
// to every request. A static AccessToken wins over client credentials.
func NewHTTPClient(ctx context.Context, creds Credentials) (*http.Client, error) {
	src, err := tokenSource(ctx, creds)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, src)
	client.Timeout = creds.Timeout
	return client, nil
}

func tokenSource(ctx context.Context, creds Credentials) (oauth2.TokenSource, error) {
	if creds.AccessToken != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: creds.AccessToken,
			TokenType:   "Bearer",
		}), nil
	}

	if creds.TenantID == "" || creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, errors.New("tenant id, client id and client secret are required without an access token")
	}

	return clientCredentialsConfig(creds).TokenSource(ctx), nil
}

func clientCredentialsConfig(creds Credentials) *clientcredentials.Config {
	authority := creds.Authority
	if authority == "" {
		authority = DefaultAuthority
	}
	resource := creds.Resource
	if resource == "" {
		resource = DefaultEndpoint
	}

	return &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     fmt.Sprintf("%s/%s/oauth2/v2.0/token", strings.TrimRight(authority, "/"), creds.TenantID),
		Scopes:       []string{strings.TrimRight(resource, "/") + "/.default"},
		AuthStyle:    oauth2.AuthStyleInParams,
	}
}
