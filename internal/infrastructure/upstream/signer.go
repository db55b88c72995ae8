package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/reportly/backend/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// RequestSigner attaches outbound credentials to an upstream request. It is
// a capability, not a security boundary: nothing on this side verifies that
// the upstream actually checks what we attach.
type RequestSigner interface {
	Sign(req *http.Request) error
}

// NoopSigner attaches nothing. This is the default posture and mirrors the
// simulated authentication of the original deployment.
type NoopSigner struct{}

func (NoopSigner) Sign(*http.Request) error { return nil }

// BearerSigner attaches a static bearer token from configuration.
type BearerSigner struct {
	Token string
}

func (s BearerSigner) Sign(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+s.Token)
	return nil
}

// OAuthSigner attaches tokens minted by an OAuth2 client-credentials flow.
// The token source caches and refreshes behind the scenes.
type OAuthSigner struct {
	source oauth2.TokenSource
}

func NewOAuthSigner(cfg config.OAuthConfig) *OAuthSigner {
	cc := clientcredentials.Config{
		TokenURL:     cfg.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       cfg.Scopes,
	}
	return &OAuthSigner{source: cc.TokenSource(context.Background())}
}

func (s *OAuthSigner) Sign(req *http.Request) error {
	token, err := s.source.Token()
	if err != nil {
		return fmt.Errorf("failed to obtain oauth token: %w", err)
	}
	token.SetAuthHeader(req)
	return nil
}

// SignerFor picks the signer for one upstream: a shared oauth client wins
// over a static token, which wins over no credential at all.
func SignerFor(up config.UpstreamConfig, oauth config.OAuthConfig) RequestSigner {
	if oauth.Enabled() {
		return NewOAuthSigner(oauth)
	}
	if up.Token != "" {
		return BearerSigner{Token: up.Token}
	}
	return NoopSigner{}
}
