package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/communityfeed/internal/common"
)

// DefaultAPIPathPrefix is the well-known path prefix of API calls.
const DefaultAPIPathPrefix = "/api"

// TokenSource yields the current access token, "" when there is none.
type TokenSource interface {
	AccessToken() string
}

// Augmenter decides whether an outgoing request carries the access token.
type Augmenter struct {
	base       *url.URL
	pathPrefix string
	tokens     TokenSource
}

func NewAugmenter(baseURL, pathPrefix string, tokens TokenSource) (*Augmenter, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", baseURL)
	}
	if pathPrefix == "" {
		pathPrefix = DefaultAPIPathPrefix
	}
	return &Augmenter{base: base, pathPrefix: pathPrefix, tokens: tokens}, nil
}

// IsAPIRequest reports whether u targets the API: anything under the base
// URL, or a relative or same-origin URL under the API path prefix.
func (a *Augmenter) IsAPIRequest(u *url.URL) bool {
	if u == nil {
		return false
	}
	if u.Host == "" {
		return hasPathPrefix(u.Path, a.pathPrefix)
	}
	if !a.sameOrigin(u) {
		return false
	}
	return hasPathPrefix(u.Path, a.base.Path) || hasPathPrefix(u.Path, a.pathPrefix)
}

// Augment returns req with the bearer token attached when req is an API call
// and a token is available. Otherwise req itself is returned. The caller's
// request is never modified.
func (a *Augmenter) Augment(req *http.Request) *http.Request {
	if !a.IsAPIRequest(req.URL) {
		return req
	}
	token := a.tokens.AccessToken()
	if token == "" {
		return req
	}

	out := req.Clone(req.Context())
	out.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	return out
}

func (a *Augmenter) sameOrigin(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, a.base.Scheme) && strings.EqualFold(u.Host, a.base.Host)
}

// hasPathPrefix matches whole path segments: "/api" covers "/api" and
// "/api/v1" but not "/apiary".
func hasPathPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// AuthTransport runs every request through an Augmenter before handing it to Base.
type AuthTransport struct {
	Base      http.RoundTripper
	Augmenter *Augmenter
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(t.Augmenter.Augment(req))
}
