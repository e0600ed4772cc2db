package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmitrijs2005/communityfeed/internal/common"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultPageSize = 20
	maxErrorBody    = 1 << 20
)

// HTTPClient talks to the REST API with JSON bodies.
type HTTPClient struct {
	baseURL   *url.URL
	http      *http.Client
	augmenter *Augmenter
}

type options struct {
	pathPrefix string
	timeout    time.Duration
	transport  http.RoundTripper
}

type Option func(*options)

// WithPathPrefix sets the well-known API path prefix (default "/api").
func WithPathPrefix(p string) Option { return func(o *options) { o.pathPrefix = p } }

// WithTimeout bounds every request (default 10s).
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithTransport replaces the innermost round tripper (default http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option { return func(o *options) { o.transport = rt } }

func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	o := options{pathPrefix: DefaultAPIPathPrefix, timeout: defaultTimeout, transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}

	augmenter, err := NewAugmenter(baseURL, o.pathPrefix, tokens)
	if err != nil {
		return nil, err
	}

	transport := otelhttp.NewTransport(
		&AuthTransport{Base: o.transport, Augmenter: augmenter},
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)

	return &HTTPClient{
		baseURL:   augmenter.base,
		http:      &http.Client{Transport: transport, Timeout: o.timeout},
		augmenter: augmenter,
	}, nil
}

// Augmenter exposes the request augmenter the client's transport uses.
func (c *HTTPClient) Augmenter() *Augmenter {
	return c.augmenter
}

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	var resp AuthResponse
	body := refreshTokenRequest{RefreshToken: refreshToken}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/refresh", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Logout(ctx context.Context, refreshToken string) error {
	body := refreshTokenRequest{RefreshToken: refreshToken}
	return c.do(ctx, http.MethodPost, "/v1/auth/logout", nil, body, nil)
}

func (c *HTTPClient) Posts(ctx context.Context, mode FeedMode, page int) (*Page[PostSummary], error) {
	var path string
	switch mode {
	case FeedPersonal, "":
		path = "/v1/posts/feed"
	case FeedGlobal:
		path = "/v1/posts"
	case FeedTrending:
		path = "/v1/posts/trending"
	default:
		return nil, fmt.Errorf("unknown feed mode %q", mode)
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(defaultPageSize))

	var resp Page[PostSummary]
	if err := c.do(ctx, http.MethodGet, path, q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Post(ctx context.Context, id int64) (*Post, error) {
	var resp Post
	if err := c.do(ctx, http.MethodGet, "/v1/posts/"+strconv.FormatInt(id, 10), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) User(ctx context.Context, id int64) (*User, error) {
	var resp User
	if err := c.do(ctx, http.MethodGet, "/v1/users/"+strconv.FormatInt(id, 10), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*User, error) {
	var resp User
	if err := c.do(ctx, http.MethodGet, "/v1/users/me", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var p Problem
	if err := json.Unmarshal(raw, &p); err != nil {
		return apiErr
	}
	apiErr.Title = p.Title
	apiErr.Detail = p.Detail
	apiErr.FieldErrors = p.Errors
	return apiErr
}
