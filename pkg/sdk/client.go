package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
	searchuc "github.com/findbrexitconsultants/directory/internal/usecase/search"
)

const defaultHTTPTimeout = 15 * time.Second

// Client is the directory SDK entry point.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	apiKey     string
	limits     spec.Limits
	server     *remoteServer
	approved   *remoteApproved
	resolution *searchuc.Coordinator
	obs        *observer
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("directory: invalid base url %q", baseURL)
	}

	cfg := &clientConfig{
		httpClient:    &http.Client{Timeout: defaultHTTPTimeout},
		serverTimeout: searchuc.DefaultServerTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: u,
		http:    cfg.httpClient,
		apiKey:  cfg.apiKey,
		limits:  spec.DefaultLimits,
		obs:     obs,
	}
	c.server = &remoteServer{client: c}
	c.approved = &remoteApproved{client: c, ttl: cfg.snapshotTTL}
	c.resolution = searchuc.NewCoordinator(c.server, searchuc.NewFallback(c.approved)).
		WithServerTimeout(cfg.serverTimeout)
	return c, nil
}

// Search starts a fluent search.
func (c *Client) Search() *SearchBuilder {
	return &SearchBuilder{client: c}
}

// Consultant returns one approved profile.
func (c *Client) Consultant(ctx context.Context, id string) (_ Consultant, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_consultant", start, err) }()

	var out Consultant
	if err = c.get(ctx, "/api/v1/consultants/"+url.PathEscape(id), nil, &out); err != nil {
		return Consultant{}, err
	}
	return out, nil
}

// Approved returns every approved consultant in base order.
func (c *Client) Approved(ctx context.Context) (_ []Consultant, err error) {
	start := time.Now()
	defer func() { c.obs.observe("approved", start, err) }()

	var env approvedEnvelope
	if err = c.get(ctx, "/api/v1/consultants/approved", nil, &env); err != nil {
		return nil, err
	}
	return env.Consultants, nil
}

// RecordView counts one profile view. The service accepts it asynchronously.
func (c *Client) RecordView(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("record_view", start, err) }()

	return c.do(ctx, http.MethodPost, "/api/v1/consultants/"+url.PathEscape(id)+"/views", nil, nil)
}

// Taxonomies returns the service and industry terms.
func (c *Client) Taxonomies(ctx context.Context) (_ Taxonomies, err error) {
	start := time.Now()
	defer func() { c.obs.observe("taxonomies", start, err) }()

	var out Taxonomies
	if err = c.get(ctx, "/api/v1/taxonomies", nil, &out); err != nil {
		return Taxonomies{}, err
	}
	return out, nil
}

// Locations returns the location filter table.
func (c *Client) Locations(ctx context.Context) (_ []Location, err error) {
	start := time.Now()
	defer func() { c.obs.observe("locations", start, err) }()

	var env locationsEnvelope
	if err = c.get(ctx, "/api/v1/locations", nil, &env); err != nil {
		return nil, err
	}
	return env.Locations, nil
}

// Health returns the service health. An unhealthy service is reported, not returned as an error.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var out HealthStatus
	err := c.get(ctx, "/health", nil, &out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusServiceUnavailable && out.Status != "" {
		return out, nil
	}
	if err != nil {
		return HealthStatus{}, err
	}
	return out, nil
}

// InvalidateSnapshot drops the service's cached approved list. Needs WithAPIKey.
func (c *Client) InvalidateSnapshot(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("invalidate_snapshot", start, err) }()

	return c.do(ctx, http.MethodPost, "/internal/snapshot/invalidate", nil, nil)
}

// FlushViews asks the service to persist buffered views now. Needs WithAPIKey.
// complete is false when some counts were kept for the next flush.
func (c *Client) FlushViews(ctx context.Context) (flushed int64, complete bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe("flush_views", start, err) }()

	var env flushEnvelope
	if err = c.do(ctx, http.MethodPost, "/internal/views/flush", nil, &env); err != nil {
		return 0, false, err
	}
	return env.Flushed, env.Complete, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, q, out)
}

// do sends one request and decodes a JSON body into out. A non-2xx answer
// becomes *APIError; out is still filled when the error body carries it.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, out any) error {
	u := *c.baseURL
	u.Path += path
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("directory: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" && strings.HasPrefix(path, "/internal/") {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("directory: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("directory: read %s: %w", path, err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{Status: resp.StatusCode}
		var env errorEnvelope
		if json.Unmarshal(body, &env) == nil {
			apiErr.Code, apiErr.Message = env.Code, env.Message
		}
		if out != nil {
			_ = json.Unmarshal(body, out)
		}
		return apiErr
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("directory: decode %s: %w", path, err)
	}
	return nil
}
