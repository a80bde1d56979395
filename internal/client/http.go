package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/idgen"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// HTTPClient implements Gateway using the rescue dog HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithToken sets a bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *HTTPClient) { c.token = token }
}

// WithTimeout bounds each request. Zero means no client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient creates a new HTTP client targeting the given API base URL
// (e.g. "http://localhost:8000/api").
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListDogs fetches one page from GET /animals.
func (c *HTTPClient) ListDogs(ctx context.Context, f model.Filter, cursor model.Cursor) (*Page, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Breed != "" {
		q.Set("breed", f.Breed)
	}
	if f.OrganizationID > 0 {
		q.Set("organization_id", strconv.FormatInt(f.OrganizationID, 10))
	}
	if f.Sex != model.SexAny {
		q.Set("sex", string(f.Sex))
	}
	if f.Size != model.SizeAny {
		q.Set("size", string(f.Size))
	}
	if f.AgeCategory != model.AgeAny {
		q.Set("age_category", string(f.AgeCategory))
	}
	if f.LocationCountry != "" {
		q.Set("location_country", f.LocationCountry)
	}
	if f.AvailableToCountry != "" {
		q.Set("available_to_country", f.AvailableToCountry)
		if f.AvailableToRegion != "" {
			q.Set("available_to_region", f.AvailableToRegion)
		}
	}
	limit := cursor.Limit
	if limit <= 0 {
		limit = model.DefaultPageSize
	}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(cursor.Offset))

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/animals?"+q.Encode(), nil, &raw); err != nil {
		return nil, err
	}
	return decodePage(raw)
}

// ListOrganizations fetches GET /organizations.
func (c *HTTPClient) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	var orgs []model.Organization
	if err := c.doJSON(ctx, http.MethodGet, "/organizations", nil, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// decodePage accepts either a bare JSON array or a {results, total} envelope.
func decodePage(raw json.RawMessage) (*Page, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var dogs []model.Dog
		if err := json.Unmarshal(trimmed, &dogs); err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
		return &Page{Dogs: dogs, Total: -1}, nil
	}

	var env struct {
		Results []model.Dog `json:"results"`
		Total   *int        `json:"total"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	page := &Page{Dogs: env.Results, Total: -1}
	if env.Total != nil {
		page.Total = *env.Total
	}
	return page, nil
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	requestID, err := idgen.GenerateWithPrefix(idgen.RequestPrefix)
	if err == nil {
		req.Header.Set(RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify(ctx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return classify(ctx, fmt.Errorf("reading response: %w", err))
	}
	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		if json.Unmarshal(respBody, &errResp) == nil {
			if errResp.Error != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: errResp.Error}
			}
			if errResp.Detail != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: errResp.Detail}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
