// Package gateway provides the typed HTTP client for the insurance-ontology
// backend.
//
// Each method constructs one request, awaits one response, and returns the
// decoded payload or a classified *CallError. There are no retries, no
// caching, and no batching; retry is the caller's decision.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/models"
)

// DefaultTimeout bounds every backend call unless overridden.
const DefaultTimeout = 60 * time.Second

// Client talks to the backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient swaps the underlying http.Client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	slog.Debug("gateway client created", "base_url", c.baseURL, "timeout", c.httpClient.Timeout)
	return c
}

// Search submits a hybrid-search query and returns the backend answer.
func (c *Client) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	var resp models.SearchResponse
	if err := c.postJSON(ctx, "/api/hybrid-search", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health probes backend liveness.
func (c *Client) Health(ctx context.Context) error {
	var out map[string]any
	return c.getJSON(ctx, "/health", &out)
}

type companyListResponse struct {
	Companies []models.Company `json:"companies"`
}

// ListCompanies returns every insurer known to the backend.
func (c *Client) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var resp companyListResponse
	if err := c.getJSON(ctx, "/api/companies", &resp); err != nil {
		return nil, err
	}
	return resp.Companies, nil
}

type productListResponse struct {
	Products []string `json:"products"`
}

// ListProducts returns the product names sold by one company.
func (c *Client) ListProducts(ctx context.Context, company string) ([]string, error) {
	path := fmt.Sprintf("/api/companies/%s/products", url.PathEscape(company))
	var resp productListResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

type coverageListResponse struct {
	Coverages []models.Coverage `json:"coverages"`
}

// ListProductCoverages returns the coverages under one company/product pair.
func (c *Client) ListProductCoverages(ctx context.Context, company, product string) ([]models.Coverage, error) {
	path := fmt.Sprintf("/api/companies/%s/products/%s/coverages",
		url.PathEscape(company), url.PathEscape(product))
	var resp coverageListResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Coverages, nil
}

// ListCompanyCoverages returns every coverage a company offers, across all
// of its products.
func (c *Client) ListCompanyCoverages(ctx context.Context, company string) ([]models.Coverage, error) {
	path := fmt.Sprintf("/api/companies/%s/coverages", url.PathEscape(company))
	var resp coverageListResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Coverages, nil
}

type coverageNameListResponse struct {
	Coverages []string `json:"coverages"`
}

// ListCoverageNames returns the global coverage-name catalog used by the
// wizard's compare mode.
func (c *Client) ListCoverageNames(ctx context.Context) ([]string, error) {
	var resp coverageNameListResponse
	if err := c.getJSON(ctx, "/api/coverages", &resp); err != nil {
		return nil, err
	}
	return resp.Coverages, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return Classify(err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return Classify(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return Classify(err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	slog.Debug("gateway request", "method", req.Method, "path", req.URL.Path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("gateway request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		return Classify(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("gateway response read failed", "path", req.URL.Path, "error", err)
		return Classify(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := decodeDetail(raw)
		slog.Error("gateway response status", "path", req.URL.Path, "status", resp.StatusCode, "detail", detail)
		return classifyStatus(resp.StatusCode, detail)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			slog.Error("gateway response decode failed", "path", req.URL.Path, "error", err)
			return Classify(fmt.Errorf("decode response: %w", err))
		}
	}
	slog.Debug("gateway request succeeded", "method", req.Method, "path", req.URL.Path)
	return nil
}

// decodeDetail extracts the backend-supplied error detail, if any.
// The backend reports errors as {"detail": "..."}.
func decodeDetail(raw []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Detail)
}
