package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// LeadSource defines the interface for fetching the lead collection.
// This interface is implemented by *Client and can be used for testing.
type LeadSource interface {
	FetchLeads(ctx context.Context) ([]Lead, error)
}

// Ensure Client implements LeadSource at compile time.
var _ LeadSource = (*Client)(nil)

// Client talks to the lead data HTTP endpoint.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:8274"
	defaultUserAgent = "funnel/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// leadListResponse mirrors the /api/leads payload.
type leadListResponse struct {
	Leads []Lead `json:"leads"`
}

// FetchLeads retrieves the full lead collection. The document must be
// structurally valid: unique ids and known status values.
func (c *Client) FetchLeads(ctx context.Context) ([]Lead, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload leadListResponse
	if err := c.do(ctx, http.MethodGet, "/api/leads", &payload); err != nil {
		return nil, err
	}
	if err := validateLeads(payload.Leads); err != nil {
		return nil, err
	}
	return payload.Leads, nil
}

func validateLeads(leads []Lead) error {
	seen := make(map[int]struct{}, len(leads))
	for _, lead := range leads {
		if _, dup := seen[lead.ID]; dup {
			return fmt.Errorf("invalid lead document: duplicate id %d", lead.ID)
		}
		seen[lead.ID] = struct{}{}
		if !lead.Status.Valid() {
			return fmt.Errorf("invalid lead document: lead %d has unknown status %q", lead.ID, lead.Status)
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
