package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"miigate/internal/sentinel"
)

// AccountSystem selects which of the two network-account schemes an
// identifier belongs to. Both resolve through the same upstream endpoint,
// distinguished by an optional api_id query parameter.
type AccountSystem int

const (
	// AccountNNID is a Nintendo Network ID (the endpoint default).
	AccountNNID AccountSystem = iota
	// AccountPNID is a Pretendo Network ID, selected with api_id=1.
	AccountPNID
)

// AccountsClient resolves network-account identifiers to base64 Mii data via
// the renderer service's mii_data endpoint.
type AccountsClient struct {
	baseURL    string
	httpClient HTTPDoer
}

// AccountsOption configures the AccountsClient.
type AccountsOption func(*AccountsClient)

// WithAccountsHTTPClient sets a custom HTTP client (for testing).
func WithAccountsHTTPClient(client HTTPDoer) AccountsOption {
	return func(c *AccountsClient) {
		c.httpClient = client
	}
}

// NewAccountsClient creates a client for the account data lookup endpoint.
func NewAccountsClient(baseURL string, timeout time.Duration, opts ...AccountsOption) *AccountsClient {
	c := &AccountsClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// miiDataResponse is the mii_data endpoint success body.
type miiDataResponse struct {
	Data string `json:"data"`
}

// MiiData fetches the base64 Mii payload for an account identifier. The
// payload is returned unchanged; it is one of the canonical stored shapes.
func (c *AccountsClient) MiiData(ctx context.Context, accountID string, system AccountSystem) (string, error) {
	lookupURL := fmt.Sprintf("%s/mii_data/%s", c.baseURL, url.PathEscape(accountID))
	if system == AccountPNID {
		lookupURL += "?api_id=1"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return "", fmt.Errorf("create mii_data request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mii_data request failed for %s: %w: %w", lookupURL, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("mii_data got HTTP %d from %s: %w", resp.StatusCode, lookupURL, sentinel.ErrUnavailable)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read mii_data response: %w: %w", sentinel.ErrBadData, err)
	}

	var parsed miiDataResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse mii_data response: %w: %w", sentinel.ErrBadData, err)
	}
	if parsed.Data == "" {
		return "", fmt.Errorf("mii_data response has no data field: %w", sentinel.ErrBadData)
	}

	return parsed.Data, nil
}
