package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"miigate/internal/sentinel"
)

// CMOCClient talks to the legacy gallery ("Check Mii Out Channel") service.
// It covers the studio.cgi lookup endpoints and the render.cgi image endpoint.
type CMOCClient struct {
	baseURL    string
	httpClient HTTPDoer
}

// CMOCOption configures the CMOCClient.
type CMOCOption func(*CMOCClient)

// WithCMOCHTTPClient sets a custom HTTP client (for testing).
func WithCMOCHTTPClient(client HTTPDoer) CMOCOption {
	return func(c *CMOCClient) {
		c.httpClient = client
	}
}

// NewCMOCClient creates a client for the legacy gallery service.
func NewCMOCClient(baseURL string, timeout time.Duration, opts ...CMOCOption) *CMOCClient {
	c := &CMOCClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// miiResponse is the studio.cgi success body.
type miiResponse struct {
	Mii string `json:"mii"`
}

// LookupEntry fetches hex Mii data for a 12-digit entry number. The caller
// is responsible for having stripped and validated the number already.
func (c *CMOCClient) LookupEntry(ctx context.Context, entryNo string) (string, error) {
	return c.postStudio(ctx, map[string]string{
		"platform": "wii",
		"id":       entryNo,
	})
}

// SubmitQR sends a captured Mii QR code (JPEG bytes) and returns hex Mii data.
func (c *CMOCClient) SubmitQR(ctx context.Context, data []byte) (string, error) {
	return c.postStudioFile(ctx, map[string]string{"platform": "gen2"}, "data", data)
}

// RenderHex streams the rendered image for legacy hardware-format hex data.
func (c *CMOCClient) RenderHex(ctx context.Context, hexData string) (io.ReadCloser, error) {
	renderURL := fmt.Sprintf("%s/cgi-bin/render.cgi?data=%s", c.baseURL, url.QueryEscape(hexData))
	return fetchImage(ctx, c.httpClient, renderURL, "")
}

func (c *CMOCClient) postStudio(ctx context.Context, fields map[string]string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", fmt.Errorf("write multipart field %q: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}
	return c.doStudio(ctx, &body, writer.FormDataContentType())
}

func (c *CMOCClient) postStudioFile(ctx context.Context, fields map[string]string, fileField string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", fmt.Errorf("write multipart field %q: %w", name, err)
		}
	}
	part, err := writer.CreateFormFile(fileField, "mii.jpg")
	if err != nil {
		return "", fmt.Errorf("create multipart file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write multipart file part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}
	return c.doStudio(ctx, &body, writer.FormDataContentType())
}

func (c *CMOCClient) doStudio(ctx context.Context, body io.Reader, contentType string) (string, error) {
	studioURL := c.baseURL + "/cgi-bin/studio.cgi"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, studioURL, body)
	if err != nil {
		return "", fmt.Errorf("create studio.cgi request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("studio.cgi request failed: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// The legacy CGI reports a missing entry with a non-200 status rather
	// than a structured error body.
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("studio.cgi status %d: %w", resp.StatusCode, sentinel.ErrNotFound)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read studio.cgi response: %w: %w", sentinel.ErrBadData, err)
	}

	var parsed miiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse studio.cgi response: %w: %w", sentinel.ErrBadData, err)
	}
	if parsed.Mii == "" {
		return "", fmt.Errorf("studio.cgi response has no mii payload: %w", sentinel.ErrBadData)
	}

	return parsed.Mii, nil
}
