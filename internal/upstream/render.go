package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// StudioClient renders first-generation share-link payloads (the exact
// 94-character data strings) on the hardware vendor's studio service.
type StudioClient struct {
	baseURL    string
	httpClient HTTPDoer
}

// StudioOption configures the StudioClient.
type StudioOption func(*StudioClient)

// WithStudioHTTPClient sets a custom HTTP client (for testing).
func WithStudioHTTPClient(client HTTPDoer) StudioOption {
	return func(c *StudioClient) {
		c.httpClient = client
	}
}

// NewStudioClient creates a client for the first-generation studio renderer.
func NewStudioClient(baseURL string, timeout time.Duration, opts ...StudioOption) *StudioClient {
	c := &StudioClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RenderFace streams the face render for a 94-character share-link payload.
// The payload is passed verbatim; the studio service rejects anything it
// does not recognize.
func (c *StudioClient) RenderFace(ctx context.Context, data string) (io.ReadCloser, error) {
	renderURL := fmt.Sprintf("%s/miis/image.png?data=%s&type=face&width=512&instanceCount=1", c.baseURL, data)
	return fetchImage(ctx, c.httpClient, renderURL, "")
}

// RendererClient renders opaque payloads (base64 account data and anything
// else that is neither hex nor a share-link string) on the modern renderer.
type RendererClient struct {
	baseURL    string
	httpClient HTTPDoer
}

// RendererOption configures the RendererClient.
type RendererOption func(*RendererClient)

// WithRendererHTTPClient sets a custom HTTP client (for testing).
func WithRendererHTTPClient(client HTTPDoer) RendererOption {
	return func(c *RendererClient) {
		c.httpClient = client
	}
}

// NewRendererClient creates a client for the modern renderer.
func NewRendererClient(baseURL string, timeout time.Duration, opts ...RendererOption) *RendererClient {
	c := &RendererClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RenderFace streams the face render for an opaque payload. The payload is
// percent-encoded; the wiiu_blinn shader matches what the Wii-era previews
// looked like.
func (c *RendererClient) RenderFace(ctx context.Context, data string) (io.ReadCloser, error) {
	renderURL := fmt.Sprintf("%s/miis/image.png?data=%s&type=face&shaderType=wiiu_blinn", c.baseURL, url.QueryEscape(data))
	return fetchImage(ctx, c.httpClient, renderURL, "image/png")
}
