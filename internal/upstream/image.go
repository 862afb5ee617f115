package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"miigate/internal/sentinel"
)

// fetchImage issues a GET for an image and returns the raw body stream.
// A non-success status or transport failure is reported with the offending
// URL and status for diagnostics; the upstream body itself is discarded.
// There is no retry: one failed attempt is terminal.
func fetchImage(ctx context.Context, client HTTPDoer, imageURL, accept string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create image request for %s: %w", imageURL, err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image download failed for %s: %w: %w", imageURL, sentinel.ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("image download got HTTP %d from %s: %w", resp.StatusCode, imageURL, sentinel.ErrUnavailable)
	}

	return resp.Body, nil
}
