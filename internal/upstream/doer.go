package upstream

import "net/http"

// HTTPDoer is the minimal interface needed from an HTTP client. Clients take
// it instead of *http.Client so tests can inject failures and timeout policy
// can be layered in without touching resolver logic.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
