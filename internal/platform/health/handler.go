// Package health provides liveness and readiness probes.
package health

import (
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"miigate/pkg/platform/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// CheckFunc reports the health of one dependency. Nil means healthy.
type CheckFunc func() error

// Handler serves the probe endpoints.
type Handler struct {
	startTime time.Time

	mu     sync.RWMutex
	checks map[string]CheckFunc
}

func New() *Handler {
	return &Handler{
		startTime: time.Now(),
		checks:    make(map[string]CheckFunc),
	}
}

// RegisterCheck adds a named dependency check for the readiness probe.
func (h *Handler) RegisterCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// Register mounts the probe routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleStatus)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}

type LivenessResponse struct {
	Status string `json:"status"`
}

// HandleLiveness always returns 200 while the process is up.
func (h *Handler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, LivenessResponse{Status: "alive"})
}

type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleReadiness runs every registered check and returns 503 if any fail.
func (h *Handler) HandleReadiness(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	checks := make(map[string]CheckFunc, len(h.checks))
	maps.Copy(checks, h.checks)
	h.mu.RUnlock()

	response := ReadinessResponse{
		Status: "ready",
		Checks: make(map[string]string),
	}

	ready := true
	for name, check := range checks {
		if err := check(); err != nil {
			response.Checks[name] = "down: " + err.Error()
			ready = false
		} else {
			response.Checks[name] = "up"
		}
	}

	if !ready {
		response.Status = "not_ready"
		httputil.WriteJSON(w, http.StatusServiceUnavailable, response)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, response)
}

type StatusResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Timestamp     string `json:"timestamp"`
}

// HandleStatus reports version and uptime.
func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{
		Status:        "healthy",
		Version:       Version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}
