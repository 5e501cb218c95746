package handlers

import (
	"net/http"
)

// HealthHandler exposes liveness and readiness probes. Readiness checks are
// registered by name at startup.
type HealthHandler struct {
	checks map[string]func(r *http.Request) error
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{checks: make(map[string]func(r *http.Request) error)}
}

// AddCheck registers a named readiness dependency.
func (h *HealthHandler) AddCheck(name string, check func(r *http.Request) error) {
	h.checks[name] = check
}

// Live reports the process is up. It never consults dependencies.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether every backing store answers. Any failing dependency
// turns the whole probe 503 so the load balancer stops routing here.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(r); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			results[name] = "ok"
		}
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "unavailable"
	}
	writeJSON(w, status, map[string]interface{}{
		"status": overall,
		"checks": results,
	})
}
