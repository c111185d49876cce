package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Checker reports the health of one dependency.
type Checker func(ctx context.Context) error

type HealthStatus string

const (
	StatusUp   HealthStatus = "up"
	StatusDown HealthStatus = "down"
)

type HealthResponse struct {
	Status    HealthStatus           `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

type CheckResult struct {
	Status HealthStatus `json:"status"`
	Error  string       `json:"error,omitempty"`
}

type Health struct {
	mu       sync.RWMutex
	checkers map[string]Checker
}

func NewHealth() *Health {
	return &Health{
		checkers: make(map[string]Checker),
	}
}

func (h *Health) Register(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// Live answers 200 while the process is serving.
func (h *Health) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    StatusUp,
		Timestamp: time.Now().UTC(),
	})
}

// Ready runs every registered checker and answers 503 if any fails.
func (h *Health) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	h.mu.RLock()
	checkers := make(map[string]Checker, len(h.checkers))
	for k, v := range h.checkers {
		checkers[k] = v
	}
	h.mu.RUnlock()

	resp := HealthResponse{
		Status:    StatusUp,
		Timestamp: time.Now().UTC(),
		Checks:    make(map[string]CheckResult, len(checkers)),
	}
	for name, checker := range checkers {
		if err := checker(ctx); err != nil {
			log.Warnf("Readiness check %s failed: %v", name, err)
			resp.Checks[name] = CheckResult{Status: StatusDown, Error: err.Error()}
			resp.Status = StatusDown
			continue
		}
		resp.Checks[name] = CheckResult{Status: StatusUp}
	}

	status := http.StatusOK
	if resp.Status == StatusDown {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("Failed to encode response: %v", err)
	}
}
