// Package health reports the prediction service's fitness to serve. Three
// probe surfaces with different contracts: liveness says the process is
// running, readiness says a snapshot is deployed and predictions can be
// answered, and the full health report carries per-component detail for
// operators.
package health

import (
	"sync"
	"time"
)

// serviceName identifies the reporting service in every probe body.
const serviceName = "gridcast"

// Status is a component or overall health verdict.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Check is one component's verdict. Details carries component state such
// as deployed node counts or snapshot capture age.
type Check struct {
	Name        string         `json:"name"`
	Status      Status         `json:"status"`
	Message     string         `json:"message,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	LastChecked time.Time      `json:"last_checked"`
	LatencyMS   float64        `json:"latency_ms"`
}

// CheckFunc produces a Check on demand. Probes run on every request, so
// checks must be cheap and must not block on the prediction path.
type CheckFunc func() Check

// Checker runs the registered probes. Health, readiness and liveness keep
// separate check sets: a stale snapshot degrades health but must not flip
// readiness and restart the pod.
type Checker struct {
	mu        sync.RWMutex
	health    map[string]CheckFunc
	readiness map[string]CheckFunc
	liveness  map[string]CheckFunc
	startedAt time.Time
}

// Report is the wire body of every probe endpoint.
type Report struct {
	Service       string           `json:"service"`
	Status        Status           `json:"status"`
	Timestamp     time.Time        `json:"timestamp"`
	UptimeSeconds float64          `json:"uptime_seconds"`
	Checks        map[string]Check `json:"checks"`
}
