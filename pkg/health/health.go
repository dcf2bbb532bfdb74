package health

import (
	"time"
)

// NewChecker returns an empty checker. Register probes before serving.
func NewChecker() *Checker {
	return &Checker{
		health:    make(map[string]CheckFunc),
		readiness: make(map[string]CheckFunc),
		liveness:  make(map[string]CheckFunc),
		startedAt: time.Now(),
	}
}

// RegisterCheck adds a probe to the full health report.
func (c *Checker) RegisterCheck(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.health[name] = check
}

// RegisterReadinessCheck adds a probe gating traffic admission.
func (c *Checker) RegisterReadinessCheck(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readiness[name] = check
}

// RegisterLivenessCheck adds a probe gating process restart.
func (c *Checker) RegisterLivenessCheck(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.liveness[name] = check
}

// Check runs the full health probe set.
func (c *Checker) Check() Report {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.run(c.health)
}

// CheckReadiness runs the readiness probe set.
func (c *Checker) CheckReadiness() Report {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.run(c.readiness)
}

// CheckLiveness runs the liveness probe set.
func (c *Checker) CheckLiveness() Report {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.run(c.liveness)
}

// run executes one probe set. The overall status is the worst component
// status; an empty set reports healthy, which keeps liveness passing even
// before any domain check is wired.
func (c *Checker) run(checks map[string]CheckFunc) Report {
	report := Report{
		Service:       serviceName,
		Status:        StatusHealthy,
		Timestamp:     time.Now().UTC(),
		UptimeSeconds: time.Since(c.startedAt).Seconds(),
		Checks:        make(map[string]Check, len(checks)),
	}

	for name, fn := range checks {
		started := time.Now()
		check := fn()
		check.LastChecked = started
		check.LatencyMS = float64(time.Since(started).Microseconds()) / 1000.0
		report.Checks[name] = check
		report.Status = worseOf(report.Status, check.Status)
	}
	return report
}

func worseOf(a, b Status) Status {
	if a == StatusUnhealthy || b == StatusUnhealthy {
		return StatusUnhealthy
	}
	if a == StatusDegraded || b == StatusDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}
