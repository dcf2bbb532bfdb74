package health

import (
	"encoding/json"
	"net/http"
)

// HTTPHandler serves the full health report. A degraded service still
// answers 200: it can predict, just with caveats worth surfacing.
func (c *Checker) HTTPHandler() http.HandlerFunc {
	return c.serveReport(c.Check, true)
}

// ReadinessHandler serves the traffic-admission probe. Binary: anything
// short of fully healthy refuses traffic.
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return c.serveReport(c.CheckReadiness, false)
}

// LivenessHandler serves the restart probe.
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return c.serveReport(c.CheckLiveness, false)
}

func (c *Checker) serveReport(run func() Report, degradedOK bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := run()

		code := http.StatusOK
		switch report.Status {
		case StatusUnhealthy:
			code = http.StatusServiceUnavailable
		case StatusDegraded:
			if !degradedOK {
				code = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(report)
	}
}
