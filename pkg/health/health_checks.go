package health

import (
	"fmt"
	"runtime"
	"time"
)

// Common health check functions for the prediction service

// SimpleCheck creates a simple health check that always returns healthy
func SimpleCheck(name string) Check {
	return Check{
		Name:        name,
		Status:      StatusHealthy,
		LastChecked: time.Now(),
	}
}

// GraphCheck reports whether a finalized infrastructure graph is deployed.
// No graph means the service cannot predict yet and is not ready.
func GraphCheck(getGraphState func() (deployed bool, nodes, edges int)) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "graph",
			Details: make(map[string]any),
		}

		deployed, nodes, edges := getGraphState()
		check.Details["deployed"] = deployed
		check.Details["nodes"] = nodes
		check.Details["edges"] = edges

		if !deployed {
			check.Status = StatusUnhealthy
			check.Message = "No infrastructure snapshot loaded"
		} else if nodes == 0 {
			check.Status = StatusDegraded
			check.Message = "Deployed graph is empty"
		} else {
			check.Status = StatusHealthy
			check.Message = fmt.Sprintf("Graph deployed (%d nodes, %d edges)", nodes, edges)
		}

		return check
	}
}

// SnapshotAgeCheck degrades health when the deployed snapshot capture is
// older than maxAge. A stale capture still predicts; it just may not match
// the village on the ground anymore.
func SnapshotAgeCheck(capturedAt func() (time.Time, bool), maxAge time.Duration) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "snapshot_age",
			Details: make(map[string]any),
		}

		at, ok := capturedAt()
		if !ok {
			check.Status = StatusUnhealthy
			check.Message = "No snapshot loaded"
			return check
		}

		age := time.Since(at)
		check.Details["captured_at"] = at
		check.Details["age_seconds"] = age.Seconds()

		if age > maxAge {
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("Snapshot is %s old (max %s)", age.Round(time.Second), maxAge)
		} else {
			check.Status = StatusHealthy
			check.Message = "Snapshot fresh"
		}

		return check
	}
}

// GoroutineCheck degrades health when the goroutine count exceeds the
// threshold, which usually means sweep workers are leaking.
func GoroutineCheck(threshold int) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "goroutines",
			Details: make(map[string]any),
		}

		count := runtime.NumGoroutine()
		check.Details["count"] = count
		check.Details["threshold"] = threshold

		if count > threshold {
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("%d goroutines (threshold %d)", count, threshold)
		} else {
			check.Status = StatusHealthy
			check.Message = "Goroutine count normal"
		}

		return check
	}
}
