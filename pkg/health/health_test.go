package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCheck_WorstStatusWins(t *testing.T) {
	hc := NewChecker()
	hc.RegisterCheck("ok", func() Check {
		return Check{Name: "ok", Status: StatusHealthy}
	})
	hc.RegisterCheck("slow", func() Check {
		return Check{Name: "slow", Status: StatusDegraded}
	})

	resp := hc.Check()
	if resp.Status != StatusDegraded {
		t.Errorf("Status = %v, want %v", resp.Status, StatusDegraded)
	}

	hc.RegisterCheck("dead", func() Check {
		return Check{Name: "dead", Status: StatusUnhealthy}
	})
	resp = hc.Check()
	if resp.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want %v", resp.Status, StatusUnhealthy)
	}
	if len(resp.Checks) != 3 {
		t.Errorf("Checks = %d, want 3", len(resp.Checks))
	}
}

func TestGraphCheck(t *testing.T) {
	tests := []struct {
		name     string
		deployed bool
		nodes    int
		want     Status
	}{
		{"not deployed", false, 0, StatusUnhealthy},
		{"deployed empty", true, 0, StatusDegraded},
		{"deployed", true, 12, StatusHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := GraphCheck(func() (bool, int, int) {
				return tt.deployed, tt.nodes, tt.nodes * 2
			})()
			if check.Status != tt.want {
				t.Errorf("Status = %v, want %v", check.Status, tt.want)
			}
		})
	}
}

func TestSnapshotAgeCheck(t *testing.T) {
	fresh := SnapshotAgeCheck(func() (time.Time, bool) {
		return time.Now().Add(-time.Minute), true
	}, time.Hour)()
	if fresh.Status != StatusHealthy {
		t.Errorf("fresh snapshot Status = %v, want healthy", fresh.Status)
	}

	stale := SnapshotAgeCheck(func() (time.Time, bool) {
		return time.Now().Add(-2 * time.Hour), true
	}, time.Hour)()
	if stale.Status != StatusDegraded {
		t.Errorf("stale snapshot Status = %v, want degraded", stale.Status)
	}

	none := SnapshotAgeCheck(func() (time.Time, bool) {
		return time.Time{}, false
	}, time.Hour)()
	if none.Status != StatusUnhealthy {
		t.Errorf("missing snapshot Status = %v, want unhealthy", none.Status)
	}
}

func TestGoroutineCheck(t *testing.T) {
	ok := GoroutineCheck(100000)()
	if ok.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", ok.Status)
	}

	over := GoroutineCheck(0)()
	if over.Status != StatusDegraded {
		t.Errorf("Status = %v, want degraded", over.Status)
	}
}

func TestReadinessHandler(t *testing.T) {
	hc := NewChecker()
	ready := false
	hc.RegisterReadinessCheck("graph", GraphCheck(func() (bool, int, int) {
		return ready, 3, 4
	}))

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	hc.ReadinessHandler()(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("not-ready status = %d, want 503", rec.Code)
	}

	ready = true
	rec = httptest.NewRecorder()
	hc.ReadinessHandler()(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("ready status = %d, want 200", rec.Code)
	}

	var resp Report
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != StatusHealthy {
		t.Errorf("body status = %v, want healthy", resp.Status)
	}
}

func TestHTTPHandler_DegradedStill200(t *testing.T) {
	hc := NewChecker()
	hc.RegisterCheck("goroutines", GoroutineCheck(0))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	hc.HTTPHandler()(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("degraded status = %d, want 200", rec.Code)
	}
}

func TestReadinessHandler_DegradedRefusesTraffic(t *testing.T) {
	hc := NewChecker()
	hc.RegisterReadinessCheck("goroutines", GoroutineCheck(0))

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	hc.ReadinessHandler()(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("degraded readiness status = %d, want 503", rec.Code)
	}
}

func TestReport_ServiceIdentityAndUptime(t *testing.T) {
	hc := NewChecker()
	hc.RegisterCheck("graph", GraphCheck(func() (bool, int, int) {
		return true, 3, 4
	}))

	report := hc.Check()
	if report.Service != "gridcast" {
		t.Errorf("Service = %q, want gridcast", report.Service)
	}
	if report.UptimeSeconds < 0 {
		t.Errorf("UptimeSeconds = %v, want >= 0", report.UptimeSeconds)
	}

	check, ok := report.Checks["graph"]
	if !ok {
		t.Fatal("graph check missing from report")
	}
	if check.LastChecked.IsZero() {
		t.Error("LastChecked not stamped")
	}
	if check.LatencyMS < 0 {
		t.Errorf("LatencyMS = %v, want >= 0", check.LatencyMS)
	}
}
