package visualization

import (
	"fmt"
	"math"
	"time"

	"github.com/dd0wney/gridcast/pkg/analysis"
	"github.com/dd0wney/gridcast/pkg/graph"
)

// Severity colors, failed-node color, and the fallback for nodes the
// cascade did not reach.
const (
	colorFailed     = "#dc2626"
	colorCritical   = "#d946ef"
	colorHigh       = "#ef4444"
	colorMedium     = "#f97316"
	colorLow        = "#eab308"
	colorUnaffected = "#64748b"
	colorStructural = "#475569"
)

// Node sizes by role; the failed node renders largest.
const (
	sizeFailed     = 22.0
	sizeCritical   = 18.0
	sizeHigh       = 15.0
	sizeMedium     = 12.0
	sizeLow        = 10.0
	sizeUnaffected = 8.0
)

// Link kinds.
const (
	KindStructural = "structural"
	KindImpactFlow = "impact_flow"
)

// VisualNode is one renderable node
type VisualNode struct {
	ID       string         `json:"id"`
	Type     graph.NodeType `json:"type"`
	Label    string         `json:"label"`
	Color    string         `json:"color"`
	Size     float64        `json:"size"`
	Pulse    bool           `json:"pulse"`
	Severity string         `json:"severity,omitempty"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
}

// VisualLink is one renderable edge. Impact-flow links are synthetic:
// they run from the failed node to each affected node with particle
// density and speed proportional to impact strength.
type VisualLink struct {
	Source        string  `json:"source"`
	Target        string  `json:"target"`
	Weight        float64 `json:"weight"`
	Relationship  string  `json:"relationship,omitempty"`
	Kind          string  `json:"kind"`
	Color         string  `json:"color"`
	Particles     int     `json:"particles,omitempty"`
	ParticleSpeed float64 `json:"particle_speed,omitempty"`
}

// Payload is the full renderable scene for one impact report
type Payload struct {
	Nodes       []VisualNode `json:"nodes"`
	Links       []VisualLink `json:"links"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// BuildPayload renders a report against its graph. Physical coordinates
// are used when the whole village is surveyed; otherwise a seeded
// force-directed layout decides positions.
func BuildPayload(g *graph.InfrastructureGraph, report *analysis.ImpactReport, cfg *LayoutConfig) (*Payload, error) {
	if g == nil {
		return nil, fmt.Errorf("build payload: graph is nil")
	}
	if report == nil {
		return nil, fmt.Errorf("build payload: report is nil")
	}
	if cfg == nil {
		cfg = &LayoutConfig{Width: 1200, Height: 800}
	}

	positions := physicalPositions(g, cfg)
	if positions == nil {
		layout := NewForceDirectedLayout(cfg)
		var err error
		positions, err = layout.ComputeLayout(g)
		if err != nil {
			return nil, fmt.Errorf("build payload: %w", err)
		}
	}

	affectedByID := make(map[string]*analysis.AffectedNode, len(report.Affected))
	for i := range report.Affected {
		affectedByID[report.Affected[i].NodeID] = &report.Affected[i]
	}

	payload := &Payload{GeneratedAt: time.Now()}

	for _, node := range g.Nodes() {
		vn := VisualNode{
			ID:    node.ID,
			Type:  node.Type,
			Label: fmt.Sprintf("%s (%s)", node.ID, node.Type),
			X:     positions[node.ID].X,
			Y:     positions[node.ID].Y,
		}

		switch {
		case node.ID == report.FailedNodeID:
			vn.Color = colorFailed
			vn.Size = sizeFailed
			vn.Pulse = true
			vn.Severity = string(report.Severity)
		default:
			if affected, ok := affectedByID[node.ID]; ok {
				vn.Severity = affected.Severity
				vn.Color, vn.Size, vn.Pulse = severityStyle(affected.Severity)
			} else {
				vn.Color = colorUnaffected
				vn.Size = sizeUnaffected
			}
		}

		payload.Nodes = append(payload.Nodes, vn)
	}

	// Structural links mirror the raw graph
	for _, edge := range g.Edges() {
		payload.Links = append(payload.Links, VisualLink{
			Source:       edge.Source,
			Target:       edge.Target,
			Weight:       edge.Weight,
			Relationship: edge.Relationship,
			Kind:         KindStructural,
			Color:        colorStructural,
		})
	}

	// Impact-flow links animate the cascade from the failure outward
	for _, affected := range report.Affected {
		color, _, _ := severityStyle(affected.Severity)
		payload.Links = append(payload.Links, VisualLink{
			Source:        report.FailedNodeID,
			Target:        affected.NodeID,
			Weight:        affected.Probability,
			Kind:          KindImpactFlow,
			Color:         color,
			Particles:     1 + int(math.Round(4*affected.Probability)),
			ParticleSpeed: 0.5 + 1.5*affected.Probability,
		})
	}

	return payload, nil
}

func severityStyle(severity string) (color string, size float64, pulse bool) {
	switch severity {
	case analysis.BucketCritical:
		return colorCritical, sizeCritical, true
	case analysis.BucketHigh:
		return colorHigh, sizeHigh, true
	case analysis.BucketMedium:
		return colorMedium, sizeMedium, false
	case analysis.BucketLow:
		return colorLow, sizeLow, false
	default:
		return colorUnaffected, sizeUnaffected, false
	}
}
