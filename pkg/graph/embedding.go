package graph

import (
	"math"
	"time"
)

// EmbeddingDim is the width of every node embedding.
const EmbeddingDim = 24

// Embedding slot layout. Slots 0-11 are the one-hot node type; 12-16 are
// type-specific; 17-23 are universal signals.
const (
	SlotCondition        = 12
	SlotSizeLevel        = 13
	SlotCriticalFlag     = 14
	SlotImportance       = 15
	SlotStatus           = 16
	SlotCriticality      = 17
	SlotPopulation       = 18
	SlotEconomicValue    = 19
	SlotConnectivity     = 20
	SlotMaintenance      = 21
	SlotFloodRisk        = 22
	SlotFailureIntensity = 23
)

// TypeSpecificSlots bounds the per-type slot range (inclusive). Failure
// injection zeroes exactly this range.
const (
	TypeSpecificLow  = SlotCondition
	TypeSpecificHigh = SlotStatus
)

// Normalizers for raw property magnitudes. These cap, they do not clamp
// below zero; negative property values are a validation error upstream.
const (
	populationScale      = 1000.0
	economicScale        = 1_000_000.0
	maintenanceHalfLife  = 365.0 // days
	failureHistoryScale  = 10.0
)

// criticalityBaseline is the per-type prior for the criticality heuristic.
var criticalityBaseline = map[NodeType]float64{
	TypeHospital: 1.0,
	TypeSchool:   0.9,
	TypePower:    0.85,
	TypeTank:     0.85,
	TypePump:     0.8,
	TypeBridge:   0.75,
	TypeCluster:  0.7,
	TypeRoad:     0.65,
	TypeMarket:   0.6,
	TypePipe:     0.55,
	TypeBuilding: 0.5,
	TypeSensor:   0.3,
}

// defaultFloodRisk is used when a node carries no flood risk estimate.
var defaultFloodRisk = map[NodeType]float64{
	TypeBridge: 0.5,
	TypePipe:   0.3,
	TypeRoad:   0.3,
	TypeTank:   0.2,
}

// CriticalityBaseline returns the type prior used both in the embedding
// heuristic and in failure injection.
func CriticalityBaseline(t NodeType) float64 {
	if base, ok := criticalityBaseline[t]; ok {
		return base
	}
	return 0.5
}

// criticalityOf blends the type baseline with property signals.
func criticalityOf(t NodeType, props Properties) float64 {
	c := CriticalityBaseline(t)

	boost := 0.0
	switch p := props.(type) {
	case *RoadProperties:
		if p.MainRoad {
			boost = 0.1
		}
	case *BuildingProperties:
		// Critical facilities (clinic annex, admin office) punch far above
		// the generic building prior.
		if p.CriticalFacility {
			boost = 0.3
		}
	case *PowerProperties:
		if p.Substation {
			boost = 0.1
		}
	case *TankProperties:
		if p.PrimarySource {
			boost = 0.1
		}
	case *PumpProperties:
		if p.Booster {
			boost = 0.1
		}
	case *PipeProperties:
		if p.MainLine {
			boost = 0.1
		}
	case *SensorProperties:
		if p.CriticalMonitor {
			boost = 0.1
		}
	case *ClusterProperties:
		if p.VulnerableResidents {
			boost = 0.1
		}
	case *BridgeProperties:
		if p.OnlyCrossing {
			boost = 0.1
		}
	case *SchoolProperties:
		if p.Shelter {
			boost = 0.1
		}
	case *HospitalProperties:
		if p.EmergencyUnit {
			boost = 0.1
		}
	case *MarketProperties:
		if p.DailyMarket {
			boost = 0.1
		}
	}

	return math.Min(1.0, c+boost)
}

// buildEmbedding derives the 24-dim feature vector for a node. The result
// is min-max normalized over its non-zero entries; zeros stay zero so the
// one-hot block and absent signals keep their meaning.
func buildEmbedding(t NodeType, props Properties, now time.Time) []float64 {
	emb := make([]float64, EmbeddingDim)

	if idx := t.OneHotIndex(); idx >= 0 {
		emb[idx] = 1.0
	}

	base := props.Base()
	emb[SlotCondition] = base.ConditionOrDefault()
	emb[SlotStatus] = base.Status.Factor()

	switch p := props.(type) {
	case *RoadProperties:
		emb[SlotSizeLevel] = capUnit(p.LengthKM / 10)
		emb[SlotCriticalFlag] = flag(p.MainRoad)
		emb[SlotImportance] = capUnit(float64(p.Lanes) / 4)
	case *BuildingProperties:
		emb[SlotSizeLevel] = capUnit(float64(p.Floors) / 10)
		emb[SlotCriticalFlag] = flag(p.CriticalFacility)
		emb[SlotImportance] = capUnit(float64(p.Units) / 50)
	case *PowerProperties:
		emb[SlotSizeLevel] = capUnit(p.LoadFactor)
		emb[SlotCriticalFlag] = flag(p.Substation)
		emb[SlotImportance] = capUnit(p.VoltageKV / 110)
	case *TankProperties:
		emb[SlotSizeLevel] = capUnit(p.FillLevel)
		emb[SlotCriticalFlag] = flag(p.PrimarySource)
		emb[SlotImportance] = capUnit(p.CapacityLiters / 100_000)
	case *PumpProperties:
		emb[SlotSizeLevel] = capUnit(p.FlowRateLPM / 1000)
		emb[SlotCriticalFlag] = flag(p.Booster)
		emb[SlotImportance] = capUnit(p.PowerDrawKW / 50)
	case *PipeProperties:
		emb[SlotSizeLevel] = capUnit(p.DiameterMM / 500)
		emb[SlotCriticalFlag] = flag(p.MainLine)
		emb[SlotImportance] = capUnit(p.PressureBar / 16)
	case *SensorProperties:
		emb[SlotSizeLevel] = capUnit(p.BatteryLevel)
		emb[SlotCriticalFlag] = flag(p.CriticalMonitor)
		emb[SlotImportance] = capUnit(p.Coverage)
	case *ClusterProperties:
		emb[SlotSizeLevel] = capUnit(float64(p.Households) / 500)
		emb[SlotCriticalFlag] = flag(p.VulnerableResidents)
		emb[SlotImportance] = capUnit(p.Density)
	case *BridgeProperties:
		emb[SlotSizeLevel] = capUnit(p.SpanMeters / 200)
		emb[SlotCriticalFlag] = flag(p.OnlyCrossing)
		emb[SlotImportance] = capUnit(p.LoadLimitTons / 60)
	case *SchoolProperties:
		emb[SlotSizeLevel] = capUnit(float64(p.Students) / 1000)
		emb[SlotCriticalFlag] = flag(p.Shelter)
		emb[SlotImportance] = capUnit(float64(p.Classrooms) / 40)
	case *HospitalProperties:
		emb[SlotSizeLevel] = capUnit(p.BedOccupancy)
		emb[SlotCriticalFlag] = flag(p.EmergencyUnit)
		emb[SlotImportance] = capUnit(float64(p.Beds) / 200)
	case *MarketProperties:
		emb[SlotSizeLevel] = capUnit(float64(p.Stalls) / 100)
		emb[SlotCriticalFlag] = flag(p.DailyMarket)
		emb[SlotImportance] = capUnit(float64(p.Vendors) / 150)
	}

	emb[SlotCriticality] = criticalityOf(t, props)
	emb[SlotPopulation] = capUnit(float64(base.PopulationServed) / populationScale)
	emb[SlotEconomicValue] = capUnit(base.EconomicValue / economicScale)
	// SlotConnectivity stays zero until the adjacency matrix is built.
	emb[SlotMaintenance] = maintenanceRecency(base.LastMaintenance, now)
	emb[SlotFloodRisk] = floodRisk(t, base.FloodRisk)
	emb[SlotFailureIntensity] = capUnit(float64(base.FailureHistory) / failureHistoryScale)

	normalizeNonZero(emb)
	return emb
}

// maintenanceRecency rewards recent maintenance with an exponential falloff
// over roughly a year. Unknown dates score neutral.
func maintenanceRecency(last time.Time, now time.Time) float64 {
	if last.IsZero() {
		return 0.5
	}
	days := now.Sub(last).Hours() / 24
	if days < 0 {
		days = 0
	}
	return math.Exp(-days / maintenanceHalfLife)
}

func floodRisk(t NodeType, risk float64) float64 {
	if risk > 0 {
		return capUnit(risk)
	}
	if def, ok := defaultFloodRisk[t]; ok {
		return def
	}
	return 0.1
}

// normalizeNonZero rescales the non-zero entries of vec to [0,1] in place.
// Zeros are structural (absent signal, unused one-hot slots) and stay zero.
// When every non-zero entry is equal they all map to 1.
func normalizeNonZero(vec []float64) {
	min := math.Inf(1)
	max := math.Inf(-1)
	seen := false
	for _, v := range vec {
		if v == 0 {
			continue
		}
		seen = true
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if !seen {
		return
	}
	if max == min {
		for i, v := range vec {
			if v != 0 {
				vec[i] = 1.0
			}
		}
		return
	}
	span := max - min
	for i, v := range vec {
		if v != 0 {
			vec[i] = (v - min) / span
		}
	}
}

func capUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

func flag(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
