package graph

import "time"

// Properties is the closed union of per-type node attributes. Every node
// type has exactly one implementation; embedding construction switches over
// the set exhaustively, so adding a type without wiring its embedding is a
// compile-visible hole rather than a silent default.
type Properties interface {
	nodeType() NodeType
	Base() *BaseProperties
}

// Status describes the operational state of a piece of infrastructure.
type Status string

const (
	StatusOperational Status = "operational"
	StatusDegraded    Status = "degraded"
	StatusDamaged     Status = "damaged"
	StatusOffline     Status = "offline"
)

// Factor maps a status onto [0,1] for the embedding. Unset statuses are
// assumed operational.
func (s Status) Factor() float64 {
	switch s {
	case StatusDegraded:
		return 0.6
	case StatusDamaged:
		return 0.3
	case StatusOffline:
		return 0.0
	default:
		return 1.0
	}
}

// BaseProperties carries the attributes every node type shares. A zero
// Condition means unknown and is treated as serviceable (0.7); a zero
// FloodRisk falls back to the per-type default.
type BaseProperties struct {
	Condition        float64   `json:"condition,omitempty"`
	Status           Status    `json:"status,omitempty"`
	PopulationServed int       `json:"population_served,omitempty"`
	EconomicValue    float64   `json:"economic_value,omitempty"`
	LastMaintenance  time.Time `json:"last_maintenance,omitempty"`
	FloodRisk        float64   `json:"flood_risk,omitempty"`
	FailureHistory   int       `json:"failure_history,omitempty"`
}

// Base returns the shared attributes; promoted into every implementation.
func (b *BaseProperties) Base() *BaseProperties { return b }

// ConditionOrDefault returns the condition, assuming serviceable when unset.
func (b *BaseProperties) ConditionOrDefault() float64 {
	if b.Condition <= 0 {
		return 0.7
	}
	return b.Condition
}

// RoadProperties describe a road segment.
type RoadProperties struct {
	BaseProperties
	LengthKM float64 `json:"length_km,omitempty"`
	Lanes    int     `json:"lanes,omitempty"`
	MainRoad bool    `json:"main_road,omitempty"`
}

func (*RoadProperties) nodeType() NodeType { return TypeRoad }

// BuildingProperties describe a generic building.
type BuildingProperties struct {
	BaseProperties
	Floors           int  `json:"floors,omitempty"`
	Units            int  `json:"units,omitempty"`
	CriticalFacility bool `json:"critical_facility,omitempty"`
}

func (*BuildingProperties) nodeType() NodeType { return TypeBuilding }

// PowerProperties describe a power source, line segment or substation.
type PowerProperties struct {
	BaseProperties
	VoltageKV  float64 `json:"voltage_kv,omitempty"`
	LoadFactor float64 `json:"load_factor,omitempty"`
	Substation bool    `json:"substation,omitempty"`
}

func (*PowerProperties) nodeType() NodeType { return TypePower }

// TankProperties describe a water storage tank.
type TankProperties struct {
	BaseProperties
	CapacityLiters float64 `json:"capacity_liters,omitempty"`
	FillLevel      float64 `json:"fill_level,omitempty"`
	PrimarySource  bool    `json:"primary_source,omitempty"`
}

func (*TankProperties) nodeType() NodeType { return TypeTank }

// PumpProperties describe a water pump.
type PumpProperties struct {
	BaseProperties
	FlowRateLPM float64 `json:"flow_rate_lpm,omitempty"`
	PowerDrawKW float64 `json:"power_draw_kw,omitempty"`
	Booster     bool    `json:"booster,omitempty"`
}

func (*PumpProperties) nodeType() NodeType { return TypePump }

// PipeProperties describe a pipe segment.
type PipeProperties struct {
	BaseProperties
	DiameterMM  float64 `json:"diameter_mm,omitempty"`
	PressureBar float64 `json:"pressure_bar,omitempty"`
	MainLine    bool    `json:"main_line,omitempty"`
}

func (*PipeProperties) nodeType() NodeType { return TypePipe }

// SensorProperties describe a telemetry sensor.
type SensorProperties struct {
	BaseProperties
	BatteryLevel    float64 `json:"battery_level,omitempty"`
	Coverage        float64 `json:"coverage,omitempty"`
	CriticalMonitor bool    `json:"critical_monitor,omitempty"`
}

func (*SensorProperties) nodeType() NodeType { return TypeSensor }

// ClusterProperties describe a residential cluster.
type ClusterProperties struct {
	BaseProperties
	Households          int     `json:"households,omitempty"`
	Density             float64 `json:"density,omitempty"`
	VulnerableResidents bool    `json:"vulnerable_residents,omitempty"`
}

func (*ClusterProperties) nodeType() NodeType { return TypeCluster }

// BridgeProperties describe a bridge.
type BridgeProperties struct {
	BaseProperties
	SpanMeters    float64 `json:"span_meters,omitempty"`
	LoadLimitTons float64 `json:"load_limit_tons,omitempty"`
	OnlyCrossing  bool    `json:"only_crossing,omitempty"`
}

func (*BridgeProperties) nodeType() NodeType { return TypeBridge }

// SchoolProperties describe a school.
type SchoolProperties struct {
	BaseProperties
	Students   int  `json:"students,omitempty"`
	Classrooms int  `json:"classrooms,omitempty"`
	Shelter    bool `json:"shelter,omitempty"`
}

func (*SchoolProperties) nodeType() NodeType { return TypeSchool }

// HospitalProperties describe a hospital or clinic.
type HospitalProperties struct {
	BaseProperties
	Beds          int     `json:"beds,omitempty"`
	BedOccupancy  float64 `json:"bed_occupancy,omitempty"`
	EmergencyUnit bool    `json:"emergency_unit,omitempty"`
}

func (*HospitalProperties) nodeType() NodeType { return TypeHospital }

// MarketProperties describe a marketplace.
type MarketProperties struct {
	BaseProperties
	Stalls      int  `json:"stalls,omitempty"`
	Vendors     int  `json:"vendors,omitempty"`
	DailyMarket bool `json:"daily_market,omitempty"`
}

func (*MarketProperties) nodeType() NodeType { return TypeMarket }

// NewProperties returns the zero-valued property struct for a node type.
// Snapshot decoding uses it to pick the right shape before unmarshaling.
func NewProperties(t NodeType) (Properties, error) {
	switch t {
	case TypeRoad:
		return &RoadProperties{}, nil
	case TypeBuilding:
		return &BuildingProperties{}, nil
	case TypePower:
		return &PowerProperties{}, nil
	case TypeTank:
		return &TankProperties{}, nil
	case TypePump:
		return &PumpProperties{}, nil
	case TypePipe:
		return &PipeProperties{}, nil
	case TypeSensor:
		return &SensorProperties{}, nil
	case TypeCluster:
		return &ClusterProperties{}, nil
	case TypeBridge:
		return &BridgeProperties{}, nil
	case TypeSchool:
		return &SchoolProperties{}, nil
	case TypeHospital:
		return &HospitalProperties{}, nil
	case TypeMarket:
		return &MarketProperties{}, nil
	default:
		return nil, NewError("properties").Context(string(t)).Cause(ErrUnknownNodeType).Err()
	}
}
