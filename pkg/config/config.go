// Package config holds every tunable constant of the impact engine in one
// place. The numbers shipped here are the calibrated production values; they
// can be overridden from a YAML file but are not learned at runtime.
package config

import "time"

// Config is the root configuration for the server binary.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Engine    EngineConfig    `yaml:"engine"`
	Proximity ProximityConfig `yaml:"proximity"`
}

// ServerConfig configures the HTTP surface and startup behavior.
type ServerConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	ReadTimeoutSecs    int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSecs   int    `yaml:"write_timeout_seconds"`
	IdleTimeoutSecs    int    `yaml:"idle_timeout_seconds"`
	SnapshotPath       string `yaml:"snapshot_path"`
	LogLevel           string `yaml:"log_level"`
	WhatIfWorkers      int    `yaml:"whatif_workers"`
	ShutdownTimeoutSec int    `yaml:"shutdown_timeout_seconds"`
}

// SeverityIntensities maps injected failure severities to the intensity
// written into the failed node's historical-failure embedding slot.
type SeverityIntensities struct {
	Low      float64 `yaml:"low"`
	Medium   float64 `yaml:"medium"`
	High     float64 `yaml:"high"`
	Critical float64 `yaml:"critical"`
}

// EngineConfig carries the hand-tuned constants of the prediction network
// and the analyzer. Changing these changes predictions; the defaults are the
// values the model was calibrated with.
type EngineConfig struct {
	// Network dimensions.
	EmbeddingDim int   `yaml:"embedding_dim"`
	HiddenDim    int   `yaml:"hidden_dim"`
	OutputDim    int   `yaml:"output_dim"`
	LayerHeads   []int `yaml:"layer_heads"`

	// Activation and normalization.
	LeakySlope       float64 `yaml:"leaky_slope"`
	LayerNormEpsilon float64 `yaml:"layer_norm_epsilon"`
	SoftmaxFloor     float64 `yaml:"softmax_floor"`

	// Failure propagation speed, in edges per minute.
	PropagationVelocity float64 `yaml:"propagation_velocity"`

	// Temporal decay regimes over graph distance.
	NearDecayRate    float64 `yaml:"near_decay_rate"`
	FarDecayRate     float64 `yaml:"far_decay_rate"`
	NearDistance     float64 `yaml:"near_distance"`
	MaxDistance      float64 `yaml:"max_distance"`
	UnreachableDecay float64 `yaml:"unreachable_decay"`

	Severity SeverityIntensities `yaml:"severity_intensity"`

	// Adaptive acceptance threshold.
	BaseThreshold      float64 `yaml:"base_threshold"`
	CriticalityWeight  float64 `yaml:"criticality_weight"`
	ConnectivityWeight float64 `yaml:"connectivity_weight"`
	DistantPenalty     float64 `yaml:"distant_penalty"`
	DistantMinutes     float64 `yaml:"distant_minutes"`

	// Reporting.
	DisplayProbabilityCap float64 `yaml:"display_probability_cap"`
	MinTimeToImpact       float64 `yaml:"min_time_to_impact_minutes"`
	MaxPathDepth          int     `yaml:"max_path_depth"`

	// Relationship gating.
	DefaultGate          float64 `yaml:"default_gate"`
	SameTypeGate         float64 `yaml:"same_type_gate"`
	OutageEquipmentBoost float64 `yaml:"outage_equipment_boost"`
	RoadAccessBoost      float64 `yaml:"road_access_boost"`
	RoadSupplyDamp       float64 `yaml:"road_supply_damp"`

	// Weight initialization seed. Two engines built from the same seed
	// produce identical predictions.
	Seed int64 `yaml:"seed"`
}

// ProximityConfig controls the spatial edges inferred between co-located
// infrastructure that has no explicit edge.
type ProximityConfig struct {
	// MaxDistance is the cutoff in meters beyond which no proximity edge
	// is created.
	MaxDistance     float64 `yaml:"max_distance"`
	BaseWeightScale float64 `yaml:"base_weight_scale"`
	MinWeight       float64 `yaml:"min_weight"`
}

// Default returns the calibrated production configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "",
			Port:               8080,
			ReadTimeoutSecs:    15,
			WriteTimeoutSecs:   30,
			IdleTimeoutSecs:    60,
			LogLevel:           "info",
			WhatIfWorkers:      4,
			ShutdownTimeoutSec: 10,
		},
		Engine:    DefaultEngine(),
		Proximity: DefaultProximity(),
	}
}

// DefaultEngine returns the calibrated engine constants.
func DefaultEngine() EngineConfig {
	return EngineConfig{
		EmbeddingDim:          24,
		HiddenDim:             48,
		OutputDim:             12,
		LayerHeads:            []int{3, 3, 2, 1},
		LeakySlope:            0.1,
		LayerNormEpsilon:      1e-5,
		SoftmaxFloor:          1e-10,
		PropagationVelocity:   0.5,
		NearDecayRate:         0.15,
		FarDecayRate:          0.25,
		NearDistance:          10,
		MaxDistance:           50,
		UnreachableDecay:      0.02,
		Severity:              SeverityIntensities{Low: 0.3, Medium: 0.5, High: 0.75, Critical: 1.0},
		BaseThreshold:         0.38,
		CriticalityWeight:     0.15,
		ConnectivityWeight:    0.10,
		DistantPenalty:        0.25,
		DistantMinutes:        30,
		DisplayProbabilityCap: 0.98,
		MinTimeToImpact:       0.5,
		MaxPathDepth:          5,
		DefaultGate:           0.05,
		SameTypeGate:          0.7,
		OutageEquipmentBoost:  1.3,
		RoadAccessBoost:       1.2,
		RoadSupplyDamp:        0.5,
		Seed:                  42,
	}
}

// DefaultProximity returns the calibrated proximity constants.
func DefaultProximity() ProximityConfig {
	return ProximityConfig{
		MaxDistance:     100,
		BaseWeightScale: 0.7,
		MinWeight:       0.1,
	}
}

// ReadTimeout returns the server read timeout as a duration.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSecs) * time.Second
}

// WriteTimeout returns the server write timeout as a duration.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSecs) * time.Second
}

// IdleTimeout returns the server idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSecs) * time.Second
}

// ShutdownTimeout returns the graceful shutdown budget as a duration.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSec) * time.Second
}
