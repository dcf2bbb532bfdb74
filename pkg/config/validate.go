package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig wraps all configuration validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the full configuration tree.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.WhatIfWorkers < 1 {
		return fmt.Errorf("%w: whatif_workers must be at least 1", ErrInvalidConfig)
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	return c.Proximity.Validate()
}

// Validate checks the engine constants for values the network cannot run
// with. It does not second-guess calibration choices, only structural
// impossibilities.
func (e *EngineConfig) Validate() error {
	if e.EmbeddingDim <= 0 || e.HiddenDim <= 0 || e.OutputDim <= 0 {
		return fmt.Errorf("%w: network dimensions must be positive", ErrInvalidConfig)
	}
	if len(e.LayerHeads) != 4 {
		return fmt.Errorf("%w: layer_heads must list exactly 4 layers, got %d", ErrInvalidConfig, len(e.LayerHeads))
	}
	dims := e.LayerDims()
	for i, heads := range e.LayerHeads {
		if heads <= 0 {
			return fmt.Errorf("%w: layer %d head count must be positive", ErrInvalidConfig, i+1)
		}
		if dims[i].Out%heads != 0 {
			return fmt.Errorf("%w: layer %d output dim %d not divisible by %d heads",
				ErrInvalidConfig, i+1, dims[i].Out, heads)
		}
	}
	if e.PropagationVelocity <= 0 {
		return fmt.Errorf("%w: propagation_velocity must be positive", ErrInvalidConfig)
	}
	if e.LayerNormEpsilon <= 0 || e.SoftmaxFloor <= 0 {
		return fmt.Errorf("%w: epsilon values must be positive", ErrInvalidConfig)
	}
	if e.NearDistance <= 0 || e.MaxDistance <= e.NearDistance {
		return fmt.Errorf("%w: decay distances must satisfy 0 < near < max", ErrInvalidConfig)
	}
	for _, intensity := range []float64{e.Severity.Low, e.Severity.Medium, e.Severity.High, e.Severity.Critical} {
		if intensity <= 0 || intensity > 1 {
			return fmt.Errorf("%w: severity intensities must be in (0,1]", ErrInvalidConfig)
		}
	}
	if e.MaxPathDepth < 1 {
		return fmt.Errorf("%w: max_path_depth must be at least 1", ErrInvalidConfig)
	}
	if e.DisplayProbabilityCap <= 0 || e.DisplayProbabilityCap > 1 {
		return fmt.Errorf("%w: display_probability_cap must be in (0,1]", ErrInvalidConfig)
	}
	return nil
}

// Validate checks the proximity constants.
func (p *ProximityConfig) Validate() error {
	if p.MaxDistance <= 0 {
		return fmt.Errorf("%w: proximity max_distance must be positive", ErrInvalidConfig)
	}
	if p.MinWeight <= 0 || p.MinWeight > 1 {
		return fmt.Errorf("%w: proximity min_weight must be in (0,1]", ErrInvalidConfig)
	}
	if p.BaseWeightScale <= 0 || p.BaseWeightScale > 1 {
		return fmt.Errorf("%w: proximity base_weight_scale must be in (0,1]", ErrInvalidConfig)
	}
	return nil
}

// LayerDim describes one attention layer's input and output width.
type LayerDim struct {
	In  int
	Out int
}

// LayerDims returns the four layer shapes implied by the configured
// embedding, hidden and output dimensions.
func (e *EngineConfig) LayerDims() [4]LayerDim {
	return [4]LayerDim{
		{In: e.EmbeddingDim, Out: e.HiddenDim},
		{In: e.HiddenDim, Out: e.HiddenDim},
		{In: e.HiddenDim, Out: e.HiddenDim},
		{In: e.HiddenDim, Out: e.OutputDim},
	}
}
