package geoweights

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/hupe1980/geoweights/codec"
	"github.com/hupe1980/geoweights/index"
	"github.com/hupe1980/geoweights/kernel"
	"github.com/hupe1980/geoweights/weights"
)

// Build methods accepted by Config.Method.
const (
	MethodKNN       = "knn"
	MethodThreshold = "threshold"
)

// Config is a declarative weights build, loadable from YAML or JSON.
//
//	method: knn
//	units: km
//	k: 6
//	kernel: gaussian
//	adaptive: true
type Config struct {
	Method string `json:"method" yaml:"method"`
	Units  string `json:"units,omitempty" yaml:"units,omitempty"`

	K         int     `json:"k,omitempty" yaml:"k,omitempty"`
	Threshold float64 `json:"threshold,omitempty" yaml:"threshold,omitempty"`

	// Power is the exponent of inverse weighting. Zero means -1.
	Inverse bool    `json:"inverse,omitempty" yaml:"inverse,omitempty"`
	Power   float64 `json:"power,omitempty" yaml:"power,omitempty"`

	Kernel          string  `json:"kernel,omitempty" yaml:"kernel,omitempty"`
	Bandwidth       float64 `json:"bandwidth,omitempty" yaml:"bandwidth,omitempty"`
	Adaptive        bool    `json:"adaptive,omitempty" yaml:"adaptive,omitempty"`
	KernelDiagonals bool    `json:"kernel_diagonals,omitempty" yaml:"kernel_diagonals,omitempty"`

	Workers       int    `json:"workers,omitempty" yaml:"workers,omitempty"`
	Backend       string `json:"backend,omitempty" yaml:"backend,omitempty"`
	MaxCandidates int    `json:"max_candidates,omitempty" yaml:"max_candidates,omitempty"`
}

// LoadConfig reads a configuration file. The codec is chosen by the file
// extension: .yaml/.yml or .json.
func LoadConfig(path string) (*Config, error) {
	c, err := codec.ForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := DecodeConfig(data, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes and validates a configuration.
func DecodeConfig(data []byte, c codec.Codec) (*Config, error) {
	var cfg Config
	if err := c.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration without building anything.
func (c *Config) Validate() error {
	switch c.Method {
	case MethodKNN:
		if c.K < 1 {
			return &ErrConfig{Field: "k", Reason: "must be at least 1"}
		}
	case MethodThreshold:
		if c.Threshold < 0 || math.IsNaN(c.Threshold) {
			return &ErrConfig{Field: "threshold", Reason: "must be non-negative"}
		}
	default:
		return &ErrConfig{Field: "method", Reason: fmt.Sprintf("unknown method %q", c.Method)}
	}

	if _, err := ParseUnits(c.Units); err != nil {
		return &ErrConfig{Field: "units", Reason: err.Error()}
	}
	if _, err := kernel.Parse(c.Kernel); err != nil {
		return &ErrConfig{Field: "kernel", Reason: err.Error()}
	}
	if _, err := index.ParseBackend(c.Backend); err != nil {
		return &ErrConfig{Field: "backend", Reason: err.Error()}
	}
	if c.Bandwidth < 0 || math.IsNaN(c.Bandwidth) {
		return &ErrConfig{Field: "bandwidth", Reason: "must be non-negative"}
	}
	return nil
}

// Build validates the configuration and runs the build it describes.
// optFns are applied after the configured workers, backend and candidate
// limit, so they take precedence.
func (c *Config) Build(ctx context.Context, x, y []float64, optFns ...Option) (*weights.Graph, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	units, _ := ParseUnits(c.Units)
	k, _ := kernel.Parse(c.Kernel)
	backend, _ := index.ParseBackend(c.Backend)

	power := c.Power
	if power == 0 {
		power = -1
	}

	opts := []Option{WithBackend(backend)}
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	if c.MaxCandidates > 0 {
		opts = append(opts, WithMaxCandidates(c.MaxCandidates))
	}
	opts = append(opts, optFns...)

	if c.Method == MethodKNN {
		b := KNN(c.K).Units(units).Kernel(k).Bandwidth(c.Bandwidth)
		if c.Inverse {
			b = b.Inverse(power)
		}
		if c.Adaptive {
			b = b.Adaptive()
		}
		if c.KernelDiagonals {
			b = b.KernelDiagonals()
		}
		return b.Build(ctx, x, y, opts...)
	}

	b := Threshold(c.Threshold).Units(units).Kernel(k)
	if c.Inverse {
		b = b.Inverse(power)
	}
	if c.KernelDiagonals {
		b = b.KernelDiagonals()
	}
	return b.Build(ctx, x, y, opts...)
}
