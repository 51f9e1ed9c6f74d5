// Package config loads the YAML run descriptor for a wall radiation
// load engine run: mesh and equilibrium sources, the emissivity
// profile table, an optional bounding contour, and the Monte Carlo
// run parameters. Grounded on the teacher module's
// x/marshaller/yaml.Marshaller wrapping pattern, simplified from its
// reflection-based generic marshaller to a direct struct-tag decode
// since the run descriptor's shape is fixed and known ahead of time.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Error wraps a config load/validation failure with the path and the
// stage (read, decode, validate) that failed.
type Error struct {
	Path  string
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s: %v", e.Path, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(path, stage string, err error) error {
	return &Error{Path: path, Stage: stage, Err: err}
}

// Contour is an optional bounding polygon restricting emission
// points, given as parallel R/z vertex arrays.
type Contour struct {
	R []float64 `yaml:"r"`
	Z []float64 `yaml:"z"`
}

// Profile is the radial emissivity table (rho, p(rho)).
type Profile struct {
	Rho []float64 `yaml:"rho"`
	P   []float64 `yaml:"p"`
}

// Config is the full engine-run descriptor.
type Config struct {
	MeshPath        string   `yaml:"mesh_path"`
	EqdskPath       string   `yaml:"eqdsk_path"`
	Profile         Profile  `yaml:"profile"`
	Contour         *Contour `yaml:"contour,omitempty"`
	Seed            int64    `yaml:"seed"`
	Workers         int      `yaml:"workers"`
	Samples         int      `yaml:"samples"`
	TotalPower      float64  `yaml:"total_power"`
	TieBreakByIndex bool     `yaml:"tie_break_by_index,omitempty"`
	R0Envelope      bool     `yaml:"r0_envelope,omitempty"`
}

// Load reads and validates the YAML config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(path, "read", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, newError(path, "decode", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, newError(path, "validate", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MeshPath == "" {
		return fmt.Errorf("mesh_path is required")
	}
	if c.EqdskPath == "" {
		return fmt.Errorf("eqdsk_path is required")
	}
	if len(c.Profile.Rho) == 0 || len(c.Profile.Rho) != len(c.Profile.P) {
		return fmt.Errorf("profile.rho and profile.p must be non-empty and equal length")
	}
	if c.Contour != nil && len(c.Contour.R) != len(c.Contour.Z) {
		return fmt.Errorf("contour.r and contour.z must have equal length")
	}
	if c.Samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", c.Samples)
	}
	if c.TotalPower <= 0 {
		return fmt.Errorf("total_power must be positive, got %g", c.TotalPower)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	return nil
}
