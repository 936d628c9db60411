// Package config loads score weight configuration. The schema matches the
// /api/layouts weights parameters so the same JSON can be used for startup
// configuration and saved user presets.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ergodata/layout.report/internal/scoring"
)

// defaultWeight applies to any metric the config leaves unset.
const defaultWeight = 50

// WeightsConfig represents a weight vector with all fields optional.
// Fields omitted from the JSON retain their defaults, so partial configs
// are safe.
type WeightsConfig struct {
	SFB      *int `json:"sfb,omitempty"`
	SFS      *int `json:"sfs,omitempty"`
	LSB      *int `json:"lsb,omitempty"`
	Scissors *int `json:"scissors,omitempty"`
	Rolls    *int `json:"rolls,omitempty"`
	Redirect *int `json:"redirect,omitempty"`
	Pinky    *int `json:"pinky,omitempty"`
}

// LoadWeightsConfig loads a WeightsConfig from a JSON file. The file must
// have a .json extension and stay under the max file size.
func LoadWeightsConfig(path string) (*WeightsConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &WeightsConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that every set weight is within [0,100].
func (c *WeightsConfig) Validate() error {
	for _, f := range []struct {
		name string
		v    *int
	}{
		{"sfb", c.SFB}, {"sfs", c.SFS}, {"lsb", c.LSB}, {"scissors", c.Scissors},
		{"rolls", c.Rolls}, {"redirect", c.Redirect}, {"pinky", c.Pinky},
	} {
		if f.v != nil && (*f.v < 0 || *f.v > 100) {
			return fmt.Errorf("%s weight must be between 0 and 100, got %d", f.name, *f.v)
		}
	}
	return nil
}

func orDefault(v *int) int {
	if v == nil {
		return defaultWeight
	}
	return *v
}

// Weights resolves the config to a concrete weight vector, filling unset
// fields with the default.
func (c *WeightsConfig) Weights() scoring.Weights {
	return scoring.Weights{
		SFB:      orDefault(c.SFB),
		SFS:      orDefault(c.SFS),
		LSB:      orDefault(c.LSB),
		Scissors: orDefault(c.Scissors),
		Rolls:    orDefault(c.Rolls),
		Redirect: orDefault(c.Redirect),
		Pinky:    orDefault(c.Pinky),
	}
}

// Presets are the built-in named weight vectors offered by the catalog UI.
var Presets = map[string]scoring.Weights{
	"balanced": scoring.DefaultWeights(),
	"low-sfb": {
		SFB: 100, SFS: 70, LSB: 40, Scissors: 40, Rolls: 20, Redirect: 30, Pinky: 30,
	},
	"rolling": {
		SFB: 50, SFS: 40, LSB: 30, Scissors: 30, Rolls: 100, Redirect: 60, Pinky: 20,
	},
	"light-pinky": {
		SFB: 50, SFS: 40, LSB: 50, Scissors: 50, Rolls: 30, Redirect: 30, Pinky: 100,
	},
}

// Preset returns a built-in weight vector by name, falling back to
// "balanced" for unknown names.
func Preset(name string) scoring.Weights {
	if w, ok := Presets[name]; ok {
		return w
	}
	return scoring.DefaultWeights()
}
