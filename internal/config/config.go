package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pentad/internal/dynamo"
)

const (
	DefaultStepSize   = 0.01
	DefaultHorizon    = 10.0
	DefaultDamping    = 0.1
	DefaultMaxDeltaPi = 0.1
	DefaultMinPhi     = 0.5
	DefaultStrength   = 0.5
	DefaultDataDir    = ".pentad"
)

type Config struct {
	InitState  [5]float64         `yaml:"init_state"`
	Coupling   CouplingConfig     `yaml:"coupling"`
	Params     map[string]float64 `yaml:"params"`
	StepSize   float64            `yaml:"step_size"`
	Horizon    float64            `yaml:"horizon"`
	Thresholds ThresholdConfig    `yaml:"thresholds"`
	Strength   float64            `yaml:"field_strength"`
	ID         string             `yaml:"id"`
	Seed       string             `yaml:"seed"`
	SeedPath   string             `yaml:"seed_path"`
	Owner      string             `yaml:"owner"`
	DataDir    string             `yaml:"data_dir"`
}

type CouplingConfig struct {
	Mode   string  `yaml:"mode"`
	Weight float64 `yaml:"weight"`
}

type ThresholdConfig struct {
	MaxDeltaPi float64 `yaml:"max_delta_pi"`
	MinPhi     float64 `yaml:"min_phi"`
}

func DefaultConfig() *Config {
	return &Config{
		InitState: [5]float64{1, 0, 0, 0, 0},
		Coupling:  CouplingConfig{Mode: string(dynamo.CouplingNone)},
		Params: map[string]float64{
			dynamo.ParamDamping: DefaultDamping,
		},
		StepSize: DefaultStepSize,
		Horizon:  DefaultHorizon,
		Thresholds: ThresholdConfig{
			MaxDeltaPi: DefaultMaxDeltaPi,
			MinPhi:     DefaultMinPhi,
		},
		Strength: DefaultStrength,
		ID:       "local",
		Seed:     "42",
		SeedPath: "m/0",
		Owner:    "pentad",
		DataDir:  DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CouplingMatrix builds the matrix described by the coupling section.
func (c *Config) CouplingMatrix() dynamo.Coupling {
	if c.Coupling.Weight == 0 {
		return dynamo.ZeroCoupling()
	}
	return dynamo.UniformCoupling(c.Coupling.Weight)
}

// Mode returns the configured coupling mode, defaulting to none.
func (c *Config) Mode() dynamo.CouplingMode {
	switch dynamo.CouplingMode(c.Coupling.Mode) {
	case dynamo.CouplingLinear:
		return dynamo.CouplingLinear
	case dynamo.CouplingNonlinear:
		return dynamo.CouplingNonlinear
	default:
		return dynamo.CouplingNone
	}
}

// FieldParams converts the params section into vector-field parameters.
func (c *Config) FieldParams() dynamo.Params {
	if len(c.Params) == 0 {
		return dynamo.DefaultParams()
	}
	p := make(dynamo.Params, len(c.Params))
	for k, v := range c.Params {
		p[k] = v
	}
	return p
}
