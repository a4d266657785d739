package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/numlab/radwave/internal/coupled"
	"github.com/numlab/radwave/internal/numerov"
	"github.com/numlab/radwave/internal/potential"
	"github.com/numlab/radwave/internal/quantum"
)

const (
	DefaultEnergy      = 10.0
	DefaultDepth       = 40.0
	DefaultRadius      = 2.0
	DefaultDiffuseness = 0.6
	DefaultMu          = 469.46
	DefaultStep        = 0.01
	DefaultRMax        = 20.0
)

// ChannelConfig describes one channel of a coupled run. Excitation is
// subtracted from the incident energy to obtain the channel energy.
type ChannelConfig struct {
	L          int     `yaml:"l"`
	Excitation float64 `yaml:"excitation"`
	Label      string  `yaml:"label"`
}

type CouplingConfig struct {
	From     int     `yaml:"from"`
	To       int     `yaml:"to"`
	Strength float64 `yaml:"strength"`
	Beta     float64 `yaml:"beta"`
}

type Config struct {
	Potential   string  `yaml:"potential"`
	Energy      float64 `yaml:"energy"`
	L           int     `yaml:"l"`
	Depth       float64 `yaml:"v0"`
	Radius      float64 `yaml:"r0"`
	Diffuseness float64 `yaml:"a0"`
	ImagDepth   float64 `yaml:"w0"`
	Mu          float64 `yaml:"mu"`
	Step        float64 `yaml:"h"`
	RMax        float64 `yaml:"rmax"`
	Start       string  `yaml:"start"`
	Strict      bool    `yaml:"strict"`

	Channels  []ChannelConfig  `yaml:"channels"`
	Couplings []CouplingConfig `yaml:"couplings"`
}

func DefaultConfig() *Config {
	return &Config{
		Potential:   "woods-saxon",
		Energy:      DefaultEnergy,
		Depth:       DefaultDepth,
		Radius:      DefaultRadius,
		Diffuseness: DefaultDiffuseness,
		Mu:          DefaultMu,
		Step:        DefaultStep,
		RMax:        DefaultRMax,
		Start:       "bessel-l1",
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

func (c *Config) params() potential.Params {
	return potential.Params{
		Depth:       c.Depth,
		Radius:      c.Radius,
		Diffuseness: c.Diffuseness,
		ImagDepth:   c.ImagDepth,
	}
}

func startStrategy(name string) (numerov.StartStrategy, error) {
	switch name {
	case "", "bessel-l1":
		return numerov.BesselStart{}, nil
	case "power-law":
		return numerov.PowerLawStart{}, nil
	default:
		return nil, fmt.Errorf("unknown start strategy: %q (available: bessel-l1, power-law)", name)
	}
}

// Problem converts the config into a single-channel solve request.
func (c *Config) Problem() (numerov.Problem, error) {
	model, err := potential.Lookup(c.Potential)
	if err != nil {
		return numerov.Problem{}, err
	}
	start, err := startStrategy(c.Start)
	if err != nil {
		return numerov.Problem{}, err
	}
	return numerov.Problem{
		Energy:     c.Energy,
		L:          c.L,
		Params:     c.params(),
		Model:      model,
		MassFactor: quantum.MassFactor(c.Mu),
		Grid:       quantum.Grid{Step: c.Step, RMax: c.RMax},
		Start:      start,
		Strict:     c.Strict,
	}, nil
}

// System converts the config into a coupled solve request. With no
// channels configured, a single channel is synthesized from the scalar
// fields so that a coupled run degrades gracefully.
func (c *Config) System() (coupled.System, error) {
	model, err := potential.Lookup(c.Potential)
	if err != nil {
		return coupled.System{}, err
	}
	start, err := startStrategy(c.Start)
	if err != nil {
		return coupled.System{}, err
	}

	channels := make([]quantum.Channel, 0, len(c.Channels))
	for _, ch := range c.Channels {
		channels = append(channels, quantum.Channel{
			L:      ch.L,
			Energy: c.Energy - ch.Excitation,
			Label:  ch.Label,
		})
	}
	if len(channels) == 0 {
		channels = append(channels, quantum.Channel{L: c.L, Energy: c.Energy})
	}

	couplings := make([]quantum.CouplingSpec, 0, len(c.Couplings))
	for _, cp := range c.Couplings {
		couplings = append(couplings, quantum.CouplingSpec{
			From:     cp.From,
			To:       cp.To,
			Strength: cp.Strength,
			Beta:     cp.Beta,
		})
	}

	return coupled.System{
		Channels:   channels,
		Couplings:  couplings,
		Params:     c.params(),
		Model:      model,
		MassFactor: quantum.MassFactor(c.Mu),
		Grid:       quantum.Grid{Step: c.Step, RMax: c.RMax},
		Start:      start,
		Strict:     c.Strict,
	}, nil
}
