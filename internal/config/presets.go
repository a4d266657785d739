package config

import "sort"

// Presets hold ready-made physical scenarios for the CLI.
var Presets = map[string]*Config{
	"neutron-s-wave": {
		Potential: "woods-saxon", Energy: 10.0, L: 0,
		Depth: 40.0, Radius: 2.0, Diffuseness: 0.6,
		Mu: 469.46, Step: 0.01, RMax: 20.0, Start: "bessel-l1",
	},
	"neutron-d-wave": {
		Potential: "woods-saxon", Energy: 14.0, L: 2,
		Depth: 44.0, Radius: 3.1, Diffuseness: 0.65,
		Mu: 871.9, Step: 0.01, RMax: 25.0, Start: "bessel-l1",
	},
	"deuteron-like": {
		Potential: "woods-saxon", Energy: 5.0, L: 0,
		Depth: 72.0, Radius: 1.5, Diffuseness: 0.5,
		Mu: 469.46, Step: 0.005, RMax: 15.0, Start: "bessel-l1",
	},
	"two-channel": {
		Potential: "woods-saxon", Energy: 12.0,
		Depth: 46.0, Radius: 2.6, Diffuseness: 0.6,
		Mu: 871.9, Step: 0.01, RMax: 20.0, Start: "bessel-l1",
		Channels: []ChannelConfig{
			{L: 0, Excitation: 0.0, Label: "0+"},
			{L: 2, Excitation: 1.37, Label: "2+"},
		},
		Couplings: []CouplingConfig{
			{From: 0, To: 1, Strength: 0.4, Beta: 0.25},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if it is unknown.
// The copy keeps callers from mutating the shared table through flag
// overrides.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	c.Channels = append([]ChannelConfig(nil), p.Channels...)
	c.Couplings = append([]CouplingConfig(nil), p.Couplings...)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
