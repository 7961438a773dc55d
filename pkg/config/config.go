// Package config loads motor design files. A design file is a YAML document
// with a list of named designs, so a whole family of candidates can be sized
// in one run. Mode-like fields (voltage interpretation, turns, speed unit)
// are plain strings/scalars in the file and are converted to the engine's
// tagged variants here, at the boundary.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/NickelKnock/Axial-Motor-Design-Calculator/pkg/sizing"
	"gopkg.in/yaml.v3"
)

// Design is one named sizing problem as written in a YAML file.
// Zero-valued coefficient fields fall back to the engine defaults.
type Design struct {
	Name string `yaml:"name"`

	Coils int `yaml:"coils"`
	Poles int `yaml:"poles,omitempty"` // 0 = derive from coils

	OuterRadiusM     float64 `yaml:"outer_radius_m"`
	InnerRadiusRatio float64 `yaml:"inner_radius_ratio,omitempty"`
	FluxDensityT     float64 `yaml:"flux_density_t,omitempty"`
	WindingFactor    float64 `yaml:"winding_factor,omitempty"`

	VoltageV        float64 `yaml:"voltage_v"`
	VoltageMode     string  `yaml:"voltage_mode,omitempty"` // "dc_bus" (default) or "ac_rms"
	ModulationIndex float64 `yaml:"modulation_index,omitempty"`

	// Turns is "auto" (or empty) for voltage-solved turns, or a positive
	// integer for fixed turns.
	Turns     string `yaml:"turns,omitempty"`
	DualPlate bool   `yaml:"dual_plate,omitempty"`

	TargetTorqueNm float64 `yaml:"target_torque_nm"`
	RPM            float64 `yaml:"rpm,omitempty"`
	ElectricalHz   float64 `yaml:"electrical_hz,omitempty"`

	PhaseCurrentLimitA  float64 `yaml:"phase_current_limit_a"`
	DCCurrentLimitA     float64 `yaml:"dc_current_limit_a"`
	ESCFreqMaxHz        float64 `yaml:"esc_freq_max_hz,omitempty"`
	DrivelineEfficiency float64 `yaml:"driveline_efficiency,omitempty"`
}

// File is a parsed design file.
type File struct {
	Designs []Design `yaml:"designs"`
}

// Load reads and parses a design file. Unknown keys are rejected so a typo'd
// field name fails loudly instead of silently sizing with a default.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if len(file.Designs) == 0 {
		return nil, fmt.Errorf("config: %s contains no designs", path)
	}
	for i := range file.Designs {
		if file.Designs[i].Name == "" {
			file.Designs[i].Name = fmt.Sprintf("design-%d", i+1)
		}
	}
	return &file, nil
}

// Sizing converts the file representation to an engine Config. Structural
// problems (unparseable turns, both or neither speed fields) are reported
// here; numeric constraint violations are left to the engine's own
// validation so they arrive aggregated.
func (d Design) Sizing() (sizing.Config, error) {
	cfg := sizing.Config{
		Coils:               d.Coils,
		Poles:               d.Poles,
		OuterRadius:         d.OuterRadiusM,
		InnerRadiusRatio:    d.InnerRadiusRatio,
		FluxDensity:         d.FluxDensityT,
		WindingFactor:       d.WindingFactor,
		BusVoltage:          d.VoltageV,
		ModulationIndex:     d.ModulationIndex,
		DualPlate:           d.DualPlate,
		TargetTorque:        d.TargetTorqueNm,
		PhaseCurrentLimit:   d.PhaseCurrentLimitA,
		DCCurrentLimit:      d.DCCurrentLimitA,
		ESCFreqMax:          d.ESCFreqMaxHz,
		DrivelineEfficiency: d.DrivelineEfficiency,
	}

	switch strings.ToLower(d.VoltageMode) {
	case "", "dc_bus", "dc":
		cfg.VoltageMode = sizing.VoltageDCBus
	case "ac_rms", "ac":
		cfg.VoltageMode = sizing.VoltageACRMS
	default:
		return sizing.Config{}, fmt.Errorf("config: design %q: unknown voltage_mode %q", d.Name, d.VoltageMode)
	}

	switch t := strings.ToLower(strings.TrimSpace(d.Turns)); t {
	case "", "auto":
		cfg.TurnsMode = sizing.TurnsAuto
	default:
		n, err := strconv.Atoi(t)
		if err != nil {
			return sizing.Config{}, fmt.Errorf("config: design %q: turns must be \"auto\" or an integer, got %q", d.Name, d.Turns)
		}
		cfg.TurnsMode = sizing.TurnsFixed
		cfg.FixedTurns = n
	}

	switch {
	case d.RPM != 0 && d.ElectricalHz != 0:
		return sizing.Config{}, fmt.Errorf("config: design %q: give rpm or electrical_hz, not both", d.Name)
	case d.RPM != 0:
		cfg.SpeedMode = sizing.SpeedRPM
		cfg.Speed = d.RPM
	case d.ElectricalHz != 0:
		cfg.SpeedMode = sizing.SpeedHz
		cfg.Speed = d.ElectricalHz
	default:
		return sizing.Config{}, fmt.Errorf("config: design %q: give rpm or electrical_hz", d.Name)
	}

	return cfg, nil
}
