package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NickelKnock/Axial-Motor-Design-Calculator/pkg/sizing"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "designs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_TwoDesigns(t *testing.T) {
	path := writeFile(t, `
designs:
  - name: cargo-hub
    coils: 12
    outer_radius_m: 0.179
    voltage_v: 72
    turns: auto
    target_torque_nm: 200
    rpm: 750
    phase_current_limit_a: 200
    dc_current_limit_a: 300
  - name: spindle
    coils: 18
    poles: 12
    outer_radius_m: 0.1045
    voltage_v: 100
    dual_plate: true
    turns: "12"
    target_torque_nm: 50
    electrical_hz: 600
    phase_current_limit_a: 250
    dc_current_limit_a: 400
    esc_freq_max_hz: 800
`)
	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Designs, 2)

	hub, err := f.Designs[0].Sizing()
	require.NoError(t, err)
	want := sizing.Config{
		Coils:             12,
		OuterRadius:       0.179,
		VoltageMode:       sizing.VoltageDCBus,
		BusVoltage:        72,
		TurnsMode:         sizing.TurnsAuto,
		TargetTorque:      200,
		SpeedMode:         sizing.SpeedRPM,
		Speed:             750,
		PhaseCurrentLimit: 200,
		DCCurrentLimit:    300,
	}
	if diff := cmp.Diff(want, hub); diff != "" {
		t.Errorf("cargo-hub config mismatch (-want +got):\n%s", diff)
	}

	spindle, err := f.Designs[1].Sizing()
	require.NoError(t, err)
	assert.Equal(t, sizing.TurnsFixed, spindle.TurnsMode)
	assert.Equal(t, 12, spindle.FixedTurns)
	assert.Equal(t, sizing.SpeedHz, spindle.SpeedMode)
	assert.Equal(t, 600.0, spindle.Speed)
	assert.True(t, spindle.DualPlate)

	// Loaded designs must size cleanly end to end.
	res, err := sizing.Compute(spindle)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Turns)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, `
designs:
  - name: typo
    coils: 12
    outer_radius_mm: 179
    voltage_v: 72
    target_torque_nm: 200
    rpm: 750
    phase_current_limit_a: 200
    dc_current_limit_a: 300
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outer_radius_mm")
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeFile(t, "designs: []\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no designs")
}

func TestLoad_NamesDefaulted(t *testing.T) {
	path := writeFile(t, `
designs:
  - coils: 12
    outer_radius_m: 0.179
    voltage_v: 72
    target_torque_nm: 200
    rpm: 750
    phase_current_limit_a: 200
    dc_current_limit_a: 300
`)
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "design-1", f.Designs[0].Name)
}

func TestSizing_SpeedExactlyOne(t *testing.T) {
	d := Design{Name: "x", RPM: 750, ElectricalHz: 50}
	_, err := d.Sizing()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")

	d = Design{Name: "x"}
	_, err = d.Sizing()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpm or electrical_hz")
}

func TestSizing_TurnsParsing(t *testing.T) {
	base := Design{Name: "x", RPM: 750}

	d := base
	d.Turns = "Auto"
	cfg, err := d.Sizing()
	require.NoError(t, err)
	assert.Equal(t, sizing.TurnsAuto, cfg.TurnsMode)

	d.Turns = "38"
	cfg, err = d.Sizing()
	require.NoError(t, err)
	assert.Equal(t, sizing.TurnsFixed, cfg.TurnsMode)
	assert.Equal(t, 38, cfg.FixedTurns)

	d.Turns = "many"
	_, err = d.Sizing()
	require.Error(t, err)
}

func TestSizing_VoltageModeParsing(t *testing.T) {
	base := Design{Name: "x", RPM: 750}

	for mode, want := range map[string]sizing.VoltageMode{
		"": sizing.VoltageDCBus, "dc_bus": sizing.VoltageDCBus, "DC": sizing.VoltageDCBus,
		"ac_rms": sizing.VoltageACRMS, "ac": sizing.VoltageACRMS,
	} {
		d := base
		d.VoltageMode = mode
		cfg, err := d.Sizing()
		require.NoError(t, err, "mode %q", mode)
		assert.Equal(t, want, cfg.VoltageMode, "mode %q", mode)
	}

	d := base
	d.VoltageMode = "three_phase_delta"
	_, err := d.Sizing()
	require.Error(t, err)
}
