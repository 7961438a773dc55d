// Package sizing is a first-cut electromagnetic sizing engine for axial-flux
// permanent-magnet motors. It maps one immutable Config (geometry, flux,
// voltage, torque/speed targets, controller limits) to one immutable Result
// (torque constant, resolved turns, current demand, voltage utilization,
// operating envelope boundaries and pass/fail flags).
//
// Overview
//
//   - Compute(cfg Config) (*Result, error) is the whole surface. It is pure,
//     O(1), allocation-light and safe to call concurrently; nothing persists
//     between calls.
//
//   - Validation runs before any field is computed. Every violated constraint
//     is collected into a single *ConfigError so a caller can highlight all
//     offending inputs at once. Operating points that are numerically valid
//     but unusable (zero speed, auto turns below one, vanishing Kt·N) return
//     an error wrapping ErrDegenerateOperatingPoint instead.
//
//   - Limit failures are not errors. A design that exceeds the controller's
//     phase-current, DC-current, voltage or frequency capability still returns
//     a full Result; the shortfall shows up in Result.Flags.
//
// # Model
//
// Geometry: the rotor is an annulus with inner radius a fixed ratio of the
// outer radius (default 0.58). Flux per pole is the average gap density times
// the per-pole annulus area. Per-turn back-EMF follows the sinusoidal fit
// E_rms = 4.44 f N Φ k_w, and the torque constant Kt = (3/2) p λ at Id≈0.
// A dual-plate rotor doubles both per-turn quantities.
//
// Voltage: with a DC bus input, the available fundamental phase RMS is
// m·Vdc/√2 at modulation index m; an AC RMS input is used directly. In auto
// turns mode the turn count is solved so back-EMF at the target speed fills
// that voltage exactly, then floored to an integer — utilization lands at or
// just under 1.0, biasing toward voltage headroom.
//
// The DC-link current estimate is mechanical power over driveline efficiency
// times the DC-link voltage; in AC RMS mode the DC link is back-derived
// through the modulation index.
//
// Example
//
//	res, err := sizing.Compute(sizing.Config{
//	    Coils:             12,
//	    OuterRadius:       0.179,
//	    VoltageMode:       sizing.VoltageDCBus,
//	    BusVoltage:        72,
//	    TurnsMode:         sizing.TurnsAuto,
//	    TargetTorque:      200,
//	    SpeedMode:         sizing.SpeedRPM,
//	    Speed:             750,
//	    PhaseCurrentLimit: 200,
//	    DCCurrentLimit:    300,
//	})
//	if err != nil {
//	    var ce *sizing.ConfigError
//	    if errors.As(err, &ce) {
//	        for _, v := range ce.Violations { fmt.Println(v) }
//	    }
//	    return err
//	}
//	fmt.Printf("N=%d  I=%.1fA  U=%.3f  ok=%v\n",
//	    res.Turns, res.PhaseCurrent, res.VoltageUtilization, res.Flags.OK())
//
// Not modeled: thermal behavior, copper losses, structural analysis, and
// multi-point torque/speed curves. The shear-stress fields are a first-order
// sanity check, not a structural result.
package sizing
