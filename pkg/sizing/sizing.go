package sizing

import (
	"fmt"
	"math"
)

const (
	// mu0 is the vacuum permeability in H/m.
	mu0 = 4 * math.Pi * 1e-7

	// emfFit is the sinusoidal EMF fit constant: E_rms = 4.44 f N Φ k_w.
	emfFit = 4.44

	// ktFactor comes from Kt = (3/2) p λ for a three-phase machine at Id≈0.
	ktFactor = 1.5

	// shearC scales the heuristic shear-stress ceiling C·B²/(2μ0).
	shearC = 0.25

	// maxModulation allows over-modulation headroom beyond the linear range.
	maxModulation = 1.15

	// turnsSnap keeps an exact-integer auto-turns solution from being
	// floored down a whole turn by float noise.
	turnsSnap = 1e-9
)

// Compute maps one Config to one Result. It validates every constraint up
// front and returns a *ConfigError listing all violations, or an error
// wrapping ErrDegenerateOperatingPoint when the operating point itself is
// unusable. On success the Result is always fully populated.
func Compute(cfg Config) (*Result, error) {
	c := cfg.withDefaults()

	var v []string
	add := func(format string, args ...any) { v = append(v, fmt.Sprintf(format, args...)) }

	if c.Coils <= 0 {
		add("coils must be > 0 (got %d)", c.Coils)
	}
	poles := c.Poles
	if poles == 0 {
		// Legacy rule from the fixed-parameter sheet: two poles per three
		// coils. Only valid for a three-phase-balanced coil count.
		if c.Coils > 0 && c.Coils%3 == 0 {
			poles = (c.Coils / 3) * 2
		} else {
			add("poles unset and coils (%d) not divisible by 3", c.Coils)
		}
	}
	if poles != 0 && (poles < 2 || poles%2 != 0) {
		add("poles must be even and >= 2 (got %d)", poles)
	}
	if c.OuterRadius <= 0 {
		add("outer radius must be > 0 (got %g)", c.OuterRadius)
	}
	if c.InnerRadiusRatio <= 0 || c.InnerRadiusRatio >= 1 {
		add("inner radius ratio must be in (0,1) (got %g)", c.InnerRadiusRatio)
	}
	if c.FluxDensity <= 0 {
		add("flux density must be > 0 (got %g)", c.FluxDensity)
	}
	if c.WindingFactor <= 0 || c.WindingFactor > 1 {
		add("winding factor must be in (0,1] (got %g)", c.WindingFactor)
	}
	switch c.VoltageMode {
	case VoltageDCBus, VoltageACRMS:
	default:
		add("voltage mode must be dc_bus or ac_rms")
	}
	if c.BusVoltage <= 0 {
		add("bus voltage must be > 0 (got %g)", c.BusVoltage)
	}
	if c.ModulationIndex <= 0 || c.ModulationIndex > maxModulation {
		add("modulation index must be in (0,%g] (got %g)", maxModulation, c.ModulationIndex)
	}
	switch c.TurnsMode {
	case TurnsAuto:
	case TurnsFixed:
		if c.FixedTurns < 1 {
			add("fixed turns must be >= 1 (got %d)", c.FixedTurns)
		}
	default:
		add("turns mode must be auto or fixed")
	}
	if c.TargetTorque <= 0 {
		add("target torque must be > 0 (got %g)", c.TargetTorque)
	}
	switch c.SpeedMode {
	case SpeedRPM, SpeedHz:
		if c.Speed < 0 {
			add("target speed must be >= 0 (got %g)", c.Speed)
		}
	default:
		add("speed must be given as rpm or electrical hz")
	}
	if c.PhaseCurrentLimit <= 0 {
		add("phase current limit must be > 0 (got %g)", c.PhaseCurrentLimit)
	}
	if c.DCCurrentLimit <= 0 {
		add("dc current limit must be > 0 (got %g)", c.DCCurrentLimit)
	}
	if c.ESCFreqMax < 0 {
		add("esc frequency max must be >= 0 (got %g)", c.ESCFreqMax)
	}
	if c.DrivelineEfficiency <= 0 || c.DrivelineEfficiency > 1 {
		add("driveline efficiency must be in (0,1] (got %g)", c.DrivelineEfficiency)
	}
	if len(v) > 0 {
		return nil, &ConfigError{Violations: v}
	}

	// Zero speed is a valid number but an unusable operating point: the
	// turns solve divides by electrical frequency.
	if c.Speed == 0 {
		return nil, fmt.Errorf("target speed is zero: %w", ErrDegenerateOperatingPoint)
	}

	pairs := poles / 2
	var rpm, fe float64
	switch c.SpeedMode {
	case SpeedRPM:
		rpm = c.Speed
		fe = float64(pairs) * rpm / 60
	case SpeedHz:
		fe = c.Speed
		rpm = 120 * fe / float64(poles)
	}

	ri := c.OuterRadius * c.InnerRadiusRatio
	area := math.Pi * (c.OuterRadius*c.OuterRadius - ri*ri)
	fluxPerPole := c.FluxDensity * area / float64(poles)

	plateMult := 1.0
	if c.DualPlate {
		plateMult = 2.0
	}

	// Available fundamental phase RMS voltage, and the DC-link voltage the
	// DC current estimate refers to. In ACRMS mode the bus voltage is the
	// phase RMS directly and the DC link is back-derived.
	var phaseV, dcV float64
	switch c.VoltageMode {
	case VoltageDCBus:
		dcV = c.BusVoltage
		phaseV = c.ModulationIndex * dcV / math.Sqrt2
	case VoltageACRMS:
		phaseV = c.BusVoltage
		dcV = c.BusVoltage * math.Sqrt2 / c.ModulationIndex
	}

	// Back-EMF per turn at the operating speed: E/N = 4.44 f Φ k_w, with the
	// dual-plate flux doubling applied.
	emfPerTurn := emfFit * fe * fluxPerPole * c.WindingFactor * plateMult

	var turns int
	switch c.TurnsMode {
	case TurnsAuto:
		// Floor biases toward voltage headroom: utilization lands at or
		// just under 1.0 rather than just over.
		exact := phaseV / emfPerTurn
		turns = int(math.Floor(exact + turnsSnap))
		if turns < 1 {
			return nil, fmt.Errorf("auto turns resolve below one (exact %.3f): %w", exact, ErrDegenerateOperatingPoint)
		}
	case TurnsFixed:
		turns = c.FixedTurns
	}

	ktPerTurn := ktFactor * float64(pairs) * c.WindingFactor * fluxPerPole * plateMult
	ktTotal := ktPerTurn * float64(turns)
	if ktTotal <= 1e-12 {
		return nil, fmt.Errorf("torque constant vanished (Kt·N = %g): %w", ktTotal, ErrDegenerateOperatingPoint)
	}

	phaseI := c.TargetTorque / ktTotal
	util := emfPerTurn * float64(turns) / phaseV

	power := c.TargetTorque * rpm * 2 * math.Pi / 60
	dcI := power / (c.DrivelineEfficiency * dcV)

	magnets := poles * 2
	for magnets%4 != 0 {
		magnets++
	}

	res := &Result{
		Poles:     poles,
		PolePairs: pairs,
		Magnets:   magnets,

		InnerRadius:     ri,
		RotorArea:       area,
		FluxPerPole:     fluxPerPole,
		PeakFluxDensity: math.Pi / 2 * c.FluxDensity,

		KtPerTurn: ktPerTurn,
		Turns:     turns,

		PhaseCurrent:       phaseI,
		DCCurrent:          dcI,
		VoltageUtilization: util,

		ElectricalFreq:  fe,
		MechanicalRPM:   rpm,
		MechanicalPower: power,

		MaxTorqueAtCurrentLimit: c.PhaseCurrentLimit * ktTotal,
		MaxRPMAtVoltageLimit:    rpm / util,

		ShearStress:      c.TargetTorque / (area * 0.5 * (c.OuterRadius + ri)),
		ShearStressLimit: shearC * c.FluxDensity * c.FluxDensity / (2 * mu0),
	}
	res.Flags = PassFlags{
		Voltage:      util < 1.0,
		PhaseCurrent: phaseI <= c.PhaseCurrentLimit,
		DCCurrent:    dcI <= c.DCCurrentLimit,
		Frequency:    c.ESCFreqMax == 0 || fe <= c.ESCFreqMax,
	}
	return res, nil
}
