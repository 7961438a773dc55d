package sizing

// VoltageMode selects how Config.BusVoltage is interpreted.
type VoltageMode int

const (
	// VoltageDCBus treats BusVoltage as the DC-link voltage; the usable AC
	// fundamental is derived through the modulation index.
	VoltageDCBus VoltageMode = iota + 1
	// VoltageACRMS treats BusVoltage as the available phase RMS voltage
	// directly, bypassing the modulation conversion.
	VoltageACRMS
)

func (m VoltageMode) String() string {
	switch m {
	case VoltageDCBus:
		return "dc_bus"
	case VoltageACRMS:
		return "ac_rms"
	}
	return "unknown"
}

// TurnsMode selects how winding turns are resolved.
type TurnsMode int

const (
	// TurnsAuto solves turns from the voltage constraint so back-EMF at the
	// target speed just fills the available bus voltage.
	TurnsAuto TurnsMode = iota + 1
	// TurnsFixed uses Config.FixedTurns as-is.
	TurnsFixed
)

func (m TurnsMode) String() string {
	switch m {
	case TurnsAuto:
		return "auto"
	case TurnsFixed:
		return "fixed"
	}
	return "unknown"
}

// SpeedMode selects the unit of Config.Speed.
type SpeedMode int

const (
	// SpeedRPM interprets Speed as mechanical shaft speed in RPM.
	SpeedRPM SpeedMode = iota + 1
	// SpeedHz interprets Speed as electrical frequency in Hz.
	SpeedHz
)

func (m SpeedMode) String() string {
	switch m {
	case SpeedRPM:
		return "rpm"
	case SpeedHz:
		return "hz"
	}
	return "unknown"
}

// Config is one immutable sizing problem.
// Units:
//   - OuterRadius: meters; InnerRadiusRatio: fraction of OuterRadius
//   - FluxDensity: Tesla (average air-gap value)
//   - BusVoltage: Volts (DC link or phase RMS per VoltageMode)
//   - TargetTorque: N·m; Speed: RPM or Hz per SpeedMode
//   - PhaseCurrentLimit/DCCurrentLimit: Amps; ESCFreqMax: Hz (0 = unconstrained)
type Config struct {
	Coils int
	Poles int // 0 = derive from Coils (two poles per three coils)

	OuterRadius      float64
	InnerRadiusRatio float64 // 0 = default 0.58
	FluxDensity      float64 // 0 = default 0.6
	WindingFactor    float64 // 0 = default 0.92

	VoltageMode     VoltageMode
	BusVoltage      float64
	ModulationIndex float64 // 0 = default 0.95; accepted up to 1.15 (over-modulation)

	TurnsMode  TurnsMode
	FixedTurns int // used only when TurnsMode == TurnsFixed

	DualPlate bool // two rotor plates on a shared winding: doubles Kt and back-EMF per turn

	TargetTorque float64
	SpeedMode    SpeedMode
	Speed        float64

	PhaseCurrentLimit   float64
	DCCurrentLimit      float64
	ESCFreqMax          float64
	DrivelineEfficiency float64 // 0 = default 0.9; used for the DC-link current estimate
}

// withDefaults returns a copy with unset physical coefficients filled in.
// Zero means "unset" for every defaulted field; negative values are left for
// validation to reject.
func (c Config) withDefaults() Config {
	if c.InnerRadiusRatio == 0 {
		c.InnerRadiusRatio = 0.58
	}
	if c.FluxDensity == 0 {
		c.FluxDensity = 0.6
	}
	if c.WindingFactor == 0 {
		c.WindingFactor = 0.92
	}
	if c.ModulationIndex == 0 {
		c.ModulationIndex = 0.95
	}
	if c.DrivelineEfficiency == 0 {
		c.DrivelineEfficiency = 0.9
	}
	return c
}

// PassFlags reports each controller-limit check. Frequency is always true
// when no ESC frequency ceiling was configured.
type PassFlags struct {
	Voltage      bool
	PhaseCurrent bool
	DCCurrent    bool
	Frequency    bool
}

// OK reports whether every limit check passed.
func (f PassFlags) OK() bool {
	return f.Voltage && f.PhaseCurrent && f.DCCurrent && f.Frequency
}

// Result is the fully populated output of one sizing run.
type Result struct {
	Poles     int
	PolePairs int
	Magnets   int

	InnerRadius     float64 // m
	RotorArea       float64 // m^2 (annulus between inner and outer radius)
	FluxPerPole     float64 // Wb
	PeakFluxDensity float64 // T (peak fundamental of the average gap density)

	KtPerTurn float64 // N·m per Amp per turn, dual-plate factor included
	Turns     int

	PhaseCurrent       float64 // A, to reach TargetTorque
	DCCurrent          float64 // A, estimated DC-link draw
	VoltageUtilization float64 // back-EMF / available voltage; pass iff < 1

	ElectricalFreq  float64 // Hz
	MechanicalRPM   float64
	MechanicalPower float64 // W

	MaxTorqueAtCurrentLimit float64 // N·m at PhaseCurrentLimit with resolved turns
	MaxRPMAtVoltageLimit    float64 // RPM where utilization reaches 1.0 with resolved turns

	ShearStress      float64 // N/m^2, implied air-gap shear at TargetTorque
	ShearStressLimit float64 // N/m^2, heuristic ceiling from FluxDensity

	Flags PassFlags
}
