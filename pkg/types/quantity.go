package types

import "fmt"

// Watts is a float64 wrapper representing power in Watts.
type Watts float64

// Humanized returns a human-readable string with automatic unit (W, kW, MW).
func (w Watts) Humanized() string {
	v := float64(w)
	switch {
	case v >= 1e6 || v <= -1e6:
		return fmt.Sprintf("%.2f MW", v/1e6)
	case v >= 1e3 || v <= -1e3:
		return fmt.Sprintf("%.2f kW", v/1e3)
	default:
		return fmt.Sprintf("%.1f W", v)
	}
}

// KW returns the power in kilowatts.
func (w Watts) KW() float64 { return float64(w) / 1e3 }

// Hertz is a float64 wrapper representing frequency in Hz.
type Hertz float64

// Humanized returns a human-readable string with automatic unit (Hz, kHz).
func (h Hertz) Humanized() string {
	v := float64(h)
	if v >= 1e3 || v <= -1e3 {
		return fmt.Sprintf("%.2f kHz", v/1e3)
	}
	return fmt.Sprintf("%.1f Hz", v)
}

// Amps is a float64 wrapper representing current in Amperes.
type Amps float64

func (a Amps) Humanized() string { return fmt.Sprintf("%.1f A", float64(a)) }

// NewtonMeters is a float64 wrapper representing torque in N·m.
type NewtonMeters float64

func (n NewtonMeters) Humanized() string { return fmt.Sprintf("%.1f N·m", float64(n)) }

// RPM is a float64 wrapper representing mechanical shaft speed.
type RPM float64

func (r RPM) Humanized() string { return fmt.Sprintf("%.0f RPM", float64(r)) }
