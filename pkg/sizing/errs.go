package sizing

import (
	"errors"
	"strings"
)

// ErrDegenerateOperatingPoint indicates an operating point at which the
// sizing algebra collapses: zero target speed, auto-resolved turns below one,
// or a torque constant that cannot produce torque at any current.
var ErrDegenerateOperatingPoint = errors.New("sizing: degenerate operating point")

// ConfigError aggregates every violated input constraint so a caller can
// surface all offending fields at once instead of fixing them one by one.
type ConfigError struct {
	Violations []string
}

func (e *ConfigError) Error() string {
	return "sizing: invalid configuration: " + strings.Join(e.Violations, "; ")
}
