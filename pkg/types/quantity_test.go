package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatts_Humanized_Boundaries(t *testing.T) {
	cases := []struct {
		in   Watts
		want string
	}{
		{Watts(0), "0.0 W"},
		{Watts(999.94), "999.9 W"},
		{Watts(1000), "1.00 kW"},       // exactly 1 kW
		{Watts(15707.96), "15.71 kW"},  // cargo-hub shaft power
		{Watts(999_999), "1000.00 kW"}, // just below 1 MW
		{Watts(1e6), "1.00 MW"},        // exactly 1 MW
		{Watts(-2500), "-2.50 kW"},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			require.Equal(t, tc.want, tc.in.Humanized())
		})
	}
}

func TestWatts_KW(t *testing.T) {
	assert.InDelta(t, 15.708, Watts(15708).KW(), 1e-9)
}

func TestHertz_Humanized(t *testing.T) {
	assert.Equal(t, "50.0 Hz", Hertz(50).Humanized())
	assert.Equal(t, "600.0 Hz", Hertz(600).Humanized())
	assert.Equal(t, "1.20 kHz", Hertz(1200).Humanized())
}

func TestScalarUnits_Humanized(t *testing.T) {
	assert.Equal(t, "153.9 A", Amps(153.875).Humanized())
	assert.Equal(t, "200.0 N·m", NewtonMeters(200).Humanized())
	assert.Equal(t, "750 RPM", RPM(750.2).Humanized())
}
