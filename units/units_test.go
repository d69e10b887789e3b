package units_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/terrareach/units"
)

func TestNauticalMiles(t *testing.T) {
	assert.Equal(t, 60.0, units.NauticalMilesTraveled(120, 30))
	assert.Equal(t, 1852.0, units.NauticalMilesToMeters(1))
}

func TestDistance(t *testing.T) {
	cases := []struct {
		name  string
		speed float64
		unit  units.SpeedUnit
		d     time.Duration
		want  float64
	}{
		{"Knots", 120, units.Knots, 30 * time.Minute, 60 * 1852},
		{"KmH", 36, units.KilometersPerHour, time.Hour, 36000},
		{"MpS", 10, units.MetersPerSecond, 90 * time.Second, 900},
		{"Mph", 60, units.MilesPerHour, time.Hour, 60 * 1609.344},
		{"ZeroTime", 120, units.Knots, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := units.Distance(tc.speed, tc.unit, tc.d)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-6)
		})
	}
}

func TestDistance_Errors(t *testing.T) {
	_, err := units.Distance(-1, units.Knots, time.Minute)
	assert.ErrorIs(t, err, units.ErrBadSpeed)
	_, err = units.Distance(math.NaN(), units.Knots, time.Minute)
	assert.ErrorIs(t, err, units.ErrBadSpeed)
	_, err = units.Distance(1, units.Knots, -time.Minute)
	assert.ErrorIs(t, err, units.ErrBadDuration)
	_, err = units.Distance(1, units.SpeedUnit(42), time.Minute)
	assert.ErrorIs(t, err, units.ErrUnknownUnit)
}

func TestGridBudget(t *testing.T) {
	b, err := units.GridBudget(1852, 30)
	require.NoError(t, err)
	assert.InDelta(t, 61.7333, b, 1e-4)

	_, err = units.GridBudget(100, 0)
	assert.ErrorIs(t, err, units.ErrBadCellSize)
	_, err = units.GridBudget(100, math.Inf(1))
	assert.ErrorIs(t, err, units.ErrBadCellSize)
	_, err = units.GridBudget(-1, 30)
	assert.ErrorIs(t, err, units.ErrBadDistance)
}

func TestParseSpeedUnit(t *testing.T) {
	for in, want := range map[string]units.SpeedUnit{
		"":      units.Knots,
		"KNOTS": units.Knots,
		"kt":    units.Knots,
		"km/h":  units.KilometersPerHour,
		"m/s":   units.MetersPerSecond,
		" mph ": units.MilesPerHour,
	} {
		got, err := units.ParseSpeedUnit(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := units.ParseSpeedUnit("furlongs/fortnight")
	assert.ErrorIs(t, err, units.ErrUnknownUnit)

	for _, u := range []units.SpeedUnit{units.Knots, units.KilometersPerHour, units.MetersPerSecond, units.MilesPerHour} {
		back, err := units.ParseSpeedUnit(u.String())
		require.NoError(t, err)
		assert.Equal(t, u, back)
	}
}
