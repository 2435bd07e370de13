package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	specs "github.com/chrisconley/chargerate/specs"
)

func energyPoint(offset int64, wh float64) *ElapsedMeasure {
	p := NewElapsedMeasure(offset)
	p.SetEnergy(wh)
	return p
}

func powerPoint(offset int64, w float64) *ElapsedMeasure {
	p := NewElapsedMeasure(offset)
	p.SetPower(w)
	return p
}

func offsets(s *MeasureSeries) []int64 {
	out := make([]int64, 0, s.Len())
	for _, p := range s.Points() {
		out = append(out, p.Offset)
	}
	return out
}

func TestMeasureSeriesAdd(t *testing.T) {
	t.Run("iterates strictly increasing offsets regardless of insertion order", func(t *testing.T) {
		// Arrange
		s := NewMeasureSeries()

		// Act
		for _, offset := range []int64{300, 100, 200, 100, 0, 300} {
			s.Add(energyPoint(offset, float64(offset)))
		}

		// Assert
		assert.Equal(t, []int64{0, 100, 200, 300}, offsets(s))
	})

	t.Run("merges fields into the point at an existing offset", func(t *testing.T) {
		// Arrange
		s := NewMeasureSeries()
		s.Add(energyPoint(100, 500))

		// Act
		s.Add(powerPoint(100, 7400))

		// Assert
		require.Equal(t, 1, s.Len())
		point := s.Points()[0]
		assert.Equal(t, 500.0, point.Energy())
		power, ok := point.Power()
		assert.True(t, ok)
		assert.Equal(t, 7400.0, power)
	})
}

func TestMeasureSeriesJoinMeasure(t *testing.T) {
	t.Run("carries forward the last known value of fields not set at an offset", func(t *testing.T) {
		// Arrange
		energy := NewMeasureSeries()
		energy.Add(energyPoint(0, 0))
		energy.Add(energyPoint(200, 1000))
		power := NewMeasureSeries()
		power.Add(powerPoint(100, 3000))
		power.Add(powerPoint(300, 5000))

		// Act
		energy.JoinMeasure(power)

		// Assert
		require.Equal(t, []int64{0, 100, 200, 300}, offsets(energy))
		points := energy.Points()

		assert.Equal(t, 0.0, points[1].Energy())
		assert.Equal(t, 1000.0, points[3].Energy())

		_, ok := points[0].Power()
		assert.False(t, ok, "no power known before the first power sample")
		p, ok := points[2].Power()
		assert.True(t, ok)
		assert.Equal(t, 3000.0, p)
	})

	t.Run("zeroes current and power on points outside the charging phase", func(t *testing.T) {
		// Arrange
		timeline := NewMeasureSeries()
		charging := NewElapsedMeasure(0)
		charging.SetPhase(PhaseCharging, PhaseDurations{})
		parking := NewElapsedMeasure(200)
		parking.SetPhase(PhaseParking, PhaseDurations{Charging: 200})
		timeline.Add(charging)
		timeline.Add(parking)

		power := NewMeasureSeries()
		power.Add(powerPoint(100, 7000))
		power.Add(powerPoint(300, 6000))

		// Act
		timeline.JoinMeasure(power)

		// Assert
		points := timeline.Points()
		require.Len(t, points, 4)
		p, _ := points[1].Power()
		assert.Equal(t, 7000.0, p)
		p, _ = points[3].Power()
		assert.Equal(t, 0.0, p, "sample after parking started is forced to zero")
		c, ok := points[3].Current()
		assert.True(t, ok)
		assert.Equal(t, 0.0, c)
	})
}

func TestMeasureSeriesThreshold(t *testing.T) {
	s := NewMeasureSeries()
	s.Add(energyPoint(100, 0))
	s.Add(energyPoint(200, 4000))
	s.Add(energyPoint(300, 5000))
	s.Add(energyPoint(400, 6000))

	t.Run("min is true once the value reaches the limit", func(t *testing.T) {
		flags := s.Threshold(false, 5000, energyOf)

		assert.Equal(t, []Breakpoint{bp(0, false), bp(300, true)}, flags.Breakpoints())
	})

	t.Run("max is true while the value stays below the limit", func(t *testing.T) {
		flags := s.Threshold(true, 5000, energyOf)

		assert.Equal(t, []Breakpoint{bp(0, true), bp(300, false)}, flags.Breakpoints())
	})

	t.Run("elapsed time uses the point offset", func(t *testing.T) {
		flags := s.Threshold(false, 250, elapsedOf)

		assert.Equal(t, []Breakpoint{bp(0, false), bp(300, true)}, flags.Breakpoints())
	})

	t.Run("empty series is false everywhere", func(t *testing.T) {
		flags := NewMeasureSeries().Threshold(false, 1, energyOf)

		assert.True(t, flags.IsAlwaysFalse())
	})
}

func TestMeasureSeriesAssign(t *testing.T) {
	newAssignment := func(t *testing.T, tariffID string, kind string) *Assignment {
		t.Helper()
		tariff, err := NewTariff(specs.TariffSpec{
			ID:       tariffID,
			Elements: []specs.TariffElementSpec{{PriceComponents: []specs.PriceComponentSpec{{Type: kind, Price: 1}}}},
		})
		require.NoError(t, err)
		return &Assignment{Tariff: tariff, Component: tariff.Elements()[0].PriceComponents()[0]}
	}

	t.Run("sets the slot only where flags are true", func(t *testing.T) {
		// Arrange
		s := NewMeasureSeries()
		for _, offset := range []int64{0, 100, 200} {
			s.Add(energyPoint(offset, 0))
		}
		energy := newAssignment(t, "t1", specs.TariffDimensionEnergy)

		// Act
		s.Assign(energy, flagsOf(bp(0, false), bp(100, true), bp(200, false)))

		// Assert
		points := s.Points()
		assert.Nil(t, points[0].Component(DimensionEnergy))
		assert.Same(t, energy, points[1].Component(DimensionEnergy))
		assert.Nil(t, points[2].Component(DimensionEnergy))
	})

	t.Run("later assignments overwrite earlier ones of the same kind", func(t *testing.T) {
		// Arrange
		s := NewMeasureSeries()
		for _, offset := range []int64{0, 100} {
			s.Add(energyPoint(offset, 0))
		}
		first := newAssignment(t, "t1", specs.TariffDimensionEnergy)
		second := newAssignment(t, "t2", specs.TariffDimensionEnergy)
		flat := newAssignment(t, "t3", specs.TariffDimensionFlat)

		// Act
		s.Assign(first, AllInterval(100))
		s.Assign(flat, AllInterval(100))
		s.Assign(second, flagsOf(bp(0, false), bp(100, true)))

		// Assert
		points := s.Points()
		assert.Same(t, first, points[0].Component(DimensionEnergy))
		assert.Same(t, second, points[1].Component(DimensionEnergy))
		assert.Same(t, flat, points[1].Component(DimensionFlat), "other kinds are untouched")
	})
}
