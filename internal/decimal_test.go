package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) Decimal {
	t.Helper()
	d, err := NewDecimal(s)
	require.NoError(t, err)
	return d
}

func TestDecimalFromFloat(t *testing.T) {
	t.Run("keeps the shortest decimal representation", func(t *testing.T) {
		d, err := NewDecimalFromFloat(0.3)

		require.NoError(t, err)
		assert.Equal(t, "0.3", d.String())
	})

	t.Run("price times amount has no binary rounding error", func(t *testing.T) {
		price, err := NewDecimalFromFloat(0.1)
		require.NoError(t, err)

		cost := price.Mul(NewDecimalFromInt64(3))

		assert.Equal(t, 0, cost.Cmp(mustDecimal(t, "0.3")))
		f, err := cost.Float64()
		require.NoError(t, err)
		assert.Equal(t, 0.3, f)
	})
}

func TestDecimalFloat64(t *testing.T) {
	t.Run("fails outside the float64 range", func(t *testing.T) {
		_, err := mustDecimal(t, "1e400").Float64()

		assert.Error(t, err)
	})

	t.Run("converts values in range", func(t *testing.T) {
		f, err := mustDecimal(t, "12.5").Float64()

		require.NoError(t, err)
		assert.Equal(t, 12.5, f)
	})
}

func TestDecimalCeilToStep(t *testing.T) {
	step := NewDecimalFromInt64(1000)

	t.Run("rounds a partial step up", func(t *testing.T) {
		rounded := NewDecimalFromInt64(2500).CeilToStep(step)

		assert.Equal(t, 0, rounded.Cmp(NewDecimalFromInt64(3000)))
	})

	t.Run("leaves an exact multiple unchanged", func(t *testing.T) {
		rounded := NewDecimalFromInt64(4000).CeilToStep(step)

		assert.Equal(t, 0, rounded.Cmp(NewDecimalFromInt64(4000)))
	})

	t.Run("result is never below the input", func(t *testing.T) {
		for _, s := range []string{"0.5", "1", "999.999", "1000.001", "123456.7"} {
			d := mustDecimal(t, s)
			rounded := d.CeilToStep(step)
			assert.GreaterOrEqual(t, rounded.Cmp(d), 0, "rounding %s", s)
			assert.True(t, rounded.Div(step).Cmp(rounded.Div(step).CeilToStep(NewDecimalFromInt64(1))) == 0,
				"rounded %s must be a multiple of the step", s)
		}
	})
}

func TestDecimalSub(t *testing.T) {
	t.Run("returns the difference", func(t *testing.T) {
		diff := mustDecimal(t, "10.5").Sub(mustDecimal(t, "0.25"))

		assert.Equal(t, "10.25", diff.String())
	})
}
