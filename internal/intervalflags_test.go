package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func flagsOf(bps ...Breakpoint) IntervalFlags {
	var f IntervalFlags
	for _, bp := range bps {
		f.Add(bp.Offset, bp.Value)
	}
	return f
}

func bp(offset int64, value bool) Breakpoint {
	return Breakpoint{Offset: offset, Value: value}
}

func TestIntervalFlagsAdd(t *testing.T) {
	t.Run("collapses consecutive equal values", func(t *testing.T) {
		f := flagsOf(bp(0, true), bp(10, true), bp(20, false), bp(30, false))

		assert.Equal(t, []Breakpoint{bp(0, true), bp(20, false)}, f.Breakpoints())
	})

	t.Run("same offset replaces the previous value", func(t *testing.T) {
		f := flagsOf(bp(0, false), bp(10, true), bp(10, false))

		assert.Equal(t, []Breakpoint{bp(0, false)}, f.Breakpoints())
	})

	t.Run("decreasing offset panics", func(t *testing.T) {
		f := flagsOf(bp(10, true))

		assert.Panics(t, func() { f.Add(5, false) })
	})
}

func TestIntervalFlagsValueAt(t *testing.T) {
	f := flagsOf(bp(5, true), bp(15, false))

	assert.False(t, f.ValueAt(0), "undefined before the first breakpoint reads as false")
	assert.True(t, f.ValueAt(5))
	assert.True(t, f.ValueAt(14))
	assert.False(t, f.ValueAt(15))
	assert.False(t, f.ValueAt(1000))
}

func TestIntervalFlagsAnd(t *testing.T) {
	a := flagsOf(bp(0, true), bp(10, false), bp(20, true))
	b := flagsOf(bp(0, false), bp(5, true), bp(25, false))
	c := flagsOf(bp(0, true), bp(12, false), bp(22, true), bp(40, false))

	t.Run("merges breakpoints of both operands", func(t *testing.T) {
		result := a.And(b)

		assert.Equal(t, []Breakpoint{bp(0, false), bp(5, true), bp(10, false), bp(20, true), bp(25, false)}, result.Breakpoints())
	})

	t.Run("is commutative", func(t *testing.T) {
		assert.Equal(t, a.And(b).Breakpoints(), b.And(a).Breakpoints())
		assert.Equal(t, a.And(c).Breakpoints(), c.And(a).Breakpoints())
	})

	t.Run("is associative", func(t *testing.T) {
		assert.Equal(t, a.And(b).And(c).Breakpoints(), a.And(b.And(c)).Breakpoints())
	})

	t.Run("all interval is the identity", func(t *testing.T) {
		all := AllInterval(40)

		assert.Equal(t, a.Breakpoints(), a.And(all).Breakpoints())
		assert.Equal(t, c.Breakpoints(), all.And(c).Breakpoints())
	})

	t.Run("all false absorbs", func(t *testing.T) {
		none := flagsOf(bp(0, false))

		result := a.And(none)

		assert.True(t, result.IsAlwaysFalse())
		for _, x := range []int64{0, 5, 10, 20, 39} {
			assert.False(t, result.ValueAt(x))
		}
	})

	t.Run("matches pointwise conjunction", func(t *testing.T) {
		result := a.And(b).And(c)

		for x := int64(0); x < 45; x++ {
			assert.Equal(t, a.ValueAt(x) && b.ValueAt(x) && c.ValueAt(x), result.ValueAt(x), "offset %d", x)
		}
	})

	t.Run("span is the larger of both", func(t *testing.T) {
		assert.Equal(t, int64(50), AllInterval(50).And(AllInterval(10)).Span())
	})
}

func TestIntervalFlagsString(t *testing.T) {
	f := AllInterval(100)
	f.Add(40, false)

	assert.Equal(t, "[0:true 40:false]/100", f.String())
}
