package internal

import (
	"fmt"
	"strings"
)

// Breakpoint sets the value of an IntervalFlags from Offset onwards.
type Breakpoint struct {
	Offset int64
	Value  bool
}

// IntervalFlags is a boolean step function over the session's elapsed time (ms).
//
// The value at x is the value of the latest breakpoint with offset <= x, and false
// before the first breakpoint. Breakpoint offsets strictly increase and consecutive
// breakpoints never carry the same value.
type IntervalFlags struct {
	breakpoints []Breakpoint
	span        int64
}

// AllInterval returns flags that are true over [0, end).
func AllInterval(end int64) IntervalFlags {
	return IntervalFlags{
		breakpoints: []Breakpoint{{Offset: 0, Value: true}},
		span:        end,
	}
}

// Add appends a breakpoint. Offsets must not decrease; a breakpoint at the same
// offset as the last one replaces its value.
func (f *IntervalFlags) Add(offset int64, value bool) {
	n := len(f.breakpoints)
	if n > 0 {
		last := f.breakpoints[n-1]
		if offset < last.Offset {
			panic(fmt.Sprintf("interval flags: breakpoint at %d added after %d", offset, last.Offset))
		}
		if offset == last.Offset {
			f.breakpoints = f.breakpoints[:n-1]
			n--
		}
	}
	if n > 0 && f.breakpoints[n-1].Value == value {
		return
	}
	f.breakpoints = append(f.breakpoints, Breakpoint{Offset: offset, Value: value})
	if offset > f.span {
		f.span = offset
	}
}

// And returns the pointwise conjunction of f and other.
func (f IntervalFlags) And(other IntervalFlags) IntervalFlags {
	a, b := f.breakpoints, other.breakpoints
	result := IntervalFlags{
		breakpoints: make([]Breakpoint, 0, len(a)+len(b)),
		span:        max(f.span, other.span),
	}

	i, j := 0, 0
	va, vb := false, false
	for i < len(a) || j < len(b) {
		var offset int64
		switch {
		case j >= len(b):
			offset = a[i].Offset
		case i >= len(a):
			offset = b[j].Offset
		default:
			offset = min(a[i].Offset, b[j].Offset)
		}

		if i < len(a) && a[i].Offset == offset {
			va = a[i].Value
			i++
		}
		if j < len(b) && b[j].Offset == offset {
			vb = b[j].Value
			j++
		}
		result.Add(offset, va && vb)
	}
	return result
}

// ValueAt returns the value of the step function at offset.
func (f IntervalFlags) ValueAt(offset int64) bool {
	value := false
	for _, bp := range f.breakpoints {
		if bp.Offset > offset {
			break
		}
		value = bp.Value
	}
	return value
}

// IsAlwaysFalse reports whether the flags are false everywhere.
func (f IntervalFlags) IsAlwaysFalse() bool {
	for _, bp := range f.breakpoints {
		if bp.Value {
			return false
		}
	}
	return true
}

func (f IntervalFlags) Breakpoints() []Breakpoint {
	out := make([]Breakpoint, len(f.breakpoints))
	copy(out, f.breakpoints)
	return out
}

// Span is the largest offset these flags were built for.
func (f IntervalFlags) Span() int64 {
	return f.span
}

func (f IntervalFlags) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, bp := range f.breakpoints {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%d:%t", bp.Offset, bp.Value)
	}
	fmt.Fprintf(&sb, "]/%d", f.span)
	return sb.String()
}
