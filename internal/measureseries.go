package internal

import (
	"sort"
	"strings"
)

// MeasureSeries is an ordered set of ElapsedMeasures with unique offsets.
type MeasureSeries struct {
	points []*ElapsedMeasure
}

func NewMeasureSeries() *MeasureSeries {
	return &MeasureSeries{}
}

// Add inserts point by offset. A point already present at the same offset absorbs
// the fields observed in point instead of being duplicated.
func (s *MeasureSeries) Add(point *ElapsedMeasure) {
	i := sort.Search(len(s.points), func(i int) bool {
		return s.points[i].Offset >= point.Offset
	})
	if i < len(s.points) && s.points[i].Offset == point.Offset {
		s.points[i].merge(point)
		return
	}
	s.points = append(s.points, nil)
	copy(s.points[i+1:], s.points[i:])
	s.points[i] = point
}

// JoinMeasure merges other into s. At every offset present in either series, the
// fields not observed at that offset take the most recent known value.
func (s *MeasureSeries) JoinMeasure(other *MeasureSeries) {
	merged := make([]*ElapsedMeasure, 0, len(s.points)+len(other.points))
	i, j := 0, 0
	for i < len(s.points) || j < len(other.points) {
		switch {
		case j >= len(other.points) || (i < len(s.points) && s.points[i].Offset < other.points[j].Offset):
			merged = append(merged, s.points[i])
			i++
		case i >= len(s.points) || other.points[j].Offset < s.points[i].Offset:
			point := NewElapsedMeasure(other.points[j].Offset)
			point.merge(other.points[j])
			merged = append(merged, point)
			j++
		default:
			s.points[i].merge(other.points[j])
			merged = append(merged, s.points[i])
			i++
			j++
		}
	}

	var last *ElapsedMeasure
	for _, point := range merged {
		point.carryForward(last)
		point.zeroWhenIdle()
		last = point
	}
	s.points = merged
}

// Threshold returns flags that are true where extract satisfies the bound: at or
// above limit for a minimum, strictly below limit for a maximum. The first point's
// value holds from offset 0.
func (s *MeasureSeries) Threshold(isMax bool, limit float64, extract func(*ElapsedMeasure) float64) IntervalFlags {
	var flags IntervalFlags
	if len(s.points) == 0 {
		flags.Add(0, false)
		return flags
	}
	for i, point := range s.points {
		v := extract(point)
		ok := v >= limit
		if isMax {
			ok = v < limit
		}
		offset := point.Offset
		if i == 0 {
			offset = 0
		}
		flags.Add(offset, ok)
	}
	return flags
}

// Assign sets a as the component of its dimension kind on every point where flags
// is true, replacing any earlier assignment of that kind.
func (s *MeasureSeries) Assign(a *Assignment, flags IntervalFlags) {
	kind := a.Component.Kind()
	bps := flags.breakpoints
	k := 0
	value := false
	for _, point := range s.points {
		for k < len(bps) && bps[k].Offset <= point.Offset {
			value = bps[k].Value
			k++
		}
		if value {
			point.setComponent(kind, a)
		}
	}
}

// Points returns the measures in ascending offset order.
func (s *MeasureSeries) Points() []*ElapsedMeasure {
	return s.points
}

func (s *MeasureSeries) Len() int {
	return len(s.points)
}

// LastOffset is the offset of the last point, 0 for an empty series.
func (s *MeasureSeries) LastOffset() int64 {
	if len(s.points) == 0 {
		return 0
	}
	return s.points[len(s.points)-1].Offset
}

func (s *MeasureSeries) String() string {
	lines := make([]string, len(s.points))
	for i, point := range s.points {
		lines[i] = point.String()
	}
	return strings.Join(lines, "\n")
}

func energyOf(m *ElapsedMeasure) float64 {
	return m.Energy()
}

func currentOf(m *ElapsedMeasure) float64 {
	v, _ := m.Current()
	return v
}

func powerOf(m *ElapsedMeasure) float64 {
	v, _ := m.Power()
	return v
}

func elapsedOf(m *ElapsedMeasure) float64 {
	return float64(m.Offset)
}
