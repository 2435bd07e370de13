package internal

import (
	"time"

	"go.uber.org/zap"
)

// RestrictionEvaluator turns a tariff element's restrictions into the intervals of
// the session where the element applies.
type RestrictionEvaluator struct {
	sessionStart time.Time
	lastOffset   int64
	location     *time.Location
	timeline     ChargingTimeline
	series       *MeasureSeries
	logger       *zap.Logger
}

func NewRestrictionEvaluator(
	sessionStart time.Time,
	timeline ChargingTimeline,
	series *MeasureSeries,
	location *time.Location,
	logger *zap.Logger,
) *RestrictionEvaluator {
	return &RestrictionEvaluator{
		sessionStart: sessionStart,
		lastOffset:   timeline.LastEventOffset(),
		location:     location,
		timeline:     timeline,
		series:       series,
		logger:       logger,
	}
}

// Evaluate returns the validity flags of r. applicable is false when the element
// cannot apply to this session at all, which is distinct from flags that are false
// everywhere.
func (e *RestrictionEvaluator) Evaluate(r *Restrictions) (flags IntervalFlags, applicable bool) {
	flags = AllInterval(e.lastOffset)
	if r == nil {
		return flags, true
	}

	valid, applicable := e.reservation(r.reservation)
	if !applicable {
		return IntervalFlags{}, false
	}
	flags = flags.And(valid)

	if start, end, ok := r.TimeWindow(); ok {
		flags = e.narrow(flags, "time of day", e.timeOfDay(start, end))
	}

	if r.startDate != nil {
		flags = e.narrow(flags, "start date", e.dateBoundary(r.startDate.Midnight(e.location), true))
	}

	if r.endDate != nil {
		flags = e.narrow(flags, "end date", e.dateBoundary(r.endDate.Midnight(e.location), false))
	}

	if r.minKwh != nil {
		flags = e.narrow(flags, "kWh min", e.series.Threshold(false, *r.minKwh*1000, energyOf))
	}

	if r.maxKwh != nil {
		flags = e.narrow(flags, "kWh max", e.series.Threshold(true, *r.maxKwh*1000, energyOf))
	}

	if r.minCurrent != nil {
		flags = e.narrow(flags, "current min", e.series.Threshold(false, *r.minCurrent*1000, currentOf))
	}

	if r.maxCurrent != nil {
		flags = e.narrow(flags, "current max", e.series.Threshold(true, *r.maxCurrent*1000, currentOf))
	}

	if r.minPower != nil {
		flags = e.narrow(flags, "power min", e.series.Threshold(false, *r.minPower*1000, powerOf))
	}

	if r.maxPower != nil {
		flags = e.narrow(flags, "power max", e.series.Threshold(true, *r.maxPower*1000, powerOf))
	}

	if r.minDuration != nil {
		flags = e.narrow(flags, "duration min", e.series.Threshold(false, float64(*r.minDuration)*1000, elapsedOf))
	}

	if r.maxDuration != nil {
		flags = e.narrow(flags, "duration max", e.series.Threshold(true, float64(*r.maxDuration)*1000, elapsedOf))
	}

	if r.daysOfWeek != nil {
		flags = e.narrow(flags, "day of week", e.dayOfWeek(r.daysOfWeek))
	}

	return flags, true
}

func (e *RestrictionEvaluator) narrow(flags IntervalFlags, restriction string, valid IntervalFlags) IntervalFlags {
	e.logger.Debug("restriction evaluated",
		zap.String("restriction", restriction),
		zap.Stringer("valid", valid),
	)
	return flags.And(valid)
}

func (e *RestrictionEvaluator) reservation(mode ReservationMode) (IntervalFlags, bool) {
	end, left := e.timeline.ReservationEnd()
	var valid IntervalFlags

	switch mode {
	case ReservationOnly:
		if !left || end == 0 {
			return IntervalFlags{}, false
		}
		valid.Add(0, true)
		valid.Add(end, false)

	case ReservationExpired:
		if left {
			return IntervalFlags{}, false
		}
		valid.Add(0, true)

	default:
		if !left {
			return IntervalFlags{}, false
		}
		valid.Add(0, end == 0)
		valid.Add(end, true)
	}
	return valid, true
}

func (e *RestrictionEvaluator) sessionEnd() time.Time {
	return e.sessionStart.Add(time.Duration(e.lastOffset) * time.Millisecond)
}

func (e *RestrictionEvaluator) offset(t time.Time) int64 {
	return t.Sub(e.sessionStart).Milliseconds()
}

// timeOfDay builds one window per local day the session spans, starting the day
// before so that a window wrapping past midnight into the first day is covered.
//
// Windows wrap when end is earlier in the day than start. A window that resolves to
// nothing, such as one starting inside a DST gap that closes at its end, is dropped,
// and each window starts no earlier than the previous one ended.
func (e *RestrictionEvaluator) timeOfDay(start, end TimeOfDay) IntervalFlags {
	var valid IntervalFlags
	if start == end {
		valid.Add(0, true)
		return valid
	}

	first := e.sessionStart.In(e.location)
	last := e.sessionEnd()
	wraps := end.Before(start)

	type window struct{ from, to time.Time }
	var windows []window
	var previousEnd time.Time
	for day := 0; ; day++ {
		y, m, d := first.Date()
		d += day - 1
		from := start.On(y, m, d, e.location)
		if from.After(last) {
			break
		}
		endDay := d
		if wraps {
			endDay++
		}
		to := end.On(y, m, endDay, e.location)
		if from.Before(previousEnd) {
			from = previousEnd
		}
		if !to.After(from) {
			continue
		}
		windows = append(windows, window{from: from, to: to})
		previousEnd = to
	}

	inside := false
	for _, w := range windows {
		if !e.sessionStart.Before(w.from) && e.sessionStart.Before(w.to) {
			inside = true
		}
	}
	valid.Add(0, inside)

	for _, w := range windows {
		if w.from.After(e.sessionStart) {
			valid.Add(e.offset(w.from), true)
		}
		if w.to.After(e.sessionStart) && !w.to.After(last) {
			valid.Add(e.offset(w.to), false)
		}
	}
	return valid
}

// dayOfWeek switches validity at every local midnight inside the session.
func (e *RestrictionEvaluator) dayOfWeek(days map[time.Weekday]bool) IntervalFlags {
	var valid IntervalFlags
	local := e.sessionStart.In(e.location)
	last := e.sessionEnd()

	valid.Add(0, days[local.Weekday()])
	y, m, d := local.Date()
	for day := 1; ; day++ {
		midnight := time.Date(y, m, d+day, 0, 0, 0, 0, e.location)
		if midnight.After(last) {
			break
		}
		valid.Add(e.offset(midnight), days[midnight.Weekday()])
	}
	return valid
}

// dateBoundary is valid from boundary onwards when from is true, and before
// boundary otherwise.
func (e *RestrictionEvaluator) dateBoundary(boundary time.Time, from bool) IntervalFlags {
	var valid IntervalFlags
	if !e.sessionStart.Before(boundary) {
		valid.Add(0, from)
		return valid
	}
	valid.Add(0, !from)
	if !boundary.After(e.sessionEnd()) {
		valid.Add(e.offset(boundary), from)
	}
	return valid
}
