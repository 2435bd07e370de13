package internal

import "time"

// ChargingTimeline is the phase classification of a session, one point per event.
type ChargingTimeline struct {
	series          *MeasureSeries
	reservationEnd  *int64
	lastEventOffset int64
}

// BuildChargingTimeline walks events in order. The time since the previous event is
// credited to the phase in force before the current event's transition is applied.
// The session starts in the reservation phase.
func BuildChargingTimeline(events []TransactionEvent, sessionStart time.Time) ChargingTimeline {
	timeline := ChargingTimeline{series: NewMeasureSeries()}

	phase := PhaseReservation
	var durations PhaseDurations
	var previous int64
	for _, event := range events {
		t := offsetOf(event.Timestamp(), sessionStart)

		switch phase {
		case PhaseReservation:
			durations.Reservation += t - previous
		case PhaseCharging:
			durations.Charging += t - previous
		case PhaseParking:
			durations.Parking += t - previous
		}
		previous = t
		timeline.lastEventOffset = t

		if transition := event.Transition(); transition != nil {
			phase = *transition
		}

		point := NewElapsedMeasure(t)
		point.SetPhase(phase, durations)
		if phase != PhaseCharging {
			point.SetCurrent(0)
			point.SetPower(0)
		}
		timeline.series.Add(point)

		if phase != PhaseReservation && timeline.reservationEnd == nil {
			end := t
			timeline.reservationEnd = &end
		}
	}
	return timeline
}

// Series returns the per-event measures.
func (c ChargingTimeline) Series() *MeasureSeries {
	return c.series
}

// LastEventOffset is the offset of the last event, 0 when there are none. It is
// unaffected by samples joined into the series later.
func (c ChargingTimeline) LastEventOffset() int64 {
	return c.lastEventOffset
}

// ReservationEnd is the offset of the first event that left the reservation phase.
// ok is false for sessions that never left it.
func (c ChargingTimeline) ReservationEnd() (offset int64, ok bool) {
	if c.reservationEnd == nil {
		return 0, false
	}
	return *c.reservationEnd, true
}

func offsetOf(t, sessionStart time.Time) int64 {
	offset := t.Sub(sessionStart).Milliseconds()
	if offset < 0 {
		return 0
	}
	return offset
}
