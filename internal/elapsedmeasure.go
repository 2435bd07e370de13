package internal

import (
	"fmt"
	"strings"
)

// ChargingPhase classifies elapsed session time.
type ChargingPhase int

const (
	PhaseReservation ChargingPhase = iota
	PhaseCharging
	PhaseParking
)

func (p ChargingPhase) String() string {
	switch p {
	case PhaseReservation:
		return "Reservation"
	case PhaseCharging:
		return "Charging"
	case PhaseParking:
		return "Parking"
	default:
		return "Unknown"
	}
}

// measureField marks which fields of an ElapsedMeasure were observed at its offset.
type measureField uint8

const (
	fieldPhase measureField = 1 << iota
	fieldEnergy
	fieldCurrent
	fieldPower
)

// PhaseDurations are the cumulative milliseconds spent in each phase.
type PhaseDurations struct {
	Reservation int64
	Charging    int64
	Parking     int64
}

// Assignment is a price component selected for a dimension, with the tariff it
// came from.
type Assignment struct {
	Tariff    *Tariff
	Component *PriceComponent
}

// ElapsedMeasure is the state of the session at an offset (ms) from its start.
type ElapsedMeasure struct {
	Offset    int64
	Phase     ChargingPhase
	Durations PhaseDurations

	energy  float64
	current float64
	power   float64
	fields  measureField

	components [dimensionKindCount]*Assignment
}

func NewElapsedMeasure(offset int64) *ElapsedMeasure {
	return &ElapsedMeasure{Offset: offset}
}

// SetPhase records the charging phase and the cumulative durations at this offset.
func (m *ElapsedMeasure) SetPhase(phase ChargingPhase, durations PhaseDurations) {
	m.Phase = phase
	m.Durations = durations
	m.fields |= fieldPhase
}

// SetEnergy records the energy (Wh) charged since the first energy sample.
func (m *ElapsedMeasure) SetEnergy(wh float64) {
	m.energy = wh
	m.fields |= fieldEnergy
}

// SetCurrent records the instantaneous current (A).
func (m *ElapsedMeasure) SetCurrent(a float64) {
	m.current = a
	m.fields |= fieldCurrent
}

// SetPower records the instantaneous power (W).
func (m *ElapsedMeasure) SetPower(w float64) {
	m.power = w
	m.fields |= fieldPower
}

// Energy returns the energy charged so far, 0 before the first energy sample.
func (m *ElapsedMeasure) Energy() float64 {
	return m.energy
}

func (m *ElapsedMeasure) HasEnergy() bool {
	return m.fields&fieldEnergy != 0
}

func (m *ElapsedMeasure) Current() (float64, bool) {
	return m.current, m.fields&fieldCurrent != 0
}

func (m *ElapsedMeasure) Power() (float64, bool) {
	return m.power, m.fields&fieldPower != 0
}

// Component returns the assignment in force for kind at this point, or nil.
func (m *ElapsedMeasure) Component(kind DimensionKind) *Assignment {
	return m.components[kind]
}

func (m *ElapsedMeasure) setComponent(kind DimensionKind, a *Assignment) {
	m.components[kind] = a
}

// merge copies every field observed in other onto m. Assignments are not merged.
func (m *ElapsedMeasure) merge(other *ElapsedMeasure) {
	if other.fields&fieldPhase != 0 {
		m.SetPhase(other.Phase, other.Durations)
	}
	if other.fields&fieldEnergy != 0 {
		m.SetEnergy(other.energy)
	}
	if other.fields&fieldCurrent != 0 {
		m.SetCurrent(other.current)
	}
	if other.fields&fieldPower != 0 {
		m.SetPower(other.power)
	}
}

// carryForward fills the fields m did not observe from last, the most recent point
// before m.
func (m *ElapsedMeasure) carryForward(last *ElapsedMeasure) {
	if last == nil {
		return
	}
	if m.fields&fieldPhase == 0 && last.fields&fieldPhase != 0 {
		m.SetPhase(last.Phase, last.Durations)
	}
	if m.fields&fieldEnergy == 0 && last.fields&fieldEnergy != 0 {
		m.SetEnergy(last.energy)
	}
	if m.fields&fieldCurrent == 0 && last.fields&fieldCurrent != 0 {
		m.SetCurrent(last.current)
	}
	if m.fields&fieldPower == 0 && last.fields&fieldPower != 0 {
		m.SetPower(last.power)
	}
}

// zeroWhenIdle forces current and power to zero once the point is known to be
// outside the charging phase.
func (m *ElapsedMeasure) zeroWhenIdle() {
	if m.fields&fieldPhase == 0 || m.Phase == PhaseCharging {
		return
	}
	m.SetCurrent(0)
	m.SetPower(0)
}

func (m *ElapsedMeasure) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "t=%d %s res=%d chg=%d park=%d",
		m.Offset, m.Phase, m.Durations.Reservation, m.Durations.Charging, m.Durations.Parking)
	if m.HasEnergy() {
		fmt.Fprintf(&sb, " e=%g", m.energy)
	}
	if v, ok := m.Current(); ok {
		fmt.Fprintf(&sb, " i=%g", v)
	}
	if v, ok := m.Power(); ok {
		fmt.Fprintf(&sb, " p=%g", v)
	}
	for kind, a := range m.components {
		if a != nil {
			fmt.Fprintf(&sb, " %s=%s", DimensionKind(kind), a.Tariff.ID())
		}
	}
	return sb.String()
}
