package internal

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	specs "github.com/chrisconley/chargerate/specs"
)

var (
	ErrEventsOutOfOrder        = errors.New("transaction events are not in ascending timestamp order")
	ErrEventBeforeSessionStart = errors.New("transaction event precedes the session start")
)

// NewChargingTransition maps an OCPP charging state to the phase it starts.
func NewChargingTransition(state string) (ChargingPhase, error) {
	switch state {
	case specs.ChargingStateCharging, specs.ChargingStateSuspendedEV:
		return PhaseCharging, nil
	case specs.ChargingStateEVConnected, specs.ChargingStateIdle, specs.ChargingStateSuspendedEVSE:
		return PhaseParking, nil
	default:
		return 0, fmt.Errorf("invalid charging state: %q", state)
	}
}

// Sample is a normalised meter reading.
type Sample struct {
	Timestamp time.Time
	Measurand string
	Value     float64
}

type TransactionEvent struct {
	timestamp  time.Time
	transition *ChargingPhase
	samples    []Sample
}

func NewTransactionEvent(spec specs.TransactionEventSpec) (TransactionEvent, error) {
	if spec.Timestamp.IsZero() {
		return TransactionEvent{}, fmt.Errorf("timestamp is required")
	}

	var transition *ChargingPhase
	if spec.ChargingState != nil {
		phase, err := NewChargingTransition(*spec.ChargingState)
		if err != nil {
			return TransactionEvent{}, err
		}
		transition = &phase
	}

	var samples []Sample
	for _, mv := range spec.MeterValues {
		ts := mv.Timestamp
		if ts.IsZero() {
			ts = spec.Timestamp
		}
		for _, sv := range mv.SampledValues {
			samples = append(samples, Sample{
				Timestamp: ts,
				Measurand: sv.MeasurandOrDefault(),
				Value:     NormalizeSampledValue(sv),
			})
		}
	}

	return TransactionEvent{
		timestamp:  spec.Timestamp,
		transition: transition,
		samples:    samples,
	}, nil
}

func (e TransactionEvent) Timestamp() time.Time {
	return e.timestamp
}

// Transition returns the phase this event switches to, or nil.
func (e TransactionEvent) Transition() *ChargingPhase {
	return e.transition
}

// Samples returns the event's readings in the order they were reported.
func (e TransactionEvent) Samples() []Sample {
	return e.samples
}

// NormalizeSampledValue returns the reading in its base unit: value × 10^multiplier,
// then ×1000 for kilo-units such as kWh or kW. A missing unit is the base unit.
func NormalizeSampledValue(sv specs.SampledValueSpec) float64 {
	v := sv.Value
	if sv.UnitOfMeasure == nil {
		return v
	}
	if sv.UnitOfMeasure.Multiplier != nil {
		v *= math.Pow10(*sv.UnitOfMeasure.Multiplier)
	}
	if isKiloUnit(sv.UnitOfMeasure.Unit) {
		v *= 1000
	}
	return v
}

func isKiloUnit(unit string) bool {
	return len(unit) > 1 && strings.HasPrefix(unit, "k")
}

// NewTransactionEvents converts specs in order, enforcing that timestamps never
// decrease and never precede sessionStart.
func NewTransactionEvents(specList []specs.TransactionEventSpec, sessionStart time.Time) ([]TransactionEvent, error) {
	events := make([]TransactionEvent, 0, len(specList))
	for i, spec := range specList {
		event, err := NewTransactionEvent(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid event at index %d: %w", i, err)
		}
		if event.timestamp.Before(sessionStart) {
			return nil, fmt.Errorf("event at index %d (%s): %w", i, event.timestamp.Format(time.RFC3339), ErrEventBeforeSessionStart)
		}
		if i > 0 && event.timestamp.Before(events[i-1].timestamp) {
			return nil, fmt.Errorf("event at index %d (%s): %w", i, event.timestamp.Format(time.RFC3339), ErrEventsOutOfOrder)
		}
		events = append(events, event)
	}
	return events, nil
}
