package specs

import "time"

// Charging states reported by a charging station in TransactionEvent.transactionInfo.
const (
	ChargingStateCharging      = "Charging"
	ChargingStateSuspendedEV   = "SuspendedEV"
	ChargingStateEVConnected   = "EVConnected"
	ChargingStateIdle          = "Idle"
	ChargingStateSuspendedEVSE = "SuspendedEVSE"
)

// Measurands consumed by rating. Sampled values with any other measurand are ignored.
const (
	MeasurandEnergyActiveImportRegister = "Energy.Active.Import.Register"
	MeasurandCurrentImport              = "Current.Import"
	MeasurandPowerActiveImport          = "Power.Active.Import"
)

// TransactionEventSpec represents one transaction event sent by a charging station
// during a session.
//
// Events are the telemetry input of rating. They must be supplied in ascending
// timestamp order; rating rejects sequences whose timestamps decrease.
type TransactionEventSpec struct {
	// Time at which the event occurred at the charging station.
	//
	// Elapsed offsets used throughout rating are measured from the session start
	// to this timestamp.
	Timestamp time.Time `json:"timestamp"`

	// Charging state of the EVSE from this event onwards.
	//
	// One of the ChargingState* constants. Nil means the state did not change
	// with this event.
	ChargingState *string `json:"chargingState,omitempty"`

	// Meter readings carried by the event.
	//
	// A single event may carry several meter value groups, each with its own
	// timestamp and one or more sampled values.
	MeterValues []MeterValueSpec `json:"meterValue,omitempty"`
}

// MeterValueSpec groups sampled values taken at the same instant.
type MeterValueSpec struct {
	// Instant at which the samples were taken.
	//
	// A zero timestamp means the samples were taken at the enclosing event's
	// timestamp.
	Timestamp time.Time `json:"timestamp"`

	// Individual readings, one per measurand (and phase, when reported).
	SampledValues []SampledValueSpec `json:"sampledValue"`
}

// SampledValueSpec is a single meter reading.
type SampledValueSpec struct {
	// Raw value as reported by the meter, before unit normalisation.
	Value float64 `json:"value"`

	// Physical quantity this reading represents.
	//
	// One of the Measurand* constants. An empty measurand follows the OCPP default,
	// Energy.Active.Import.Register.
	Measurand string `json:"measurand,omitempty"`

	// Unit and decimal multiplier of Value.
	//
	// Nil means the base unit (Wh for energy) with multiplier 0.
	UnitOfMeasure *UnitOfMeasureSpec `json:"unitOfMeasure,omitempty"`
}

// UnitOfMeasureSpec describes how a sampled value is scaled.
type UnitOfMeasureSpec struct {
	// Unit symbol, e.g. "Wh", "kWh", "A", "W", "kW".
	//
	// An empty unit means the base unit. Kilo-units are scaled by 1000 to their
	// base unit during rating.
	Unit string `json:"unit,omitempty"`

	// Power-of-ten multiplier applied to the value: value × 10^Multiplier.
	Multiplier *int `json:"multiplier,omitempty"`
}

// MeasurandOrDefault returns the sampled value's measurand, applying the OCPP default
// when the field is empty.
func (s SampledValueSpec) MeasurandOrDefault() string {
	if s.Measurand == "" {
		return MeasurandEnergyActiveImportRegister
	}
	return s.Measurand
}
