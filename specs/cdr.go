package specs

import "time"

// CDR dimension types (OCPI CdrDimensionType) produced by rating.
const (
	CdrDimensionEnergy      = "ENERGY"
	CdrDimensionCurrent     = "CURRENT"
	CdrDimensionPower       = "POWER"
	CdrDimensionTime        = "TIME"
	CdrDimensionParkingTime = "PARKING_TIME"
)

// CdrSpec is an OCPI 2.2 Charge Detail Record: the billable summary of one session.
//
// A CdrSpec returned by rating is freshly allocated and owned by the caller.
type CdrSpec struct {
	// Deterministic identifier derived from the session id and its time span.
	ID string `json:"id"`

	CountryCode string `json:"country_code"`
	PartyID     string `json:"party_id"`

	// Start of the session.
	StartDateTime time.Time `json:"start_date_time"`

	// Timestamp of the last transaction event, or the session start when the
	// session produced no events.
	EndDateTime time.Time `json:"end_date_time"`

	SessionID              string       `json:"session_id"`
	CdrToken               CdrTokenSpec `json:"cdr_token"`
	AuthMethod             string       `json:"auth_method"`
	AuthorizationReference string       `json:"authorization_reference,omitempty"`
	MeterID                string       `json:"meter_id,omitempty"`
	Currency               string       `json:"currency"`

	// Total cost including VAT.
	TotalCost float64 `json:"total_cost"`

	// Total cost excluding VAT.
	TotalCostExclVat float64 `json:"total_cost_excl_vat"`

	// Sum of FLAT fees, excluding VAT.
	TotalFixedCost float64 `json:"total_fixed_cost"`

	// Billed energy in kWh, after step rounding.
	TotalEnergy float64 `json:"total_energy"`

	// Cost of TotalEnergy, excluding VAT.
	TotalEnergyCost float64 `json:"total_energy_cost"`

	// Billed charging (or reservation) time in hours, after step rounding.
	TotalTime float64 `json:"total_time"`

	// Cost of TotalTime, excluding VAT.
	TotalTimeCost float64 `json:"total_time_cost"`

	// Billed parking time in hours, after step rounding.
	TotalParkingTime float64 `json:"total_parking_time"`

	// Cost of TotalParkingTime, excluding VAT.
	TotalParkingCost float64 `json:"total_parking_cost"`

	// One period per consecutive pair of measure points, in time order.
	ChargingPeriods []ChargingPeriodSpec `json:"charging_periods"`

	// When the record was produced.
	LastUpdated time.Time `json:"last_updated"`
}

// ChargingPeriodSpec describes the volumes billed between two measure points.
type ChargingPeriodSpec struct {
	// Start of the period; it lasts until the next period's start or the CDR end.
	StartDateTime time.Time `json:"start_date_time"`

	// Tariff that priced the period. Empty when no component applied.
	TariffID string `json:"tariff_id,omitempty"`

	// Billed volumes.
	Dimensions []CdrDimensionSpec `json:"dimensions"`
}

// CdrDimensionSpec is one billed volume within a charging period.
type CdrDimensionSpec struct {
	// One of the CdrDimension* constants.
	Type string `json:"type"`

	// kWh for ENERGY, A for CURRENT, W for POWER, hours for TIME and PARKING_TIME.
	Volume float64 `json:"volume"`
}
