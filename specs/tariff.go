package specs

// Price component types (OCPI TariffDimensionType).
const (
	TariffDimensionEnergy      = "ENERGY"
	TariffDimensionFlat        = "FLAT"
	TariffDimensionParkingTime = "PARKING_TIME"
	TariffDimensionTime        = "TIME"
)

// Reservation restriction values (OCPI ReservationRestrictionType).
const (
	ReservationRestrictionReservation        = "RESERVATION"
	ReservationRestrictionReservationExpires = "RESERVATION_EXPIRES"
)

// TariffSpec is an OCPI 2.2 Tariff: an ordered list of conditional pricing elements.
//
// When several tariffs are rated against the same session, they are evaluated in
// slice order and later elements take precedence over earlier ones for the same
// dimension.
type TariffSpec struct {
	// Identifier of the tariff, copied into every charging period it prices.
	ID string `json:"id"`

	// ISO 4217 code of the currency of the prices.
	Currency string `json:"currency"`

	// Pricing elements, evaluated in order.
	Elements []TariffElementSpec `json:"elements"`
}

// TariffElementSpec pairs a set of price components with the restrictions under which
// they apply.
type TariffElementSpec struct {
	// Priced dimensions of this element. At least one is required.
	PriceComponents []PriceComponentSpec `json:"price_components"`

	// Conditions under which the element applies. Nil means always.
	Restrictions *RestrictionsSpec `json:"restrictions,omitempty"`
}

// PriceComponentSpec is the price of one dimension.
type PriceComponentSpec struct {
	// Dimension priced by this component.
	//
	// One of the TariffDimension* constants.
	Type string `json:"type"`

	// Price per unit, excluding VAT: per kWh for ENERGY, per hour for TIME and
	// PARKING_TIME, per session for FLAT.
	Price float64 `json:"price"`

	// Minimum billable increment. Partial increments are rounded up.
	//
	// Expressed in Wh for ENERGY and in seconds for TIME and PARKING_TIME.
	// Ignored for FLAT. Nil means no rounding.
	StepSize *int `json:"step_size,omitempty"`

	// VAT percentage applied on top of the price, e.g. 21 for 21%.
	Vat *float64 `json:"vat,omitempty"`
}

// RestrictionsSpec lists the conditions under which a tariff element applies.
//
// Every field is optional; a nil field does not narrow validity. All conditions
// present must hold at the same time.
type RestrictionsSpec struct {
	// Local start time of day, "HH:MM" or "HH:MM:SS".
	StartTime *string `json:"start_time,omitempty"`

	// Local end time of day, exclusive. When EndTime is before StartTime the window
	// wraps past midnight.
	EndTime *string `json:"end_time,omitempty"`

	// First local date the element is valid on, "YYYY-MM-DD", inclusive.
	StartDate *string `json:"start_date,omitempty"`

	// Local date the element stops being valid, "YYYY-MM-DD", exclusive.
	EndDate *string `json:"end_date,omitempty"`

	// Minimum energy charged in the session, in kWh, before the element applies.
	MinKwh *float64 `json:"min_kwh,omitempty"`

	// Energy, in kWh, after which the element stops applying.
	MaxKwh *float64 `json:"max_kwh,omitempty"`

	// Minimum current, in A, for the element to apply.
	MinCurrent *float64 `json:"min_current,omitempty"`

	// Maximum current, in A, for the element to apply.
	MaxCurrent *float64 `json:"max_current,omitempty"`

	// Minimum power, in kW, for the element to apply.
	MinPower *float64 `json:"min_power,omitempty"`

	// Maximum power, in kW, for the element to apply.
	MaxPower *float64 `json:"max_power,omitempty"`

	// Minimum session duration, in seconds, before the element applies.
	MinDuration *int `json:"min_duration,omitempty"`

	// Session duration, in seconds, after which the element stops applying.
	MaxDuration *int `json:"max_duration,omitempty"`

	// Days of the week the element applies on: MONDAY … SUNDAY.
	DayOfWeek []string `json:"day_of_week,omitempty"`

	// Reservation handling. Nil means the element only applies after the
	// reservation (if any) ended.
	//
	// One of the ReservationRestriction* constants.
	Reservation *string `json:"reservation,omitempty"`
}
