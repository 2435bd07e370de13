package specs

import "time"

// SessionSpec is the subset of an OCPI 2.2 Session needed to rate it.
//
// Rating reads the identifying fields to fill in the CDR header and returns a copy
// with Kwh and TotalCost updated from the computed CDR totals.
type SessionSpec struct {
	// Unique identifier of the session within the charge point operator platform.
	ID string `json:"id"`

	// ISO-3166 alpha-2 country code of the operator.
	CountryCode string `json:"country_code"`

	// ID of the operator within its country (ISO-15118 party id).
	PartyID string `json:"party_id"`

	// Session start. Every elapsed offset in rating is measured from this instant.
	StartDateTime time.Time `json:"start_date_time"`

	// Session end, when known. Rating uses the last event timestamp instead.
	EndDateTime *time.Time `json:"end_date_time,omitempty"`

	// Energy charged so far, in kWh.
	Kwh float64 `json:"kwh"`

	// Token used to start the session.
	CdrToken CdrTokenSpec `json:"cdr_token"`

	// How the session was authorized, e.g. "AUTH_REQUEST", "COMMAND", "WHITELIST".
	AuthMethod string `json:"auth_method"`

	// Reference to the authorization given by the eMSP, if any.
	AuthorizationReference string `json:"authorization_reference,omitempty"`

	// Identifier of the kWh meter.
	MeterID string `json:"meter_id,omitempty"`

	// ISO 4217 code of the currency used for this session.
	Currency string `json:"currency"`

	// Total cost of the session, including VAT, in Currency.
	TotalCost float64 `json:"total_cost"`
}

// CdrTokenSpec identifies the token that was used to authorize a session.
type CdrTokenSpec struct {
	UID        string `json:"uid"`
	Type       string `json:"type"`
	ContractID string `json:"contract_id"`
}
