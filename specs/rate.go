package specs

// Rate computes the Charge Detail Record of one completed session.
//
// Process:
//  1. Classify elapsed time into reservation, charging and parking from the
//     charging-state transitions of events
//  2. Extract energy, current and power samples and merge them with the
//     classification into one time-ordered measure series
//  3. Evaluate every tariff element's restrictions into validity intervals and
//     assign its price components to the measure points they cover
//  4. Walk the series pairwise, pricing each period per dimension with step
//     rounding, unit conversion and FLAT deduplication
//
// Returns the CDR and a copy of the session with Kwh and TotalCost updated.
// Returns error if the inputs cannot be rated (unparseable restrictions, unknown
// enumerations, events out of order). An empty events slice is not an error.
//
// The contract uses only the wire types of this package.
// internal.Rate implements it.
type Rate func(
	tariffs []TariffSpec,
	events []TransactionEventSpec,
	session SessionSpec,
) (CdrSpec, SessionSpec, error)
