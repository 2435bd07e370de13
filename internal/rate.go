package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chrisconley/chargerate/internal/infra"
	specs "github.com/chrisconley/chargerate/specs"
)

var _ specs.Rate = Rate

// Rater rates sessions. It holds configuration only, so one Rater can rate
// independent sessions concurrently as long as its bus subscribers can.
type Rater struct {
	logger   *zap.Logger
	location *time.Location
	bus      *infra.Bus
	now      func() time.Time
}

type Option func(*Rater)

// WithLogger sets the logger. Restriction flags and booked costs are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Rater) { r.logger = logger }
}

// WithLocation sets the zone that time-of-day, day-of-week and date restrictions
// are evaluated in.
func WithLocation(location *time.Location) Option {
	return func(r *Rater) { r.location = location }
}

func WithBus(bus *infra.Bus) Option {
	return func(r *Rater) { r.bus = bus }
}

// WithClock sets the source of the CDR's last_updated time.
func WithClock(now func() time.Time) Option {
	return func(r *Rater) { r.now = now }
}

func NewRater(opts ...Option) *Rater {
	r := &Rater{
		logger:   zap.NewNop(),
		location: time.Local,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.location == nil {
		r.location = time.Local
	}
	return r
}

// Rate implements specs.Rate with the default Rater.
func Rate(tariffSpecs []specs.TariffSpec, eventSpecs []specs.TransactionEventSpec, session specs.SessionSpec) (specs.CdrSpec, specs.SessionSpec, error) {
	return NewRater().Rate(tariffSpecs, eventSpecs, session)
}

// Rate converts specs to domain objects, rates the session and converts the result
// back to specs.
func (r *Rater) Rate(tariffSpecs []specs.TariffSpec, eventSpecs []specs.TransactionEventSpec, session specs.SessionSpec) (specs.CdrSpec, specs.SessionSpec, error) {
	if session.StartDateTime.IsZero() {
		return specs.CdrSpec{}, session, fmt.Errorf("invalid session: start date time is required")
	}

	tariffs := make([]*Tariff, 0, len(tariffSpecs))
	for i, spec := range tariffSpecs {
		tariff, err := NewTariff(spec)
		if err != nil {
			return specs.CdrSpec{}, session, fmt.Errorf("invalid tariff at index %d: %w", i, err)
		}
		tariffs = append(tariffs, tariff)
	}

	events, err := NewTransactionEvents(eventSpecs, session.StartDateTime)
	if err != nil {
		return specs.CdrSpec{}, session, fmt.Errorf("invalid events: %w", err)
	}

	accumulator, err := r.rate(session.ID, session.StartDateTime, tariffs, events)
	if err != nil {
		return specs.CdrSpec{}, session, err
	}

	end := session.StartDateTime
	if len(events) > 0 {
		end = events[len(events)-1].Timestamp()
	}

	cdr := specs.CdrSpec{
		ID:                     computeCdrID(session.ID, session.StartDateTime, end),
		CountryCode:            session.CountryCode,
		PartyID:                session.PartyID,
		StartDateTime:          session.StartDateTime,
		EndDateTime:            end,
		SessionID:              session.ID,
		CdrToken:               session.CdrToken,
		AuthMethod:             session.AuthMethod,
		AuthorizationReference: session.AuthorizationReference,
		MeterID:                session.MeterID,
		Currency:               session.Currency,
		LastUpdated:            r.now().UTC(),
	}
	if err := accumulator.ApplyTo(&cdr); err != nil {
		return specs.CdrSpec{}, session, fmt.Errorf("failed to price session %q: %w", session.ID, err)
	}

	rated := session
	rated.Kwh = cdr.TotalEnergy
	rated.TotalCost = cdr.TotalCost

	r.logger.Info("cdr rated",
		zap.String("session_id", session.ID),
		zap.String("cdr_id", cdr.ID),
		zap.Int("charging_periods", len(cdr.ChargingPeriods)),
		zap.Float64("total_energy", cdr.TotalEnergy),
		zap.Float64("total_cost", cdr.TotalCost),
	)
	r.bus.Publish(CdrRatedEvent{Cdr: cdr})

	return cdr, rated, nil
}

// rate runs the pipeline on domain objects: timeline and samples into one series,
// tariff assignment, then pricing.
func (r *Rater) rate(sessionID string, sessionStart time.Time, tariffs []*Tariff, events []TransactionEvent) (*CostAccumulator, error) {
	timeline := BuildChargingTimeline(events, sessionStart)
	series := BuildMeasureSeries(events, timeline, sessionStart)
	if r.logger.Core().Enabled(zap.DebugLevel) {
		r.logger.Debug("measure series built",
			zap.String("session_id", sessionID),
			zap.Stringer("series", series),
		)
	}

	evaluator := NewRestrictionEvaluator(sessionStart, timeline, series, r.location, r.logger)
	NewTariffAssigner(sessionID, evaluator, series, r.bus, r.logger).Assign(tariffs)

	accumulator := NewCostAccumulator(sessionID, sessionStart, r.bus, r.logger)
	if err := accumulator.Accumulate(series); err != nil {
		return nil, fmt.Errorf("failed to price session %q: %w", sessionID, err)
	}
	return accumulator, nil
}

// computeCdrID generates a deterministic ID from the session and its time span.
func computeCdrID(sessionID string, start, end time.Time) string {
	input := fmt.Sprintf("%s|%s|%s",
		sessionID,
		start.UTC().Format(time.RFC3339Nano),
		end.UTC().Format(time.RFC3339Nano),
	)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:16])
}
