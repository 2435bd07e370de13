package internal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chrisconley/chargerate/internal/infra"
	specs "github.com/chrisconley/chargerate/specs"
)

var (
	wattsPerKilo   = NewDecimalFromInt64(1000)
	msPerSecond    = NewDecimalFromInt64(1000)
	secondsPerHour = NewDecimalFromInt64(3600)
)

// CostTotals are the running sums of a rating pass, in kWh, hours and currency units.
type CostTotals struct {
	Fixed        Decimal
	Energy       Decimal
	EnergyCost   Decimal
	Time         Decimal
	TimeCost     Decimal
	Parking      Decimal
	ParkingCost  Decimal
	Total        Decimal
	TotalExclVat Decimal
}

func zeroTotals() CostTotals {
	zero := NewDecimalFromInt64(0)
	return CostTotals{
		Fixed:        zero,
		Energy:       zero,
		EnergyCost:   zero,
		Time:         zero,
		TimeCost:     zero,
		Parking:      zero,
		ParkingCost:  zero,
		Total:        zero,
		TotalExclVat: zero,
	}
}

// CostAccumulator prices an assigned MeasureSeries. Its state is only written to a
// CDR by ApplyTo, once accumulation has finished.
type CostAccumulator struct {
	sessionID    string
	sessionStart time.Time
	bus          *infra.Bus
	logger       *zap.Logger

	totals    CostTotals
	periods   []specs.ChargingPeriodSpec
	usedFlats map[uuid.UUID]struct{}
}

func NewCostAccumulator(sessionID string, sessionStart time.Time, bus *infra.Bus, logger *zap.Logger) *CostAccumulator {
	c := &CostAccumulator{
		sessionID:    sessionID,
		sessionStart: sessionStart,
		bus:          bus,
		logger:       logger,
	}
	c.reset()
	return c
}

func (c *CostAccumulator) reset() {
	c.totals = zeroTotals()
	c.periods = []specs.ChargingPeriodSpec{}
	c.usedFlats = map[uuid.UUID]struct{}{}
}

// Accumulate walks series pairwise and prices every period from the components
// assigned at its first point. A series with a single point can only carry a FLAT fee.
func (c *CostAccumulator) Accumulate(series *MeasureSeries) error {
	c.reset()

	points := series.Points()
	switch len(points) {
	case 0:
		return nil
	case 1:
		if a := points[0].Component(DimensionFlat); a != nil {
			c.book(a.Component, c.flat(a.Component))
		}
		return nil
	}

	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1], points[i]
		last := i == len(points)-1

		period := specs.ChargingPeriodSpec{
			StartDateTime: c.sessionStart.Add(time.Duration(prev.Offset) * time.Millisecond),
			Dimensions:    []specs.CdrDimensionSpec{},
		}

		for kind := DimensionKind(0); kind < dimensionKindCount; kind++ {
			a := prev.Component(kind)
			if a == nil {
				continue
			}
			period.TariffID = a.Tariff.ID()

			applyTimeStep := a.Component.StepSize() != nil &&
				(last || (curr.Component(DimensionTime) == nil && curr.Component(DimensionParkingTime) == nil))

			if err := c.addCost(&period, a.Component, prev, curr, applyTimeStep); err != nil {
				return fmt.Errorf("period at %s: %w", period.StartDateTime.Format(time.RFC3339), err)
			}
		}

		c.periods = append(c.periods, period)
		c.bus.Publish(ChargingPeriodPricedEvent{SessionID: c.sessionID, Period: period})
	}
	return nil
}

func (c *CostAccumulator) addCost(period *specs.ChargingPeriodSpec, component *PriceComponent, prev, curr *ElapsedMeasure, applyTimeStep bool) error {
	switch component.Kind() {
	case DimensionFlat:
		c.book(component, c.flat(component))

	case DimensionEnergy:
		from, err := NewDecimalFromFloat(prev.Energy())
		if err != nil {
			return fmt.Errorf("invalid energy: %w", err)
		}
		to, err := NewDecimalFromFloat(curr.Energy())
		if err != nil {
			return fmt.Errorf("invalid energy: %w", err)
		}
		amount := to.Sub(from)
		if amount.IsZero() {
			return nil
		}
		if step := component.StepSize(); step != nil {
			amount = amount.CeilToStep(*step)
		}
		amount = amount.Div(wattsPerKilo)

		cost := component.Price().Mul(amount)
		c.totals.Energy = c.totals.Energy.Add(amount)
		c.totals.EnergyCost = c.totals.EnergyCost.Add(cost)

		volume, err := amount.Float64()
		if err != nil {
			return fmt.Errorf("invalid energy volume: %w", err)
		}
		period.Dimensions = append(period.Dimensions, specs.CdrDimensionSpec{Type: specs.CdrDimensionEnergy, Volume: volume})
		if current, ok := curr.Current(); ok {
			period.Dimensions = append(period.Dimensions, specs.CdrDimensionSpec{Type: specs.CdrDimensionCurrent, Volume: current})
		}
		if power, ok := curr.Power(); ok {
			period.Dimensions = append(period.Dimensions, specs.CdrDimensionSpec{Type: specs.CdrDimensionPower, Volume: power})
		}
		c.book(component, cost)

	case DimensionParkingTime:
		amount := durationSeconds(curr.Durations.Parking - prev.Durations.Parking)
		if amount.IsZero() {
			return nil
		}
		if applyTimeStep {
			amount = amount.CeilToStep(*component.StepSize())
		}
		amount = amount.Div(secondsPerHour)

		cost := component.Price().Mul(amount)
		c.totals.Parking = c.totals.Parking.Add(amount)
		c.totals.ParkingCost = c.totals.ParkingCost.Add(cost)

		volume, err := amount.Float64()
		if err != nil {
			return fmt.Errorf("invalid parking time volume: %w", err)
		}
		period.Dimensions = append(period.Dimensions, specs.CdrDimensionSpec{Type: specs.CdrDimensionParkingTime, Volume: volume})
		c.book(component, cost)

	case DimensionTime:
		amount := durationSeconds(curr.Durations.Charging - prev.Durations.Charging)
		if amount.IsZero() {
			amount = durationSeconds(curr.Durations.Reservation - prev.Durations.Reservation)
		}
		if amount.IsZero() {
			return nil
		}
		if applyTimeStep {
			amount = amount.CeilToStep(*component.StepSize())
		}
		amount = amount.Div(secondsPerHour)

		cost := component.Price().Mul(amount)
		c.totals.Time = c.totals.Time.Add(amount)
		c.totals.TimeCost = c.totals.TimeCost.Add(cost)

		volume, err := amount.Float64()
		if err != nil {
			return fmt.Errorf("invalid time volume: %w", err)
		}
		period.Dimensions = append(period.Dimensions, specs.CdrDimensionSpec{Type: specs.CdrDimensionTime, Volume: volume})
		c.book(component, cost)
	}
	return nil
}

// flat charges a FLAT component the first time it is seen and zero afterwards.
func (c *CostAccumulator) flat(component *PriceComponent) Decimal {
	if _, used := c.usedFlats[component.ID()]; used {
		return NewDecimalFromInt64(0)
	}
	c.usedFlats[component.ID()] = struct{}{}
	cost := component.Price()
	c.totals.Fixed = c.totals.Fixed.Add(cost)
	return cost
}

// book adds cost and its VAT to the overall totals.
func (c *CostAccumulator) book(component *PriceComponent, cost Decimal) {
	vat := component.Vat(cost)
	c.logger.Debug("cost booked",
		zap.Stringer("type", component.Kind()),
		zap.Stringer("cost", cost),
		zap.Stringer("vat", vat),
	)
	c.totals.TotalExclVat = c.totals.TotalExclVat.Add(cost)
	c.totals.Total = c.totals.Total.Add(cost).Add(vat)
}

func (c *CostAccumulator) Totals() CostTotals {
	return c.totals
}

func (c *CostAccumulator) Periods() []specs.ChargingPeriodSpec {
	return c.periods
}

// ApplyTo writes the accumulated totals and periods onto cdr. cdr is left
// untouched when a total does not fit a float64.
func (c *CostAccumulator) ApplyTo(cdr *specs.CdrSpec) error {
	totals := []struct {
		name  string
		value Decimal
		dst   *float64
	}{
		{"total cost", c.totals.Total, &cdr.TotalCost},
		{"total cost excluding VAT", c.totals.TotalExclVat, &cdr.TotalCostExclVat},
		{"total fixed cost", c.totals.Fixed, &cdr.TotalFixedCost},
		{"total energy", c.totals.Energy, &cdr.TotalEnergy},
		{"total energy cost", c.totals.EnergyCost, &cdr.TotalEnergyCost},
		{"total time", c.totals.Time, &cdr.TotalTime},
		{"total time cost", c.totals.TimeCost, &cdr.TotalTimeCost},
		{"total parking time", c.totals.Parking, &cdr.TotalParkingTime},
		{"total parking cost", c.totals.ParkingCost, &cdr.TotalParkingCost},
	}

	values := make([]float64, len(totals))
	for i, total := range totals {
		f, err := total.value.Float64()
		if err != nil {
			return fmt.Errorf("invalid %s: %w", total.name, err)
		}
		values[i] = f
	}
	for i, total := range totals {
		*total.dst = values[i]
	}
	cdr.ChargingPeriods = append([]specs.ChargingPeriodSpec{}, c.periods...)
	return nil
}

func durationSeconds(ms int64) Decimal {
	return NewDecimalFromInt64(ms).Div(msPerSecond)
}
