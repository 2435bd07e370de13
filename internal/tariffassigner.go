package internal

import (
	"go.uber.org/zap"

	"github.com/chrisconley/chargerate/internal/infra"
)

// TariffAssigner assigns the price components of applicable tariff elements onto a
// measure series. Tariffs and elements are walked in order, so later elements
// replace earlier ones on the points where both apply to the same dimension.
type TariffAssigner struct {
	sessionID string
	evaluator *RestrictionEvaluator
	series    *MeasureSeries
	bus       *infra.Bus
	logger    *zap.Logger
}

func NewTariffAssigner(sessionID string, evaluator *RestrictionEvaluator, series *MeasureSeries, bus *infra.Bus, logger *zap.Logger) *TariffAssigner {
	return &TariffAssigner{
		sessionID: sessionID,
		evaluator: evaluator,
		series:    series,
		bus:       bus,
		logger:    logger,
	}
}

func (a *TariffAssigner) Assign(tariffs []*Tariff) {
	for _, tariff := range tariffs {
		for i, element := range tariff.Elements() {
			valid, applicable := a.evaluator.Evaluate(element.Restrictions())
			if !applicable {
				a.logger.Debug("tariff element not applicable",
					zap.String("tariff_id", tariff.ID()),
					zap.Int("element", i),
				)
				a.bus.Publish(TariffElementSkippedEvent{SessionID: a.sessionID, TariffID: tariff.ID(), Element: i})
				continue
			}

			a.logger.Debug("tariff element assigned",
				zap.String("tariff_id", tariff.ID()),
				zap.Int("element", i),
				zap.Stringer("valid", valid),
			)
			for _, component := range element.PriceComponents() {
				a.series.Assign(&Assignment{Tariff: tariff, Component: component}, valid)
			}
			a.bus.Publish(TariffElementAppliedEvent{SessionID: a.sessionID, TariffID: tariff.ID(), Element: i, Valid: valid})
		}
	}
}
