package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/chrisconley/chargerate/internal"
	"github.com/chrisconley/chargerate/internal/infra"
)

const (
	outcomeApplied = "applied"
	outcomeSkipped = "skipped"
)

// Metrics bundles rating metrics.
type Metrics struct {
	CdrsRatedTotal       prometheus.Counter
	TariffElementsTotal  *prometheus.CounterVec
	ChargingPeriodsTotal prometheus.Counter
	CdrTotalCost         prometheus.Histogram
	CdrTotalEnergyKwh    prometheus.Histogram
}

// New constructs the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CdrsRatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chargerate_cdrs_rated_total",
			Help: "Total CDRs rated",
		}),
		TariffElementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chargerate_tariff_elements_total",
				Help: "Total tariff elements evaluated by outcome",
			},
			[]string{"outcome"},
		),
		ChargingPeriodsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chargerate_charging_periods_total",
			Help: "Total charging periods priced",
		}),
		CdrTotalCost: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chargerate_cdr_total_cost",
			Help:    "Total cost of rated CDRs, including VAT",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100},
		}),
		CdrTotalEnergyKwh: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chargerate_cdr_total_energy_kwh",
			Help:    "Billed energy of rated CDRs in kWh",
			Buckets: []float64{1, 5, 10, 20, 40, 60, 80, 120},
		}),
	}
	reg.MustRegister(
		m.CdrsRatedTotal,
		m.TariffElementsTotal,
		m.ChargingPeriodsTotal,
		m.CdrTotalCost,
		m.CdrTotalEnergyKwh,
	)
	return m
}

// Subscribe feeds the metrics from rating events published on bus.
func (m *Metrics) Subscribe(bus *infra.Bus) {
	bus.Subscribe(infra.TariffElementApplied, func(infra.Event) {
		m.TariffElementsTotal.WithLabelValues(outcomeApplied).Inc()
	})
	bus.Subscribe(infra.TariffElementSkipped, func(infra.Event) {
		m.TariffElementsTotal.WithLabelValues(outcomeSkipped).Inc()
	})
	bus.Subscribe(infra.ChargingPeriodPriced, func(infra.Event) {
		m.ChargingPeriodsTotal.Inc()
	})
	bus.Subscribe(infra.CdrRated, func(e infra.Event) {
		rated, ok := e.(internal.CdrRatedEvent)
		if !ok {
			return
		}
		m.CdrsRatedTotal.Inc()
		m.CdrTotalCost.Observe(rated.Cdr.TotalCost)
		m.CdrTotalEnergyKwh.Observe(rated.Cdr.TotalEnergy)
	})
}
