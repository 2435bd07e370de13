package internal

import (
	"time"

	specs "github.com/chrisconley/chargerate/specs"
)

// measurandSeries describes how one measurand feeds the measure series.
type measurandSeries struct {
	measurand    string
	accumulative bool
	set          func(*ElapsedMeasure, float64)
}

var ratedMeasurands = []measurandSeries{
	{measurand: specs.MeasurandEnergyActiveImportRegister, accumulative: true, set: (*ElapsedMeasure).SetEnergy},
	{measurand: specs.MeasurandCurrentImport, set: (*ElapsedMeasure).SetCurrent},
	{measurand: specs.MeasurandPowerActiveImport, set: (*ElapsedMeasure).SetPower},
}

// GroupSamples flattens the readings of all events in a single pass, keeping the
// report order within each measurand.
func GroupSamples(events []TransactionEvent) map[string][]Sample {
	groups := make(map[string][]Sample, len(ratedMeasurands))
	for _, event := range events {
		for _, sample := range event.Samples() {
			groups[sample.Measurand] = append(groups[sample.Measurand], sample)
		}
	}
	return groups
}

// SampleSeries builds a partial series with one point per sample, setting only the
// measurand's field. Accumulative measurands are made relative to the first sample.
func SampleSeries(samples []Sample, sessionStart time.Time, accumulative bool, set func(*ElapsedMeasure, float64)) *MeasureSeries {
	series := NewMeasureSeries()
	var baseline float64
	for i, sample := range samples {
		if i == 0 && accumulative {
			baseline = sample.Value
		}
		point := NewElapsedMeasure(offsetOf(sample.Timestamp, sessionStart))
		set(point, sample.Value-baseline)
		series.Add(point)
	}
	return series
}

// BuildMeasureSeries merges the charging timeline with the energy, current and power
// samples of events into the series that tariffs are assigned onto.
func BuildMeasureSeries(events []TransactionEvent, timeline ChargingTimeline, sessionStart time.Time) *MeasureSeries {
	series := timeline.Series()
	groups := GroupSamples(events)
	for _, m := range ratedMeasurands {
		series.JoinMeasure(SampleSeries(groups[m.measurand], sessionStart, m.accumulative, m.set))
	}
	return series
}
