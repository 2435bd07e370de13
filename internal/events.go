package internal

import (
	"github.com/chrisconley/chargerate/internal/infra"
	specs "github.com/chrisconley/chargerate/specs"
)

// TariffElementAppliedEvent is published when an element's components were assigned.
type TariffElementAppliedEvent struct {
	SessionID string
	TariffID  string
	Element   int
	Valid     IntervalFlags
}

func (e TariffElementAppliedEvent) EventType() infra.EventType {
	return infra.TariffElementApplied
}

// TariffElementSkippedEvent is published when an element cannot apply to the session.
type TariffElementSkippedEvent struct {
	SessionID string
	TariffID  string
	Element   int
}

func (e TariffElementSkippedEvent) EventType() infra.EventType {
	return infra.TariffElementSkipped
}

type ChargingPeriodPricedEvent struct {
	SessionID string
	Period    specs.ChargingPeriodSpec
}

func (e ChargingPeriodPricedEvent) EventType() infra.EventType {
	return infra.ChargingPeriodPriced
}

type CdrRatedEvent struct {
	Cdr specs.CdrSpec
}

func (e CdrRatedEvent) EventType() infra.EventType {
	return infra.CdrRated
}
