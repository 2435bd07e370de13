package infra

// EventType represents the type of event published while collecting and rating sessions
type EventType int

const (
	TransactionEventReceived EventType = iota
	SessionStopped
	TariffElementApplied
	TariffElementSkipped
	ChargingPeriodPriced
	CdrRated
)

// String returns the string representation of the EventType
func (et EventType) String() string {
	switch et {
	case TransactionEventReceived:
		return "TransactionEventReceived"
	case SessionStopped:
		return "SessionStopped"
	case TariffElementApplied:
		return "TariffElementApplied"
	case TariffElementSkipped:
		return "TariffElementSkipped"
	case ChargingPeriodPriced:
		return "ChargingPeriodPriced"
	case CdrRated:
		return "CdrRated"
	default:
		return "Unknown"
	}
}

type Event interface{ EventType() EventType }
type Handler func(Event)
type Bus struct{ subs map[EventType][]Handler }

func NewBus() *Bus { return &Bus{subs: map[EventType][]Handler{}} }

// Publish calls the subscribers of e's type synchronously, in subscription order.
// Publishing on a nil Bus is a no-op.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	for _, h := range b.subs[e.EventType()] {
		h(e)
	}
}
func (b *Bus) Subscribe(evt EventType, h Handler) { b.subs[evt] = append(b.subs[evt], h) }
