package internal

import (
	"fmt"

	"github.com/google/uuid"

	specs "github.com/chrisconley/chargerate/specs"
)

// DimensionKind is the dimension a price component prices.
type DimensionKind int

// Kinds are ordered as they are walked when pricing a period.
const (
	DimensionEnergy DimensionKind = iota
	DimensionFlat
	DimensionParkingTime
	DimensionTime

	dimensionKindCount
)

func (k DimensionKind) String() string {
	switch k {
	case DimensionEnergy:
		return specs.TariffDimensionEnergy
	case DimensionFlat:
		return specs.TariffDimensionFlat
	case DimensionParkingTime:
		return specs.TariffDimensionParkingTime
	case DimensionTime:
		return specs.TariffDimensionTime
	default:
		return "UNKNOWN"
	}
}

func NewDimensionKind(value string) (DimensionKind, error) {
	switch value {
	case specs.TariffDimensionEnergy:
		return DimensionEnergy, nil
	case specs.TariffDimensionFlat:
		return DimensionFlat, nil
	case specs.TariffDimensionParkingTime:
		return DimensionParkingTime, nil
	case specs.TariffDimensionTime:
		return DimensionTime, nil
	default:
		return 0, fmt.Errorf("invalid price component type: %q", value)
	}
}

type Tariff struct {
	id       string
	currency string
	elements []TariffElement
}

func NewTariff(spec specs.TariffSpec) (*Tariff, error) {
	if spec.ID == "" {
		return nil, fmt.Errorf("tariff ID is required")
	}

	elements := make([]TariffElement, 0, len(spec.Elements))
	for i, e := range spec.Elements {
		element, err := NewTariffElement(e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elements = append(elements, element)
	}

	return &Tariff{
		id:       spec.ID,
		currency: spec.Currency,
		elements: elements,
	}, nil
}

func (t *Tariff) ID() string {
	return t.id
}

func (t *Tariff) Currency() string {
	return t.currency
}

func (t *Tariff) Elements() []TariffElement {
	return t.elements
}

type TariffElement struct {
	components   []*PriceComponent
	restrictions *Restrictions
}

func NewTariffElement(spec specs.TariffElementSpec) (TariffElement, error) {
	if len(spec.PriceComponents) == 0 {
		return TariffElement{}, fmt.Errorf("at least one price component is required")
	}

	components := make([]*PriceComponent, 0, len(spec.PriceComponents))
	for i, c := range spec.PriceComponents {
		component, err := NewPriceComponent(c)
		if err != nil {
			return TariffElement{}, fmt.Errorf("price component %d: %w", i, err)
		}
		components = append(components, component)
	}

	var restrictions *Restrictions
	if spec.Restrictions != nil {
		r, err := NewRestrictions(*spec.Restrictions)
		if err != nil {
			return TariffElement{}, fmt.Errorf("invalid restrictions: %w", err)
		}
		restrictions = &r
	}

	return TariffElement{
		components:   components,
		restrictions: restrictions,
	}, nil
}

func (e TariffElement) PriceComponents() []*PriceComponent {
	return e.components
}

// Restrictions returns nil when the element applies unconditionally.
func (e TariffElement) Restrictions() *Restrictions {
	return e.restrictions
}

// PriceComponent is one priced dimension of a tariff element.
//
// Each component gets its own identity when loaded, so two components with equal
// fields in different elements stay distinct.
type PriceComponent struct {
	id       uuid.UUID
	kind     DimensionKind
	price    Decimal
	stepSize *Decimal
	vat      *Decimal
}

func NewPriceComponent(spec specs.PriceComponentSpec) (*PriceComponent, error) {
	kind, err := NewDimensionKind(spec.Type)
	if err != nil {
		return nil, err
	}

	price, err := NewDecimalFromFloat(spec.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}

	var stepSize *Decimal
	if spec.StepSize != nil {
		if *spec.StepSize <= 0 {
			return nil, fmt.Errorf("step size must be positive, got %d", *spec.StepSize)
		}
		s := NewDecimalFromInt64(int64(*spec.StepSize))
		stepSize = &s
	}

	var vat *Decimal
	if spec.Vat != nil {
		if *spec.Vat < 0 {
			return nil, fmt.Errorf("VAT cannot be negative, got %g", *spec.Vat)
		}
		v, err := NewDecimalFromFloat(*spec.Vat)
		if err != nil {
			return nil, fmt.Errorf("invalid VAT: %w", err)
		}
		vat = &v
	}

	return &PriceComponent{
		id:       uuid.New(),
		kind:     kind,
		price:    price,
		stepSize: stepSize,
		vat:      vat,
	}, nil
}

func (c *PriceComponent) ID() uuid.UUID {
	return c.id
}

func (c *PriceComponent) Kind() DimensionKind {
	return c.kind
}

func (c *PriceComponent) Price() Decimal {
	return c.price
}

// StepSize returns nil when amounts are not rounded.
func (c *PriceComponent) StepSize() *Decimal {
	return c.stepSize
}

// Vat returns the VAT due on cost, zero when the component declares none.
func (c *PriceComponent) Vat(cost Decimal) Decimal {
	if c.vat == nil {
		return NewDecimalFromInt64(0)
	}
	return cost.Mul(*c.vat).Div(NewDecimalFromInt64(100))
}
