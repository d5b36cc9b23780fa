package checkout

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a single purchasable line.
type Item struct {
	id        string
	name      string
	unitPrice decimal.Decimal
	quantity  int
}

type ItemOption func(*Item)

// WithItemID sets the merchant's own id (SKU, UUID...) instead of a generated one.
func WithItemID(id string) ItemOption {
	return func(i *Item) {
		if id != "" {
			i.id = id
		}
	}
}

// NewItem validates unitPrice >= 0 and quantity >= 1.
func NewItem(name string, unitPrice decimal.Decimal, quantity int, opts ...ItemOption) (*Item, error) {
	if err := validateUnitPrice(unitPrice); err != nil {
		return nil, err
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	item := &Item{
		id:        uuid.New().String(),
		name:      name,
		unitPrice: unitPrice,
		quantity:  quantity,
	}
	for _, opt := range opts {
		opt(item)
	}

	return item, nil
}

func validateUnitPrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return valueError("unit_price", "unit price must be >= 0, got %s", p)
	}
	return nil
}

func validateQuantity(q int) error {
	if q < 1 {
		return valueError("quantity", "quantity must be >= 1, got %d", q)
	}
	return nil
}

func (i *Item) ID() string                 { return i.id }
func (i *Item) Name() string               { return i.name }
func (i *Item) UnitPrice() decimal.Decimal { return i.unitPrice }
func (i *Item) Quantity() int              { return i.quantity }

func (i *Item) SetID(id string) {
	i.id = id
}

func (i *Item) SetName(name string) {
	i.name = name
}

func (i *Item) SetUnitPrice(p decimal.Decimal) error {
	if err := validateUnitPrice(p); err != nil {
		return err
	}
	i.unitPrice = p
	return nil
}

func (i *Item) SetQuantity(q int) error {
	if err := validateQuantity(q); err != nil {
		return err
	}
	i.quantity = q
	return nil
}

// LineTotal is unitPrice x quantity.
func (i *Item) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// Equal compares items field by field.
func (i *Item) Equal(other *Item) bool {
	if i == nil || other == nil {
		return i == other
	}
	return i.id == other.id &&
		i.name == other.name &&
		i.unitPrice.Equal(other.unitPrice) &&
		i.quantity == other.quantity
}

// ToMap returns the wire representation, omitting empty fields.
func (i *Item) ToMap() map[string]any {
	m := map[string]any{
		"unitPrice": jsonNumber(i.unitPrice),
		"quantity":  i.quantity,
	}
	if i.id != "" {
		m["itemId"] = i.id
	}
	if i.name != "" {
		m["itemName"] = i.name
	}
	return m
}

func (i *Item) String() string {
	return fmt.Sprintf("<Item '%s'>", i.name)
}

func (i *Item) items() []*Item {
	return []*Item{i}
}

// jsonNumber keeps decimals exact on the wire instead of going through float64.
func jsonNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
