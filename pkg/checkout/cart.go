package checkout

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// Cart is an ordered collection of items. Totals are always the fold over
// the current contents.
type Cart struct {
	list []*Item
}

func NewCart(items ...*Item) (*Cart, error) {
	c := &Cart{}
	for idx, item := range items {
		if item == nil {
			return nil, typeError("items", "cart item at index %d is nil", idx)
		}
		c.list = append(c.list, item)
	}
	return c, nil
}

// CreateItem builds an item and appends it.
func (c *Cart) CreateItem(name string, unitPrice decimal.Decimal, quantity int, opts ...ItemOption) (*Item, error) {
	item, err := NewItem(name, unitPrice, quantity, opts...)
	if err != nil {
		return nil, err
	}
	c.list = append(c.list, item)
	return item, nil
}

func (c *Cart) AddItem(item *Item) error {
	if item == nil {
		return typeError("item", "cart item must be a *checkout.Item, got nil")
	}
	c.list = append(c.list, item)
	return nil
}

// RemoveAt removes the item at index. Negative indexes count from the end.
func (c *Cart) RemoveAt(index int) (*Item, error) {
	if index < 0 {
		index += len(c.list)
	}
	if index < 0 || index >= len(c.list) {
		return nil, fmt.Errorf("%w: index %d", ErrItemNotFound, index)
	}

	item := c.list[index]
	c.list = slices.Delete(c.list, index, index+1)
	return item, nil
}

// RemoveByID removes the first item with the given id.
func (c *Cart) RemoveByID(id string) (*Item, error) {
	for idx, item := range c.list {
		if item.ID() == id {
			return c.RemoveAt(idx)
		}
	}
	return nil, fmt.Errorf("%w: id %q", ErrItemNotFound, id)
}

func (c *Cart) Clear() {
	c.list = nil
}

// Scale repeats the contents n times, multiplying both totals by n.
func (c *Cart) Scale(n int) error {
	if n < 0 {
		return valueError("scale", "cart can only be scaled by n >= 0, got %d", n)
	}
	if len(c.list) == 0 {
		return nil
	}
	if n > math.MaxInt/len(c.list) {
		return valueError("scale", "scaling %d items by %d overflows", len(c.list), n)
	}

	scaled := make([]*Item, 0, len(c.list)*n)
	for i := 0; i < n; i++ {
		scaled = append(scaled, c.list...)
	}
	c.list = scaled
	return nil
}

// Items returns the contents in insertion order.
func (c *Cart) Items() []*Item {
	return slices.Clone(c.list)
}

func (c *Cart) Len() int {
	return len(c.list)
}

// Contains matches by identity first, then structurally.
func (c *Cart) Contains(item *Item) bool {
	return slices.ContainsFunc(c.list, func(i *Item) bool {
		return i == item || i.Equal(item)
	})
}

// TotalPrice is the sum of unitPrice x quantity over all items.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.list {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.list {
		total += item.Quantity()
	}
	return total
}

func (c *Cart) ToMaps() []map[string]any {
	out := make([]map[string]any, 0, len(c.list))
	for _, item := range c.list {
		out = append(out, item.ToMap())
	}
	return out
}

func (c *Cart) items() []*Item {
	return c.list
}

// ----------------- Item sources -----------------

// ItemSource is anything a checkout accepts as its items: Items, ItemSet,
// *Cart or a single *Item. Every source is normalized into one *Cart.
type ItemSource interface {
	items() []*Item
}

// Items is an ordered list of items.
type Items []*Item

func (s Items) items() []*Item {
	return slices.Clone(s)
}

// ItemSet is an unordered set of items. It is ordered by item id when
// normalized so payloads are deterministic.
type ItemSet map[*Item]struct{}

func NewItemSet(items ...*Item) ItemSet {
	set := make(ItemSet, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func (s ItemSet) items() []*Item {
	out := make([]*Item, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a] == nil || out[b] == nil {
			return out[b] != nil
		}
		return out[a].ID() < out[b].ID()
	})
	return out
}

// normalizeItems turns a source into the cart a checkout will own. A *Cart
// is adopted as is.
func normalizeItems(src ItemSource) (*Cart, error) {
	switch s := src.(type) {
	case nil:
		return nil, typeError("items", "items must be Items, ItemSet, *Cart or *Item, got nil")
	case *Cart:
		if s == nil {
			return nil, typeError("items", "items must be Items, ItemSet, *Cart or *Item, got nil *Cart")
		}
		return s, nil
	}

	items := src.items()
	if len(items) == 0 {
		return &Cart{}, nil
	}
	return &Cart{list: items}, nil
}
