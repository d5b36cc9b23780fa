package checkout

import (
	"yenepay-go/pkg/gateway"

	"github.com/shopspring/decimal"
)

// CartCheckout is the multi-item flow. Its items stay mutable until GetURL.
type CartCheckout struct {
	*Checkout
}

func NewCartCheckout(merchant gateway.Merchant, items ItemSource, opts ...Option) (*CartCheckout, error) {
	c, err := New(ProcessCart, merchant, items, opts...)
	if err != nil {
		return nil, err
	}
	return &CartCheckout{Checkout: c}, nil
}

func (c *CartCheckout) CreateItem(name string, unitPrice decimal.Decimal, quantity int, opts ...ItemOption) (*Item, error) {
	return c.cart.CreateItem(name, unitPrice, quantity, opts...)
}

func (c *CartCheckout) AddItem(item *Item) error {
	return c.cart.AddItem(item)
}

// AddItems adds all items or none of them.
func (c *CartCheckout) AddItems(items ...*Item) error {
	for idx, item := range items {
		if item == nil {
			return typeError("items", "checkout item must be a *checkout.Item, got nil at index %d", idx)
		}
	}
	for _, item := range items {
		if err := c.cart.AddItem(item); err != nil {
			return err
		}
	}
	return nil
}

func (c *CartCheckout) RemoveAt(index int) (*Item, error) {
	return c.cart.RemoveAt(index)
}

func (c *CartCheckout) RemoveByID(id string) (*Item, error) {
	return c.cart.RemoveByID(id)
}

func (c *CartCheckout) ClearItems() {
	c.cart.Clear()
}
