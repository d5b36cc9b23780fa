package checkout

import "yenepay-go/pkg/gateway"

// ExpressCheckout is the single-item flow.
type ExpressCheckout struct {
	*Checkout
}

// NewExpressCheckout accepts a bare *Item as well as any other ItemSource.
func NewExpressCheckout(merchant gateway.Merchant, items ItemSource, opts ...Option) (*ExpressCheckout, error) {
	c, err := New(ProcessExpress, merchant, items, opts...)
	if err != nil {
		return nil, err
	}
	return &ExpressCheckout{Checkout: c}, nil
}

// Item returns the item being purchased.
func (e *ExpressCheckout) Item() *Item {
	if e.cart.Len() == 0 {
		return nil
	}
	return e.cart.list[0]
}
