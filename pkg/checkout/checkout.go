package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"yenepay-go/internal/logger"
	"yenepay-go/pkg/gateway"
	"yenepay-go/pkg/pdt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Process is the checkout flow: Express for a single item, Cart for one or more.
type Process string

const (
	ProcessExpress Process = "Express"
	ProcessCart    Process = "Cart"
)

func (p Process) Valid() bool {
	return p == ProcessExpress || p == ProcessCart
}

// Order holds the optional order metadata sent with a checkout. Empty
// strings and nil pointers are left out of the payload.
type Order struct {
	MerchantOrderID string
	SuccessURL      string
	CancelURL       string
	IPNURL          string
	FailureURL      string

	// ExpiresAfter is in minutes.
	ExpiresAfter  *int
	ExpiresInDays *int

	HandlingFee *decimal.Decimal
	DeliveryFee *decimal.Decimal
	Discount    *decimal.Decimal
	Tax1        *decimal.Decimal
	Tax2        *decimal.Decimal
}

// Checkout is a validated checkout request bound to a merchant.
type Checkout struct {
	Order

	process  Process
	merchant gateway.Merchant
	cart     *Cart
	sandbox  *bool
}

type Option func(*Checkout)

func WithMerchantOrderID(id string) Option { return func(c *Checkout) { c.MerchantOrderID = id } }
func WithSuccessURL(url string) Option     { return func(c *Checkout) { c.SuccessURL = url } }
func WithCancelURL(url string) Option      { return func(c *Checkout) { c.CancelURL = url } }
func WithIPNURL(url string) Option         { return func(c *Checkout) { c.IPNURL = url } }
func WithFailureURL(url string) Option     { return func(c *Checkout) { c.FailureURL = url } }

func WithExpiresAfter(minutes int) Option {
	return func(c *Checkout) { c.ExpiresAfter = &minutes }
}

func WithExpiresInDays(days int) Option {
	return func(c *Checkout) { c.ExpiresInDays = &days }
}

func WithHandlingFee(d decimal.Decimal) Option { return func(c *Checkout) { c.HandlingFee = &d } }
func WithDeliveryFee(d decimal.Decimal) Option { return func(c *Checkout) { c.DeliveryFee = &d } }
func WithDiscount(d decimal.Decimal) Option    { return func(c *Checkout) { c.Discount = &d } }
func WithTax1(d decimal.Decimal) Option        { return func(c *Checkout) { c.Tax1 = &d } }
func WithTax2(d decimal.Decimal) Option        { return func(c *Checkout) { c.Tax2 = &d } }

// WithSandbox overrides the merchant's sandbox flag for this checkout only.
func WithSandbox(sandbox bool) Option {
	return func(c *Checkout) { c.sandbox = &sandbox }
}

// ----------------- Constructor -----------------

// New validates and builds a checkout. Validation stops at the first failure:
// merchant, process, items container, emptiness, item types, then the
// single-item rule of the Express process.
func New(process Process, merchant gateway.Merchant, items ItemSource, opts ...Option) (*Checkout, error) {
	if isNil(merchant) {
		return nil, typeError("client", "checkout requires a merchant client, got nil")
	}

	days := 1
	c := &Checkout{
		merchant: merchant,
		Order:    Order{ExpiresInDays: &days},
	}

	if err := c.setProcess(process); err != nil {
		return nil, err
	}

	cart, err := normalizeItems(items)
	if err != nil {
		return nil, err
	}
	if cart.Len() == 0 {
		return nil, valueError("items", "items cannot be empty")
	}
	for idx, item := range cart.list {
		if item == nil {
			return nil, typeError("items", "checkout item must be a *checkout.Item, got nil at index %d", idx)
		}
	}
	if process == ProcessExpress && cart.Len() > 1 {
		return nil, valueError("items",
			"'%s' process is for a single item, use '%s' to purchase %d items",
			ProcessExpress, ProcessCart, cart.Len())
	}
	c.cart = cart

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// isNil also catches a nil pointer wrapped in the interface, e.g. a nil *client.Client.
func isNil(m gateway.Merchant) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// setProcess assigns the process exactly once.
func (c *Checkout) setProcess(p Process) error {
	if c.process != "" {
		return &ValidationError{Field: "process", Message: "process type attribute is immutable", Kind: ErrImmutable}
	}
	if p == "" {
		return valueError("process", "checkout process cannot be empty")
	}
	if !p.Valid() {
		return valueError("process", "process must be %s or %s, got %q", ProcessExpress, ProcessCart, p)
	}
	c.process = p
	return nil
}

func (c *Checkout) Process() Process { return c.process }

func (c *Checkout) MerchantID() string { return c.merchant.MerchantID() }

func (c *Checkout) Token() string { return c.merchant.Token() }

// UseSandbox follows the merchant unless overridden with WithSandbox.
func (c *Checkout) UseSandbox() bool {
	if c.sandbox != nil {
		return *c.sandbox
	}
	return c.merchant.UseSandbox()
}

func (c *Checkout) Cart() *Cart { return c.cart }

func (c *Checkout) Items() []*Item { return c.cart.Items() }

// TotalAmount previews what the gateway will charge: items plus fees and
// taxes, minus the discount.
func (c *Checkout) TotalAmount() decimal.Decimal {
	total := c.cart.TotalPrice()
	for _, fee := range []*decimal.Decimal{c.HandlingFee, c.DeliveryFee, c.Tax1, c.Tax2} {
		if fee != nil {
			total = total.Add(*fee)
		}
	}
	if c.Discount != nil {
		total = total.Sub(*c.Discount)
	}
	return total
}

// ----------------- Serialization -----------------

// ToMap returns the checkout payload with wire field names.
func (c *Checkout) ToMap() map[string]any {
	data := map[string]any{
		"process": string(c.process),
	}

	setString := func(key, value string) {
		if value != "" {
			data[key] = value
		}
	}
	setInt := func(key string, value *int) {
		if value != nil {
			data[key] = *value
		}
	}
	setDecimal := func(key string, value *decimal.Decimal) {
		if value != nil {
			data[key] = jsonNumber(*value)
		}
	}

	setString("merchantOrderId", c.MerchantOrderID)
	setString("merchantId", c.MerchantID())
	setString("successUrl", c.SuccessURL)
	setString("cancelUrl", c.CancelURL)
	setString("ipnUrl", c.IPNURL)
	setString("failureUrl", c.FailureURL)
	setInt("expiresAfter", c.ExpiresAfter)
	setInt("expiresInDays", c.ExpiresInDays)
	setDecimal("totalItemsHandlingFee", c.HandlingFee)
	setDecimal("totalItemsDeliveryFee", c.DeliveryFee)
	setDecimal("totalItemsDiscount", c.Discount)
	setDecimal("totalItemsTax1", c.Tax1)
	setDecimal("totalItemsTax2", c.Tax2)

	data["items"] = c.cart.ToMaps()

	return data
}

func (c *Checkout) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToMap())
}

func (c *Checkout) ToJSON() (string, error) {
	b, err := c.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *Checkout) String() string {
	return fmt.Sprintf("<%sCheckout: %s - %s>", c.process, c.MerchantOrderID, c.MerchantID())
}

// ----------------- Gateway calls -----------------

// GetURL submits the checkout and returns the payment redirect URL.
func (c *Checkout) GetURL(ctx context.Context) (string, error) {
	if c.cart.Len() == 0 {
		return "", valueError("items", "items cannot be empty")
	}
	// The cart may have been shared with the caller and grown since New.
	if c.process == ProcessExpress && c.cart.Len() != 1 {
		return "", valueError("items",
			"'%s' process is for a single item, use '%s' to purchase %d items",
			ProcessExpress, ProcessCart, c.cart.Len())
	}

	log := logger.FromCtx(ctx).With(
		zap.String("process", string(c.process)),
		zap.String("merchant_order_id", c.MerchantOrderID),
		zap.Int("items", c.cart.Len()),
		zap.Stringer("total_amount", c.TotalAmount()),
	)

	t := c.merchant.Transport()
	if t == nil {
		return "", gateway.ErrNoTransport
	}

	resp, err := t.Send(ctx, gateway.EndpointCheckout, c.ToMap(), c.UseSandbox())
	if err != nil {
		log.Error("Checkout request failed", zap.Error(err))
		return "", err
	}

	if !resp.OK() {
		log.Error("Checkout rejected by gateway",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", resp.Raw),
		)
		return "", gateway.NewResponseError(gateway.EndpointCheckout, resp)
	}

	obj, _ := resp.Object()
	url, _ := obj["result"].(string)
	if url == "" {
		log.Error("Checkout response has no result", zap.ByteString("response", resp.Raw))
		return "", gateway.NewResponseError(gateway.EndpointCheckout, resp)
	}

	log.Info("Checkout URL created")
	return url, nil
}

// CheckPDTStatus verifies a payment for this checkout's order.
func (c *Checkout) CheckPDTStatus(ctx context.Context, transactionID string) (*pdt.Response, error) {
	return pdt.New(c.merchant, c.MerchantOrderID, transactionID, c.UseSandbox()).CheckStatus(ctx)
}
