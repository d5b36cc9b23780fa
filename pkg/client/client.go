package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yenepay-go/internal/logger"
	"yenepay-go/pkg/checkout"
	"yenepay-go/pkg/gateway"
	"yenepay-go/pkg/ipn"
	"yenepay-go/pkg/pdt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var ErrMerchantIDRequired = errors.New("merchant id is required")

// Client is a merchant identity. Checkouts and PDT requests created from it
// keep a reference to it, so changing the token or sandbox flag later
// affects them too.
type Client struct {
	merchantID string
	token      string
	sandbox    bool
	transport  gateway.Transport
}

type Option func(*Client)

// WithToken sets the PDT token found in the merchant account settings.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithSandbox(sandbox bool) Option {
	return func(c *Client) { c.sandbox = sandbox }
}

func WithTransport(t gateway.Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// ----------------- Constructor -----------------

func New(merchantID string, opts ...Option) (*Client, error) {
	if merchantID == "" {
		return nil, ErrMerchantIDRequired
	}

	c := &Client{merchantID: merchantID}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = gateway.NewHTTPTransport()
	}

	return c, nil
}

// Config holds the settings FromConfig needs, typically read from the
// environment by the host application.
type Config struct {
	MerchantID string
	Token      string
	UseSandbox bool

	// HTTPTimeout <= 0 keeps the transport default.
	HTTPTimeout time.Duration
	// RateLimit is in requests per second; 0 disables throttling.
	RateLimit float64
	RateBurst int
}

// FromConfig builds a client and its HTTP transport from cfg.
func FromConfig(cfg Config, opts ...Option) (*Client, error) {
	transport := gateway.NewHTTPTransport(
		gateway.WithTimeout(cfg.HTTPTimeout),
		gateway.WithRateLimit(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	)

	base := []Option{
		WithToken(cfg.Token),
		WithSandbox(cfg.UseSandbox),
		WithTransport(transport),
	}

	return New(cfg.MerchantID, append(base, opts...)...)
}

// SetLogger routes the SDK's logs to l. Without it the SDK logs nothing.
// The logger is shared by every client in the process.
func SetLogger(l *zap.Logger) {
	logger.Set(l)
}

func (c *Client) MerchantID() string { return c.merchantID }

func (c *Client) Token() string { return c.token }

func (c *Client) UseSandbox() bool { return c.sandbox }

func (c *Client) Transport() gateway.Transport { return c.transport }

func (c *Client) SetMerchantID(id string) error {
	if id == "" {
		return ErrMerchantIDRequired
	}
	c.merchantID = id
	return nil
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) SetSandbox(sandbox bool) {
	c.sandbox = sandbox
}

// ----------------- Factories -----------------

func (c *Client) CartCheckout(items checkout.ItemSource, opts ...checkout.Option) (*checkout.CartCheckout, error) {
	return checkout.NewCartCheckout(c, items, opts...)
}

// ExpressCheckout accepts a single *checkout.Item directly.
func (c *Client) ExpressCheckout(items checkout.ItemSource, opts ...checkout.Option) (*checkout.ExpressCheckout, error) {
	return checkout.NewExpressCheckout(c, items, opts...)
}

// CheckPDTStatus asks the gateway for the status of a payment order.
func (c *Client) CheckPDTStatus(ctx context.Context, merchantOrderID, transactionID string, useSandbox bool) (*pdt.Response, error) {
	return pdt.New(c, merchantOrderID, transactionID, useSandbox).CheckStatus(ctx)
}

// ParseIPN reads a notification body and flags it with the client's environment.
func (c *Client) ParseIPN(content string) (*ipn.IPN, error) {
	n, err := ipn.FromQueryString(content)
	if err != nil {
		return nil, err
	}
	n.UseSandbox = c.sandbox
	return n, nil
}

// VerifyIPN parses a notification body and checks it with the gateway.
func (c *Client) VerifyIPN(ctx context.Context, content string, raiseOnFailure bool) (*ipn.IPN, bool, error) {
	n, err := c.ParseIPN(content)
	if err != nil {
		return nil, false, err
	}
	ok, err := n.IsAuthentic(ctx, c.transport, raiseOnFailure)
	return n, ok, err
}

// IPNHandler serves the merchant's IPN url. Like checkouts, it reads the
// client's transport and sandbox flag on every request.
func (c *Client) IPNHandler(notify ipn.Notifier) *ipn.Handler {
	return ipn.NewHandler(c, notify)
}

func (c *Client) String() string {
	return fmt.Sprintf("<Client %s>", c.merchantID)
}
