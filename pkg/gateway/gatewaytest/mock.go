// Package gatewaytest provides test doubles for the gateway contracts.
package gatewaytest

import (
	"context"

	"yenepay-go/pkg/gateway"

	"github.com/stretchr/testify/mock"
)

// MockTransport is a testify mock of gateway.Transport.
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, endpoint gateway.Endpoint, payload any, sandbox bool) (*gateway.Response, error) {
	args := m.Called(ctx, endpoint, payload, sandbox)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Response), args.Error(1)
}

// JSON builds a response the way the HTTP transport would for a JSON body.
func JSON(status int, body string) *gateway.Response {
	return gateway.NewResponse(status, []byte(body))
}

// Merchant is a plain gateway.Merchant for tests that don't need a client.
type Merchant struct {
	ID      string
	PDT     string
	Sandbox bool
	T       gateway.Transport
}

func (m *Merchant) MerchantID() string           { return m.ID }
func (m *Merchant) Token() string                { return m.PDT }
func (m *Merchant) UseSandbox() bool             { return m.Sandbox }
func (m *Merchant) Transport() gateway.Transport { return m.T }
