package ipn

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"yenepay-go/internal/logger"
	"yenepay-go/pkg/gateway"
	"yenepay-go/pkg/gateway/gatewaytest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sampleBody = "TotalAmount=50.00&BuyerId=b-1&MerchantOrderId=order-1&MerchantId=0000" +
	"&MerchantCode=0000&TransactionId=tx-1&TransactionCode=TC1&Status=Paid&Currency=ETB" +
	"&Signature=abc%2Bdef%3D%3D"

func TestMain(m *testing.M) {
	logger.Init("silent")
	m.Run()
}

func TestFromQueryString(t *testing.T) {
	t.Run("Full notification", func(t *testing.T) {
		n, err := FromQueryString(sampleBody)

		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("50").Equal(n.TotalAmount))
		assert.Equal(t, "b-1", n.BuyerID)
		assert.Equal(t, "order-1", n.MerchantOrderID)
		assert.Equal(t, "0000", n.MerchantID)
		assert.Equal(t, "0000", n.MerchantCode)
		assert.Equal(t, "tx-1", n.TransactionID)
		assert.Equal(t, "TC1", n.TransactionCode)
		assert.Equal(t, "Paid", n.Status)
		assert.Equal(t, "ETB", n.Currency)
		assert.Equal(t, "abc+def==", n.Signature)
		assert.False(t, n.UseSandbox)
	})

	t.Run("ID suffix keys", func(t *testing.T) {
		n, err := FromQueryString("BuyerID=b-2&TransactionID=tx-2")

		require.NoError(t, err)
		assert.Equal(t, "b-2", n.BuyerID)
		assert.Equal(t, "tx-2", n.TransactionID)
	})

	t.Run("Unknown keys are ignored", func(t *testing.T) {
		n, err := FromQueryString("Status=Paid&Foo=bar")

		require.NoError(t, err)
		assert.Equal(t, "Paid", n.Status)
	})

	t.Run("Invalid amount", func(t *testing.T) {
		n, err := FromQueryString("TotalAmount=fifty")

		assert.Nil(t, n)
		assert.ErrorIs(t, err, ErrInvalidNotification)
	})

	t.Run("Malformed escape", func(t *testing.T) {
		_, err := FromQueryString("Status=%zz")
		assert.ErrorIs(t, err, ErrInvalidNotification)
	})
}

func TestIPN_ToMap(t *testing.T) {
	t.Run("Keeps the received amount text", func(t *testing.T) {
		n, err := FromQueryString(sampleBody)
		require.NoError(t, err)

		m := n.ToMap()

		assert.Len(t, m, 10)
		assert.Equal(t, "50.00", m["totalAmount"])
		assert.Equal(t, "b-1", m["buyerId"])
		assert.Equal(t, "order-1", m["merchantOrderId"])
		assert.Equal(t, "0000", m["merchantId"])
		assert.Equal(t, "0000", m["merchantCode"])
		assert.Equal(t, "tx-1", m["transactionId"])
		assert.Equal(t, "TC1", m["transactionCode"])
		assert.Equal(t, "Paid", m["status"])
		assert.Equal(t, "ETB", m["currency"])
		assert.Equal(t, "abc+def==", m["signature"])
	})

	t.Run("Changed amount", func(t *testing.T) {
		n, err := FromQueryString(sampleBody)
		require.NoError(t, err)

		n.TotalAmount = decimal.RequireFromString("75.5")

		assert.Equal(t, "75.5", n.ToMap()["totalAmount"])
	})

	t.Run("Constructed directly", func(t *testing.T) {
		n := &IPN{TotalAmount: decimal.NewFromInt(20), Status: "Paid"}
		assert.Equal(t, "20", n.ToMap()["totalAmount"])
	})
}

func TestIPN_IsAuthentic(t *testing.T) {
	newIPN := func(t *testing.T) *IPN {
		n, err := FromQueryString(sampleBody)
		require.NoError(t, err)
		n.UseSandbox = true
		return n
	}

	t.Run("Authentic", func(t *testing.T) {
		tr := new(gatewaytest.MockTransport)
		n := newIPN(t)
		tr.On("Send", mock.Anything, gateway.EndpointIPN, n.ToMap(), true).
			Return(gatewaytest.JSON(http.StatusOK, `"VERIFIED"`), nil)

		ok, err := n.IsAuthentic(context.Background(), tr, false)

		assert.NoError(t, err)
		assert.True(t, ok)
		tr.AssertExpectations(t)
	})

	t.Run("Rejected without raise", func(t *testing.T) {
		tr := new(gatewaytest.MockTransport)
		tr.On("Send", mock.Anything, gateway.EndpointIPN, mock.Anything, true).
			Return(gatewaytest.JSON(http.StatusBadRequest, `"INVALID"`), nil)

		ok, err := newIPN(t).IsAuthentic(context.Background(), tr, false)

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Rejected with raise", func(t *testing.T) {
		tr := new(gatewaytest.MockTransport)
		tr.On("Send", mock.Anything, gateway.EndpointIPN, mock.Anything, true).
			Return(gatewaytest.JSON(http.StatusBadRequest, `"INVALID"`), nil)

		ok, err := newIPN(t).IsAuthentic(context.Background(), tr, true)

		assert.False(t, ok)
		assert.ErrorIs(t, err, gateway.ErrIPNFailed)
		assert.ErrorContains(t, err, "INVALID")
	})

	t.Run("Transport error", func(t *testing.T) {
		tr := new(gatewaytest.MockTransport)
		netErr := errors.New("timeout")
		tr.On("Send", mock.Anything, gateway.EndpointIPN, mock.Anything, true).Return(nil, netErr)

		ok, err := newIPN(t).IsAuthentic(context.Background(), tr, false)

		assert.False(t, ok)
		assert.ErrorIs(t, err, netErr)
	})

	t.Run("No transport", func(t *testing.T) {
		_, err := newIPN(t).IsAuthentic(context.Background(), nil, false)
		assert.ErrorIs(t, err, gateway.ErrNoTransport)
	})
}
