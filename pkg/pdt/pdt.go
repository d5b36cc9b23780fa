package pdt

import (
	"context"
	"fmt"

	"yenepay-go/internal/logger"
	"yenepay-go/pkg/gateway"

	"go.uber.org/zap"
)

const RequestType = "PDT"

// PDT is a Payment Data Transfer query: it asks the gateway for the latest
// status of a payment order.
type PDT struct {
	merchant gateway.Merchant

	MerchantOrderID string
	TransactionID   string
	UseSandbox      bool
}

// New binds a PDT request to a merchant. The token is read from the merchant
// when the request is sent.
func New(merchant gateway.Merchant, merchantOrderID, transactionID string, useSandbox bool) *PDT {
	return &PDT{
		merchant:        merchant,
		MerchantOrderID: merchantOrderID,
		TransactionID:   transactionID,
		UseSandbox:      useSandbox,
	}
}

func (p *PDT) RequestType() string { return RequestType }

func (p *PDT) Token() string {
	if p.merchant == nil {
		return ""
	}
	return p.merchant.Token()
}

func (p *PDT) ToMap() map[string]any {
	return map[string]any{
		"requestType":     RequestType,
		"pdtToken":        p.Token(),
		"transactionId":   p.TransactionID,
		"merchantOrderId": p.MerchantOrderID,
	}
}

// CheckStatus sends the query and parses the gateway's key=value answer.
func (p *PDT) CheckStatus(ctx context.Context) (*Response, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("merchant_order_id", p.MerchantOrderID),
		zap.String("transaction_id", p.TransactionID),
	)

	if p.merchant == nil || p.merchant.Transport() == nil {
		return nil, gateway.ErrNoTransport
	}

	resp, err := p.merchant.Transport().Send(ctx, gateway.EndpointPDT, p.ToMap(), p.UseSandbox)
	if err != nil {
		log.Error("PDT request failed", zap.Error(err))
		return nil, err
	}

	if !resp.OK() {
		log.Error("PDT rejected by gateway",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", resp.Raw),
		)
		return nil, gateway.NewResponseError(gateway.EndpointPDT, resp)
	}

	result := Parse(resp.Text(), p)

	log.Info("PDT status received",
		zap.String("result", result.Result()),
		zap.String("status", result.Status()),
	)

	return result, nil
}

func (p *PDT) String() string {
	return fmt.Sprintf("<PDT %s - %s>", p.MerchantOrderID, p.TransactionID)
}
