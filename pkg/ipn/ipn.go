package ipn

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"yenepay-go/internal/logger"
	"yenepay-go/internal/utils"
	"yenepay-go/pkg/gateway"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrInvalidNotification = errors.New("invalid payment notification")

// IPN is an Instant Payment Notification as posted by the gateway to the
// merchant's IPN url.
type IPN struct {
	TotalAmount     decimal.Decimal
	BuyerID         string
	MerchantID      string
	MerchantOrderID string
	MerchantCode    string
	TransactionID   string
	TransactionCode string
	Status          string
	Currency        string
	Signature       string

	UseSandbox bool

	// amount exactly as received, so verification echoes it back unchanged
	rawTotalAmount string
}

// ToMap returns the notification with wire field names, as sent back to the
// gateway for verification.
func (n *IPN) ToMap() map[string]any {
	return map[string]any{
		"totalAmount":     n.totalAmountText(),
		"buyerId":         n.BuyerID,
		"merchantOrderId": n.MerchantOrderID,
		"merchantId":      n.MerchantID,
		"merchantCode":    n.MerchantCode,
		"transactionId":   n.TransactionID,
		"status":          n.Status,
		"transactionCode": n.TransactionCode,
		"currency":        n.Currency,
		"signature":       n.Signature,
	}
}

// IsAuthentic asks the gateway whether the notification is genuine. With
// raiseOnFailure a rejected notification also returns an error matching
// gateway.ErrIPNFailed. Transport failures are always returned.
func (n *IPN) IsAuthentic(ctx context.Context, t gateway.Transport, raiseOnFailure bool) (bool, error) {
	if t == nil {
		return false, gateway.ErrNoTransport
	}

	log := logger.FromCtx(ctx).With(
		zap.String("merchant_order_id", n.MerchantOrderID),
		zap.String("transaction_id", n.TransactionID),
		zap.String("status", n.Status),
	)

	resp, err := t.Send(ctx, gateway.EndpointIPN, n.ToMap(), n.UseSandbox)
	if err != nil {
		log.Error("IPN verification request failed", zap.Error(err))
		return false, err
	}

	if resp.OK() {
		log.Info("IPN verified")
		return true, nil
	}

	log.Warn("IPN rejected by gateway",
		zap.Int("status_code", resp.StatusCode),
		zap.ByteString("response", resp.Raw),
	)
	if raiseOnFailure {
		return false, gateway.NewResponseError(gateway.EndpointIPN, resp)
	}
	return false, nil
}

func (n *IPN) totalAmountText() string {
	if n.rawTotalAmount != "" {
		if d, err := decimal.NewFromString(n.rawTotalAmount); err == nil && d.Equal(n.TotalAmount) {
			return n.rawTotalAmount
		}
	}
	return n.TotalAmount.String()
}

func (n *IPN) String() string {
	return fmt.Sprintf("<IPN %s - %s %s>", n.MerchantOrderID, n.TransactionID, n.Status)
}

// FromQueryString builds an IPN from a url-encoded body such as
// "TotalAmount=50.00&BuyerId=...&Status=Paid". Keys are matched after
// snake_case conversion; unknown keys are ignored.
func FromQueryString(content string) (*IPN, error) {
	values, err := url.ParseQuery(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotification, err)
	}

	n := &IPN{}
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		value := vals[len(vals)-1]

		switch utils.ToSnakeCase(key) {
		case "total_amount":
			amount, err := decimal.NewFromString(value)
			if err != nil {
				return nil, fmt.Errorf("%w: total amount %q", ErrInvalidNotification, value)
			}
			n.TotalAmount = amount
			n.rawTotalAmount = value
		case "buyer_id":
			n.BuyerID = value
		case "merchant_id":
			n.MerchantID = value
		case "merchant_order_id":
			n.MerchantOrderID = value
		case "merchant_code":
			n.MerchantCode = value
		case "transaction_id":
			n.TransactionID = value
		case "transaction_code":
			n.TransactionCode = value
		case "status":
			n.Status = value
		case "currency":
			n.Currency = value
		case "signature":
			n.Signature = value
		default:
			logger.L().Debug("Ignoring unknown IPN field", zap.String("field", key))
		}
	}

	return n, nil
}
