package ipn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"yenepay-go/internal/logger"
	"yenepay-go/pkg/gateway"

	"go.uber.org/zap"
)

const maxBodySize = 1 << 20 // 1MB

// Notifier receives every notification that the gateway confirmed.
type Notifier func(ctx context.Context, n *IPN) error

// Handler serves the merchant's IPN url: it parses the posted notification,
// verifies it with the gateway and hands it to the notifier. The merchant's
// transport and sandbox flag are read on every request.
type Handler struct {
	merchant gateway.Merchant
	notify   Notifier
}

func NewHandler(merchant gateway.Merchant, notify Notifier) *Handler {
	return &Handler{
		merchant: merchant,
		notify:   notify,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx)

	if h.merchant == nil {
		log.Error("IPN handler has no merchant")
		http.Error(w, "handler not configured", http.StatusInternalServerError)
		return
	}

	// Step 1 – Read the url-encoded body
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		log.Warn("Failed to read IPN body", zap.Error(err))
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	notification, err := FromQueryString(string(body))
	if err != nil {
		log.Warn("Invalid IPN payload", zap.Error(err))
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	notification.UseSandbox = h.merchant.UseSandbox()

	// Step 2 – Verify with the gateway
	ok, err := notification.IsAuthentic(ctx, h.merchant.Transport(), true)
	if err != nil {
		if errors.Is(err, gateway.ErrIPNFailed) {
			http.Error(w, "notification is not authentic", http.StatusUnauthorized)
			return
		}
		http.Error(w, "failed to verify notification", http.StatusBadGateway)
		return
	}
	if !ok {
		http.Error(w, "notification is not authentic", http.StatusUnauthorized)
		return
	}

	// Step 3 – Hand over to the merchant
	if h.notify != nil {
		if err := h.notify(ctx, notification); err != nil {
			log.Error("Failed to handle IPN",
				zap.String("merchant_order_id", notification.MerchantOrderID),
				zap.Error(err),
			)
			http.Error(w, "failed to handle notification", http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}
