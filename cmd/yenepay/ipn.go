package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yenepay-go/internal/logger"
	"yenepay-go/internal/middleware"
	"yenepay-go/pkg/ipn"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newIPNCmd(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ipn",
		Short: "Instant payment notifications",
	}

	cmd.AddCommand(newIPNVerifyCmd(load))
	cmd.AddCommand(newIPNServeCmd(load))

	return cmd
}

func newIPNVerifyCmd(load loader) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a received notification with the gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			n, ok, err := a.client.VerifyIPN(cmd.Context(), body, false)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s authentic=%t\n", n, ok)
			return nil
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "url-encoded notification body")
	_ = cmd.MarkFlagRequired("body")

	return cmd
}

func newIPNServeCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Listen for notifications on POST /ipn",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			limiter := middleware.NewIPRateLimiter(rate.Limit(a.cfg.IPNRateLimit), a.cfg.IPNRateBurst)
			go limiter.Run(ctx)

			router := setupRouter(a.client.IPNHandler(logNotification), limiter)

			return serve(ctx, ":"+a.cfg.AppPort, router)
		},
	}
}

// logNotification is the default notifier: it records every verified payment.
func logNotification(ctx context.Context, n *ipn.IPN) error {
	logger.FromCtx(ctx).Info("Payment notification received",
		zap.String("merchant_order_id", n.MerchantOrderID),
		zap.String("transaction_id", n.TransactionID),
		zap.String("status", n.Status),
		zap.Stringer("total_amount", n.TotalAmount),
		zap.String("currency", n.Currency),
	)
	return nil
}

func setupRouter(ipnHandler http.Handler, limiter *middleware.IPRateLimiter) *chi.Mux {
	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.With(limiter.Handler).Post("/ipn", ipnHandler.ServeHTTP)

	return r
}

func serve(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("IPN listener started", zap.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.L().Info("Shutting down IPN listener")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
