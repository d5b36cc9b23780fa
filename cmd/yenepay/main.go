package main

import (
	"fmt"
	"os"

	"yenepay-go/internal/config"
	"yenepay-go/internal/logger"
	"yenepay-go/pkg/client"
)

// app is what every command needs once the environment is loaded.
type app struct {
	cfg    *config.Config
	client *client.Client
}

type loader func() (*app, error)

func loadApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.AppEnv)

	c, err := client.FromConfig(client.Config{
		MerchantID:  cfg.MerchantID,
		Token:       cfg.Token,
		UseSandbox:  cfg.UseSandbox,
		HTTPTimeout: cfg.HTTPTimeout,
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
	})
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, client: c}, nil
}

func main() {
	defer logger.Sync()

	if err := newRootCmd(loadApp).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
