package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingMerchantID = errors.New("YENEPAY_MERCHANT_ID is required")

type Config struct {
	AppEnv     string
	MerchantID string
	Token      string
	UseSandbox bool

	HTTPTimeout time.Duration
	RateLimit   float64
	RateBurst   int

	AppPort      string
	IPNRateLimit float64
	IPNRateBurst int
}

// LoadConfig reads the configuration from the environment, after loading
// a .env file from the working directory when one exists.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:       os.Getenv("APP_ENV"),
		MerchantID:   os.Getenv("YENEPAY_MERCHANT_ID"),
		Token:        os.Getenv("YENEPAY_TOKEN"),
		UseSandbox:   isSandbox(os.Getenv("YENEPAY_ENVIRONMENT")),
		HTTPTimeout:  15 * time.Second,
		RateLimit:    0,
		RateBurst:    1,
		AppPort:      getEnv("APP_PORT", "8080"),
		IPNRateLimit: 2,
		IPNRateBurst: 5,
	}

	var errs []error

	if v := os.Getenv("YENEPAY_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("invalid YENEPAY_HTTP_TIMEOUT %q", v))
		} else {
			cfg.HTTPTimeout = d
		}
	}

	cfg.RateLimit = getEnvAsFloat("YENEPAY_RATE_LIMIT", cfg.RateLimit, &errs)
	cfg.RateBurst = getEnvAsInt("YENEPAY_RATE_BURST", cfg.RateBurst, &errs)
	cfg.IPNRateLimit = getEnvAsFloat("IPN_RATE_LIMIT", cfg.IPNRateLimit, &errs)
	cfg.IPNRateBurst = getEnvAsInt("IPN_RATE_BURST", cfg.IPNRateBurst, &errs)

	if cfg.MerchantID == "" {
		errs = append(errs, ErrMissingMerchantID)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return cfg, nil
}

// isSandbox accepts the values used by the gateway's own tooling.
func isSandbox(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "sandbox", "test", "true", "1":
		return true
	}
	return false
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		*errs = append(*errs, fmt.Errorf("invalid %s %q", key, value))
		return defaultVal
	}
	return n
}

func getEnvAsFloat(key string, defaultVal float64, errs *[]error) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		*errs = append(*errs, fmt.Errorf("invalid %s %q", key, value))
		return defaultVal
	}
	return f
}
