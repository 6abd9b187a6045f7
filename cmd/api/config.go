package main

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Port        string
	DatabaseURL string

	PayPalClientID     string
	PayPalClientSecret string
	PayPalMode         string // "sandbox" or "live"
	SettlementCurrency string

	ResendAPIKey string
	EmailFrom    string
	EmailReplyTo string
	EmailNotify  string

	JWTSecret         string
	AdminPasswordHash string
	CronSecret        string

	Production bool
}

func loadConfig() (Config, error) {
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		PayPalClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),
		PayPalMode:         getEnv("PAYPAL_MODE", "sandbox"),
		SettlementCurrency: getEnv("SETTLEMENT_CURRENCY", "USD"),
		ResendAPIKey:       os.Getenv("RESEND_API_KEY"),
		EmailFrom:          getEnv("EMAIL_FROM", "Gift of Hope <receipt@giftofhope.online>"),
		EmailReplyTo:       getEnv("EMAIL_REPLY_TO", "support@giftofhope.online"),
		EmailNotify:        getEnv("EMAIL_NOTIFY", "support@giftofhope.online"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AdminPasswordHash:  os.Getenv("ADMIN_PASSWORD"),
		CronSecret:         os.Getenv("CRON_SECRET"),
		Production:         os.Getenv("APP_ENV") == "production",
	}

	var missing []string
	for _, v := range []struct{ key, val string }{
		{"DATABASE_URL", cfg.DatabaseURL},
		{"PAYPAL_CLIENT_ID", cfg.PayPalClientID},
		{"PAYPAL_CLIENT_SECRET", cfg.PayPalClientSecret},
		{"JWT_SECRET", cfg.JWTSecret},
		{"ADMIN_PASSWORD", cfg.AdminPasswordHash},
	} {
		if v.val == "" {
			missing = append(missing, v.key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
