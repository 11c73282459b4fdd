package config

import (
	"os"
	"strconv"
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string

	// MercadoPago
	MPAccessToken string
	MPBaseURL     string

	// public URLs used in the payment preference
	FrontendURL string // redirect targets after payment
	BackendURL  string // webhook notification callback

	// SMTP relay for order notifications
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

func Load() Config {
	return Config{
		Addr:          getenv("ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		MPAccessToken: os.Getenv("MP_ACCESS_TOKEN"),
		MPBaseURL:     getenv("MP_BASE_URL", "https://api.mercadopago.com"),
		FrontendURL:   getenv("FRONTEND_URL", "http://localhost:3000"),
		BackendURL:    getenv("BACKEND_URL", "http://localhost:8080"),
		SMTPHost:      getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getenvInt("SMTP_PORT", 587),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		MailFrom:      os.Getenv("MAIL_FROM"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
