package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the web process needs, loaded once at startup.
type Config struct {
	Env  string // dev|prod
	Addr string

	DBDSN string

	CookieSecret      []byte
	SessionCookieName string
	FlashCookieName   string
	SecureCookies     bool
	SessionTTL        time.Duration

	MailFrom     string
	MailFromName string
	SMTP         SMTPConfig

	// uploads resolved by storage.FromEnv; kept out of this struct
}

type SMTPConfig struct {
	Host          string
	Port          string
	User          string
	Pass          string
	TLSMode       string // "", "tls", "starttls"
	SkipVerifyTLS bool
}

// Load reads .env (if present) and builds the config from environment
// variables. Only DB_DSN and COOKIE_SECRET are hard requirements.
func Load() (Config, error) {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		return Config{}, fmt.Errorf("config: DB_DSN environment variable is required")
	}

	secret := os.Getenv("COOKIE_SECRET")
	if secret == "" {
		return Config{}, fmt.Errorf("config: COOKIE_SECRET environment variable is required")
	}

	env := envOr("APP_ENV", "dev")

	cfg := Config{
		Env:  env,
		Addr: envOr("HTTP_ADDR", ":8080"),

		DBDSN: dsn,

		CookieSecret:      []byte(secret),
		SessionCookieName: envOr("SESSION_COOKIE", "sc_session"),
		FlashCookieName:   envOr("FLASH_COOKIE", "sc_flash"),
		SecureCookies:     env == "prod",
		SessionTTL:        durationOr("SESSION_TTL", 12*time.Hour),

		MailFrom:     envOr("MAIL_FROM", "no-reply@localhost"),
		MailFromName: envOr("MAIL_FROM_NAME", "Short Courses Admin"),
		SMTP: SMTPConfig{
			Host:          os.Getenv("SMTP_HOST"),
			Port:          envOr("SMTP_PORT", "1025"),
			User:          os.Getenv("SMTP_USER"),
			Pass:          os.Getenv("SMTP_PASS"),
			TLSMode:       os.Getenv("SMTP_TLS_MODE"),
			SkipVerifyTLS: boolOr("SMTP_SKIP_VERIFY_TLS", false),
		},
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationOr(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func boolOr(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
