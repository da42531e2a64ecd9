package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const defaultDatabaseDSN = "host=localhost port=5432 dbname=lumina_bank user=postgres password=postgres sslmode=disable"
const defaultHTTPAddr = ":3001"
const defaultTokenLifetime = time.Hour

// Config carries every process-wide setting. It is built once in main and
// injected into constructors; nothing in the engine reads the environment.
type Config struct {
	DatabaseDSN   string
	MigrationsDir string
	HTTPAddr      string
	JWTSecret     string
	TokenLifetime time.Duration
	// CryptoKey is the 32-byte hex key used for document field encryption.
	CryptoKey string
	// RedisAddr enables the pix key details cache when non-empty.
	RedisAddr string
}

func Load() (Config, error) {
	dsn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if dsn == "" {
		dsn = defaultDatabaseDSN
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}

	cryptoKey := strings.TrimSpace(os.Getenv("CRYPTO_SECRET_KEY"))
	if cryptoKey == "" {
		return Config{}, fmt.Errorf("CRYPTO_SECRET_KEY must be set to a 32-byte hex string")
	}

	httpAddr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if httpAddr == "" {
		httpAddr = defaultHTTPAddr
	}

	tokenLifetime := defaultTokenLifetime
	if raw := strings.TrimSpace(os.Getenv("JWT_EXPIRES_IN")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse JWT_EXPIRES_IN: %w", err)
		}
		tokenLifetime = parsed
	}

	return Config{
		DatabaseDSN:   dsn,
		MigrationsDir: "migrations",
		HTTPAddr:      httpAddr,
		JWTSecret:     jwtSecret,
		TokenLifetime: tokenLifetime,
		CryptoKey:     cryptoKey,
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
	}, nil
}
