// Package config reads the process configuration from environment variables,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration shared by cmd/api and cmd/seed.
type Config struct {
	// Port the HTTP server listens on. PORT, default "8080".
	Port string

	// DatabaseURL is the Postgres DSN. DATABASE_URL, required.
	DatabaseURL string

	// LogLevel is one of debug, info, warn, error. LOG_LEVEL, default "info".
	LogLevel string

	// CORSOrigins lists the browser origins allowed to call the API.
	// CORS_ORIGINS (comma-separated), default the Vite dev server.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. MAX_BODY_BYTES, default 1 MiB.
	MaxBodyBytes int64

	// AutoMigrate runs pending migrations at startup. AUTO_MIGRATE, default false.
	AutoMigrate bool
}

const (
	defaultPort         = "8080"
	defaultLogLevel     = "info"
	defaultCORSOrigin   = "http://localhost:5173"
	defaultMaxBodyBytes = 1 << 20
)

// Load builds a Config from the environment. Variables already set win over
// the .env file. Every missing or unparsable value is reported in one error.
func Load() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	var e env
	cfg := Config{
		Port:         e.str("PORT", defaultPort),
		DatabaseURL:  e.required("DATABASE_URL"),
		LogLevel:     e.str("LOG_LEVEL", defaultLogLevel),
		CORSOrigins:  splitCSV(e.str("CORS_ORIGINS", defaultCORSOrigin)),
		MaxBodyBytes: e.bytes("MAX_BODY_BYTES", defaultMaxBodyBytes),
		AutoMigrate:  e.flag("AUTO_MIGRATE", false),
	}
	if len(e.problems) > 0 {
		return Config{}, fmt.Errorf("config: %s", strings.Join(e.problems, "; "))
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("config: load %s: %w", path, err)
}

// env reads variables and collects what went wrong along the way.
// Empty values count as unset.
type env struct {
	problems []string
}

func (e *env) str(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (e *env) required(key string) string {
	v := os.Getenv(key)
	if v == "" {
		e.problems = append(e.problems, key+" is required")
	}
	return v
}

func (e *env) bytes(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		e.problems = append(e.problems, fmt.Sprintf("%s: %v", key, err))
	}
	return n
}

func (e *env) flag(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.problems = append(e.problems, fmt.Sprintf("%s: %v", key, err))
	}
	return b
}

func splitCSV(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
