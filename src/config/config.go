package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"user-auth-service/src/logger"

	"github.com/joho/godotenv"
)

// The service always listens on this port; it is not read from the environment.
const DefaultPort uint16 = 3100

// MaxJWTMaxAge is the longest token lifetime, in seconds, that still fits in a time.Duration.
const MaxJWTMaxAge int64 = math.MaxInt64 / int64(time.Second)

const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvJWTSecret   = "JWT_SECRET_KEY"
	EnvJWTMaxAge   = "JWT_MAXAGE"
)

// Config is built once at startup and only read afterwards.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	JWTMaxAge   int64 // seconds
	Port        uint16
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// NewConfig reads the process environment and exits the process if anything is missing or malformed.
func NewConfig(log *logger.Logger) *Config {
	cfg, err := Parse(os.LookupEnv)
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
		return nil
	}

	cfg.printEnvVariables(log)
	log.Info("✅ Configuration initialized successfully")

	return cfg
}

// Parse builds a Config from lookup. Every defect found is reported in the returned error.
// Empty or whitespace-only values count as missing. JWT_MAXAGE must be a bare decimal
// number of seconds between 1 and MaxJWTMaxAge; surrounding whitespace is rejected.
func Parse(lookup LookupFunc) (*Config, error) {
	var errs []error

	databaseURL, err := required(lookup, EnvDatabaseURL)
	if err != nil {
		errs = append(errs, err)
	}

	jwtSecret, err := required(lookup, EnvJWTSecret)
	if err != nil {
		errs = append(errs, err)
	}

	var jwtMaxAge int64
	jwtMaxAgeStr, err := required(lookup, EnvJWTMaxAge)
	if err != nil {
		errs = append(errs, err)
	} else if jwtMaxAge, err = parseMaxAge(jwtMaxAgeStr); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		DatabaseURL: databaseURL,
		JWTSecret:   jwtSecret,
		JWTMaxAge:   jwtMaxAge,
		Port:        DefaultPort,
	}, nil
}

// LoadDotEnv loads a .env file into the environment when one exists.
func LoadDotEnv(log *logger.Logger, filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("No .env file found, using process environment")
			return
		}
		log.Warn("⚠️ Failed to load .env file: " + err.Error())
		return
	}
	log.Info("✅ .env file loaded")
}

// JWTExpiration returns the token lifetime as a duration.
func (c *Config) JWTExpiration() time.Duration {
	return time.Duration(c.JWTMaxAge) * time.Second
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func required(lookup LookupFunc, key string) (string, error) {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%s must be set", key)
	}
	return v, nil
}

func parseMaxAge(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer number of seconds: %w", EnvJWTMaxAge, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", EnvJWTMaxAge, n)
	}
	if n > MaxJWTMaxAge {
		return 0, fmt.Errorf("%s must not exceed %d seconds, got %d", EnvJWTMaxAge, MaxJWTMaxAge, n)
	}
	return n, nil
}

func (c *Config) printEnvVariables(log *logger.Logger) {
	log.Info("🔧 LOADED SERVICE ENVIRONMENTS")
	log.Info("🔧 DatabaseURL: " + redactDatabaseURL(c.DatabaseURL))
	log.Info("🔧 JWTSecret: ********")
	log.Info(fmt.Sprintf("🔧 JWTMaxAge: %ds", c.JWTMaxAge))
	log.Info(fmt.Sprintf("🔧 Port: %d", c.Port))
}

func redactDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return "********"
	}
	return u.Redacted()
}
