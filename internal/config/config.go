package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisPass string
	RedisDB   int

	IdempTTLSecs int
	AutoMigrate  bool

	JWTSecret     string
	JWTTTLMins    int
	ResetTTLMins  int
	LedgerAPIURL  string
	LedgerTimeout time.Duration
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the environment. A .env file in the working directory is
// loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "ledger"),
		MySQLUser: getenv("MYSQL_USER", "ledger"),
		MySQLPass: getenv("MYSQL_PASS", "ledger"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTLMins:    getint("JWT_TTL_MINUTES", 480),
		ResetTTLMins:  getint("RESET_TTL_MINUTES", 30),
		LedgerAPIURL:  getenv("LEDGER_API_URL", "http://localhost:8080"),
		LedgerTimeout: time.Duration(getint("LEDGER_TIMEOUT_SECONDS", 10)) * time.Second,
	}
	if v := os.Getenv("AUTO_MIGRATE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AutoMigrate = b
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.JWTTTLMins <= 0 || c.ResetTTLMins <= 0 {
		return errors.New("JWT_TTL_MINUTES and RESET_TTL_MINUTES must be positive")
	}
	return nil
}

// ValidateClient checks only what the console needs.
func (c *Config) ValidateClient() error {
	if c.LedgerAPIURL == "" {
		return errors.New("missing LEDGER_API_URL")
	}
	if c.LedgerTimeout <= 0 {
		return errors.New("LEDGER_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

func (c *Config) JWTTTL() time.Duration   { return time.Duration(c.JWTTTLMins) * time.Minute }
func (c *Config) ResetTTL() time.Duration { return time.Duration(c.ResetTTLMins) * time.Minute }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
