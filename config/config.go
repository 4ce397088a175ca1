package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Host    string
	Port    string
	GinMode string

	// Database
	DBDriver   string
	SQLitePath string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Auth
	JWTSecret          string
	TokenTTL           time.Duration
	LoginRatePerMinute int
	APIRatePerMinute   int

	// Meals
	Timezone       string
	MealCutoff     string
	CurrencySymbol string

	// Logging
	LogLevel  string
	LogFormat string

	// Desktop shell
	Desktop bool
}

func Load() *Config {
	return &Config{
		Host:    getEnv("HOST", "127.0.0.1"),
		Port:    getEnv("PORT", "8000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		SQLitePath: getEnv("SQLITE_PATH", "./data/meal_tracker.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "meal_tracker"),

		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           getEnvDuration("TOKEN_TTL", 24*time.Hour),
		LoginRatePerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", 5),
		APIRatePerMinute:   getEnvInt("API_RATE_PER_MINUTE", 120),

		Timezone:       getEnv("TIMEZONE", "Local"),
		MealCutoff:     getEnv("MEAL_CUTOFF", "10:30"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "Tk"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		Desktop: getEnvBool("DESKTOP", false),
	}
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			errs = append(errs, "SQLITE_PATH cannot be empty when DB_DRIVER=sqlite")
		}
	case "mysql":
		if c.DBHost == "" || c.DBName == "" || c.DBUser == "" {
			errs = append(errs, "DB_HOST, DB_NAME and DB_USER are required when DB_DRIVER=mysql")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid DB_DRIVER '%s': must be sqlite or mysql", c.DBDriver))
	}

	if len(c.JWTSecret) < 16 {
		errs = append(errs, "JWT_SECRET must be at least 16 characters")
	}
	if c.TokenTTL < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid TOKEN_TTL %v: must be at least 1 minute", c.TokenTTL))
	}
	if c.LoginRatePerMinute < 1 {
		errs = append(errs, fmt.Sprintf("invalid LOGIN_RATE_PER_MINUTE %d: must be at least 1", c.LoginRatePerMinute))
	}

	if c.APIRatePerMinute < 0 {
		errs = append(errs, fmt.Sprintf("invalid API_RATE_PER_MINUTE %d: must be 0 (off) or more", c.APIRatePerMinute))
	}

	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Sprintf("invalid TIMEZONE '%s': %v", c.Timezone, err))
	}
	if _, _, err := c.Cutoff(); err != nil {
		errs = append(errs, err.Error())
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid LOG_FORMAT '%s': must be text or json", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// BaseURL is where the desktop shell points the browser.
func (c *Config) BaseURL() string {
	host := c.Host
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, c.Port)
}

func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Cutoff parses MEAL_CUTOFF ("HH:MM").
func (c *Config) Cutoff() (int, int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(c.MealCutoff))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid MEAL_CUTOFF '%s': must be HH:MM", c.MealCutoff)
	}
	return t.Hour(), t.Minute(), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
