// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, database paths, mail delivery, rate
// limiting, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "portfolio-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// MailConfig defines the SMTP channels used for operator notifications.
// The primary channel uses STARTTLS on Port; the fallback channel reuses
// the same server and credentials over implicit TLS on FallbackPort.
// Delivery is disabled entirely when Username is empty.
type MailConfig struct {
	Host         string        // MAIL_HOST
	Port         int           // MAIL_PORT (STARTTLS)
	FallbackPort int           // MAIL_FALLBACK_PORT (implicit TLS); 0 disables the fallback channel
	Username     string        // MAIL_USERNAME
	Password     string        // MAIL_PASSWORD
	From         string        // MAIL_FROM (defaults to Username)
	Operator     string        // MAIL_OPERATOR notification recipient (defaults to Username)
	Timeout      time.Duration // MAIL_TIMEOUT per delivery attempt
}

// Enabled reports whether outbound mail is configured at all.
func (m MailConfig) Enabled() bool { return strings.TrimSpace(m.Username) != "" }

// RateConfig defines the request-rate limits applied per origin address.
// GlobalHourly/GlobalDaily cover every route unless a stricter per-route
// limit applies; ContactPerMinute covers POST /contact and MessagesPerHour
// covers GET /api/messages.
type RateConfig struct {
	GlobalHourly     int // RATE_GLOBAL_HOURLY
	GlobalDaily      int // RATE_GLOBAL_DAILY
	ContactPerMinute int // RATE_CONTACT_PER_MINUTE
	MessagesPerHour  int // RATE_MESSAGES_PER_HOUR
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route

	// App
	ServiceName string // reported by /health
	DBPath      string // SQLite path
	Debug       bool   // enables the /api/messages debug listing

	// Mail
	Mail MailConfig

	// Rate limiting
	Rate RateConfig

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),

		// App
		ServiceName: getenv("SERVICE_NAME", "portfolio-api"),
		DBPath:      getenv("DB_PATH", "portfolio.db"),
		Debug:       getbool("DEBUG", false),

		// Mail
		Mail: MailConfig{
			Host:         getenv("MAIL_HOST", "smtp.gmail.com"),
			Port:         getint("MAIL_PORT", 587),
			FallbackPort: getint("MAIL_FALLBACK_PORT", 465),
			Username:     getenv("MAIL_USERNAME", ""),
			Password:     getenv("MAIL_PASSWORD", ""),
			From:         getenv("MAIL_FROM", ""),
			Operator:     getenv("MAIL_OPERATOR", ""),
			Timeout:      getdur("MAIL_TIMEOUT", 15*time.Second),
		},

		// Rate limiting
		Rate: RateConfig{
			GlobalHourly:     getint("RATE_GLOBAL_HOURLY", 50),
			GlobalDaily:      getint("RATE_GLOBAL_DAILY", 200),
			ContactPerMinute: getint("RATE_CONTACT_PER_MINUTE", 10),
			MessagesPerHour:  getint("RATE_MESSAGES_PER_HOUR", 60),
		},

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "portfolio-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Username
	}
	if cfg.Mail.Operator == "" {
		cfg.Mail.Operator = cfg.Mail.Username
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if cfg.Mail.Enabled() {
		if cfg.Mail.Port <= 0 || cfg.Mail.Port > 65535 {
			return cfg, errors.New("MAIL_PORT must be a valid port")
		}
		if cfg.Mail.FallbackPort < 0 || cfg.Mail.FallbackPort > 65535 {
			return cfg, errors.New("MAIL_FALLBACK_PORT must be a valid port or 0")
		}
		if cfg.Mail.Timeout <= 0 {
			return cfg, errors.New("MAIL_TIMEOUT must be > 0")
		}
	}
	if cfg.Rate.GlobalHourly < 1 || cfg.Rate.GlobalDaily < 1 {
		return cfg, errors.New("global rate limits must be >= 1")
	}
	if cfg.Rate.ContactPerMinute < 1 || cfg.Rate.MessagesPerHour < 1 {
		return cfg, errors.New("per-route rate limits must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
