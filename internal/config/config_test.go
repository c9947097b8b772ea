package config

import (
	"testing"
	"time"
)

// clearEnv unsets every variable the loader reads so defaults apply.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "READ_TIMEOUT", "READ_HEADER_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT",
		"MAX_HEADER_BYTES", "GIN_MODE", "LOG_LEVEL", "LOG_PRETTY", "SWAGGER_ENABLED",
		"SERVICE_NAME", "DB_PATH", "DEBUG",
		"MAIL_HOST", "MAIL_PORT", "MAIL_FALLBACK_PORT", "MAIL_USERNAME", "MAIL_PASSWORD",
		"MAIL_FROM", "MAIL_OPERATOR", "MAIL_TIMEOUT",
		"RATE_GLOBAL_HOURLY", "RATE_GLOBAL_DAILY", "RATE_CONTACT_PER_MINUTE", "RATE_MESSAGES_PER_HOUR",
		"CORS_ALLOWED_ORIGINS", "ENABLE_HSTS", "HSTS_MAX_AGE",
		"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_INSECURE",
		"OTEL_SERVICE_NAME", "OTEL_TRACES_SAMPLER_ARG",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("gin mode = %q", cfg.GinMode)
	}
	if cfg.DBPath != "portfolio.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if cfg.Debug {
		t.Fatalf("debug must default off")
	}
	if cfg.Rate.GlobalHourly != 50 || cfg.Rate.GlobalDaily != 200 {
		t.Fatalf("global rates = %d/%d", cfg.Rate.GlobalHourly, cfg.Rate.GlobalDaily)
	}
	if cfg.Rate.ContactPerMinute != 10 || cfg.Rate.MessagesPerHour != 60 {
		t.Fatalf("route rates = %d/%d", cfg.Rate.ContactPerMinute, cfg.Rate.MessagesPerHour)
	}
	if cfg.Mail.Enabled() {
		t.Fatalf("mail must be disabled without credentials")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "warning")
	t.Setenv("GIN_MODE", "bogus")
	t.Setenv("DEBUG", "true")
	t.Setenv("READ_TIMEOUT", "5s")
	t.Setenv("RATE_CONTACT_PER_MINUTE", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("warning must normalize to warn, got %q", cfg.LogLevel)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("unknown gin mode must normalize to release, got %q", cfg.GinMode)
	}
	if !cfg.Debug {
		t.Fatalf("debug not applied")
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Fatalf("read timeout = %v", cfg.ReadTimeout)
	}
	if cfg.Rate.ContactPerMinute != 3 {
		t.Fatalf("contact rate = %d", cfg.Rate.ContactPerMinute)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_MailDefaultsFromUsername(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAIL_USERNAME", "owner@example.com")
	t.Setenv("MAIL_PASSWORD", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Mail.Enabled() {
		t.Fatalf("mail should be enabled with a username")
	}
	if cfg.Mail.From != "owner@example.com" {
		t.Fatalf("from = %q", cfg.Mail.From)
	}
	if cfg.Mail.Operator != "owner@example.com" {
		t.Fatalf("operator = %q", cfg.Mail.Operator)
	}
	if cfg.Mail.Port != 587 || cfg.Mail.FallbackPort != 465 {
		t.Fatalf("ports = %d/%d", cfg.Mail.Port, cfg.Mail.FallbackPort)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		k, v string
	}{
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"zero hourly rate", "RATE_GLOBAL_HOURLY", "0"},
		{"zero contact rate", "RATE_CONTACT_PER_MINUTE", "0"},
		{"sample ratio above one", "OTEL_TRACES_SAMPLER_ARG", "1.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.k, tc.v)
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s=%s", tc.k, tc.v)
			}
		})
	}
}

func TestLoad_BadMailPortRejectedOnlyWhenEnabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAIL_PORT", "-1")

	// Mail disabled: port is not validated.
	if _, err := Load(); err != nil {
		t.Fatalf("disabled mail must not validate ports: %v", err)
	}

	t.Setenv("MAIL_USERNAME", "owner@example.com")
	if _, err := Load(); err == nil {
		t.Fatalf("expected invalid MAIL_PORT error when mail enabled")
	}
}

func TestGetBool_Values(t *testing.T) {
	clearEnv(t)
	for _, v := range []string{"1", "true", "YES", "on"} {
		t.Setenv("DEBUG", v)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if !cfg.Debug {
			t.Fatalf("%q should parse as true", v)
		}
	}
	t.Setenv("DEBUG", "off")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Debug {
		t.Fatalf("off should parse as false")
	}
}
