package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// captureLogs swaps the global logger for one writing into a buffer and
// restores it when the test ends.
func captureLogs(t *testing.T) *strings.Builder {
	t.Helper()
	var buf strings.Builder
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func serveRedacted(t *testing.T, mutate func(*http.Request)) string {
	t.Helper()
	buf := captureLogs(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RedactingLogger(RedactOptions{MaskHeaders: []string{"X-Api-Key"}}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping?email=jane@example.com", nil)
	if mutate != nil {
		mutate(req)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
	return buf.String()
}

func TestRedactingLogger_ScrubsEmailFromQuery(t *testing.T) {
	out := serveRedacted(t, nil)
	if strings.Contains(out, "jane@example.com") {
		t.Fatalf("email leaked into logs: %s", out)
	}
	if !strings.Contains(out, "[REDACTED:email]") {
		t.Fatalf("expected email redaction marker: %s", out)
	}
}

func TestRedactingLogger_MasksSensitiveHeaders(t *testing.T) {
	out := serveRedacted(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer secret-token")
		req.Header.Set("X-Api-Key", "key-value-42")
	})
	if strings.Contains(out, "secret-token") || strings.Contains(out, "key-value-42") {
		t.Fatalf("masked header value leaked: %s", out)
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Fatalf("expected header mask marker: %s", out)
	}
}

func TestRedactingLogger_ScrubsPhoneNumbers(t *testing.T) {
	out := serveRedacted(t, func(req *http.Request) {
		req.Header.Set("X-Callback", "call me at 212-555-1212 please")
	})
	if strings.Contains(out, "212-555-1212") {
		t.Fatalf("phone number leaked into logs: %s", out)
	}
}

func TestRedactingLogger_EmitsRequestLine(t *testing.T) {
	out := serveRedacted(t, nil)
	if !strings.Contains(out, "http_request") {
		t.Fatalf("expected http_request entry: %s", out)
	}
	if !strings.Contains(out, `"method":"GET"`) || !strings.Contains(out, `"status":200`) {
		t.Fatalf("missing request metadata: %s", out)
	}
}
