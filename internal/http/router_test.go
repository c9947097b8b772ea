package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cbouguerba/portfolio-backend/internal/config"
	"github.com/cbouguerba/portfolio-backend/internal/domain"
	"github.com/cbouguerba/portfolio-backend/internal/repo"
)

func newRouterDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Message{}, &domain.Project{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testConfig() config.Config {
	return config.Config{
		ServiceName: "portfolio-api",
		GinMode:     gin.TestMode,
		Rate: config.RateConfig{
			GlobalHourly:     100,
			GlobalDaily:      200,
			ContactPerMinute: 3,
			MessagesPerHour:  60,
		},
		Security: config.SecurityConfig{},
		OTEL:     config.OTELConfig{ServiceName: "portfolio-backend"},
	}
}

func newAppRouter(t *testing.T, cfg config.Config) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newRouterDB(t)
	r := gin.New()
	RegisterRoutes(r, db, nil, cfg)
	return r, db
}

func get(r *gin.Engine, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if ip != "" {
		req.RemoteAddr = ip + ":40000"
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postContact(r *gin.Engine, ip string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if ip != "" {
		req.RemoteAddr = ip + ":40000"
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func contactForm(subject string) url.Values {
	return url.Values{
		"name":    {"Jane Doe"},
		"email":   {"jane@example.com"},
		"subject": {subject},
		"message": {"Hello, I would like to discuss a potential project."},
	}
}

func TestRouter_HealthEndpoint(t *testing.T) {
	r, _ := newAppRouter(t, testConfig())

	w := get(r, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" || body["service"] != "portfolio-api" {
		t.Fatalf("unexpected payload: %v", body)
	}
}

func TestRouter_ContactSubmissionPersists(t *testing.T) {
	r, db := newAppRouter(t, testConfig())

	w := postContact(r, "203.0.113.9", contactForm("Project inquiry"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	msgs, err := repo.ListRecentMessages(context.Background(), db, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 stored message, got %d", len(msgs))
	}
	if msgs[0].IPAddress != "203.0.113.9" {
		t.Fatalf("ip = %q", msgs[0].IPAddress)
	}
}

func TestRouter_ContactValidation400(t *testing.T) {
	r, _ := newAppRouter(t, testConfig())

	form := contactForm("hey") // subject too short
	w := postContact(r, "203.0.113.9", form)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"success":false`) {
		t.Fatalf("missing error envelope: %s", w.Body.String())
	}
}

func TestRouter_ContactRateLimited(t *testing.T) {
	r, _ := newAppRouter(t, testConfig())

	for i := 0; i < 3; i++ {
		if w := postContact(r, "203.0.113.5", contactForm(fmt.Sprintf("Subject %d ok", i))); w.Code != http.StatusOK {
			t.Fatalf("request %d: %d (%s)", i, w.Code, w.Body.String())
		}
	}
	w := postContact(r, "203.0.113.5", contactForm("One too many"))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if !strings.Contains(w.Body.String(), "too many requests") {
		t.Fatalf("unexpected 429 body: %s", w.Body.String())
	}

	// Other endpoints are not affected by the contact limiter.
	if w := get(r, "/health", "203.0.113.5"); w.Code != http.StatusOK {
		t.Fatalf("health blocked by contact limiter: %d", w.Code)
	}
}

func TestRouter_ProjectsEndpoint(t *testing.T) {
	r, db := newAppRouter(t, testConfig())

	p := &domain.Project{Title: "Shown", Description: "d", Featured: true}
	if err := repo.CreateProject(db, p); err != nil {
		t.Fatalf("seed: %v", err)
	}
	hidden := &domain.Project{Title: "Hidden", Description: "d"}
	if err := repo.CreateProject(db, hidden); err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := get(r, "/api/projects", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Shown") || strings.Contains(w.Body.String(), "Hidden") {
		t.Fatalf("unexpected listing: %s", w.Body.String())
	}
}

func TestRouter_MessagesForbiddenByDefault(t *testing.T) {
	r, _ := newAppRouter(t, testConfig())

	w := get(r, "/api/messages", "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestRouter_MessagesAvailableInDebug(t *testing.T) {
	cfg := testConfig()
	cfg.Debug = true
	r, db := newAppRouter(t, cfg)

	m := &domain.Message{Name: "n", Email: "n@example.com", Subject: "subject", Body: "body text long enough", CreatedAt: time.Now().UTC()}
	if err := repo.CreateMessage(db, m); err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := get(r, "/api/messages", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"email":"n@example.com"`) {
		t.Fatalf("unexpected listing: %s", w.Body.String())
	}
}

func TestRouter_LandingPage(t *testing.T) {
	r, _ := newAppRouter(t, testConfig())

	w := get(r, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	r, _ := newAppRouter(t, testConfig())

	// Generate one observed request first.
	_ = get(r, "/health", "")

	w := get(r, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "portfolio_http_requests_total") {
		t.Fatalf("request counter missing from scrape")
	}
}

func TestRouter_NotFoundFallbacks(t *testing.T) {
	r, _ := newAppRouter(t, testConfig())

	// API path: JSON envelope.
	w := get(r, "/api/unknown", "")
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"success":false`) {
		t.Fatalf("api 404 = %d %s", w.Code, w.Body.String())
	}

	// Site path: HTML page.
	w = get(r, "/unknown", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("site 404 = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r, _ := newAppRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodDelete, "/contact", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	r, _ := newAppRouter(t, testConfig())

	w := get(r, "/health", "")
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID on every response")
	}
}

func TestRouter_CORSAllowAllByDefault(t *testing.T) {
	r, _ := newAppRouter(t, testConfig())

	w := get(r, "/health", "")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("ACAO = %q, want *", got)
	}
}
