// Page HTTP handlers.
//
// This file renders the HTML surface:
//   - GET /        (landing page with featured projects)
//   - GET /health  (JSON liveness payload)
//   - 404 / 500    (generic error pages)
//
// Templates are embedded at build time (see the web package) and installed
// on the Gin engine by the router.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cbouguerba/portfolio-backend/internal/domain"
)

// tagCaser display-cases technology tags on the landing page ("react" →
// "React"). Tags are stored as entered; casing is presentation only.
var tagCaser = cases.Title(language.English)

// projectView is the template model for one featured project.
type projectView struct {
	Title        string
	Description  string
	Technologies []string
	GithubURL    string
	LiveURL      string
	ImageURL     string
}

// Index renders the landing page with all featured projects.
func (h *Handlers) Index(c *gin.Context) {
	projects, err := h.projectSvc.ListFeatured(c.Request.Context())
	if err != nil {
		h.InternalErrorPage(c)
		return
	}

	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, toProjectView(p))
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"AppName":     h.opts.AppName,
		"CurrentYear": time.Now().UTC().Year(),
		"Projects":    views,
	})
}

// toProjectView maps a project to its template model with display-cased
// technology tags.
func toProjectView(p domain.Project) projectView {
	tags := p.TechnologyList()
	pretty := make([]string, 0, len(tags))
	for _, t := range tags {
		// Keep tags that already carry internal capitals (Node.js,
		// PostgreSQL) as authored; only lift all-lowercase ones.
		if t == strings.ToLower(t) {
			t = tagCaser.String(t)
		}
		pretty = append(pretty, t)
	}
	return projectView{
		Title:        p.Title,
		Description:  p.Description,
		Technologies: pretty,
		GithubURL:    p.GithubURL,
		LiveURL:      p.LiveURL,
		ImageURL:     p.ImageURL,
	}
}

// HealthResponse is the JSON liveness payload.
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Timestamp string `json:"timestamp" example:"2025-01-02T15:04:05Z"`
	Service   string `json:"service" example:"portfolio-api"`
}

// Health godoc
// @ID          health
// @Summary     Liveness check
// @Description Reports service health; always succeeds while the process is up.
// @Tags        Health
// @Produce     json
//
// @Success     200  {object}  handlers.HealthResponse
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	ok(c, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   h.opts.ServiceName,
	})
}

// NotFoundPage serves the generic 404 surface. API paths get the JSON
// envelope; everything else gets the rendered error page.
func (h *Handlers) NotFoundPage(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	c.HTML(http.StatusNotFound, "404.html", gin.H{
		"AppName": h.opts.AppName,
	})
}

// InternalErrorPage serves the generic 500 surface. Any open per-request
// transaction has already been rolled back by the service layer before
// control reaches here.
func (h *Handlers) InternalErrorPage(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		fail(c, http.StatusInternalServerError, "internal server error")
		return
	}
	c.HTML(http.StatusInternalServerError, "500.html", gin.H{
		"AppName": h.opts.AppName,
	})
}
