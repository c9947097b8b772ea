// Project HTTP handlers.
//
// This file exposes the read-only project listing:
//   - GET /api/projects  (JSON array of featured projects)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cbouguerba/portfolio-backend/internal/domain"
)

// ProjectResponse is the JSON shape of one featured project.
type ProjectResponse struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	GithubURL    string   `json:"github_url"`
	LiveURL      string   `json:"live_url"`
	ImageURL     string   `json:"image_url"`
}

// toProjectResponse maps a domain project to its API shape, deriving the
// technologies slice from the stored delimited string.
func toProjectResponse(p domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Technologies: p.TechnologyList(),
		GithubURL:    p.GithubURL,
		LiveURL:      p.LiveURL,
		ImageURL:     p.ImageURL,
	}
}

// ListProjects godoc
// @ID          listProjects
// @Summary     List featured projects
// @Description Returns all portfolio projects flagged for public display.
// @Tags        Projects
// @Produce     json
//
// @Success     200  {array}   handlers.ProjectResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/projects [get]
func (h *Handlers) ListProjects(c *gin.Context) {
	projects, err := h.projectSvc.ListFeatured(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not load projects")
		return
	}

	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	ok(c, http.StatusOK, out)
}
