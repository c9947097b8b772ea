// Package handlers provides HTTP handler implementations for the public
// API. Handlers are transport-thin: they validate and normalize inputs,
// delegate to application services, and translate results into HTTP
// responses.
package handlers

import (
	"context"

	"gorm.io/gorm"

	"github.com/cbouguerba/portfolio-backend/internal/domain"
	"github.com/cbouguerba/portfolio-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// ContactService defines the submission pipeline consumed by the contact
// handler.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ContactService interface {
	// Submit validates, scores, persists, and conditionally notifies.
	Submit(ctx context.Context, in services.SubmitInput) (*domain.Message, error)
}

// ProjectService defines the read side of the portfolio listing.
type ProjectService interface {
	// ListFeatured returns the projects flagged for public display.
	ListFeatured(ctx context.Context) ([]domain.Project, error)
}

//
// Handler wiring
//

// Options carries construction-time settings for the HTTP handlers.
type Options struct {
	// Debug enables the /api/messages listing; it must be off in
	// production, where the route answers 403.
	Debug bool
	// ServiceName is reported by the health endpoint.
	ServiceName string
	// AppName is injected into rendered HTML pages.
	AppName string
}

// Handlers groups the HTTP endpoints for pages, contact submissions,
// projects, and the debug message listing. It depends on abstract service
// interfaces to keep transport concerns separate from business logic; the
// DB handle is used only by the read-only debug listing.
type Handlers struct {
	contactSvc ContactService
	projectSvc ProjectService
	db         *gorm.DB
	opts       Options
}

// New constructs a Handlers instance bound to the given services.
func New(contactSvc ContactService, projectSvc ProjectService, db *gorm.DB, opts Options) *Handlers {
	if opts.AppName == "" {
		opts.AppName = "Portfolio"
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "portfolio-api"
	}
	return &Handlers{
		contactSvc: contactSvc,
		projectSvc: projectSvc,
		db:         db,
		opts:       opts,
	}
}
