// Package services – ProjectService
//
// This file implements ProjectService, which serves the read-only project
// listing and the administrative operations exposed by the CLI: idempotent
// seeding of the default portfolio entries, bulk message clearing, and
// aggregate statistics.
package services

import (
	"context"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"

	"github.com/cbouguerba/portfolio-backend/internal/domain"
	"github.com/cbouguerba/portfolio-backend/internal/repo"
)

// ProjectService implements the use-cases around portfolio projects and
// the administrative maintenance surface.
type ProjectService struct {
	DB *gorm.DB
}

// Stats aggregates database counts for the admin stats command.
type Stats struct {
	Messages       int64
	UnreadMessages int64
	Projects       int64
}

// ListFeatured returns all projects flagged for the public listing.
func (s *ProjectService) ListFeatured(ctx context.Context) ([]domain.Project, error) {
	tr := otel.Tracer("services/ProjectService")
	ctx, span := tr.Start(ctx, "ListFeatured")
	defer span.End()

	return repo.ListFeaturedProjects(ctx, s.DB)
}

// SeedDefaults inserts the default portfolio projects, skipping any whose
// title already exists. It returns the number of projects created, so
// running it twice yields zero on the second run.
func (s *ProjectService) SeedDefaults(ctx context.Context) (int, error) {
	created := 0
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range defaultProjects {
			exists, err := repo.ProjectTitleExists(ctx, tx, p.Title)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			proj := p
			if err := repo.CreateProject(tx, &proj); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// ClearMessages deletes every stored contact message and returns the count
// removed. Confirmation is the caller's responsibility.
func (s *ProjectService) ClearMessages(ctx context.Context) (int64, error) {
	return repo.DeleteAllMessages(ctx, s.DB)
}

// GetStats returns aggregate counts for messages, unread messages, and
// projects.
func (s *ProjectService) GetStats(ctx context.Context) (Stats, error) {
	var st Stats
	var err error
	if st.Messages, err = repo.CountMessages(ctx, s.DB); err != nil {
		return st, err
	}
	if st.UnreadMessages, err = repo.CountUnreadMessages(ctx, s.DB); err != nil {
		return st, err
	}
	if st.Projects, err = repo.CountProjects(ctx, s.DB); err != nil {
		return st, err
	}
	return st, nil
}

// defaultProjects are the portfolio entries installed by the seed command.
var defaultProjects = []domain.Project{
	{
		Title:        "Enterprise AI Platform",
		Description:  "A comprehensive AI platform that enables businesses to integrate machine learning models into their workflows with minimal setup.",
		Technologies: "Python,TensorFlow,React,AWS",
		GithubURL:    "https://github.com/chouaib/ai-platform",
		LiveURL:      "https://ai-platform.demo.com",
		ImageURL:     "https://images.unsplash.com/photo-1555066931-4365d14bab8c",
		Featured:     true,
	},
	{
		Title:        "E-commerce Solution",
		Description:  "A full-featured e-commerce platform with inventory management, payment processing, and analytics dashboard.",
		Technologies: "Node.js,MongoDB,React,Stripe",
		GithubURL:    "https://github.com/chouaib/ecommerce",
		LiveURL:      "https://ecommerce.demo.com",
		ImageURL:     "https://images.unsplash.com/photo-1551650975-87deedd944c3",
		Featured:     true,
	},
	{
		Title:        "Data Analytics Dashboard",
		Description:  "An interactive dashboard for visualizing complex datasets with real-time updates and predictive analytics.",
		Technologies: "Python,D3.js,Flask,PostgreSQL",
		GithubURL:    "https://github.com/chouaib/analytics-dashboard",
		LiveURL:      "https://analytics.demo.com",
		ImageURL:     "https://images.unsplash.com/photo-1551288049-bebda4e38f71",
		Featured:     true,
	},
}
