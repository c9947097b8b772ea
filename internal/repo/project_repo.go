// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Project
// model. Projects are written only by the administrative seeding command;
// the HTTP surface reads them.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cbouguerba/portfolio-backend/internal/domain"
)

// CreateProject inserts a new project row.
func CreateProject(db *gorm.DB, p *domain.Project) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return db.Create(p).Error
}

// ListFeaturedProjects returns all projects flagged for the public listing,
// ordered by creation time ascending so display order is stable.
func ListFeaturedProjects(ctx context.Context, db *gorm.DB) ([]domain.Project, error) {
	var out []domain.Project
	err := db.WithContext(ctx).
		Where("featured = ?", true).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// CountProjects uses a raw COUNT so a missing table surfaces as an error.
func CountProjects(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw("SELECT COUNT(*) FROM projects").Scan(&total).Error
	return total, err
}

// ProjectTitleExists reports whether any project already carries the title.
// Seeding relies on this for idempotence.
func ProjectTitleExists(ctx context.Context, db *gorm.DB, title string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Project{}).
		Where("title = ?", title).
		Count(&count).Error
	return count > 0, err
}
