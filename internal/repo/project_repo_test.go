package repo

import (
	"context"
	"testing"

	"github.com/cbouguerba/portfolio-backend/internal/domain"
	"gorm.io/gorm"
)

func seedProject(t *testing.T, db *gorm.DB, title string, featured bool) *domain.Project {
	t.Helper()
	p := &domain.Project{
		Title:       title,
		Description: "description for " + title,
		Featured:    featured,
	}
	if err := CreateProject(db, p); err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func TestListFeaturedProjects_FiltersAndOrders(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedProject(t, db, "Alpha", true)
	seedProject(t, db, "Hidden", false)
	seedProject(t, db, "Beta", true)

	got, err := ListFeaturedProjects(ctx, db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 featured projects, got %d", len(got))
	}
	// Insertion order is preserved (created_at ASC, id ASC).
	if got[0].Title != "Alpha" || got[1].Title != "Beta" {
		t.Fatalf("unexpected order: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestCreateProject_DuplicateTitleRejected(t *testing.T) {
	db := newTestDB(t)

	seedProject(t, db, "Unique", true)
	err := CreateProject(db, &domain.Project{Title: "Unique", Description: "dup"})
	if err == nil {
		t.Fatalf("expected unique constraint violation")
	}
}

func TestProjectTitleExists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedProject(t, db, "Known", true)

	ok, err := ProjectTitleExists(ctx, db, "Known")
	if err != nil || !ok {
		t.Fatalf("exists(Known) = %v, err %v", ok, err)
	}
	ok, err = ProjectTitleExists(ctx, db, "Unknown")
	if err != nil || ok {
		t.Fatalf("exists(Unknown) = %v, err %v", ok, err)
	}
}

func TestCountProjects(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if n, err := CountProjects(ctx, db); err != nil || n != 0 {
		t.Fatalf("empty count = %d, err %v", n, err)
	}
	seedProject(t, db, "One", false)
	seedProject(t, db, "Two", true)
	if n, err := CountProjects(ctx, db); err != nil || n != 2 {
		t.Fatalf("count = %d, err %v", n, err)
	}
}
