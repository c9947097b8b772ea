package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cbouguerba/portfolio-backend/internal/domain"
	"github.com/cbouguerba/portfolio-backend/internal/repo"
)

func newProjectDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:projectsvc_%s?mode=memory&cache=shared", uuid.NewString())
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

func TestSeedDefaults_Idempotent(t *testing.T) {
	db := newProjectDB(t)
	svc := &ProjectService{DB: db}
	ctx := context.Background()

	created, err := svc.SeedDefaults(ctx)
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if created != len(defaultProjects) {
		t.Fatalf("first seed created %d, want %d", created, len(defaultProjects))
	}

	created, err = svc.SeedDefaults(ctx)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if created != 0 {
		t.Fatalf("second seed created %d, want 0", created)
	}

	n, err := repo.CountProjects(ctx, db)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != int64(len(defaultProjects)) {
		t.Fatalf("row count after double seed = %d, want %d", n, len(defaultProjects))
	}
}

func TestSeedDefaults_FillsGaps(t *testing.T) {
	db := newProjectDB(t)
	svc := &ProjectService{DB: db}
	ctx := context.Background()

	// Pre-insert one of the defaults manually.
	pre := defaultProjects[0]
	if err := repo.CreateProject(db, &pre); err != nil {
		t.Fatalf("preinsert: %v", err)
	}

	created, err := svc.SeedDefaults(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if created != len(defaultProjects)-1 {
		t.Fatalf("created %d, want %d", created, len(defaultProjects)-1)
	}
}

func TestListFeatured_ReturnsSeededProjects(t *testing.T) {
	db := newProjectDB(t)
	svc := &ProjectService{DB: db}
	ctx := context.Background()

	if _, err := svc.SeedDefaults(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := svc.ListFeatured(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != len(defaultProjects) {
		t.Fatalf("listed %d, want %d", len(got), len(defaultProjects))
	}
	if got[0].Title != "Enterprise AI Platform" {
		t.Fatalf("unexpected first project: %q", got[0].Title)
	}
}

func TestClearMessages(t *testing.T) {
	db := newProjectDB(t)
	svc := &ProjectService{DB: db}
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		m := &domain.Message{
			Name:    "n",
			Email:   "n@example.com",
			Subject: "subject",
			Body:    "body text long enough",
		}
		if err := repo.CreateMessage(db, m); err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	deleted, err := svc.ClearMessages(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if deleted != 4 {
		t.Fatalf("deleted %d, want 4", deleted)
	}

	st, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Messages != 0 {
		t.Fatalf("messages after clear = %d", st.Messages)
	}
}

func TestGetStats(t *testing.T) {
	db := newProjectDB(t)
	svc := &ProjectService{DB: db}
	ctx := context.Background()

	read := &domain.Message{Name: "a", Email: "a@b.com", Subject: "subject", Body: "body text here", IsRead: true}
	unread := &domain.Message{Name: "b", Email: "b@c.com", Subject: "subject", Body: "body text here"}
	if err := repo.CreateMessage(db, read); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := repo.CreateMessage(db, unread); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.SeedDefaults(ctx); err != nil {
		t.Fatalf("seed projects: %v", err)
	}

	st, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Messages != 2 {
		t.Fatalf("messages = %d, want 2", st.Messages)
	}
	if st.UnreadMessages != 1 {
		t.Fatalf("unread = %d, want 1", st.UnreadMessages)
	}
	if st.Projects != int64(len(defaultProjects)) {
		t.Fatalf("projects = %d, want %d", st.Projects, len(defaultProjects))
	}
}
