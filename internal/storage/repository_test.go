package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "plans.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSaveAndGetPlan(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	doc := []byte(`{"household":{"currentAge":30}}`)
	id, err := repo.SavePlan(ctx, "retirement plan", doc)
	if err != nil {
		t.Fatalf("SavePlan: %v", err)
	}
	if id == "" {
		t.Fatal("empty plan id")
	}

	rec, err := repo.GetPlan(ctx, id)
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if rec.ID != id || rec.Name != "retirement plan" {
		t.Fatalf("record = %+v", rec)
	}
	if string(rec.Document) != string(doc) {
		t.Fatalf("document = %s", rec.Document)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Fatal("timestamps not set")
	}
}

func TestGetPlanNotFound(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.GetPlan(context.Background(), "missing"); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("err = %v, want ErrPlanNotFound", err)
	}
}

func TestUpdatePlan(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.SavePlan(ctx, "plan", []byte(`{"v":1}`))
	if err != nil {
		t.Fatalf("SavePlan: %v", err)
	}

	if err := repo.UpdatePlan(ctx, id, []byte(`{"v":2}`)); err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}
	rec, err := repo.GetPlan(ctx, id)
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if string(rec.Document) != `{"v":2}` {
		t.Fatalf("document = %s", rec.Document)
	}

	if err := repo.UpdatePlan(ctx, "missing", []byte(`{}`)); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("err = %v, want ErrPlanNotFound", err)
	}
}

func TestListPlans(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if records, err := repo.ListPlans(ctx); err != nil || len(records) != 0 {
		t.Fatalf("empty list = %v, %v", records, err)
	}

	firstID, err := repo.SavePlan(ctx, "first", []byte(`{}`))
	if err != nil {
		t.Fatalf("SavePlan: %v", err)
	}
	if _, err := repo.SavePlan(ctx, "second", []byte(`{}`)); err != nil {
		t.Fatalf("SavePlan: %v", err)
	}
	// Touch the first plan so it sorts newest.
	time.Sleep(10 * time.Millisecond)
	if err := repo.UpdatePlan(ctx, firstID, []byte(`{"v":2}`)); err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}

	records, err := repo.ListPlans(ctx)
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].ID != firstID {
		t.Fatalf("newest first: got %s", records[0].Name)
	}
	if records[0].Document != nil {
		t.Fatal("list must not carry documents")
	}
}
