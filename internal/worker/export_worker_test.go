package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"lifeplan/internal/amqp"
	"lifeplan/internal/plan"
	"lifeplan/internal/storage"
)

func newTestWorker(t *testing.T) (*ExportWorker, *storage.SQLiteRepository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := storage.NewSQLiteRepository(filepath.Join(dir, "plans.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	outDir := filepath.Join(dir, "exports")
	return NewExportWorker(repo, outDir), repo, outDir
}

func TestHandleSnapshotMessage(t *testing.T) {
	w, repo, outDir := newTestWorker(t)
	ctx := context.Background()

	doc, err := json.Marshal(plan.NewStore().Snapshot())
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	id, err := repo.SavePlan(ctx, "test plan", doc)
	if err != nil {
		t.Fatalf("SavePlan: %v", err)
	}

	msg := amqp.NewProjectionSnapshotMessage(id, 51)
	if err := w.HandleSnapshotMessage(ctx, msg); err != nil {
		t.Fatalf("HandleSnapshotMessage: %v", err)
	}

	name := fmt.Sprintf("%s_%s.csv", id, msg.GeneratedAt.Format("2006-01-02"))
	data, err := os.ReadFile(filepath.Join(outDir, name))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("missing UTF-8 BOM")
	}
	content := string(data)
	if !strings.Contains(content, "年度") || !strings.Contains(content, "個人総資産（万円）") {
		t.Fatalf("unexpected export header: %s", strings.SplitN(content, "\n", 2)[0])
	}
	// Header plus one row per horizon year plus trailing newline.
	if got := strings.Count(content, "\n"); got != 52 {
		t.Fatalf("rows = %d, want 52", got)
	}
}

func TestHandleSnapshotMessageMissingPlan(t *testing.T) {
	w, _, _ := newTestWorker(t)

	msg := amqp.NewProjectionSnapshotMessage("no-such-plan", 0)
	err := w.HandleSnapshotMessage(context.Background(), msg)
	if !errors.Is(err, storage.ErrPlanNotFound) {
		t.Fatalf("err = %v, want ErrPlanNotFound", err)
	}
}

func TestHandleSnapshotMessageBadDocument(t *testing.T) {
	w, repo, _ := newTestWorker(t)
	ctx := context.Background()

	id, err := repo.SavePlan(ctx, "broken", []byte(`{"household":{"currentAge":50,"deathAge":20,"startYear":2024}}`))
	if err != nil {
		t.Fatalf("SavePlan: %v", err)
	}

	msg := amqp.NewProjectionSnapshotMessage(id, 0)
	if err := w.HandleSnapshotMessage(ctx, msg); err == nil {
		t.Fatal("expected projection error for inverted horizon")
	}
}
