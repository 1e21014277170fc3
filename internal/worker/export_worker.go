// Package worker turns projection snapshot messages into CSV files on
// disk. It loads the saved plan document, re-runs the projection, and
// renders the same export the API serves, so downstream consumers get a
// file per recompute without holding an HTTP connection open.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"lifeplan/internal/amqp"
	"lifeplan/internal/core"
	"lifeplan/internal/export"
	applog "lifeplan/internal/log"
	"lifeplan/internal/plan"
	"lifeplan/internal/storage"
)

type ExportWorker struct {
	repo   *storage.SQLiteRepository
	outDir string
}

func NewExportWorker(repo *storage.SQLiteRepository, outDir string) *ExportWorker {
	return &ExportWorker{repo: repo, outDir: outDir}
}

// HandleSnapshotMessage processes one projection snapshot message.
func (w *ExportWorker) HandleSnapshotMessage(ctx context.Context, msg *amqp.ProjectionSnapshotMessage) error {
	slog.InfoContext(ctx, "Processing snapshot message",
		applog.FieldPlanID, msg.PlanID,
		applog.FieldSnapshotID, msg.SnapshotID)

	rec, err := w.repo.GetPlan(ctx, msg.PlanID)
	if err != nil {
		return fmt.Errorf("get plan from storage: %w", err)
	}

	var doc plan.Document
	if err := json.Unmarshal(rec.Document, &doc); err != nil {
		return fmt.Errorf("unmarshal plan document: %w", err)
	}

	inputs := doc.Inputs()
	series, err := core.Project(inputs)
	if err != nil {
		return fmt.Errorf("project plan %s: %w", msg.PlanID, err)
	}

	path, err := w.writeCSV(msg, export.CashFlowCSV(inputs, series))
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Exported cash-flow CSV",
		applog.FieldPlanID, msg.PlanID,
		applog.FieldSnapshotID, msg.SnapshotID,
		"years", len(series),
		"path", path)

	return nil
}

func (w *ExportWorker) writeCSV(msg *amqp.ProjectionSnapshotMessage, data []byte) (string, error) {
	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.csv", msg.PlanID, msg.GeneratedAt.Format("2006-01-02"))
	path := filepath.Join(w.outDir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}
