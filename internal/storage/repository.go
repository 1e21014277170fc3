package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	applog "lifeplan/internal/log"

	_ "modernc.org/sqlite"
)

var ErrPlanNotFound = errors.New("plan not found")

// PlanRecord is one saved plan document: the serialized plan inputs plus
// bookkeeping fields.
type PlanRecord struct {
	ID        string
	Name      string
	Document  []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SQLiteRepository persists plan documents in a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SavePlan stores a new plan document and returns its id.
func (r *SQLiteRepository) SavePlan(ctx context.Context, name string, document []byte) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plans (id, name, document, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, document, now, now)
	if err != nil {
		return "", fmt.Errorf("insert plan: %w", err)
	}

	slog.InfoContext(ctx, "Plan saved",
		applog.FieldPlanID, id,
		"name", name,
		"document_bytes", len(document))

	return id, nil
}

// UpdatePlan replaces the document of an existing plan.
func (r *SQLiteRepository) UpdatePlan(ctx context.Context, id string, document []byte) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE plans SET document = ?, updated_at = ? WHERE id = ?`,
		document, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	return nil
}

// GetPlan loads one saved plan by id.
func (r *SQLiteRepository) GetPlan(ctx context.Context, id string) (PlanRecord, error) {
	var rec PlanRecord
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, document, created_at, updated_at FROM plans WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Name, &rec.Document, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return PlanRecord{}, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	if err != nil {
		return PlanRecord{}, fmt.Errorf("select plan: %w", err)
	}
	return rec, nil
}

// ListPlans returns all saved plans without their documents, newest first.
func (r *SQLiteRepository) ListPlans(ctx context.Context) ([]PlanRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM plans ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select plans: %w", err)
	}
	defer rows.Close()

	var records []PlanRecord
	for rows.Next() {
		var rec PlanRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}
	return records, nil
}
