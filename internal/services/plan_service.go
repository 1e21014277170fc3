// Package services orchestrates the plan store, the persistence layer and
// the snapshot publisher. All writes go through one PlanService, which
// serializes them; that keeps the "full recompute after any mutation"
// invariant even though the HTTP layer handles requests concurrently.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	json "github.com/goccy/go-json"

	"lifeplan/internal/amqp"
	"lifeplan/internal/core"
	applog "lifeplan/internal/log"
	"lifeplan/internal/plan"
	"lifeplan/internal/storage"
)

var ErrPersistenceDisabled = errors.New("plan persistence is not configured")

// PlanService owns the in-memory plan and coordinates every mutation.
type PlanService struct {
	mu         sync.Mutex
	store      *plan.Store
	repo       *storage.SQLiteRepository
	amqpClient *amqp.Client
	planID     string
}

// NewPlanService builds a service around a fresh default plan. Both repo
// and amqpClient may be nil; persistence and snapshot publishing are then
// skipped.
func NewPlanService(repo *storage.SQLiteRepository, amqpClient *amqp.Client) *PlanService {
	return &PlanService{
		store:      plan.NewStore(),
		repo:       repo,
		amqpClient: amqpClient,
	}
}

func (s *PlanService) Household() core.Household {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Household()
}

func (s *PlanService) Parameters() core.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Parameters()
}

func (s *PlanService) CashFlow() []core.CashFlowYear {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.CashFlow()
}

func (s *PlanService) Inputs() core.Inputs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Inputs()
}

func (s *PlanService) Items(section core.Section) (core.ItemSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Items(section)
}

func (s *PlanService) NetAssets(book core.Book) ([]core.NetAssetYear, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.NetAssets(book)
}

func (s *PlanService) History() []plan.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.History()
}

func (s *PlanService) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.ClearHistory()
}

// SetHousehold replaces the household, reinitializes the derived expense
// entries and republishes the projection.
func (s *PlanService) SetHousehold(ctx context.Context, h core.Household) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SetHousehold(h); err != nil {
		return err
	}
	s.afterRecompute(ctx, "set_household")
	return nil
}

func (s *PlanService) SetParameters(ctx context.Context, p core.Parameters) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SetParameters(p); err != nil {
		return err
	}
	s.afterRecompute(ctx, "set_parameters")
	return nil
}

func (s *PlanService) AddItem(ctx context.Context, section core.Section, book core.Book, name, itemType, category string) (core.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, err := s.store.AddItem(section, book, name, itemType, category)
	if err != nil {
		return core.LineItem{}, err
	}
	s.afterRecompute(ctx, "add_item")
	return item, nil
}

func (s *PlanService) RemoveItem(ctx context.Context, section core.Section, book core.Book, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.RemoveItem(section, book, id); err != nil {
		return err
	}
	s.afterRecompute(ctx, "remove_item")
	return nil
}

func (s *PlanService) RenameItem(ctx context.Context, section core.Section, book core.Book, id int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.RenameItem(section, book, id, name); err != nil {
		return err
	}
	s.afterRecompute(ctx, "rename_item")
	return nil
}

func (s *PlanService) RecategorizeItem(ctx context.Context, section core.Section, book core.Book, id int, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Category is display-only; no projection or snapshot follows.
	return s.store.RecategorizeItem(section, book, id, category)
}

func (s *PlanService) SetAmount(ctx context.Context, section core.Section, book core.Book, id, year int, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SetAmount(section, book, id, year, value); err != nil {
		return err
	}
	s.afterRecompute(ctx, "set_amount")
	return nil
}

// SavePlan persists the current plan document and returns its id.
func (s *PlanService) SavePlan(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repo == nil {
		return "", ErrPersistenceDisabled
	}

	document, err := json.Marshal(s.store.Snapshot())
	if err != nil {
		return "", fmt.Errorf("marshal plan document: %w", err)
	}

	id, err := s.repo.SavePlan(ctx, name, document)
	if err != nil {
		return "", fmt.Errorf("save plan: %w", err)
	}
	s.planID = id
	s.publishSnapshot(ctx)
	return id, nil
}

// LoadPlan replaces the in-memory plan with a saved one.
func (s *PlanService) LoadPlan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repo == nil {
		return ErrPersistenceDisabled
	}

	rec, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}

	var doc plan.Document
	if err := json.Unmarshal(rec.Document, &doc); err != nil {
		return fmt.Errorf("unmarshal plan document: %w", err)
	}

	store, err := plan.FromDocument(doc)
	if err != nil {
		return fmt.Errorf("rebuild plan: %w", err)
	}

	s.store = store
	s.planID = id
	s.afterRecompute(ctx, "load_plan")
	return nil
}

// ListPlans lists saved plan records.
func (s *PlanService) ListPlans(ctx context.Context) ([]storage.PlanRecord, error) {
	if s.repo == nil {
		return nil, ErrPersistenceDisabled
	}
	return s.repo.ListPlans(ctx)
}

// Close releases the persistence and messaging connections.
func (s *PlanService) Close() error {
	var errs []error

	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close plan service: %v", errs)
	}
	return nil
}

// afterRecompute logs binding gaps, refreshes the persisted document of a
// saved plan, and publishes the new snapshot. None of these can fail the
// mutation itself.
func (s *PlanService) afterRecompute(ctx context.Context, operation string) {
	if missing := core.MissingBindings(s.store.Inputs()); len(missing) > 0 {
		slog.WarnContext(ctx, "Projection has unbound components, they resolve to zero",
			applog.FieldOperation, operation,
			applog.FieldMissingRoles, missing)
	}

	if s.repo != nil && s.planID != "" {
		document, err := json.Marshal(s.store.Snapshot())
		if err == nil {
			err = s.repo.UpdatePlan(ctx, s.planID, document)
		}
		if err != nil {
			slog.ErrorContext(ctx, "Failed to refresh persisted plan",
				applog.FieldPlanID, s.planID,
				applog.FieldOperation, operation,
				applog.FieldError, err)
		}
	}

	s.publishSnapshot(ctx)
}

func (s *PlanService) publishSnapshot(ctx context.Context) {
	if s.amqpClient == nil || s.planID == "" {
		return
	}
	msg := amqp.NewProjectionSnapshotMessage(s.planID, len(s.store.CashFlow()))
	if err := s.amqpClient.PublishSnapshot(ctx, msg); err != nil {
		// The plan mutation already succeeded; a lost snapshot only
		// delays the exported file.
		slog.ErrorContext(ctx, "Failed to publish projection snapshot",
			applog.FieldPlanID, s.planID,
			applog.FieldError, err)
	}
}
