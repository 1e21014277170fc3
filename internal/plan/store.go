// Package plan holds the application state of one cash-flow plan: the
// household, the macro parameters, the four section ledgers, the projected
// series, and the edit history. The Store is an explicit struct owned by
// its caller; all mutations replace collections wholesale and re-run the
// full projection, so the series is never stale and nothing aliases
// across books.
package plan

import (
	"errors"
	"fmt"
	"time"

	"lifeplan/internal/core"
)

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrUnknownBook    = errors.New("unknown book")
	ErrItemNotFound   = errors.New("item not found")
)

// Store is the single logical writer for one plan. It is not safe for
// concurrent use; callers serialize access through one coordinator.
type Store struct {
	household  core.Household
	parameters core.Parameters

	income      core.ItemSet
	expenses    core.ItemSet
	assets      core.ItemSet
	liabilities core.ItemSet

	cashFlow []core.CashFlowYear
	history  []HistoryEntry

	now func() time.Time
}

// NewStore builds a plan with the default household, parameters and line
// items, projected over the default horizon.
func NewStore() *Store {
	s := &Store{
		household:   defaultHousehold(),
		parameters:  defaultParameters(),
		income:      defaultIncome(),
		expenses:    defaultExpenses(),
		assets:      defaultAssets(),
		liabilities: defaultLiabilities(),
		now:         time.Now,
	}
	s.applyHousehold()
	if err := s.recompute(); err != nil {
		// Defaults always validate; reaching this is a programming error.
		panic(fmt.Sprintf("plan: default projection failed: %v", err))
	}
	return s
}

func (s *Store) Household() core.Household { return s.household.Clone() }

func (s *Store) Parameters() core.Parameters { return s.parameters }

func (s *Store) History() []HistoryEntry { return append([]HistoryEntry(nil), s.history...) }
func (s *Store) CashFlow() []core.CashFlowYear {
	return append([]core.CashFlowYear(nil), s.cashFlow...)
}

// Items returns a deep copy of one section's two books.
func (s *Store) Items(section core.Section) (core.ItemSet, error) {
	set, err := s.section(section)
	if err != nil {
		return core.ItemSet{}, err
	}
	return set.Clone(), nil
}

// Inputs snapshots everything the projection reads.
func (s *Store) Inputs() core.Inputs {
	return core.Inputs{
		Household:   s.household.Clone(),
		Parameters:  s.parameters,
		Income:      s.income.Clone(),
		Expenses:    s.expenses.Clone(),
		Assets:      s.assets.Clone(),
		Liabilities: s.liabilities.Clone(),
	}
}

// NetAssets derives the per-year net worth of one book from the current
// projection and the current liability items.
func (s *Store) NetAssets(book core.Book) ([]core.NetAssetYear, error) {
	if !book.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBook, book)
	}
	return core.NetAssetSeries(s.cashFlow, s.liabilities, book), nil
}

// SetHousehold replaces the household, refreshes the derived expense and
// seed entries, and re-runs the projection.
func (s *Store) SetHousehold(h core.Household) error {
	if err := h.Validate(); err != nil {
		return err
	}
	s.household = h.Clone()
	s.applyHousehold()
	return s.recompute()
}

// SetParameters replaces the macro parameters and re-runs the projection.
// Derived education amounts keep the increase rate they were written with
// until the household is applied again.
func (s *Store) SetParameters(p core.Parameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.parameters = p
	return s.recompute()
}

// AddItem appends a new line item to a section book, assigning the next
// integer id within that book and binding a projection role when the name
// is one of the canonical ones.
func (s *Store) AddItem(section core.Section, book core.Book, name, itemType, category string) (core.LineItem, error) {
	set, err := s.section(section)
	if err != nil {
		return core.LineItem{}, err
	}
	if !book.Valid() {
		return core.LineItem{}, fmt.Errorf("%w: %q", ErrUnknownBook, book)
	}
	items := set.Items(book)
	item := core.LineItem{
		ID:       nextID(items),
		Name:     name,
		Type:     itemType,
		Category: category,
		Role:     core.RoleForName(section, book, name),
		Amounts:  map[int]float64{},
	}
	s.replaceBook(set, book, append(cloneBook(items), item))
	if err := s.recompute(); err != nil {
		return core.LineItem{}, err
	}
	return item.Clone(), nil
}

// RemoveItem deletes a line item by id.
func (s *Store) RemoveItem(section core.Section, book core.Book, id int) error {
	return s.updateBook(section, book, id, func(items []core.LineItem, idx int) []core.LineItem {
		return append(items[:idx], items[idx+1:]...)
	})
}

// RenameItem changes an item's display name. The projection role assigned
// at creation stays, so renaming never silently detaches an item.
func (s *Store) RenameItem(section core.Section, book core.Book, id int, name string) error {
	return s.updateBook(section, book, id, func(items []core.LineItem, idx int) []core.LineItem {
		items[idx].Name = name
		return items
	})
}

// RecategorizeItem changes the display-only grouping of an item.
func (s *Store) RecategorizeItem(section core.Section, book core.Book, id int, category string) error {
	return s.updateBook(section, book, id, func(items []core.LineItem, idx int) []core.LineItem {
		items[idx].Category = category
		return items
	})
}

// SetAmount writes one year's value of an item, rounded to one decimal,
// records the edit in the history log, and re-runs the projection.
func (s *Store) SetAmount(section core.Section, book core.Book, id, year int, value float64) error {
	var entry HistoryEntry
	err := s.updateBook(section, book, id, func(items []core.LineItem, idx int) []core.LineItem {
		rounded := core.Round1(value)
		entry = HistoryEntry{
			Timestamp:     s.now(),
			Section:       section,
			Book:          book,
			ItemID:        id,
			Year:          year,
			PreviousValue: items[idx].Amounts[year],
			NewValue:      rounded,
		}
		items[idx].Amounts[year] = rounded
		return items
	})
	if err != nil {
		return err
	}
	s.history = append(s.history, entry)
	return nil
}

// ClearHistory drops the audit log in bulk. Entries are never mutated in
// place.
func (s *Store) ClearHistory() {
	s.history = nil
}

func (s *Store) section(section core.Section) (*core.ItemSet, error) {
	switch section {
	case core.SectionIncome:
		return &s.income, nil
	case core.SectionExpense:
		return &s.expenses, nil
	case core.SectionAsset:
		return &s.assets, nil
	case core.SectionLiability:
		return &s.liabilities, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
}

func (s *Store) replaceBook(set *core.ItemSet, book core.Book, items []core.LineItem) {
	if book == core.BookCorporate {
		set.Corporate = items
	} else {
		set.Personal = items
	}
}

// updateBook applies a transform to a cloned book, swaps the clone in, and
// re-runs the projection.
func (s *Store) updateBook(section core.Section, book core.Book, id int, fn func([]core.LineItem, int) []core.LineItem) error {
	set, err := s.section(section)
	if err != nil {
		return err
	}
	if !book.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownBook, book)
	}
	items := cloneBook(set.Items(book))
	idx := -1
	for i, it := range items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s/%s id %d", ErrItemNotFound, section, book, id)
	}
	s.replaceBook(set, book, fn(items, idx))
	return s.recompute()
}

func (s *Store) recompute() error {
	series, err := core.Project(s.Inputs())
	if err != nil {
		return fmt.Errorf("project: %w", err)
	}
	s.cashFlow = series
	return nil
}

// applyHousehold writes the household-derived amounts into the designated
// items: living, housing and education expense for every horizon year, a
// spouse income item when the marital status calls for one, and the
// real-estate seed plus loan liability in own mode.
func (s *Store) applyHousehold() {
	h := s.household

	personal := cloneBook(s.expenses.Personal)
	for i := range personal {
		switch personal[i].Role {
		case core.RoleLivingExpense:
			for _, year := range h.Years() {
				personal[i].Amounts[year] = core.Round1(h.MonthlyLivingExpense * 12)
			}
		case core.RoleHousingExpense:
			for _, year := range h.Years() {
				personal[i].Amounts[year] = core.Round1(core.HousingExpense(h.Housing, year, h.StartYear))
			}
		case core.RoleEducationExpense:
			for _, year := range h.Years() {
				personal[i].Amounts[year] = core.EducationExpense(
					h.Children, h.PlannedChildren, year, h.StartYear,
					s.parameters.EducationCostIncreaseRate)
			}
		}
	}
	s.expenses.Personal = personal

	if h.MaritalStatus != core.Single && h.Spouse != nil && h.Spouse.Occupation != "" {
		if !core.HasRole(s.income.Personal, core.RoleSpouseIncome) {
			income := cloneBook(s.income.Personal)
			income = append(income, core.LineItem{
				ID:      nextID(income),
				Name:    core.NameSpouseIncome,
				Type:    "income",
				Role:    core.RoleSpouseIncome,
				Amounts: map[int]float64{},
			})
			s.income.Personal = income
		}
	}

	if h.Housing.Type == core.HousingOwn && h.Housing.Own != nil {
		own := h.Housing.Own
		assets := cloneBook(s.assets.Personal)
		for i := range assets {
			if assets[i].Name == realEstateItemName {
				assets[i].Amounts[own.PurchaseYear] = own.PurchasePrice
			}
		}
		s.assets.Personal = assets

		liabilities := cloneBook(s.liabilities.Personal)
		for i := range liabilities {
			if liabilities[i].Name == loanItemName {
				liabilities[i].Amounts[own.PurchaseYear] = own.LoanAmount
			}
		}
		s.liabilities.Personal = liabilities
	}
}

func cloneBook(items []core.LineItem) []core.LineItem {
	out := make([]core.LineItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

func nextID(items []core.LineItem) int {
	max := 0
	for _, it := range items {
		if it.ID > max {
			max = it.ID
		}
	}
	return max + 1
}
