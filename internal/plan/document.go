package plan

import (
	"fmt"

	"lifeplan/internal/core"
)

// Document is the serializable form of a plan: everything needed to
// rebuild the store and re-run the projection, but not the projected
// series itself, which is always derived.
type Document struct {
	Household   core.Household  `json:"household"`
	Parameters  core.Parameters `json:"parameters"`
	Income      core.ItemSet    `json:"income"`
	Expenses    core.ItemSet    `json:"expenses"`
	Assets      core.ItemSet    `json:"assets"`
	Liabilities core.ItemSet    `json:"liabilities"`
}

// Snapshot captures the store's current configuration.
func (s *Store) Snapshot() Document {
	in := s.Inputs()
	return Document{
		Household:   in.Household,
		Parameters:  in.Parameters,
		Income:      in.Income,
		Expenses:    in.Expenses,
		Assets:      in.Assets,
		Liabilities: in.Liabilities,
	}
}

// Inputs converts the document to projection inputs.
func (d Document) Inputs() core.Inputs {
	return core.Inputs{
		Household:   d.Household,
		Parameters:  d.Parameters,
		Income:      d.Income,
		Expenses:    d.Expenses,
		Assets:      d.Assets,
		Liabilities: d.Liabilities,
	}
}

// FromDocument rebuilds a store from a serialized plan. Items keep their
// stored roles; items stored without one but carrying a canonical name are
// re-bound so documents from the name-based form layer keep projecting.
func FromDocument(doc Document) (*Store, error) {
	if err := doc.Household.Validate(); err != nil {
		return nil, fmt.Errorf("household: %w", err)
	}
	if err := doc.Parameters.Validate(); err != nil {
		return nil, fmt.Errorf("parameters: %w", err)
	}

	s := NewStore()
	s.household = doc.Household.Clone()
	s.parameters = doc.Parameters
	s.income = rebindRoles(core.SectionIncome, doc.Income.Clone())
	s.expenses = rebindRoles(core.SectionExpense, doc.Expenses.Clone())
	s.assets = doc.Assets.Clone()
	s.liabilities = doc.Liabilities.Clone()
	s.history = nil
	if err := s.recompute(); err != nil {
		return nil, err
	}
	return s, nil
}

func rebindRoles(section core.Section, set core.ItemSet) core.ItemSet {
	for i, it := range set.Personal {
		if it.Role == core.RoleNone {
			set.Personal[i].Role = core.RoleForName(section, core.BookPersonal, it.Name)
		}
	}
	for i, it := range set.Corporate {
		if it.Role == core.RoleNone {
			set.Corporate[i].Role = core.RoleForName(section, core.BookCorporate, it.Name)
		}
	}
	return set
}
