package core

const (
	SectionIncome    Section = "income"
	SectionExpense   Section = "expense"
	SectionAsset     Section = "asset"
	SectionLiability Section = "liability"
)

const (
	BookPersonal  Book = "personal"
	BookCorporate Book = "corporate"
)

// Roles bind line items to the projection components that read them.
// They are assigned once, at item creation, so renaming an item never
// detaches it from the projection.
const (
	RoleNone             Role = ""
	RoleSalary           Role = "salary"
	RoleBusinessIncome   Role = "business_income"
	RoleSideIncome       Role = "side_income"
	RoleSpouseIncome     Role = "spouse_income"
	RoleSales            Role = "sales"
	RoleOtherIncome      Role = "other_income"
	RoleLivingExpense    Role = "living_expense"
	RoleHousingExpense   Role = "housing_expense"
	RoleEducationExpense Role = "education_expense"
	RoleOtherExpense     Role = "other_expense"
	RoleBusinessExpense  Role = "business_expense"
	RoleOtherBizExpense  Role = "other_business_expense"
)

// Canonical display names of the default line items. The form layer of the
// original product identified projection components by these exact strings;
// the store keeps assigning roles from them so externally supplied items
// named this way still feed the projection.
const (
	NameSalary           = "給与収入"
	NameBusinessIncome   = "事業収入"
	NameSideIncome       = "副業収入"
	NameSpouseIncome     = "配偶者収入"
	NameSales            = "売上"
	NameOtherIncome      = "その他収入"
	NameLivingExpense    = "生活費"
	NameHousingExpense   = "住居費"
	NameEducationExpense = "教育費"
	NameOtherExpense     = "その他"
	NameBusinessExpense  = "事業経費"
	NameOtherBizExpense  = "その他経費"
)

type (
	Section string
	Book    string
	Role    string

	// LineItem is one row of a section ledger. Amounts are keyed by year;
	// a missing year means zero. Category is display-only grouping and is
	// never read by the projection.
	LineItem struct {
		ID       int             `json:"id"`
		Name     string          `json:"name"`
		Type     string          `json:"type"`
		Category string          `json:"category,omitempty"`
		Role     Role            `json:"role,omitempty"`
		Amounts  map[int]float64 `json:"amounts"`
	}

	// ItemSet holds the two parallel books of one section.
	ItemSet struct {
		Personal  []LineItem `json:"personal"`
		Corporate []LineItem `json:"corporate"`
	}
)

func (s Section) Valid() bool {
	switch s {
	case SectionIncome, SectionExpense, SectionAsset, SectionLiability:
		return true
	}
	return false
}

func (b Book) Valid() bool {
	return b == BookPersonal || b == BookCorporate
}

// Amount returns the item's value for a year, zero when unset.
func (it LineItem) Amount(year int) float64 {
	return it.Amounts[year]
}

// Clone deep-copies the item so callers can mutate amounts without
// aliasing the stored collection.
func (it LineItem) Clone() LineItem {
	amounts := make(map[int]float64, len(it.Amounts))
	for y, v := range it.Amounts {
		amounts[y] = v
	}
	it.Amounts = amounts
	return it
}

// Items returns the book's slice. The caller must not mutate it.
func (s ItemSet) Items(book Book) []LineItem {
	if book == BookCorporate {
		return s.Corporate
	}
	return s.Personal
}

// Clone deep-copies both books.
func (s ItemSet) Clone() ItemSet {
	return ItemSet{Personal: cloneItems(s.Personal), Corporate: cloneItems(s.Corporate)}
}

func cloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// SumAt totals every item's amount for a year.
func SumAt(items []LineItem, year int) float64 {
	var total float64
	for _, it := range items {
		total += it.Amounts[year]
	}
	return total
}

// RoleAmount resolves the amount of the item bound to a role for a year.
// A missing binding resolves to zero; the projection is tolerant of
// absent items by design.
func RoleAmount(items []LineItem, role Role, year int) float64 {
	for _, it := range items {
		if it.Role == role {
			return it.Amounts[year]
		}
	}
	return 0
}

// HasRole reports whether any item carries the role, for missing-binding
// diagnostics.
func HasRole(items []LineItem, role Role) bool {
	for _, it := range items {
		if it.Role == role {
			return true
		}
	}
	return false
}

// RoleForName maps a canonical display name to its projection role.
// Unknown names get no role and are ignored by the projection.
func RoleForName(section Section, book Book, name string) Role {
	switch section {
	case SectionIncome:
		if book == BookPersonal {
			switch name {
			case NameSalary:
				return RoleSalary
			case NameBusinessIncome:
				return RoleBusinessIncome
			case NameSideIncome:
				return RoleSideIncome
			case NameSpouseIncome:
				return RoleSpouseIncome
			}
			return RoleNone
		}
		switch name {
		case NameSales:
			return RoleSales
		case NameOtherIncome:
			return RoleOtherIncome
		}
	case SectionExpense:
		if book == BookPersonal {
			switch name {
			case NameLivingExpense:
				return RoleLivingExpense
			case NameHousingExpense:
				return RoleHousingExpense
			case NameEducationExpense:
				return RoleEducationExpense
			case NameOtherExpense:
				return RoleOtherExpense
			}
			return RoleNone
		}
		switch name {
		case NameBusinessExpense:
			return RoleBusinessExpense
		case NameOtherBizExpense:
			return RoleOtherBizExpense
		}
	}
	return RoleNone
}
