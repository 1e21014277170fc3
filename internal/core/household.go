package core

import (
	"errors"
	"fmt"
)

const (
	CompanyEmployee        Occupation = "company_employee"
	PartTimeWithPension    Occupation = "part_time_with_pension"
	PartTimeWithoutPension Occupation = "part_time_without_pension"
	SelfEmployed           Occupation = "self_employed"
	Homemaker              Occupation = "homemaker"
)

const (
	Single   MaritalStatus = "single"
	Married  MaritalStatus = "married"
	Planning MaritalStatus = "planning"
)

type (
	Occupation    string
	MaritalStatus string

	// Household is the root configuration of a plan: who the person is,
	// how long the projection runs, and the family/housing situation the
	// derived expense schedules are computed from.
	Household struct {
		CurrentAge           int            `json:"currentAge"`
		StartYear            int            `json:"startYear"`
		DeathAge             int            `json:"deathAge"`
		Gender               string         `json:"gender"`
		Occupation           Occupation     `json:"occupation"`
		MaritalStatus        MaritalStatus  `json:"maritalStatus"`
		MonthlyLivingExpense float64        `json:"monthlyLivingExpense"`
		Housing              HousingInfo    `json:"housingInfo"`
		Spouse               *SpouseInfo    `json:"spouseInfo,omitempty"`
		Children             []Child        `json:"children"`
		PlannedChildren      []PlannedChild `json:"plannedChildren"`
	}

	SpouseInfo struct {
		CurrentAge        int        `json:"currentAge,omitempty"`
		MarriageAge       int        `json:"marriageAge,omitempty"`
		Occupation        Occupation `json:"occupation,omitempty"`
		AdditionalExpense float64    `json:"additionalExpense,omitempty"`
	}

	// Child is already born and tracked by its age at the start year.
	Child struct {
		CurrentAge int           `json:"currentAge"`
		Education  EducationPlan `json:"educationPlan"`
	}

	// PlannedChild is not yet born and tracked by years from the start year.
	PlannedChild struct {
		YearsFromNow int           `json:"yearsFromNow"`
		Education    EducationPlan `json:"educationPlan"`
	}

	// Parameters are the macro assumptions, each a percentage expressed as
	// a whole number (3.0 means 3%) compounded annually from the start year.
	Parameters struct {
		InflationRate             float64 `json:"inflationRate"`
		EducationCostIncreaseRate float64 `json:"educationCostIncreaseRate"`
		InvestmentReturn          float64 `json:"investmentReturn"`
	}
)

var (
	ErrInvalidHorizon = errors.New("death age must not be below current age")
	ErrNegativeRate   = errors.New("rate must not be negative")
)

// HorizonYears is the number of projected years, start year included.
func (h Household) HorizonYears() int {
	return h.DeathAge - h.CurrentAge + 1
}

// Years lists every projected year in order.
func (h Household) Years() []int {
	n := h.HorizonYears()
	if n <= 0 {
		return nil
	}
	years := make([]int, n)
	for i := range years {
		years[i] = h.StartYear + i
	}
	return years
}

// Clone deep-copies the household, its family slices and housing payloads
// included.
func (h Household) Clone() Household {
	out := h
	if h.Spouse != nil {
		spouse := *h.Spouse
		out.Spouse = &spouse
	}
	if h.Housing.Rent != nil {
		rent := *h.Housing.Rent
		out.Housing.Rent = &rent
	}
	if h.Housing.Own != nil {
		own := *h.Housing.Own
		out.Housing.Own = &own
	}
	if h.Children != nil {
		out.Children = append([]Child(nil), h.Children...)
	}
	if h.PlannedChildren != nil {
		out.PlannedChildren = append([]PlannedChild(nil), h.PlannedChildren...)
	}
	return out
}

func (h Household) Validate() error {
	if h.DeathAge < h.CurrentAge {
		return fmt.Errorf("%w: current age %d, death age %d", ErrInvalidHorizon, h.CurrentAge, h.DeathAge)
	}
	if h.CurrentAge < 0 {
		return errors.New("current age must not be negative")
	}
	if h.StartYear <= 0 {
		return fmt.Errorf("invalid start year %d", h.StartYear)
	}
	if h.MonthlyLivingExpense < 0 {
		return errors.New("monthly living expense must not be negative")
	}
	if err := h.Housing.Validate(); err != nil {
		return fmt.Errorf("housing: %w", err)
	}
	for i, c := range h.Children {
		if c.CurrentAge < 0 {
			return fmt.Errorf("child %d: current age must not be negative", i+1)
		}
	}
	for i, c := range h.PlannedChildren {
		if c.YearsFromNow < 0 {
			return fmt.Errorf("planned child %d: years from now must not be negative", i+1)
		}
	}
	return nil
}

func (p Parameters) Validate() error {
	if p.InflationRate < 0 {
		return fmt.Errorf("inflation rate: %w", ErrNegativeRate)
	}
	if p.EducationCostIncreaseRate < 0 {
		return fmt.Errorf("education cost increase rate: %w", ErrNegativeRate)
	}
	if p.InvestmentReturn < 0 {
		return fmt.Errorf("investment return: %w", ErrNegativeRate)
	}
	return nil
}
