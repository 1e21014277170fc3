package core

import "math"

type (
	// Inputs is everything the projection reads: the household, the macro
	// parameters, and the four section ledgers.
	Inputs struct {
		Household   Household  `json:"household"`
		Parameters  Parameters `json:"parameters"`
		Income      ItemSet    `json:"income"`
		Expenses    ItemSet    `json:"expenses"`
		Assets      ItemSet    `json:"assets"`
		Liabilities ItemSet    `json:"liabilities"`
	}

	// CashFlowYear is one projected year: the raw income and expense
	// components of both books plus the derived balances and running
	// total assets.
	CashFlowYear struct {
		Year int `json:"year"`
		Age  int `json:"age"`

		MainIncome       float64 `json:"mainIncome"`
		SideIncome       float64 `json:"sideIncome"`
		SpouseIncome     float64 `json:"spouseIncome"`
		InvestmentIncome float64 `json:"investmentIncome"`

		LivingExpense    float64 `json:"livingExpense"`
		HousingExpense   float64 `json:"housingExpense"`
		EducationExpense float64 `json:"educationExpense"`
		OtherExpense     float64 `json:"otherExpense"`

		PersonalAssets      float64 `json:"personalAssets"`
		PersonalReturns     float64 `json:"personalReturns"`
		PersonalBalance     float64 `json:"personalBalance"`
		PersonalTotalAssets float64 `json:"personalTotalAssets"`

		CorporateIncome       float64 `json:"corporateIncome"`
		CorporateOtherIncome  float64 `json:"corporateOtherIncome"`
		CorporateExpense      float64 `json:"corporateExpense"`
		CorporateOtherExpense float64 `json:"corporateOtherExpense"`
		CorporateBalance      float64 `json:"corporateBalance"`
		CorporateTotalAssets  float64 `json:"corporateTotalAssets"`
	}
)

// Round1 rounds to one decimal place, the resolution of all man-yen
// amounts in the plan.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Project runs the year-by-year recurrence over the full horizon and
// returns exactly one record per year from the start year through the
// death year. Each year's total assets carry the prior year's forward;
// the first year starts from the start-year assets minus liabilities of
// each book. Items missing for a bound role contribute zero.
func Project(in Inputs) ([]CashFlowYear, error) {
	h := in.Household
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if err := in.Parameters.Validate(); err != nil {
		return nil, err
	}

	personalSeed := SumAt(in.Assets.Personal, h.StartYear) - SumAt(in.Liabilities.Personal, h.StartYear)
	corporateSeed := SumAt(in.Assets.Corporate, h.StartYear) - SumAt(in.Liabilities.Corporate, h.StartYear)

	years := h.Years()
	series := make([]CashFlowYear, 0, len(years))

	prevPersonal := personalSeed
	prevCorporate := corporateSeed

	for i, year := range years {
		salary := RoleAmount(in.Income.Personal, RoleSalary, year)
		side := RoleAmount(in.Income.Personal, RoleSideIncome, year)
		spouse := RoleAmount(in.Income.Personal, RoleSpouseIncome, year)

		living := RoleAmount(in.Expenses.Personal, RoleLivingExpense, year)
		housing := RoleAmount(in.Expenses.Personal, RoleHousingExpense, year)
		education := RoleAmount(in.Expenses.Personal, RoleEducationExpense, year)
		other := RoleAmount(in.Expenses.Personal, RoleOtherExpense, year)

		sales := RoleAmount(in.Income.Corporate, RoleSales, year)
		otherIncome := RoleAmount(in.Income.Corporate, RoleOtherIncome, year)
		bizExpense := RoleAmount(in.Expenses.Corporate, RoleBusinessExpense, year)
		otherBizExpense := RoleAmount(in.Expenses.Corporate, RoleOtherBizExpense, year)

		// Return on the prior year's net position. The corporate book
		// has no return line, it grows on balance only.
		returns := Round1(prevPersonal * in.Parameters.InvestmentReturn / 100)

		personalBalance := salary + side + spouse + returns - (living + housing + education + other)
		corporateBalance := sales + otherIncome - (bizExpense + otherBizExpense)

		series = append(series, CashFlowYear{
			Year: year,
			Age:  h.CurrentAge + i,

			MainIncome:       salary,
			SideIncome:       side,
			SpouseIncome:     spouse,
			InvestmentIncome: returns,

			LivingExpense:    living,
			HousingExpense:   housing,
			EducationExpense: education,
			OtherExpense:     other,

			PersonalAssets:      prevPersonal,
			PersonalReturns:     returns,
			PersonalBalance:     personalBalance,
			PersonalTotalAssets: prevPersonal + personalBalance,

			CorporateIncome:       sales,
			CorporateOtherIncome:  otherIncome,
			CorporateExpense:      bizExpense,
			CorporateOtherExpense: otherBizExpense,
			CorporateBalance:      corporateBalance,
			CorporateTotalAssets:  prevCorporate + corporateBalance,
		})

		prevPersonal += personalBalance
		prevCorporate += corporateBalance
	}

	return series, nil
}

// MissingBindings lists roles the projection reads that no item carries.
// Missing bindings are not errors, they resolve to zero, but callers can
// surface them as warnings.
func MissingBindings(in Inputs) []Role {
	var missing []Role
	check := func(items []LineItem, role Role) {
		if !HasRole(items, role) {
			missing = append(missing, role)
		}
	}
	check(in.Income.Personal, RoleSalary)
	check(in.Income.Personal, RoleSideIncome)
	check(in.Expenses.Personal, RoleLivingExpense)
	check(in.Expenses.Personal, RoleHousingExpense)
	check(in.Expenses.Personal, RoleEducationExpense)
	check(in.Expenses.Personal, RoleOtherExpense)
	check(in.Income.Corporate, RoleSales)
	check(in.Income.Corporate, RoleOtherIncome)
	check(in.Expenses.Corporate, RoleBusinessExpense)
	check(in.Expenses.Corporate, RoleOtherBizExpense)
	return missing
}
