package plan

import (
	"time"

	"lifeplan/internal/core"
)

// Display names of the seed items the housing "own" mode writes into.
const (
	realEstateItemName = "不動産"
	loanItemName       = "ローン"
)

func defaultHousehold() core.Household {
	return core.Household{
		CurrentAge:    30,
		StartYear:     time.Now().Year(),
		DeathAge:      80,
		Gender:        "male",
		Occupation:    core.CompanyEmployee,
		MaritalStatus: core.Single,
		Housing: core.HousingInfo{
			Type: core.HousingRent,
			Rent: &core.RentInfo{RenewalInterval: 2},
		},
	}
}

func defaultParameters() core.Parameters {
	return core.Parameters{
		InflationRate:             1.0,
		EducationCostIncreaseRate: 2.0,
		InvestmentReturn:          3.0,
	}
}

func defaultIncome() core.ItemSet {
	return core.ItemSet{
		Personal: []core.LineItem{
			newItem(1, core.NameSalary, "income", core.RoleSalary),
			newItem(2, core.NameBusinessIncome, "profit", core.RoleBusinessIncome),
			newItem(3, core.NameSideIncome, "side", core.RoleSideIncome),
		},
		Corporate: []core.LineItem{
			newItem(1, core.NameSales, "income", core.RoleSales),
			newItem(2, core.NameOtherIncome, "income", core.RoleOtherIncome),
		},
	}
}

func defaultExpenses() core.ItemSet {
	return core.ItemSet{
		Personal: []core.LineItem{
			newItem(1, core.NameLivingExpense, "living", core.RoleLivingExpense),
			newItem(2, core.NameHousingExpense, "housing", core.RoleHousingExpense),
			newItem(3, core.NameEducationExpense, "education", core.RoleEducationExpense),
			newItem(4, core.NameOtherExpense, "other", core.RoleOtherExpense),
		},
		Corporate: []core.LineItem{
			newItem(1, core.NameBusinessExpense, "other", core.RoleBusinessExpense),
			newItem(2, core.NameOtherBizExpense, "other", core.RoleOtherBizExpense),
		},
	}
}

func defaultAssets() core.ItemSet {
	return core.ItemSet{
		Personal: []core.LineItem{
			newItem(1, "現金・預金", "cash", core.RoleNone),
			newItem(2, "株式", "investment", core.RoleNone),
			newItem(3, "投資信託", "investment", core.RoleNone),
			newItem(4, realEstateItemName, "property", core.RoleNone),
		},
		Corporate: []core.LineItem{
			newItem(1, "現金預金", "cash", core.RoleNone),
			newItem(2, "設備", "property", core.RoleNone),
			newItem(3, "在庫", "other", core.RoleNone),
		},
	}
}

func defaultLiabilities() core.ItemSet {
	return core.ItemSet{
		Personal: []core.LineItem{
			newItem(1, loanItemName, "loan", core.RoleNone),
			newItem(2, "クレジット残高", "credit", core.RoleNone),
		},
		Corporate: []core.LineItem{
			newItem(1, "借入金", "loan", core.RoleNone),
			newItem(2, "未払金", "other", core.RoleNone),
		},
	}
}

func newItem(id int, name, itemType string, role core.Role) core.LineItem {
	return core.LineItem{ID: id, Name: name, Type: itemType, Role: role, Amounts: map[int]float64{}}
}
