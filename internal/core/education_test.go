package core

import (
	"math"
	"testing"
)

func allPublic() EducationPlan {
	return EducationPlan{
		Nursery:    SchoolPublic,
		Preschool:  SchoolPublic,
		Elementary: SchoolPublic,
		JuniorHigh: SchoolPublic,
		HighSchool: SchoolPublic,
		University: UniversityPublicHumanities,
	}
}

func allNone() EducationPlan {
	return EducationPlan{
		Nursery:    SchoolNone,
		Preschool:  SchoolNone,
		Elementary: SchoolNone,
		JuniorHigh: SchoolNone,
		HighSchool: SchoolNone,
		University: UniversityNone,
	}
}

func TestAnnualEducationCostBands(t *testing.T) {
	public := allPublic()
	private := EducationPlan{
		Nursery:    SchoolPrivate,
		Preschool:  SchoolPrivate,
		Elementary: SchoolPrivate,
		JuniorHigh: SchoolPrivate,
		HighSchool: SchoolPrivate,
		University: UniversityPrivateScience,
	}

	tests := []struct {
		name    string
		age     int
		public  float64
		private float64
	}{
		{"nursery", 1, 23.3, 50},
		{"preschool", 4, 58.3, 100},
		{"elementary", 8, 41.7, 83.3},
		{"junior high", 13, 66.7, 133.3},
		{"high school", 16, 83.3, 250},
		{"university", 19, 325, 650},
		{"before nursery", -1, 0, 0},
		{"after university", 22, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := annualEducationCost(public, tt.age); !almostEqual(got, tt.public) {
				t.Errorf("public age %d = %v, want %v", tt.age, got, tt.public)
			}
			if got := annualEducationCost(private, tt.age); !almostEqual(got, tt.private) {
				t.Errorf("private age %d = %v, want %v", tt.age, got, tt.private)
			}
		})
	}
}

func TestUniversityCost(t *testing.T) {
	tests := []struct {
		choice UniversityChoice
		want   float64
	}{
		{UniversityPublicHumanities, 325},
		{UniversityPublicScience, 375},
		{UniversityPrivateHumanities, 550},
		{UniversityPrivateScience, 650},
		{UniversityNone, 0},
		{UniversityChoice("medical"), 0}, // unrecognized selections cost nothing
	}
	for _, tt := range tests {
		if got := UniversityCost(tt.choice); got != tt.want {
			t.Errorf("UniversityCost(%q) = %v, want %v", tt.choice, got, tt.want)
		}
	}
}

func TestEducationExpenseAllNoneIsZero(t *testing.T) {
	children := []Child{{CurrentAge: 3, Education: allNone()}}
	planned := []PlannedChild{{YearsFromNow: 2, Education: allNone()}}

	for year := 2024; year <= 2050; year++ {
		if got := EducationExpense(children, planned, year, 2024, 2); got != 0 {
			t.Fatalf("year %d = %v, want 0", year, got)
		}
	}
}

func TestEducationExpenseInflation(t *testing.T) {
	children := []Child{{CurrentAge: 6, Education: allPublic()}}

	// Elementary cost, compounded two years from the start year.
	want := Round1(41.7 * math.Pow(1.02, 2))
	if got := EducationExpense(children, nil, 2026, 2024, 2); got != want {
		t.Fatalf("EducationExpense = %v, want %v", got, want)
	}
}

func TestEducationExpensePlannedChild(t *testing.T) {
	planned := []PlannedChild{{YearsFromNow: 3, Education: allPublic()}}

	// Nothing before the birth year.
	for year := 2024; year < 2027; year++ {
		if got := EducationExpense(nil, planned, year, 2024, 0); got != 0 {
			t.Fatalf("year %d = %v, want 0 before birth", year, got)
		}
	}
	// Born in 2027, so nursery cost from then on.
	if got := EducationExpense(nil, planned, 2027, 2024, 0); got != 23.3 {
		t.Fatalf("birth year = %v, want 23.3", got)
	}
	// Age 2 in 2029, still nursery; age 3 in 2030, preschool.
	if got := EducationExpense(nil, planned, 2029, 2024, 0); got != 23.3 {
		t.Fatalf("age 2 = %v, want 23.3", got)
	}
	if got := EducationExpense(nil, planned, 2030, 2024, 0); got != 58.3 {
		t.Fatalf("age 3 = %v, want 58.3", got)
	}
}

func TestEducationExpenseSumsChildren(t *testing.T) {
	children := []Child{
		{CurrentAge: 6, Education: allPublic()},
		{CurrentAge: 13, Education: allPublic()},
	}
	if got := EducationExpense(children, nil, 2024, 2024, 0); !almostEqual(got, 41.7+66.7) {
		t.Fatalf("EducationExpense = %v, want %v", got, 41.7+66.7)
	}
}

func TestEducationExpenseRoundsToOneDecimal(t *testing.T) {
	children := []Child{{CurrentAge: 6, Education: allPublic()}}
	got := EducationExpense(children, nil, 2031, 2024, 3)
	if got != Round1(got) {
		t.Fatalf("EducationExpense = %v, not rounded to one decimal", got)
	}
}
