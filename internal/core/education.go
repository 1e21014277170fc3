package core

import "math"

const (
	SchoolPublic  SchoolChoice = "public"
	SchoolPrivate SchoolChoice = "private"
	SchoolNone    SchoolChoice = "none"

	UniversityPublicHumanities  UniversityChoice = "public_humanities"
	UniversityPublicScience     UniversityChoice = "public_science"
	UniversityPrivateHumanities UniversityChoice = "private_humanities"
	UniversityPrivateScience    UniversityChoice = "private_science"
	UniversityNone              UniversityChoice = "none"
)

type (
	SchoolChoice     string
	UniversityChoice string

	// EducationPlan selects, per school level, whether the child attends
	// and whether publicly or privately. Levels are independent; "none"
	// suppresses cost for that level only.
	EducationPlan struct {
		Nursery    SchoolChoice     `json:"nursery"`
		Preschool  SchoolChoice     `json:"preschool"`
		Elementary SchoolChoice     `json:"elementary"`
		JuniorHigh SchoolChoice     `json:"juniorHigh"`
		HighSchool SchoolChoice     `json:"highSchool"`
		University UniversityChoice `json:"university"`
	}
)

// Flat annual education costs in man-yen, by age band. Bands do not
// overlap, so at most one applies per child per year.
var schoolCosts = []struct {
	minAge, maxAge  int
	public, private float64
	level           func(EducationPlan) SchoolChoice
}{
	{0, 2, 23.3, 50, func(p EducationPlan) SchoolChoice { return p.Nursery }},
	{3, 5, 58.3, 100, func(p EducationPlan) SchoolChoice { return p.Preschool }},
	{6, 11, 41.7, 83.3, func(p EducationPlan) SchoolChoice { return p.Elementary }},
	{12, 14, 66.7, 133.3, func(p EducationPlan) SchoolChoice { return p.JuniorHigh }},
	{15, 17, 83.3, 250, func(p EducationPlan) SchoolChoice { return p.HighSchool }},
}

const universityMinAge, universityMaxAge = 18, 21

// UniversityCost is the flat annual cost for a university selection in
// man-yen. Unrecognized selections cost nothing rather than failing.
func UniversityCost(choice UniversityChoice) float64 {
	switch choice {
	case UniversityPublicHumanities:
		return 325
	case UniversityPublicScience:
		return 375
	case UniversityPrivateHumanities:
		return 550
	case UniversityPrivateScience:
		return 650
	}
	return 0
}

// annualEducationCost is the uninflated cost for a child of the given age.
func annualEducationCost(plan EducationPlan, age int) float64 {
	for _, band := range schoolCosts {
		if age < band.minAge || age > band.maxAge {
			continue
		}
		switch band.level(plan) {
		case SchoolNone:
			return 0
		case SchoolPrivate:
			return band.private
		default:
			return band.public
		}
	}
	if age >= universityMinAge && age <= universityMaxAge {
		return UniversityCost(plan.University)
	}
	return 0
}

// EducationExpense computes the total education cost for a year across all
// existing and planned children, compounded by the education cost increase
// rate from the start year and rounded to one decimal. A planned child
// contributes only from its birth year on.
func EducationExpense(children []Child, planned []PlannedChild, year, startYear int, increaseRate float64) float64 {
	elapsed := year - startYear
	multiplier := math.Pow(1+increaseRate/100, float64(elapsed))

	var total float64
	for _, child := range children {
		age := child.CurrentAge + elapsed
		total += annualEducationCost(child.Education, age) * multiplier
	}
	for _, child := range planned {
		if elapsed < child.YearsFromNow {
			continue
		}
		age := elapsed - child.YearsFromNow
		total += annualEducationCost(child.Education, age) * multiplier
	}
	return Round1(total)
}
