package export

import (
	"bytes"
	"strings"
	"testing"

	"lifeplan/internal/core"
)

func exportInputs() core.Inputs {
	return core.Inputs{
		Household: core.Household{
			CurrentAge:    30,
			StartYear:     2024,
			DeathAge:      31,
			MaritalStatus: core.Single,
			Housing:       core.HousingInfo{Type: core.HousingRent, Rent: &core.RentInfo{}},
		},
		Income: core.ItemSet{
			Personal: []core.LineItem{
				{ID: 1, Name: core.NameSalary, Role: core.RoleSalary, Amounts: map[int]float64{2024: 480, 2025: 490}},
			},
			Corporate: []core.LineItem{
				{ID: 1, Name: core.NameSales, Role: core.RoleSales, Amounts: map[int]float64{2024: 1000}},
			},
		},
		Expenses: core.ItemSet{
			Personal: []core.LineItem{
				{ID: 1, Name: core.NameLivingExpense, Role: core.RoleLivingExpense, Amounts: map[int]float64{2024: 240.5}},
			},
		},
	}
}

func TestCashFlowCSV(t *testing.T) {
	in := exportInputs()
	series, err := core.Project(in)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	out := CashFlowCSV(in, series)
	if !bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("missing UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimRight(string(out[3:]), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header plus two years", len(lines))
	}

	// The header row is unquoted; data cells are quoted.
	wantHeader := `年度,年齢,イベント（個人）,イベント（法人）,` +
		`給与収入（万円）,売上（万円）,生活費（万円）,` +
		`個人収支（万円）,個人総資産（万円）,法人収支（万円）,法人総資産（万円）`
	if lines[0] != wantHeader {
		t.Fatalf("header = %s", lines[0])
	}

	want2024 := `"2024","30","","","480","1000","240.5","239.5","239.5","1000","1000"`
	if lines[1] != want2024 {
		t.Fatalf("2024 row = %s", lines[1])
	}

	want2025 := `"2025","31","","","490","0","0","490","729.5","0","1000"`
	if lines[2] != want2025 {
		t.Fatalf("2025 row = %s", lines[2])
	}
}

func TestWriteRowEscapesQuotes(t *testing.T) {
	var b strings.Builder
	writeRow(&b, []string{`a"b`, "c"})
	if got := b.String(); got != `"a""b","c"`+"\n" {
		t.Fatalf("row = %s", got)
	}
}

func TestCashFlowCSVEventColumns(t *testing.T) {
	in := exportInputs()
	in.Household.MaritalStatus = core.Planning
	in.Household.Spouse = &core.SpouseInfo{MarriageAge: 31}
	series, err := core.Project(in)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	out := string(CashFlowCSV(in, series))
	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[2], `"2025","31","結婚",""`) {
		t.Fatalf("2025 row = %s", lines[2])
	}
}
