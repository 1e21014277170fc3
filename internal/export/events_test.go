package export

import (
	"testing"

	"lifeplan/internal/core"
)

func TestLifeEventsMarriage(t *testing.T) {
	h := core.Household{
		CurrentAge:    30,
		StartYear:     2024,
		MaritalStatus: core.Planning,
		Spouse:        &core.SpouseInfo{MarriageAge: 33},
	}

	if got := LifeEvents(h, 2027, core.BookPersonal); got != "結婚" {
		t.Fatalf("2027 = %q, want 結婚", got)
	}
	if got := LifeEvents(h, 2026, core.BookPersonal); got != "" {
		t.Fatalf("2026 = %q, want empty", got)
	}

	// Already married plans carry no marriage event.
	h.MaritalStatus = core.Married
	if got := LifeEvents(h, 2027, core.BookPersonal); got != "" {
		t.Fatalf("married 2027 = %q, want empty", got)
	}
}

func TestLifeEventsBirths(t *testing.T) {
	h := core.Household{
		CurrentAge:      30,
		StartYear:       2024,
		MaritalStatus:   core.Married,
		Children:        []core.Child{{CurrentAge: 2}},
		PlannedChildren: []core.PlannedChild{{YearsFromNow: 3}},
	}

	if got := LifeEvents(h, 2022, core.BookPersonal); got != "第1子誕生" {
		t.Fatalf("2022 = %q, want 第1子誕生", got)
	}
	// Planned children number after the existing ones.
	if got := LifeEvents(h, 2027, core.BookPersonal); got != "第2子誕生" {
		t.Fatalf("2027 = %q, want 第2子誕生", got)
	}
}

func TestLifeEventsJoined(t *testing.T) {
	h := core.Household{
		CurrentAge:      30,
		StartYear:       2024,
		MaritalStatus:   core.Planning,
		Spouse:          &core.SpouseInfo{MarriageAge: 30},
		PlannedChildren: []core.PlannedChild{{YearsFromNow: 0}},
	}

	if got := LifeEvents(h, 2024, core.BookPersonal); got != "結婚、第1子誕生" {
		t.Fatalf("2024 = %q", got)
	}
}

func TestLifeEventsCorporateEmpty(t *testing.T) {
	h := core.Household{
		CurrentAge:    30,
		StartYear:     2024,
		MaritalStatus: core.Planning,
		Spouse:        &core.SpouseInfo{MarriageAge: 30},
	}

	if got := LifeEvents(h, 2024, core.BookCorporate); got != "" {
		t.Fatalf("corporate = %q, want empty", got)
	}
}
