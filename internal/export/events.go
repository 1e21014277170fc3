package export

import (
	"fmt"
	"strings"

	"lifeplan/internal/core"
)

// LifeEvents describes what happens in a projected year for one book:
// the marriage year and each child's birth year. Only the personal book
// carries events; the corporate column stays empty.
func LifeEvents(h core.Household, year int, book core.Book) string {
	if book != core.BookPersonal {
		return ""
	}

	var events []string

	if h.MaritalStatus == core.Planning && h.Spouse != nil && h.Spouse.MarriageAge > 0 {
		if year == h.StartYear+(h.Spouse.MarriageAge-h.CurrentAge) {
			events = append(events, "結婚")
		}
	}

	for i, child := range h.Children {
		if year == h.StartYear-child.CurrentAge {
			events = append(events, fmt.Sprintf("第%d子誕生", i+1))
		}
	}
	for i, child := range h.PlannedChildren {
		if year == h.StartYear+child.YearsFromNow {
			events = append(events, fmt.Sprintf("第%d子誕生", len(h.Children)+i+1))
		}
	}

	return strings.Join(events, "、")
}
