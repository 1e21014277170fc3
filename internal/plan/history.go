package plan

import (
	"time"

	"lifeplan/internal/core"
)

// HistoryEntry is one appended audit record of an amount edit. Entries are
// only ever appended or cleared in bulk.
type HistoryEntry struct {
	Timestamp     time.Time    `json:"timestamp"`
	Section       core.Section `json:"type"`
	Book          core.Book    `json:"section"`
	ItemID        int          `json:"itemId"`
	Year          int          `json:"year"`
	PreviousValue float64      `json:"previousValue"`
	NewValue      float64      `json:"newValue"`
}
