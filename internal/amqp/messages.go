package amqp

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ProjectionSnapshotMessage tells the export worker a plan's projection
// was recomputed. It carries only identifiers; the worker loads the plan
// document from storage.
type ProjectionSnapshotMessage struct {
	PlanID      string    `json:"planId"`
	SnapshotID  string    `json:"snapshotId"`
	Years       int       `json:"years"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// NewProjectionSnapshotMessage creates a snapshot message with a fresh id.
func NewProjectionSnapshotMessage(planID string, years int) *ProjectionSnapshotMessage {
	return &ProjectionSnapshotMessage{
		PlanID:      planID,
		SnapshotID:  uuid.New().String(),
		Years:       years,
		GeneratedAt: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ProjectionSnapshotMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ProjectionSnapshotMessageFromJSON creates a message from JSON bytes
func ProjectionSnapshotMessageFromJSON(data []byte) (*ProjectionSnapshotMessage, error) {
	var msg ProjectionSnapshotMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
