package amqp

import "testing"

func TestProjectionSnapshotMessageRoundTrip(t *testing.T) {
	msg := NewProjectionSnapshotMessage("plan-1", 51)
	if msg.SnapshotID == "" {
		t.Fatal("snapshot id not assigned")
	}
	if msg.GeneratedAt.IsZero() {
		t.Fatal("generated at not set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	decoded, err := ProjectionSnapshotMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if decoded.PlanID != "plan-1" || decoded.SnapshotID != msg.SnapshotID || decoded.Years != 51 {
		t.Fatalf("decoded = %+v", decoded)
	}
	if !decoded.GeneratedAt.Equal(msg.GeneratedAt) {
		t.Fatalf("generated at = %v, want %v", decoded.GeneratedAt, msg.GeneratedAt)
	}
}

func TestUniqueSnapshotIDs(t *testing.T) {
	a := NewProjectionSnapshotMessage("p", 1)
	b := NewProjectionSnapshotMessage("p", 1)
	if a.SnapshotID == b.SnapshotID {
		t.Fatal("snapshot ids must be unique")
	}
}

func TestFromJSONRejectsGarbage(t *testing.T) {
	if _, err := ProjectionSnapshotMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error")
	}
}
