package domain

import (
	"errors"
	"testing"
)

func TestDecodeDetailedStatus(t *testing.T) {
	raw := []byte(`{
		"overall_inside": 3,
		"total_capacity": 6,
		"tables": [
			{"table_id": 1, "occupied": 0, "capacity": 3, "status_color": "green"},
			{"table_id": 2, "occupied": 3, "capacity": 3, "status_color": "red"},
			{"occupied": 1, "capacity": 3}
		],
		"last_update": "2025-12-16 12:34:56"
	}`)

	status, err := DecodeDetailedStatus(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(status.Tables) != 2 {
		t.Fatalf("expected 2 tables (id-less entry dropped), got %d", len(status.Tables))
	}
	if status.Tables[1].StatusColor != StatusColorRed {
		t.Fatalf("unexpected colour: %s", status.Tables[1].StatusColor)
	}
	if status.OverallInside != 3 || status.TotalCapacity != 6 {
		t.Fatalf("unexpected totals: %+v", status)
	}
	if status.LastUpdate != "2025-12-16 12:34:56" {
		t.Fatalf("unexpected last update: %s", status.LastUpdate)
	}
}

func TestDecodeDetailedStatusRejectsNonStatusFrames(t *testing.T) {
	if _, err := DecodeDetailedStatus([]byte("pong")); err == nil {
		t.Fatal("expected decode error for plain text frame")
	}
	if _, err := DecodeDetailedStatus([]byte(`{"message":"hi"}`)); !errors.Is(err, ErrMalformedStatus) {
		t.Fatalf("expected ErrMalformedStatus, got %v", err)
	}
	if _, err := DecodeDetailedStatus([]byte(`{"tables":"nope"}`)); !errors.Is(err, ErrMalformedStatus) {
		t.Fatalf("expected ErrMalformedStatus for non-array tables, got %v", err)
	}
}

func TestDecodeDetailedStatusAcceptsEmptyTables(t *testing.T) {
	status, err := DecodeDetailedStatus([]byte(`{"tables": [], "last_update": "N/A"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(status.Tables) != 0 {
		t.Fatalf("expected no tables, got %d", len(status.Tables))
	}
}

func TestCloneDoesNotShareTables(t *testing.T) {
	original := &DetailedStatus{Tables: []TableSnapshot{{ID: 1, Occupied: 1, Capacity: 4}}}
	cloned := original.Clone()
	cloned.Tables[0].Occupied = 4
	if original.Tables[0].Occupied != 1 {
		t.Fatal("clone mutated the original tables")
	}
}

func TestFormatLastUpdate(t *testing.T) {
	cases := map[string]string{
		"":                    "",
		"N/A":                 "",
		"2025-12-16 12:34:56": "12:34",
		"12:34:56":            "12:34",
		"2025-12-16 9:05":     "9:05",
	}
	for input, want := range cases {
		if got := FormatLastUpdate(input); got != want {
			t.Fatalf("FormatLastUpdate(%q) = %q, want %q", input, got, want)
		}
	}
}
