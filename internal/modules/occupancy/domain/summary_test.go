package domain

import "testing"

func TestSummarizeCountsOnlyVisibleTables(t *testing.T) {
	status := &DetailedStatus{Tables: []TableSnapshot{
		{ID: 1, Occupied: 2, Capacity: 4},
		{ID: 18, Occupied: 1, Capacity: 2},
		{ID: 19, Occupied: 6, Capacity: 6},
		{ID: 0, Occupied: 1, Capacity: 1},
	}}

	summary := Summarize(status)
	if summary.Tables != 2 {
		t.Fatalf("expected 2 visible tables, got %d", summary.Tables)
	}
	if summary.Occupied != 3 || summary.Capacity != 6 {
		t.Fatalf("unexpected totals %d/%d", summary.Occupied, summary.Capacity)
	}
	if summary.Percent != 50 {
		t.Fatalf("expected 50%%, got %d", summary.Percent)
	}
	if summary.Color != StatusColorYellow {
		t.Fatalf("expected yellow, got %s", summary.Color)
	}
}

func TestSummarizeKeepsOverCapacityVerbatim(t *testing.T) {
	summary := Summarize(&DetailedStatus{Tables: []TableSnapshot{{ID: 1, Occupied: 5, Capacity: 3}}})
	if summary.Occupied != 5 || summary.Capacity != 3 {
		t.Fatalf("values must not be clamped, got %d/%d", summary.Occupied, summary.Capacity)
	}
	if summary.Percent != 167 {
		t.Fatalf("expected 167%%, got %d", summary.Percent)
	}
	if summary.BarWidth() != 100 {
		t.Fatalf("bar width should be capped for drawing, got %d", summary.BarWidth())
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.Percent != 0 || summary.Tables != 0 {
		t.Fatalf("unexpected summary for nil status: %+v", summary)
	}
	if summary.Color != StatusColorGreen {
		t.Fatalf("expected green for empty hall, got %s", summary.Color)
	}
}

func TestRoundHalfUp(t *testing.T) {
	if RoundHalfUp(12.5) != 13 {
		t.Fatal("12.5 should round to 13")
	}
	if RoundHalfUp(12.49) != 12 {
		t.Fatal("12.49 should round to 12")
	}
}
