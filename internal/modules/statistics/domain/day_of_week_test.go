package domain

import "testing"

func TestParseDay(t *testing.T) {
	cases := []struct {
		raw  string
		want DayOfWeek
	}{
		{"Пн", Monday},
		{" ср ", Wednesday},
		{"СБ", Saturday},
		{"FRIDAY", Friday},
		{"thu", Thursday},
		{"Tuesday", Tuesday},
	}
	for _, tc := range cases {
		got, ok := ParseDay(tc.raw)
		if !ok || got != tc.want {
			t.Fatalf("ParseDay(%q) = %q, %v; want %q", tc.raw, got, ok, tc.want)
		}
	}

	if _, ok := ParseDay("Вс"); ok {
		t.Fatal("sunday is not part of the week view")
	}
}

func TestDayOrDefault(t *testing.T) {
	if got, ok := DayOrDefault(""); !ok || got != Monday {
		t.Fatalf("expected Monday, got %q, %v", got, ok)
	}
	if got, ok := DayOrDefault("  "); !ok || got != Monday {
		t.Fatalf("blank input should select Monday, got %q, %v", got, ok)
	}
	if got, ok := DayOrDefault("Пт"); !ok || got != Friday {
		t.Fatalf("expected Friday, got %q, %v", got, ok)
	}
	if got, ok := DayOrDefault("Вс"); ok || got != Monday {
		t.Fatalf("unknown day should be rejected, got %q, %v", got, ok)
	}
}

func TestNormalizeDays(t *testing.T) {
	days := NormalizeDays([]any{"Пн", "sunday", 3, "Сб"})
	if len(days) != 2 || days[0] != Monday || days[1] != Saturday {
		t.Fatalf("unexpected days: %v", days)
	}
	if NormalizeDays(nil) != nil {
		t.Fatal("nil payload should yield nil")
	}
}
