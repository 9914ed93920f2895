package normalization

import (
	"encoding/json"
	"math"
	"testing"
)

func TestAsInt(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{in: float64(3), want: 3},
		{in: 4.9, want: 4},
		{in: "7", want: 7},
		{in: json.Number("12"), want: 12},
		{in: "abc", want: 0},
		{in: nil, want: 0},
		{in: math.Inf(1), want: 0},
	}
	for _, tc := range cases {
		if got := AsInt(tc.in); got != tc.want {
			t.Fatalf("AsInt(%#v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestAsFloat64OK(t *testing.T) {
	if _, ok := AsFloat64OK(math.NaN()); ok {
		t.Fatal("NaN must not be reported as a number")
	}
	if v, ok := AsFloat64OK(" 2.5 "); !ok || v != 2.5 {
		t.Fatalf("unexpected parse result %v %v", v, ok)
	}
}

func TestMapFromPayloadUnwrapsData(t *testing.T) {
	payload := map[string]any{"data": map[string]any{"tables": []any{}}}
	got := MapFromPayload(payload)
	if _, ok := got["tables"]; !ok {
		t.Fatalf("expected unwrapped data envelope, got %#v", got)
	}
	if MapFromPayload([]any{1}) != nil {
		t.Fatal("non-map payloads should yield nil")
	}
}
