package normalization

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// AsString returns the trimmed string value, or "" for non-strings.
func AsString(value any) string {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// AsInt coerces JSON numbers (and numeric strings) into an int, truncating
// fractions. Non-finite and unsupported values yield 0.
func AsInt(value any) int {
	f, ok := AsFloat64OK(value)
	if !ok {
		return 0
	}
	return int(f)
}

// AsFloat64 coerces numeric values into float64, defaulting to 0.
func AsFloat64(value any) float64 {
	f, _ := AsFloat64OK(value)
	return f
}

// AsFloat64OK is AsFloat64 that also reports whether value held a finite number.
func AsFloat64OK(value any) (float64, bool) {
	var result float64
	switch typed := value.(type) {
	case float64:
		result = typed
	case float32:
		result = float64(typed)
	case int:
		result = float64(typed)
	case int32:
		result = float64(typed)
	case int64:
		result = float64(typed)
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		result = parsed
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		result = parsed
	default:
		return 0, false
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, false
	}
	return result, true
}

// AsInterfaceSlice normalizes decoded collections into a []any.
func AsInterfaceSlice(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []map[string]any:
		items := make([]any, 0, len(typed))
		for _, entry := range typed {
			items = append(items, entry)
		}
		return items
	default:
		return nil
	}
}

// MapFromPayload unwraps an optional {"data": {...}} envelope into a plain map.
func MapFromPayload(value any) map[string]any {
	if value == nil {
		return nil
	}
	if typed, ok := value.(map[string]any); ok {
		if data, ok := typed["data"].(map[string]any); ok {
			return data
		}
		return typed
	}
	return nil
}
