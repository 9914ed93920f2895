package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"occupancyDash/internal/shared/normalization"
)

// ErrMalformedStatus is returned when a payload cannot be projected into a DetailedStatus.
var ErrMalformedStatus = errors.New("malformed status payload")

// TableSnapshot is the occupancy of one physical table.
type TableSnapshot struct {
	ID          int         `json:"table_id"`
	Occupied    int         `json:"occupied"`
	Capacity    int         `json:"capacity"`
	StatusColor StatusColor `json:"status_color,omitempty"`
}

// DetailedStatus is the full occupancy snapshot pushed by the backend.
type DetailedStatus struct {
	OverallInside int             `json:"overall_inside"`
	TotalCapacity int             `json:"total_capacity"`
	Tables        []TableSnapshot `json:"tables"`
	LastUpdate    string          `json:"last_update"`
}

// Clone returns a deep copy so readers never share the tables slice with the writer.
func (s *DetailedStatus) Clone() *DetailedStatus {
	if s == nil {
		return nil
	}
	cloned := *s
	cloned.Tables = append([]TableSnapshot(nil), s.Tables...)
	return &cloned
}

// TableByID returns the table with the given identifier.
func (s *DetailedStatus) TableByID(id int) (TableSnapshot, bool) {
	if s == nil {
		return TableSnapshot{}, false
	}
	for _, table := range s.Tables {
		if table.ID == id {
			return table, true
		}
	}
	return TableSnapshot{}, false
}

// DecodeDetailedStatus parses a JSON frame or response body.
func DecodeDetailedStatus(raw []byte) (*DetailedStatus, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	status, ok := BuildDetailedStatus(payload)
	if !ok {
		return nil, ErrMalformedStatus
	}
	return status, nil
}

// BuildDetailedStatus projects an arbitrary decoded payload into a DetailedStatus.
// The payload must be an object carrying a tables array; the array may be empty.
func BuildDetailedStatus(payload any) (*DetailedStatus, bool) {
	container := normalization.MapFromPayload(payload)
	if container == nil {
		return nil, false
	}
	rawTables, present := container["tables"]
	if !present {
		return nil, false
	}
	if _, isSlice := rawTables.([]any); !isSlice && rawTables != nil {
		return nil, false
	}

	status := &DetailedStatus{
		OverallInside: normalization.AsInt(container["overall_inside"]),
		TotalCapacity: normalization.AsInt(container["total_capacity"]),
		LastUpdate:    normalization.AsString(container["last_update"]),
		Tables:        make([]TableSnapshot, 0),
	}
	for _, item := range normalization.AsInterfaceSlice(rawTables) {
		rawMap, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if table, ok := NormalizeTable(rawMap); ok {
			status.Tables = append(status.Tables, table)
		}
	}
	return status, true
}

// NormalizeTable builds a TableSnapshot from a map payload. Entries without an
// identifier are rejected.
func NormalizeTable(raw map[string]any) (TableSnapshot, bool) {
	idValue, ok := raw["table_id"]
	if !ok {
		idValue, ok = raw["id"]
	}
	if !ok {
		return TableSnapshot{}, false
	}
	id := normalization.AsInt(idValue)
	if id == 0 {
		return TableSnapshot{}, false
	}
	color := raw["status_color"]
	if color == nil {
		color = raw["statusColor"]
	}
	return TableSnapshot{
		ID:          id,
		Occupied:    normalization.AsInt(raw["occupied"]),
		Capacity:    normalization.AsInt(raw["capacity"]),
		StatusColor: ParseStatusColor(normalization.AsString(color)),
	}, true
}

// FormatLastUpdate keeps only the HH:MM portion of a backend timestamp.
func FormatLastUpdate(value string) string {
	if value == "" || value == "N/A" {
		return ""
	}
	parts := strings.Split(value, " ")
	timePart := value
	if len(parts) >= 2 {
		timePart = parts[1]
	}
	runes := []rune(timePart)
	if len(runes) > 5 {
		runes = runes[:5]
	}
	return string(runes)
}
