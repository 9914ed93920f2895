package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	LayoutColumns = 2
	LayoutRows    = 10
	LayoutCells   = LayoutColumns * LayoutRows

	// EmptyCell marks a permanent gap in the seating plan.
	EmptyCell = 0
)

var (
	ErrLayoutSize      = errors.New("layout must have exactly 20 cells")
	ErrLayoutTableID   = errors.New("layout table id out of range")
	ErrLayoutDuplicate = errors.New("layout table id repeated")
)

// Layout maps grid cells (row-major, two per row) to table ids.
type Layout [LayoutCells]int

// DefaultLayout mirrors the hall: tables 9..1 run down the right wall, 10..17
// down the left, with 18 alone in the bottom-right corner.
var DefaultLayout = Layout{
	EmptyCell, 9,
	10, 8,
	11, 7,
	12, 6,
	13, 5,
	14, 4,
	15, 3,
	16, 2,
	17, 1,
	EmptyCell, 18,
}

// SeatCell is one rendered cell of the seating grid.
type SeatCell struct {
	Index   int            `json:"index"`
	Row     int            `json:"row"`
	Column  int            `json:"column"`
	TableID int            `json:"tableId"`
	Table   *TableSnapshot `json:"-"`
	Color   StatusColor    `json:"color,omitempty"`
}

type seatCellJSON struct {
	Index       int         `json:"index"`
	Row         int         `json:"row"`
	Column      int         `json:"column"`
	TableID     int         `json:"tableId"`
	Placeholder bool        `json:"placeholder"`
	Occupied    *int        `json:"occupied,omitempty"`
	Capacity    *int        `json:"capacity,omitempty"`
	Label       string      `json:"label,omitempty"`
	Color       StatusColor `json:"color,omitempty"`
}

// MarshalJSON flattens the resolved table into occupied and capacity.
func (c SeatCell) MarshalJSON() ([]byte, error) {
	out := seatCellJSON{
		Index:       c.Index,
		Row:         c.Row,
		Column:      c.Column,
		TableID:     c.TableID,
		Placeholder: c.Placeholder(),
		Label:       c.Label(),
		Color:       c.Color,
	}
	if c.Table != nil {
		occupied, capacity := c.Table.Occupied, c.Table.Capacity
		out.Occupied = &occupied
		out.Capacity = &capacity
	}
	return json.Marshal(out)
}

// Placeholder reports whether the cell renders as an empty, aria-hidden gap.
func (c SeatCell) Placeholder() bool {
	return c.Table == nil
}

// Label renders occupied/capacity verbatim.
func (c SeatCell) Label() string {
	if c.Table == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d", c.Table.Occupied, c.Table.Capacity)
}

// Validate checks that the layout only references visible tables, each at most once.
func (l Layout) Validate() error {
	seen := make(map[int]struct{}, LayoutCells)
	for idx, id := range l {
		if id == EmptyCell {
			continue
		}
		if !IsVisible(id) {
			return fmt.Errorf("cell %d: %w: %d", idx, ErrLayoutTableID, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("cell %d: %w: %d", idx, ErrLayoutDuplicate, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// LayoutFromSlice converts a decoded cell list into a Layout.
func LayoutFromSlice(cells []int) (Layout, error) {
	var layout Layout
	if len(cells) != LayoutCells {
		return layout, fmt.Errorf("%w: got %d", ErrLayoutSize, len(cells))
	}
	copy(layout[:], cells)
	if err := layout.Validate(); err != nil {
		return Layout{}, err
	}
	return layout, nil
}

// BuildSeating resolves every cell of the layout against the snapshot. Tables
// missing from the snapshot leave their cell as a placeholder.
func BuildSeating(layout Layout, status *DetailedStatus) []SeatCell {
	cells := make([]SeatCell, 0, LayoutCells)
	for idx, id := range layout {
		cell := SeatCell{
			Index:   idx,
			Row:     idx / LayoutColumns,
			Column:  idx % LayoutColumns,
			TableID: id,
		}
		if id != EmptyCell {
			if table, ok := status.TableByID(id); ok {
				cell.Table = &table
				cell.Color = TableColor(table)
			}
		}
		cells = append(cells, cell)
	}
	return cells
}
