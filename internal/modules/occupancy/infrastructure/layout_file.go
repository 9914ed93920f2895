package infrastructure

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"occupancyDash/internal/modules/occupancy/domain"
)

// layoutFile is the on-disk seating plan. Rows list two table ids each; 0
// (or an omitted id) is an empty cell.
//
//	rows:
//	  - [0, 9]
//	  - [10, 8]
type layoutFile struct {
	Rows [][]int `yaml:"rows"`
}

// LoadLayoutFile reads a seating plan override. An empty path yields the default layout.
func LoadLayoutFile(path string) (domain.Layout, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return domain.DefaultLayout, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Layout{}, fmt.Errorf("read layout %s: %w", path, err)
	}
	return ParseLayout(raw)
}

// ParseLayout decodes a YAML seating plan.
func ParseLayout(raw []byte) (domain.Layout, error) {
	var file layoutFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return domain.Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	if len(file.Rows) != domain.LayoutRows {
		return domain.Layout{}, fmt.Errorf("%w: expected %d rows, got %d", domain.ErrLayoutSize, domain.LayoutRows, len(file.Rows))
	}
	cells := make([]int, 0, domain.LayoutCells)
	for idx, row := range file.Rows {
		if len(row) != domain.LayoutColumns {
			return domain.Layout{}, fmt.Errorf("%w: row %d has %d cells", domain.ErrLayoutSize, idx, len(row))
		}
		cells = append(cells, row...)
	}
	return domain.LayoutFromSlice(cells)
}
