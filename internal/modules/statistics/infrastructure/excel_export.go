package infrastructure

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"occupancyDash/internal/modules/statistics/domain"
)

const exportSheet = "Загруженность"

// WriteWeeklyWorkbook writes one row per weekday with a column per hour,
// followed by the average load and peak hour of that day.
func WriteWeeklyWorkbook(w io.Writer, stats *domain.WeeklyStats) error {
	if stats == nil {
		stats = domain.DefaultWeeklyStats()
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, 0, len(stats.Hours)+3)
	header = append(header, "День")
	for _, hour := range stats.Hours {
		header = append(header, hour+":00")
	}
	header = append(header, "Средняя загрузка, %", "Пик загрузки")
	if err := writeRow(file, 1, header); err != nil {
		return err
	}

	style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		end, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = file.SetCellStyle(exportSheet, "A1", end, style)
	}

	for i, day := range domain.Weekdays {
		summary := domain.SummarizeDay(stats, day)
		row := make([]any, 0, len(header))
		row = append(row, string(day))
		values := stats.Series(day)
		for h := range stats.Hours {
			if h < len(values) {
				row = append(row, values[h])
			} else {
				row = append(row, 0)
			}
		}
		row = append(row, summary.AveragePercent, summary.PeakLabel())
		if err := writeRow(file, i+2, row); err != nil {
			return err
		}
	}

	if err := file.SetCellValue(exportSheet, fmt.Sprintf("A%d", len(domain.Weekdays)+3), "Вместимость"); err != nil {
		return err
	}
	if err := file.SetCellValue(exportSheet, fmt.Sprintf("B%d", len(domain.Weekdays)+3), stats.TotalCapacity); err != nil {
		return err
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(file *excelize.File, rowIndex int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIndex)
	if err != nil {
		return err
	}
	if err := file.SetSheetRow(exportSheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", rowIndex, err)
	}
	return nil
}
