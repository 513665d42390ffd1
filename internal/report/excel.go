package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelGenerator renders report rows as a flat xlsx sheet, one line per
// instance and answer pair.
type ExcelGenerator struct{}

func NewExcelGenerator() *ExcelGenerator { return &ExcelGenerator{} }

const sheetName = "Checklists"

var excelColumns = []string{
	"Checklist", "Template", "Sector", "Employee", "Equipment",
	"Fill Date", "Day", "Week", "Status", "Total Score",
	"Item", "Answer", "Comment",
}

func (g *ExcelGenerator) Generate(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create report sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"0D47A1"}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, name := range excelColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return nil, fmt.Errorf("write header cell: %w", err)
		}
	}
	endCell, _ := excelize.CoordinatesToCellName(len(excelColumns), 1)
	if err := f.SetCellStyle(sheetName, "A1", endCell, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, r := range rows {
		values := []interface{}{
			r.ExternalID,
			r.TemplateName,
			r.SectorName,
			r.EmployeeName,
			r.EquipmentName,
			r.FillDate.Format("2006-01-02"),
			derefOrNil(r.DayNumber),
			derefOrNil(r.WeekNumber),
			r.Status,
			scoreOrNil(r.TotalScore),
			r.Question,
			r.Value,
			r.Comment,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write report cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func derefOrNil(p *int) interface{} {
	if p == nil {
		return ""
	}
	return *p
}

func scoreOrNil(p *float64) interface{} {
	if p == nil {
		return ""
	}
	return *p
}
