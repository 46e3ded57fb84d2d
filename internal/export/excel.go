// Package export writes a patient's procedure grid to an .xlsx report
// for the front desk.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"clinicdesk/internal/domain"
	"clinicdesk/internal/grid"
)

// gridHeaderPrefix fixed columns before the per-zone columns.
var gridHeaderPrefix = []string{"Date", "Price", "Comment"}

// ProcedureGrid renders the inline grid of one patient as an .xlsx
// file: a styled header row with the fixed columns plus one column per
// zone, then one row per procedure with the empty-cell marker where no
// assignment exists.
func ProcedureGrid(patient domain.Patient, g *grid.Grid) ([]byte, error) {
	f := excelize.NewFile()
	// Don't defer Close here, Write needs the file open.

	sheetName := "Procedures"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)
	_ = f.SetDocProps(&excelize.DocProperties{Title: "Procedures: " + patient.Name})

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	headers := append(append([]string{}, gridHeaderPrefix...), g.Columns()...)
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for rowIdx, proc := range g.Rows() {
		values := []string{
			proc.Date,
			strconv.FormatFloat(proc.Price, 'f', 2, 64),
			proc.Comment,
		}
		for _, zone := range g.Columns() {
			values = append(values, g.Display(proc.ID, zone))
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	// A little breathing room for the fixed columns.
	_ = f.SetColWidth(sheetName, "A", "A", 12)
	_ = f.SetColWidth(sheetName, "C", "C", 30)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// Filename suggests a report filename for the patient. Path separators
// in the name are replaced so the result is always a single path
// element under the export directory.
func Filename(patient domain.Patient) string {
	name := patient.Name
	if name == "" {
		name = patient.ID
	}
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '-'
		}
		return r
	}, name)
	return "procedures-" + name + ".xlsx"
}
