package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	detailSheet  = "Details"
)

// WriteWorkbook writes the report as a spreadsheet: a summary sheet,
// plus a details sheet when detailed is set. Hours are written as
// numbers so the cells stay usable in formulas.
func WriteWorkbook(path string, res *Result, detailed bool) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeSummarySheet(f, res); err != nil {
		return err
	}

	if detailed {
		if _, err := f.NewSheet(detailSheet); err != nil {
			return fmt.Errorf("add sheet: %w", err)
		}
		if err := writeDetailSheet(f, res); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// setRow writes one row of cells starting at column A.
func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

// anomalyRows renders the data-quality block shared by both sheets.
func anomalyRows(res *Result) [][]interface{} {
	ids := res.AnomalyList()
	if len(ids) == 0 {
		return [][]interface{}{
			{"bugs with tag count != 1", "none"},
			{},
		}
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return [][]interface{}{
		{"bugs with tag count != 1", strings.Join(parts, ", ")},
		{"follow-up query", AnomalyQuery(ids)},
		{},
	}
}

func writeSummarySheet(f *excelize.File, res *Result) error {
	row := 1
	for _, cells := range anomalyRows(res) {
		if err := setRow(f, summarySheet, row, cells); err != nil {
			return err
		}
		row++
	}

	cols := Columns(res.TagList())
	header := make([]interface{}, 0, len(cols)+1)
	header = append(header, "dev_name")
	for _, col := range cols {
		header = append(header, col)
	}
	if err := setRow(f, summarySheet, row, header); err != nil {
		return err
	}
	row++

	for _, dev := range res.Ledger.Developers() {
		cells := make([]interface{}, 0, len(cols)+1)
		cells = append(cells, dev)
		for _, col := range cols {
			cells = append(cells, res.Ledger.Hours(dev, col))
		}
		if err := setRow(f, summarySheet, row, cells); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeDetailSheet(f *excelize.File, res *Result) error {
	row := 1
	for _, cells := range anomalyRows(res) {
		if err := setRow(f, detailSheet, row, cells); err != nil {
			return err
		}
		row++
	}

	header := make([]interface{}, 0, len(detailHeader))
	for _, h := range detailHeader {
		header = append(header, h)
	}
	if err := setRow(f, detailSheet, row, header); err != nil {
		return err
	}
	row++

	for _, e := range res.Entries {
		cells := []interface{}{
			e.Date.Format("2006-01-02"),
			e.Date.Format("15:04:05"),
			e.Bug,
			e.Title,
			e.Dev,
			e.Hours,
			e.Project,
			e.Tag,
			e.URL,
			e.Type,
		}
		if err := setRow(f, detailSheet, row, cells); err != nil {
			return err
		}
		row++
	}
	return nil
}
