package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fogreport/internal/fogbugz"
)

// Columns returns the category column order for a sorted tag list:
// "None" first, the tags, then "total" and "non-timesheet" last.
func Columns(tags []string) []string {
	cols := make([]string, 0, len(tags)+3)
	cols = append(cols, CategoryNone)
	cols = append(cols, tags...)
	cols = append(cols, CategoryTotal, CategoryNonTimesheet)
	return cols
}

// AnomalyQuery builds the remote filter expression selecting exactly
// the anomalous bugs, for manual operator follow-up.
func AnomalyQuery(ids []int) string {
	return fogbugz.BugQuery(ids)
}

// formatHours renders a cell without trailing zeros, so a re-run over
// identical data produces byte-identical output.
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// writeAnomalies emits the data-quality block that precedes every
// report section.
func writeAnomalies(w io.Writer, res *Result) error {
	ids := res.AnomalyList()
	if len(ids) == 0 {
		_, err := fmt.Fprintf(w, "bugs with tag count != 1\tnone\n\n")
		return err
	}

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	if _, err := fmt.Fprintf(w, "bugs with tag count != 1\t%s\n", strings.Join(parts, ", ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "follow-up query\t%s\n\n", AnomalyQuery(ids)); err != nil {
		return err
	}
	return nil
}

// WriteSummary renders the cumulative report: the anomaly block, then
// one row per developer with one column per category.
func WriteSummary(w io.Writer, res *Result) error {
	if err := writeAnomalies(w, res); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	cols := Columns(res.TagList())
	header := append([]string{"dev_name"}, cols...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, dev := range res.Ledger.Developers() {
		row := make([]string, 0, len(header))
		row = append(row, dev)
		for _, col := range cols {
			row = append(row, formatHours(res.Ledger.Hours(dev, col)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// detailHeader is the fixed column order of the detailed report.
var detailHeader = []string{
	"date", "time", "bug_num", "title", "dev_name",
	"hours", "project", "tag", "url", "type",
}

// detailRow splits the entry's instant into date and time fields.
func detailRow(e Entry) []string {
	return []string{
		e.Date.Format("2006-01-02"),
		e.Date.Format("15:04:05"),
		strconv.Itoa(e.Bug),
		e.Title,
		e.Dev,
		formatHours(e.Hours),
		e.Project,
		e.Tag,
		e.URL,
		e.Type,
	}
}

// WriteDetails renders the detailed report: the anomaly block, then one
// row per time entry in discovery order.
func WriteDetails(w io.Writer, res *Result) error {
	if err := writeAnomalies(w, res); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(detailHeader); err != nil {
		return err
	}
	for _, e := range res.Entries {
		if err := cw.Write(detailRow(e)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
