package report

import "sort"

// Reserved category labels. "total" counts each record once regardless
// of its tag count; per-tag cells count once per tag, so the two only
// reconcile for single-tag bugs. That gap is the bad-data signal.
const (
	CategoryNone         = "None"
	CategoryTotal        = "total"
	CategoryNonTimesheet = "non-timesheet"
)

// Ledger maps developer name → category label → accumulated hours.
type Ledger map[string]map[string]float64

// Add accumulates hours in a cell, creating the developer's row on
// first access.
func (l Ledger) Add(dev, category string, hours float64) {
	cells, ok := l[dev]
	if !ok {
		cells = make(map[string]float64)
		l[dev] = cells
	}
	cells[category] += hours
}

// Hours returns a cell value, zero when the cell was never touched.
func (l Ledger) Hours(dev, category string) float64 {
	return l[dev][category]
}

// Developers returns all developer names in sorted order.
func (l Ledger) Developers() []string {
	devs := make([]string, 0, len(l))
	for dev := range l {
		devs = append(devs, dev)
	}
	sort.Strings(devs)
	return devs
}
