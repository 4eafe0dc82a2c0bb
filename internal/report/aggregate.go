// Package report reconciles the two remote time-accounting sources —
// explicit logged intervals and elapsed-on-resolution hours — into one
// per-developer, per-tag hour ledger, and renders it.
package report

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"fogreport/internal/config"
	"fogreport/internal/entity"
	"fogreport/internal/fogbugz"
)

// Entry source types.
const (
	EntryTimesheet = "timesheet"
	EntryElapsed   = "elapsed"
)

// Source is the slice of the remote API the aggregation passes consume.
// *fogbugz.Client satisfies it; tests inject fakes.
type Source interface {
	ListIntervals(person int, start, end time.Time) ([]fogbugz.Interval, error)
	SearchBugs(query string) ([]fogbugz.Bug, error)
	BugURL(id int) string
}

// Entry is one detail row: a record crossed with one effective tag.
type Entry struct {
	Date    time.Time
	Bug     int
	Title   string
	Dev     string
	Hours   float64
	Project string
	Tag     string
	URL     string
	Type    string
}

// Result is everything the renderers need: the ledger, the detail list
// in discovery order, and the data-quality sets.
type Result struct {
	Ledger    Ledger
	Tags      map[string]struct{}
	Anomalies map[int]struct{}
	Entries   []Entry
}

func newResult() *Result {
	return &Result{
		Ledger:    make(Ledger),
		Tags:      make(map[string]struct{}),
		Anomalies: make(map[int]struct{}),
	}
}

// TagList returns the observed tags in sorted order.
func (r *Result) TagList() []string {
	tags := make([]string, 0, len(r.Tags))
	for tag := range r.Tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// AnomalyList returns ids of bugs seen with tag count != 1, sorted.
func (r *Result) AnomalyList() []int {
	ids := make([]int, 0, len(r.Anomalies))
	for id := range r.Anomalies {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Aggregator runs the two passes for a half-open [start, end) range.
type Aggregator struct {
	src    Source
	people *entity.People
	bugs   *entity.Bugs
	cfg    config.ReportConfig
	log    zerolog.Logger
}

// NewAggregator wires an aggregator over a remote source and its entity
// tables.
func NewAggregator(src Source, people *entity.People, bugs *entity.Bugs, cfg config.ReportConfig, log zerolog.Logger) *Aggregator {
	return &Aggregator{src: src, people: people, bugs: bugs, cfg: cfg, log: log}
}

// Run produces the ledger and detail list for [start, end). Any fetch
// or lookup failure aborts the whole run; partial results are never
// returned.
func (a *Aggregator) Run(start, end time.Time) (*Result, error) {
	res := newResult()

	if a.cfg.Prefetch {
		if err := a.bugs.Preload(); err != nil {
			return nil, err
		}
	}

	if err := a.timesheetPass(res, start, end); err != nil {
		return nil, err
	}
	if err := a.elapsedPass(res, start, end); err != nil {
		return nil, err
	}
	return res, nil
}

// timesheetPass folds logged intervals into the ledger.
func (a *Aggregator) timesheetPass(res *Result, start, end time.Time) error {
	intervals, err := a.src.ListIntervals(a.cfg.IntervalPerson, start, end)
	if err != nil {
		return err
	}
	a.log.Debug().Int("intervals", len(intervals)).Msg("timesheet pass")

	// One disjunction query for every referenced bug.
	var ids []int
	for _, iv := range intervals {
		ids = append(ids, iv.Bug)
	}
	if err := a.bugs.Warm(ids); err != nil {
		return err
	}

	for _, iv := range intervals {
		hours := iv.Hours()
		if hours == 0 {
			continue
		}
		person, err := a.people.Get(iv.Person)
		if err != nil {
			return err
		}
		bug, err := a.bugs.Get(iv.Bug)
		if err != nil {
			return err
		}
		a.record(res, person.Name, bug, hours, iv.End, EntryTimesheet)
	}
	return nil
}

// elapsedPass folds elapsed-on-resolution hours into the ledger. The
// remote resolution query is date-granular, so the half-open instant
// range is re-checked locally.
func (a *Aggregator) elapsedPass(res *Result, start, end time.Time) error {
	resolved, err := a.src.SearchBugs(fogbugz.ResolvedQuery(start, end))
	if err != nil {
		return err
	}
	a.log.Debug().Int("cases", len(resolved)).Msg("elapsed pass")

	for _, bug := range resolved {
		a.bugs.Store(bug)

		if bug.Resolved.IsZero() || bug.Resolved.Before(start) || !bug.Resolved.Before(end) {
			continue
		}
		if bug.ElapsedExtra == 0 {
			continue
		}
		if bug.ResolvedBy == fogbugz.PersonNobody && !a.cfg.CountUnassigned {
			a.log.Debug().Int("bug", bug.ID).Msg("dropping unassigned resolution hours")
			continue
		}
		person, err := a.people.Get(bug.ResolvedBy)
		if err != nil {
			return err
		}
		a.record(res, person.Name, bug, bug.ElapsedExtra, bug.Resolved, EntryElapsed)
	}
	return nil
}

// record applies one time record to the ledger, entry list, tag set and
// anomaly set. Per-tag cells get the hours once per tag; "total" gets
// them exactly once; elapsed records additionally feed "non-timesheet";
// a tagless record feeds "None" instead of a tag cell.
func (a *Aggregator) record(res *Result, dev string, bug fogbugz.Bug, hours float64, date time.Time, typ string) {
	if len(bug.Tags) != 1 {
		res.Anomalies[bug.ID] = struct{}{}
	}

	effective := bug.Tags
	if len(effective) == 0 {
		effective = []string{CategoryNone}
	}

	for _, tag := range effective {
		res.Ledger.Add(dev, tag, hours)
		if tag != CategoryNone {
			res.Tags[tag] = struct{}{}
		}
		res.Entries = append(res.Entries, Entry{
			Date:    date,
			Bug:     bug.ID,
			Title:   bug.Title,
			Dev:     dev,
			Hours:   hours,
			Project: bug.Project,
			Tag:     tag,
			URL:     a.src.BugURL(bug.ID),
			Type:    typ,
		})
	}

	res.Ledger.Add(dev, CategoryTotal, hours)
	if typ == EntryElapsed {
		res.Ledger.Add(dev, CategoryNonTimesheet, hours)
	}
}
