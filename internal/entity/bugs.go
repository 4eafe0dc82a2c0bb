package entity

import (
	"fogreport/internal/fogbugz"
)

// BugSearcher runs a bug query expression and returns full records.
type BugSearcher interface {
	SearchBugs(query string) ([]fogbugz.Bug, error)
}

// Bugs is the bug lookup table. Misses load by id; a batch of misses
// becomes a single disjunction query; Preload fetches everything.
type Bugs struct {
	tbl table[int, fogbugz.Bug]
	src BugSearcher
}

// NewBugs builds the table over a search-backed loader.
func NewBugs(src BugSearcher) *Bugs {
	b := &Bugs{src: src}
	b.tbl = newTable(func(missing []int) (map[int]fogbugz.Bug, error) {
		bugs, err := src.SearchBugs(fogbugz.BugQuery(missing))
		if err != nil {
			return nil, err
		}
		out := make(map[int]fogbugz.Bug, len(bugs))
		for _, bug := range bugs {
			out[bug.ID] = bug
		}
		return out, nil
	})
	return b
}

// Get returns the bug for id, fetching on first miss.
func (b *Bugs) Get(id int) (fogbugz.Bug, error) {
	return b.tbl.get(id)
}

// Warm fetches all still-unknown ids in one disjunction query.
func (b *Bugs) Warm(ids []int) error {
	return b.tbl.warm(ids)
}

// Preload fetches every bug known to the service in one query.
func (b *Bugs) Preload() error {
	bugs, err := b.src.SearchBugs(fogbugz.QueryAllBugs)
	if err != nil {
		return err
	}
	for _, bug := range bugs {
		b.tbl.put(bug.ID, bug)
	}
	return nil
}

// Store caches a record obtained elsewhere (e.g. a resolution search),
// keeping later lookups local. Last writer wins within a run.
func (b *Bugs) Store(bug fogbugz.Bug) {
	b.tbl.put(bug.ID, bug)
}
