package entity

import (
	"fogreport/internal/fogbugz"
)

// PersonLister fetches every person known to the remote service.
type PersonLister interface {
	ListPeople() ([]fogbugz.Person, error)
}

// People is the person lookup table. The first miss of any id triggers
// one bulk fetch of the whole directory; person 0 ("nobody") is seeded
// locally and never costs a round trip.
type People struct {
	tbl table[int, fogbugz.Person]
}

// NewPeople builds the table over a bulk loader.
func NewPeople(src PersonLister) *People {
	p := &People{}
	p.tbl = newTable(func([]int) (map[int]fogbugz.Person, error) {
		all, err := src.ListPeople()
		if err != nil {
			return nil, err
		}
		out := make(map[int]fogbugz.Person, len(all))
		for _, person := range all {
			out[person.ID] = person
		}
		return out, nil
	})
	p.tbl.put(fogbugz.PersonNobody, fogbugz.Person{
		ID:   fogbugz.PersonNobody,
		Name: "nobody",
	})
	return p
}

// Get returns the person for id, bulk-fetching the directory on the
// first unknown id.
func (p *People) Get(id int) (fogbugz.Person, error) {
	return p.tbl.get(id)
}
