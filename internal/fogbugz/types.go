package fogbugz

import (
	"encoding/xml"
	"errors"
	"strconv"
	"strings"
	"time"
)

// PersonNobody is the synthetic person id the remote service uses for
// unassigned work.
const PersonNobody = 0

// Person is a remote account.
type Person struct {
	ID    int
	Name  string
	Email string
}

// Bug is a fully parsed case record. Tags are already in their
// reporting form, "<project>-<raw tag>".
type Bug struct {
	ID           int
	Title        string
	Project      string
	Tags         []string
	Resolved     time.Time // zero when unresolved
	ElapsedExtra float64   // hours credited at resolution outside any interval
	ResolvedBy   int
}

// Interval is one logged time-tracking entry.
type Interval struct {
	Person int
	Bug    int
	Start  time.Time
	End    time.Time
}

// Hours returns the interval duration in fractional hours.
func (iv Interval) Hours() float64 {
	return iv.End.Sub(iv.Start).Hours()
}

// envelope is the XML response wrapper every command returns.
type envelope struct {
	XMLName   xml.Name      `xml:"response"`
	Error     *xmlError     `xml:"error"`
	Token     string        `xml:"token"`
	People    []xmlPerson   `xml:"people>person"`
	Cases     []xmlCase     `xml:"cases>case"`
	Intervals []xmlInterval `xml:"intervals>interval"`
}

type xmlError struct {
	Code    string `xml:"code,attr"`
	Message string `xml:",chardata"`
}

type xmlPerson struct {
	ID    int    `xml:"ixPerson"`
	Name  string `xml:"sFullName"`
	Email string `xml:"sEmail"`
}

// Numeric and date fields decode as strings so that absent elements are
// distinguishable from zero values when validating records.
type xmlCase struct {
	ID           string   `xml:"ixBug,attr"`
	Title        string   `xml:"sTitle"`
	Project      string   `xml:"sProject"`
	Tags         []string `xml:"tags>tag"`
	Resolved     string   `xml:"dtResolved"`
	ElapsedExtra string   `xml:"hrsElapsedExtra"`
	ResolvedBy   string   `xml:"ixPersonResolvedBy"`
	Raw          string   `xml:",innerxml"`
}

type xmlInterval struct {
	Person string `xml:"ixPerson"`
	Bug    string `xml:"ixBug"`
	Start  string `xml:"dtStart"`
	End    string `xml:"dtEnd"`
	Raw    string `xml:",innerxml"`
}

// parseTime accepts the service's UTC instant format and the date-only
// form used by resolution timestamps.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (x xmlInterval) toInterval() (Interval, error) {
	malformed := func(err error) (Interval, error) {
		return Interval{}, &MalformedRecordError{Kind: "interval", Raw: strings.TrimSpace(x.Raw), Err: err}
	}

	if x.Person == "" || x.Bug == "" || x.Start == "" || x.End == "" {
		return malformed(errors.New("missing required field"))
	}
	person, err := strconv.Atoi(strings.TrimSpace(x.Person))
	if err != nil {
		return malformed(err)
	}
	bug, err := strconv.Atoi(strings.TrimSpace(x.Bug))
	if err != nil {
		return malformed(err)
	}
	start, err := parseTime(x.Start)
	if err != nil {
		return malformed(err)
	}
	end, err := parseTime(x.End)
	if err != nil {
		return malformed(err)
	}
	return Interval{Person: person, Bug: bug, Start: start, End: end}, nil
}

func (x xmlCase) toBug() (Bug, error) {
	malformed := func(err error) (Bug, error) {
		return Bug{}, &MalformedRecordError{Kind: "case", Raw: strings.TrimSpace(x.Raw), Err: err}
	}

	if x.ID == "" {
		return malformed(errors.New("missing ixBug"))
	}
	id, err := strconv.Atoi(strings.TrimSpace(x.ID))
	if err != nil {
		return malformed(err)
	}

	b := Bug{ID: id, Title: x.Title, Project: x.Project}

	// Reporting tags carry the project prefix.
	for _, raw := range x.Tags {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		b.Tags = append(b.Tags, x.Project+"-"+raw)
	}

	if s := strings.TrimSpace(x.Resolved); s != "" {
		t, err := parseTime(s)
		if err != nil {
			return malformed(err)
		}
		b.Resolved = t
	}
	if s := strings.TrimSpace(x.ElapsedExtra); s != "" {
		h, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return malformed(err)
		}
		b.ElapsedExtra = h
	}
	if s := strings.TrimSpace(x.ResolvedBy); s != "" {
		p, err := strconv.Atoi(s)
		if err != nil {
			return malformed(err)
		}
		b.ResolvedBy = p
	}
	return b, nil
}
