package fogbugz

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// QueryAllBugs requests every bug known to the service.
const QueryAllBugs = "*"

// BugQuery builds a disjunction query selecting exactly the given bug
// ids, so a batch of misses costs one round trip.
func BugQuery(ids []int) string {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)

	parts := make([]string, 0, len(sorted))
	for _, id := range sorted {
		parts = append(parts, fmt.Sprintf("ixBug:%q", fmt.Sprint(id)))
	}
	return strings.Join(parts, " OR ")
}

// ResolvedQuery selects bugs resolved between two instants. The remote
// query language is date-granular, so the expression covers whole
// calendar days; callers re-check the half-open instant range on the
// returned records.
func ResolvedQuery(start, end time.Time) string {
	return fmt.Sprintf("resolved:%q", start.Format("2006-01-02")+".."+end.Format("2006-01-02"))
}
