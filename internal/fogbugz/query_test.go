package fogbugz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBugQuerySortsAndJoins(t *testing.T) {
	q := BugQuery([]int{30, 10, 20})
	assert.Equal(t, `ixBug:"10" OR ixBug:"20" OR ixBug:"30"`, q)
}

func TestBugQuerySingleID(t *testing.T) {
	assert.Equal(t, `ixBug:"7"`, BugQuery([]int{7}))
}

func TestBugQueryEmpty(t *testing.T) {
	assert.Empty(t, BugQuery(nil))
}

func TestResolvedQueryUsesCalendarDays(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, `resolved:"2026-06-01..2026-07-01"`, ResolvedQuery(start, end))
}
