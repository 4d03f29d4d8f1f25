package listview

import (
	"strings"
	"time"
)

// Sentinel filter values. All matches everything and does not count as an
// active filter; None matches users without an institution.
const (
	All  = "ALL"
	None = "NONE"
)

// isAll reports whether a filter value places no constraint.
func isAll(v string) bool {
	return v == "" || v == All
}

// containsFold reports whether s contains substr case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// endOfDay pushes a timestamp to the last instant of its calendar day, so an
// upper bound picked from a date widget includes the whole day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
