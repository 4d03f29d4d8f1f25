// Package listview holds the pure filtering, sorting and stats pipeline
// behind the console list pages. Functions here never touch the store or the
// cache: they take a full collection and return a filtered view, leaving the
// input untouched, so running the same filter twice yields the same result.
// Stats are always computed over the full collection regardless of active
// filters; the cards on a page stay fixed while the table below them narrows.
//
// Filter fields use the "ALL" sentinel (or the empty string) for "no
// constraint". All populated constraints are AND-combined.
package listview
