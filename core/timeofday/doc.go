// Package timeofday converts clock strings to minutes since midnight and
// compares the resulting intervals.
//
// Catalog data is not guaranteed clean, so Parse never fails: an
// unparsable string yields Unknown, which is distinct from midnight (0).
// Interval helpers treat [start, end) as half-open, which means programs
// that end and start on the same minute do not overlap.
package timeofday
