// Package race provides the Race record parsed from a race calendar page.
//
// The race package handles date derivation for calendar rows: single dates
// and "start - end" ranges written as day.month, combined with the year that
// is currently selected on the page. Multi-day rows expand into a START and
// an END record so that each becomes its own all-day calendar entry.
package race
