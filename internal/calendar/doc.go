// Package calendar builds iCalendar (.ics) files from race records.
//
// Every race becomes one all-day VEVENT. Multi-day races arrive here already
// split into START and END records, so each end of the race is its own event.
package calendar
