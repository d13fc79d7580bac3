package calendar

import (
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/pfrederiksen/race-calendar/internal/race"
)

const (
	ProductID = "-//race-calendar//race-calendar//EN"
	UIDDomain = "race-calendar"
)

// Build creates a calendar with one all-day event per race, in input order.
// stamp is used as DTSTAMP for every event.
func Build(races []*race.Race, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ics.MethodPublish)

	for _, r := range races {
		evt := cal.AddEvent(r.UID() + "@" + UIDDomain)
		evt.SetDtStampTime(stamp.UTC())
		evt.SetAllDayStartAt(r.Date)
		// DTEND is exclusive for all-day events
		evt.SetAllDayEndAt(r.Date.AddDate(0, 0, 1))
		evt.SetSummary(Summary(r))
		evt.SetDescription(Description(r))
	}

	return cal
}

// Serialize renders the calendar as ICS text
func Serialize(cal *ics.Calendar) string {
	return cal.Serialize()
}

// Summary returns the event title for a race
func Summary(r *race.Race) string {
	return "Race: " + r.Name
}

// Description returns the event body: race, class and, once known, the winner
func Description(r *race.Race) string {
	var desc strings.Builder
	desc.WriteString("Race: " + r.Name)
	desc.WriteString("\nClass: " + r.Class)
	if r.HasWinner() {
		desc.WriteString("\nWinner: " + *r.Winner)
	}
	return desc.String()
}
