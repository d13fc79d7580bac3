package race

import (
	"fmt"
	"time"
)

const (
	// DayMonthYearLayout matches "1.3.2024" and "01.03.2024"
	DayMonthYearLayout = "2.1.2006"

	// DateLayout is used when printing race dates
	DateLayout = "2006-01-02"
)

// ParseDate combines a day.month string with the active year and parses it
// as day.month.year. Parsing is strict: any trailing or malformed text fails.
func ParseDate(dayMonth, year string) (time.Time, error) {
	text := dayMonth + "." + year
	t, err := time.Parse(DayMonthYearLayout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %q as day.month.year: %w", text, err)
	}
	return t, nil
}

// EndsBeforeStart reports whether a START/END pair runs backwards in time.
// Ranges crossing New Year parse this way because both sides use one year.
func EndsBeforeStart(start, end *Race) bool {
	return end.Date.Before(start.Date)
}
