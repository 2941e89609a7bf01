package timeutil

import (
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// helsinki is resolved once; the fixed zone only applies when tzdata is missing.
var helsinki = loadHelsinki()

func loadHelsinki() *time.Location {
	loc, err := time.LoadLocation("Europe/Helsinki")
	if err != nil {
		return time.FixedZone("EET", 2*60*60)
	}
	return loc
}

// Helsinki returns the league's local time zone.
func Helsinki() *time.Location {
	return helsinki
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// LocalDate formats t as a YYYY-MM-DD date in Helsinki time.
func LocalDate(t time.Time) string {
	return FormatDate(t.In(helsinki))
}

// AddDays shifts a YYYY-MM-DD date by n days.
func AddDays(date string, n int) (string, error) {
	parsed, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(parsed.AddDate(0, 0, n)), nil
}

// FinnishDate renders a date as D.M.YYYY for display.
func FinnishDate(date string) string {
	parsed, err := ParseDate(date)
	if err != nil {
		return date
	}
	return parsed.Format("2.1.2006")
}
