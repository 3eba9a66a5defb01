package digest

import (
	"time"

	"github.com/heartmarshall/inbox-triage/internal/adapter/holidays"
)

// digestZone pins all civil-day arithmetic to UTC+9 regardless of where
// the process runs, so day boundaries never shift with server timezone.
var digestZone = time.FixedZone("JST", 9*60*60)

const civilDateLayout = "2006-01-02"

// civilDate renders the instant as a calendar date in digest time.
func civilDate(t time.Time) string {
	return t.In(digestZone).Format(civilDateLayout)
}

// startOfCivilDay truncates the instant to midnight of its digest-time day.
func startOfCivilDay(t time.Time) time.Time {
	local := t.In(digestZone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, digestZone)
}

// isBusinessDay reports whether the instant falls on a weekday that is not
// a public holiday.
func isBusinessDay(t time.Time, hol holidays.Set) bool {
	local := t.In(digestZone)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !hol.Contains(local.Format(civilDateLayout))
}

// isFirstBusinessDayOfWeek scans Monday through today in digest time and
// reports whether the earliest business day found is today. A Monday
// holiday shifts the first business day to Tuesday, and so on.
func isFirstBusinessDayOfWeek(today time.Time, hol holidays.Set) bool {
	day := startOfCivilDay(today)

	// Monday of the current week. time.Weekday numbers Sunday as 0.
	offset := (int(day.Weekday()) + 6) % 7
	cursor := day.AddDate(0, 0, -offset)

	for !cursor.After(day) {
		if isBusinessDay(cursor, hol) {
			return cursor.Equal(day)
		}
		cursor = cursor.AddDate(0, 0, 1)
	}
	return false
}

// elapsedCivilDays counts whole digest-time days from since to today.
// Returns -1 when since is unset.
func elapsedCivilDays(today time.Time, since *time.Time) int {
	if since == nil {
		return -1
	}
	from := startOfCivilDay(*since)
	to := startOfCivilDay(today)
	return int(to.Sub(from) / (24 * time.Hour))
}
