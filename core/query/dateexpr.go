package query

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-module/carbon/v2"
)

var (
	relativeOffsetPattern = regexp.MustCompile(`^(\d+)(day|week|month|year)s?$`)

	dateLayouts = []string{
		"2006-01-02",
		"2006/01/02",
		"02.01.2006",
		time.RFC3339,
	}

	weekdays = map[string]time.Weekday{
		"sunday": time.Sunday, "sun": time.Sunday,
		"monday": time.Monday, "mon": time.Monday,
		"tuesday": time.Tuesday, "tue": time.Tuesday,
		"wednesday": time.Wednesday, "wed": time.Wednesday,
		"thursday": time.Thursday, "thu": time.Thursday,
		"friday": time.Friday, "fri": time.Friday,
		"saturday": time.Saturday, "sat": time.Saturday,
	}
)

// ResolveDate turns a date token into an instant relative to now. Named
// periods resolve to the start of the period. ok is false when the token is
// not a recognised date expression.
func ResolveDate(token string, now time.Time) (time.Time, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return time.Time{}, false
	}
	c, loc := inLocation(now), now.Location()

	switch token {
	case "today":
		return inZone(c.StartOfDay(), loc), true
	case "yesterday":
		return inZone(c.SubDay().StartOfDay(), loc), true
	case "tomorrow":
		return inZone(c.AddDay().StartOfDay(), loc), true
	case "week", "thisweek":
		return startOfWeek(now), true
	case "lastweek":
		return startOfWeek(now).AddDate(0, 0, -7), true
	case "month", "thismonth":
		return inZone(c.StartOfMonth(), loc), true
	case "lastmonth":
		return inZone(c.StartOfMonth().SubMonthNoOverflow(), loc), true
	case "year", "thisyear":
		return inZone(c.StartOfYear(), loc), true
	case "lastyear":
		return inZone(c.StartOfYear().SubYearNoOverflow(), loc), true
	}

	if n, unit, ok := relativeOffset(token); ok {
		return inZone(subtract(c, n, unit), loc), true
	}

	if wd, ok := weekdays[token]; ok {
		return previousWeekday(now, wd), true
	}

	return parseCalendarDate(token, now.Location())
}

// ResolvePeriod resolves the value of a last: operator into an inclusive
// [start, end] window.
//
//	week, month, year             previous full calendar period
//	lastweek, lastmonth, lastyear same as above
//	thisweek, thismonth, thisyear period start up to the end of today
//	today, yesterday, <weekday>   that single day
//	<date>                        that single day
//	<N><unit>                     start of the day N units ago up to the end of today
func ResolvePeriod(token string, now time.Time) (start, end time.Time, ok bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	c, loc := inLocation(now), now.Location()
	endOfToday := inZone(c.EndOfDay(), loc)

	switch token {
	case "week", "lastweek":
		start = startOfWeek(now).AddDate(0, 0, -7)
		return start, endOfDay(start.AddDate(0, 0, 6)), true
	case "month", "lastmonth":
		prev := c.StartOfMonth().SubMonthNoOverflow()
		return inZone(prev, loc), inZone(prev.EndOfMonth(), loc), true
	case "year", "lastyear":
		prev := c.StartOfYear().SubYearNoOverflow()
		return inZone(prev, loc), inZone(prev.EndOfYear(), loc), true
	case "thisweek":
		return startOfWeek(now), endOfToday, true
	case "thismonth":
		return inZone(c.StartOfMonth(), loc), endOfToday, true
	case "thisyear":
		return inZone(c.StartOfYear(), loc), endOfToday, true
	}

	if n, unit, ok := relativeOffset(token); ok {
		return inZone(subtract(c, n, unit).StartOfDay(), loc), endOfToday, true
	}

	day, ok := ResolveDate(token, now)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return startOfDay(day), endOfDay(day), true
}

func relativeOffset(token string) (int, string, bool) {
	m := relativeOffsetPattern.FindStringSubmatch(token)
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return n, m[2], true
}

func subtract(c carbon.Carbon, n int, unit string) carbon.Carbon {
	switch unit {
	case "week":
		return c.SubWeeks(n)
	case "month":
		return c.SubMonthsNoOverflow(n)
	case "year":
		return c.SubYearsNoOverflow(n)
	}
	return c.SubDays(n)
}

func parseCalendarDate(token string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, token, loc); err == nil {
			return t, true
		}
	}

	// must look like a date, carbon also accepts bare words such as "now"
	if !strings.ContainsAny(token, "0123456789") {
		return time.Time{}, false
	}
	c := carbon.Parse(token, carbon.UTC)
	if c.Error != nil || c.IsZero() {
		return time.Time{}, false
	}
	return inZone(c, loc), true
}

// previousWeekday returns the start of the most recent wd strictly before
// the day of now.
func previousWeekday(now time.Time, wd time.Weekday) time.Time {
	diff := (int(now.Weekday()) - int(wd) + 7) % 7
	if diff == 0 {
		diff = 7
	}
	return startOfDay(now.AddDate(0, 0, -diff))
}

// startOfWeek returns Monday 00:00 of the week containing now.
func startOfWeek(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	return startOfDay(now.AddDate(0, 0, -offset))
}

func startOfDay(t time.Time) time.Time {
	return inZone(inLocation(t).StartOfDay(), t.Location())
}

func endOfDay(t time.Time) time.Time {
	return inZone(inLocation(t).EndOfDay(), t.Location())
}

// StartOfDay returns midnight of the day of t, in the zone of t.
func StartOfDay(t time.Time) time.Time { return startOfDay(t) }

// StartOfQuarter returns the first instant of the calendar quarter of t, in
// the zone of t.
func StartOfQuarter(t time.Time) time.Time {
	return inZone(inLocation(t).StartOfQuarter(), t.Location())
}

// inLocation lifts the wall clock of t into a UTC carbon value. Carbon does
// its calendar arithmetic in its own zone, which is time.Local unless set by
// name, so the zone of t is reapplied by inZone afterwards.
func inLocation(t time.Time) carbon.Carbon {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return carbon.Time2Carbon(wall).SetTimezone(carbon.UTC)
}

func inZone(c carbon.Carbon, loc *time.Location) time.Time {
	w := c.Carbon2Time()
	return time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), loc)
}
