package query_test

import (
	"testing"
	"time"

	"github.com/goto/ticketsearch/core/query"
	"github.com/stretchr/testify/assert"
)

func TestResolveDate(t *testing.T) {
	cases := []struct {
		token    string
		expected time.Time
		ok       bool
	}{
		{token: "today", expected: date(2024, time.March, 13), ok: true},
		{token: "Yesterday", expected: date(2024, time.March, 12), ok: true},
		{token: "tomorrow", expected: date(2024, time.March, 14), ok: true},
		{token: "week", expected: date(2024, time.March, 11), ok: true},
		{token: "lastweek", expected: date(2024, time.March, 4), ok: true},
		{token: "month", expected: date(2024, time.March, 1), ok: true},
		{token: "lastmonth", expected: date(2024, time.February, 1), ok: true},
		{token: "year", expected: date(2024, time.January, 1), ok: true},
		{token: "lastyear", expected: date(2023, time.January, 1), ok: true},
		{token: "3days", expected: now.AddDate(0, 0, -3), ok: true},
		{token: "1day", expected: now.AddDate(0, 0, -1), ok: true},
		{token: "2weeks", expected: now.AddDate(0, 0, -14), ok: true},
		{token: "1month", expected: now.AddDate(0, -1, 0), ok: true},
		{token: "1year", expected: now.AddDate(-1, 0, 0), ok: true},
		{token: "monday", expected: date(2024, time.March, 11), ok: true},
		{token: "wed", expected: date(2024, time.March, 6), ok: true},
		{token: "thursday", expected: date(2024, time.March, 7), ok: true},
		{token: "2024-01-15", expected: date(2024, time.January, 15), ok: true},
		{token: "2024/01/15", expected: date(2024, time.January, 15), ok: true},
		{token: "15.01.2024", expected: date(2024, time.January, 15), ok: true},
		{token: "someday"},
		{token: "2024-13-45"},
		{token: ""},
		{token: "3fortnights"},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			got, ok := query.ResolveDate(tc.token, now)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, tc.expected.Equal(got), "expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestResolveDateMonthOverflow(t *testing.T) {
	endOfMarch := time.Date(2024, time.March, 31, 10, 0, 0, 0, time.UTC)
	got, ok := query.ResolveDate("1month", endOfMarch)
	assert.True(t, ok)
	assert.True(t, time.Date(2024, time.February, 29, 10, 0, 0, 0, time.UTC).Equal(got), got)
}

func TestResolvePeriod(t *testing.T) {
	cases := []struct {
		token string
		start time.Time
		end   time.Time
		ok    bool
	}{
		{token: "week", start: date(2024, time.March, 4), end: endOf(2024, time.March, 10), ok: true},
		{token: "lastweek", start: date(2024, time.March, 4), end: endOf(2024, time.March, 10), ok: true},
		{token: "month", start: date(2024, time.February, 1), end: endOf(2024, time.February, 29), ok: true},
		{token: "year", start: date(2023, time.January, 1), end: endOf(2023, time.December, 31), ok: true},
		{token: "thismonth", start: date(2024, time.March, 1), end: endOf(2024, time.March, 13), ok: true},
		{token: "thisweek", start: date(2024, time.March, 11), end: endOf(2024, time.March, 13), ok: true},
		{token: "today", start: date(2024, time.March, 13), end: endOf(2024, time.March, 13), ok: true},
		{token: "yesterday", start: date(2024, time.March, 12), end: endOf(2024, time.March, 12), ok: true},
		{token: "friday", start: date(2024, time.March, 8), end: endOf(2024, time.March, 8), ok: true},
		{token: "2024-01-15", start: date(2024, time.January, 15), end: endOf(2024, time.January, 15), ok: true},
		{token: "7days", start: date(2024, time.March, 6), end: endOf(2024, time.March, 13), ok: true},
		{token: "nonsense"},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			start, end, ok := query.ResolvePeriod(tc.token, now)
			assert.Equal(t, tc.ok, ok)
			if !tc.ok {
				return
			}
			assert.True(t, tc.start.Equal(start), "start: expected %s, got %s", tc.start, start)
			assert.True(t, tc.end.Equal(end), "end: expected %s, got %s", tc.end, end)
			assert.False(t, end.Before(start))
		})
	}
}

func TestResolveInCallerZone(t *testing.T) {
	for _, loc := range []*time.Location{
		time.FixedZone("PST", -8*60*60),
		time.FixedZone("JST", 9*60*60),
		time.UTC,
	} {
		t.Run(loc.String(), func(t *testing.T) {
			// 2024-03-13 07:04 wall clock, a wednesday in every zone above
			zoned := time.Date(2024, time.March, 13, 7, 4, 5, 0, loc)

			today, ok := query.ResolveDate("today", zoned)
			assert.True(t, ok)
			assert.Equal(t, time.Date(2024, time.March, 13, 0, 0, 0, 0, loc), today)
			assert.Equal(t, loc, today.Location())

			month, ok := query.ResolveDate("lastmonth", zoned)
			assert.True(t, ok)
			assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, loc), month)

			start, end, ok := query.ResolvePeriod("friday", zoned)
			assert.True(t, ok)
			assert.Equal(t, time.Date(2024, time.March, 8, 0, 0, 0, 0, loc), start)
			assert.Equal(t, time.Date(2024, time.March, 8, 23, 59, 59, 999999999, loc), end)

			last := query.Parse("x last:friday", zoned)
			explicit := query.Parse("x after:2024-03-08 before:2024-03-08", zoned)
			if assert.NotNil(t, last.After) && assert.NotNil(t, explicit.After) {
				assert.True(t, last.After.Equal(*explicit.After), "after: %s != %s", last.After, explicit.After)
			}
			if assert.NotNil(t, last.Before) && assert.NotNil(t, explicit.Before) {
				assert.True(t, last.Before.Equal(*explicit.Before), "before: %s != %s", last.Before, explicit.Before)
			}

			assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, loc), query.StartOfQuarter(zoned))
		})
	}
}
