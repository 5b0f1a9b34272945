// Package timeops computes the time-derived values the server hands
// back: formatted wall-clock strings, calendar arithmetic and the
// city timezone/DST model. Everything is pure given an injected
// time.Time, so handlers stay deterministic under test.
package timeops

import "time"

func DateTime(t time.Time) string   { return t.Format("02/01/2006 15:04:05") }
func TimeOfDay(t time.Time) string  { return t.Format("15:04:05") }
func HourMinute(t time.Time) string { return t.Format("15:04") }
func Year(t time.Time) string       { return t.Format("2006") }
func MonthDay(t time.Time) string   { return t.Format("02/01") }

// EpochSeconds is the unix time truncated to 32 bits.
func EpochSeconds(t time.Time) uint32 {
	return uint32(t.Unix())
}

// SecondsIntoMonth counts the seconds elapsed since midnight of the
// first day of t's month, in t's location.
func SecondsIntoMonth(t time.Time) uint32 {
	monthStart := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return uint32(t.Sub(monthStart) / time.Second)
}

// WeekOfYear is the Sunday-based week number in 0..53; days before the
// year's first Sunday fall in week 0 (strftime %U semantics).
func WeekOfYear(t time.Time) uint32 {
	yday := t.YearDay() - 1
	wday := int(t.Weekday())
	return uint32((yday + 7 - wday) / 7)
}

// InDaylightSavings reports whether t's zone is shifted off its
// standard offset. The standard offset is taken as the smaller of the
// January and July offsets, which holds in both hemispheres.
func InDaylightSavings(t time.Time) bool {
	loc := t.Location()
	_, jan := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, loc).Zone()
	_, jul := time.Date(t.Year(), time.July, 1, 0, 0, 0, 0, loc).Zone()
	std := jan
	if jul < std {
		std = jul
	}
	_, off := t.Zone()
	return off > std
}

// NthWeekday returns the day of month of the n-th occurrence of
// weekday in the given month.
func NthWeekday(year int, month time.Month, weekday time.Weekday, n int) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	return 1 + (7+int(weekday)-int(first))%7 + (n-1)*7
}

// LastWeekday returns the day of month of the final occurrence of
// weekday in the given month.
func LastWeekday(year int, month time.Month, weekday time.Weekday) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return last.Day() - (7+int(last.Weekday())-int(weekday))%7
}
