package timeops

import (
	"strings"
	"time"
)

// DSTRule selects the daylight-saving schedule a zone follows.
type DSTRule int

const (
	DSTNone DSTRule = iota
	DSTEurope
	DSTUnitedStates
)

// CityZone is a fixed-offset timezone with an optional DST rule.
type CityZone struct {
	OffsetHours int
	DST         DSTRule
}

// ZoneTable maps canonical city names to their zones. Lookups of names
// it does not know resolve to "utc".
type ZoneTable map[string]CityZone

// DefaultZones is the builtin city set.
func DefaultZones() ZoneTable {
	return ZoneTable{
		"doha":     {OffsetHours: 3},
		"prague":   {OffsetHours: 1, DST: DSTEurope},
		"berlin":   {OffsetHours: 1, DST: DSTEurope},
		"new-york": {OffsetHours: -5, DST: DSTUnitedStates},
		"utc":      {},
	}
}

var cityAliases = map[string]string{
	"1":       "doha",
	"2":       "prague",
	"3":       "new-york",
	"4":       "berlin",
	"newyork": "new-york",
}

// CanonicalName trims, lowercases and hyphenates a raw city name and
// resolves numeric and spelling aliases. It does not consult any table.
func CanonicalName(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "-")
	if c, ok := cityAliases[s]; ok {
		return c
	}
	return s
}

// Normalize maps raw input to a name present in the table, falling
// back to "utc" for anything unrecognized.
func (z ZoneTable) Normalize(raw string) string {
	s := CanonicalName(raw)
	if _, ok := z[s]; ok {
		return s
	}
	return "utc"
}

// TimeInCity renders utcNow as HH:MM:SS wall time in the named city,
// applying the zone's DST rule when one is in effect.
func (z ZoneTable) TimeInCity(utcNow time.Time, raw string) string {
	utcNow = utcNow.UTC()
	zone := z[z.Normalize(raw)]
	offset := zone.OffsetHours
	switch zone.DST {
	case DSTEurope:
		if dstActiveEU(utcNow) {
			offset++
		}
	case DSTUnitedStates:
		if dstActiveUS(utcNow.Add(time.Duration(zone.OffsetHours) * time.Hour)) {
			offset++
		}
	}
	return TimeOfDay(utcNow.Add(time.Duration(offset) * time.Hour))
}

// dstActiveEU: from the last Sunday of March 01:00 UTC (inclusive)
// through the last Sunday of October 01:00 UTC (exclusive).
func dstActiveEU(utc time.Time) bool {
	y := utc.Year()
	start := time.Date(y, time.March, LastWeekday(y, time.March, time.Sunday), 1, 0, 0, 0, time.UTC)
	end := time.Date(y, time.October, LastWeekday(y, time.October, time.Sunday), 1, 0, 0, 0, time.UTC)
	return !utc.Before(start) && utc.Before(end)
}

// dstActiveUS evaluates the rule on the zone's base-offset clock
// (localBase = UTC shifted by the base offset): from the second Sunday
// of March 02:00 (inclusive) through the first Sunday of November
// 02:00 (exclusive).
func dstActiveUS(localBase time.Time) bool {
	y := localBase.Year()
	start := time.Date(y, time.March, NthWeekday(y, time.March, time.Sunday, 2), 2, 0, 0, 0, time.UTC)
	end := time.Date(y, time.November, NthWeekday(y, time.November, time.Sunday, 1), 2, 0, 0, 0, time.UTC)
	return !localBase.Before(start) && localBase.Before(end)
}
