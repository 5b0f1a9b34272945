package timeops_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"timeq/pkg/timeops"
)

func TestNormalize(t *testing.T) {
	zones := timeops.DefaultZones()
	cases := []struct {
		in   string
		want string
	}{
		{"Prague", "prague"},
		{" prague ", "prague"},
		{"PRAGUE", "prague"},
		{"2", "prague"},
		{"1", "doha"},
		{"3", "new-york"},
		{"4", "berlin"},
		{"new york", "new-york"},
		{"NewYork", "new-york"},
		{"utc", "utc"},
		{"Tokyo", "utc"},
		{"", "utc"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, zones.Normalize(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeExtendedTable(t *testing.T) {
	zones := timeops.DefaultZones()
	zones["tokyo"] = timeops.CityZone{OffsetHours: 9}
	assert.Equal(t, "tokyo", zones.Normalize("Tokyo"))
	assert.Equal(t, "utc", zones.Normalize("Osaka"))
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "new-york", timeops.CanonicalName(" New York "))
	assert.Equal(t, "doha", timeops.CanonicalName("1"))
	assert.Equal(t, "tokyo", timeops.CanonicalName("Tokyo"))
}

func TestTimeInCityFixedOffsets(t *testing.T) {
	zones := timeops.DefaultZones()
	at := time.Date(2024, time.January, 1, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, "01:30:00", zones.TimeInCity(at, "doha")) // +3, wraps past midnight
	assert.Equal(t, "22:30:00", zones.TimeInCity(at, "utc"))
	assert.Equal(t, "22:30:00", zones.TimeInCity(at, "nowhere")) // falls back to utc
}

func TestTimeInCityBerlinSummer(t *testing.T) {
	zones := timeops.DefaultZones()
	at := time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "14:00:00", zones.TimeInCity(at, "berlin"))
}

func TestEUDSTBoundaries(t *testing.T) {
	zones := timeops.DefaultZones()

	// last Sunday of March 2024 is the 31st; switch at 01:00 UTC
	assert.Equal(t, "01:59:00", zones.TimeInCity(time.Date(2024, time.March, 31, 0, 59, 0, 0, time.UTC), "berlin"))
	assert.Equal(t, "03:01:00", zones.TimeInCity(time.Date(2024, time.March, 31, 1, 1, 0, 0, time.UTC), "berlin"))

	// last Sunday of October 2024 is the 27th; DST ends at 01:00 UTC
	assert.Equal(t, "02:59:00", zones.TimeInCity(time.Date(2024, time.October, 27, 0, 59, 0, 0, time.UTC), "berlin"))
	assert.Equal(t, "02:01:00", zones.TimeInCity(time.Date(2024, time.October, 27, 1, 1, 0, 0, time.UTC), "berlin"))
}

func TestUSDSTBoundaries(t *testing.T) {
	zones := timeops.DefaultZones()

	// second Sunday of March 2024 is the 10th; 02:00 base time is 07:00 UTC at -5
	assert.Equal(t, "01:59:00", zones.TimeInCity(time.Date(2024, time.March, 10, 6, 59, 0, 0, time.UTC), "new-york"))
	assert.Equal(t, "03:01:00", zones.TimeInCity(time.Date(2024, time.March, 10, 7, 1, 0, 0, time.UTC), "new-york"))

	// first Sunday of November 2024 is the 3rd; DST ends at 02:00 base time
	assert.Equal(t, "02:59:00", zones.TimeInCity(time.Date(2024, time.November, 3, 6, 59, 0, 0, time.UTC), "new-york"))
	assert.Equal(t, "02:01:00", zones.TimeInCity(time.Date(2024, time.November, 3, 7, 1, 0, 0, time.UTC), "new-york"))
}
