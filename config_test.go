package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeq/pkg/timeops"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timeq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	conf := DefaultConfig()
	assert.Equal(t, ":27015", conf.Endpoint)
	assert.Equal(t, 100, conf.Iterations)
	assert.Equal(t, 180, conf.LapExpirySec)
	assert.Contains(t, conf.Zones, "utc")
}

func TestApplyFile(t *testing.T) {
	path := writeConfig(t, `
endpoint: ":9999"
lap_expiry_seconds: 60
cities:
  Tokyo: {offset_hours: 9, dst: none}
  chicago: {offset_hours: -6, dst: us}
`)

	conf := DefaultConfig()
	require.NoError(t, conf.ApplyFile(path))

	assert.Equal(t, ":9999", conf.Endpoint)
	assert.Equal(t, 60, conf.LapExpirySec)
	assert.Equal(t, 100, conf.Iterations, "unset fields keep their defaults")

	assert.Equal(t, timeops.CityZone{OffsetHours: 9}, conf.Zones["tokyo"])
	assert.Equal(t, timeops.CityZone{OffsetHours: -6, DST: timeops.DSTUnitedStates}, conf.Zones["chicago"])
	assert.Contains(t, conf.Zones, "berlin", "builtin cities survive the overlay")
}

func TestApplyFileBadDSTRule(t *testing.T) {
	path := writeConfig(t, `
cities:
  atlantis: {offset_hours: 0, dst: lunar}
`)

	conf := DefaultConfig()
	assert.Error(t, conf.ApplyFile(path))
}

func TestApplyFileMissing(t *testing.T) {
	conf := DefaultConfig()
	assert.Error(t, conf.ApplyFile(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestParseDSTRule(t *testing.T) {
	for in, want := range map[string]timeops.DSTRule{
		"":               timeops.DSTNone,
		"none":           timeops.DSTNone,
		"eu":             timeops.DSTEurope,
		"european-union": timeops.DSTEurope,
		"us":             timeops.DSTUnitedStates,
		"united-states":  timeops.DSTUnitedStates,
	} {
		got, err := parseDSTRule(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "rule %q", in)
	}

	_, err := parseDSTRule("jp")
	assert.Error(t, err)
}
