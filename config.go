package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"timeq/pkg/timeops"
	"timeq/pkg/wire"
)

type Config struct {
	Endpoint      string
	Iterations    int
	RecvTimeoutMs int
	LapExpirySec  int
	Zones         timeops.ZoneTable
}

func DefaultConfig() Config {
	return Config{
		Endpoint:      fmt.Sprintf(":%d", wire.DefaultPort),
		Iterations:    100,
		RecvTimeoutMs: 5000,
		LapExpirySec:  180,
		Zones:         timeops.DefaultZones(),
	}
}

type fileConfig struct {
	Endpoint         string              `yaml:"endpoint"`
	Iterations       int                 `yaml:"iterations"`
	RecvTimeoutMs    int                 `yaml:"recv_timeout_ms"`
	LapExpirySeconds int                 `yaml:"lap_expiry_seconds"`
	Cities           map[string]fileCity `yaml:"cities"`
}

type fileCity struct {
	OffsetHours int    `yaml:"offset_hours"`
	DST         string `yaml:"dst"`
}

// ApplyFile overlays a YAML config file onto c. Fields the file leaves
// unset keep their current values; city entries extend the builtin
// zone table.
func (c *Config) ApplyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Endpoint != "" {
		c.Endpoint = fc.Endpoint
	}
	if fc.Iterations > 0 {
		c.Iterations = fc.Iterations
	}
	if fc.RecvTimeoutMs > 0 {
		c.RecvTimeoutMs = fc.RecvTimeoutMs
	}
	if fc.LapExpirySeconds > 0 {
		c.LapExpirySec = fc.LapExpirySeconds
	}
	for name, city := range fc.Cities {
		rule, err := parseDSTRule(city.DST)
		if err != nil {
			return fmt.Errorf("config %s, city %s: %w", path, name, err)
		}
		c.Zones[timeops.CanonicalName(name)] = timeops.CityZone{
			OffsetHours: city.OffsetHours,
			DST:         rule,
		}
	}
	return nil
}

func parseDSTRule(s string) (timeops.DSTRule, error) {
	switch s {
	case "", "none":
		return timeops.DSTNone, nil
	case "eu", "european-union":
		return timeops.DSTEurope, nil
	case "us", "united-states":
		return timeops.DSTUnitedStates, nil
	}
	return timeops.DSTNone, fmt.Errorf("unknown dst rule %q", s)
}
