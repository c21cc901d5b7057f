// Package timezones resolves the zone list timestamps are shown and
// exported in.
package timezones

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone database for hosts without /usr/share/zoneinfo
)

// Default is the zone used when none is configured. The schools the console
// serves are all in Maharashtra.
const Default = "Asia/Kolkata"

// aliases are short names accepted in configuration.
var aliases = map[string]string{
	"IST": "Asia/Kolkata",
	"GMT": "UTC",
	"Z":   "UTC",
}

// Resolve loads the IANA zone id. An empty id means Default; "Local" is the
// host's zone.
func Resolve(id string) (*time.Location, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = Default
	}
	if alt, ok := aliases[strings.ToUpper(id)]; ok {
		id = alt
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, fmt.Errorf("timezones: unknown zone %q: %w", id, err)
	}
	return loc, nil
}

// Valid reports whether Resolve accepts id.
func Valid(id string) bool {
	_, err := Resolve(id)
	return err == nil
}

// Label is the zone name with its current UTC offset, e.g.
// "Asia/Kolkata (UTC+05:30)". It is shown beside exported timestamps.
func Label(loc *time.Location, at time.Time) string {
	if loc == nil {
		loc = time.UTC
	}
	_, offset := at.In(loc).Zone()
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("%s (UTC%c%02d:%02d)", loc.String(), sign, offset/3600, offset%3600/60)
}
