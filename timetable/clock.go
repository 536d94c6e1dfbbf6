package timetable

import (
	"strconv"
	"strings"
)

// dayStart is the first hour of the academic day. Any stated hour below it
// is a PM hour written in 12-hour form.
const dayStart = 8

// Clock splits an "H:MM" time into a 24-hour hour and minute. Hours below
// 8 are shifted by 12. The input must already have the H:MM shape.
func Clock(raw string) (hour, minute int) {
	h, m, _ := strings.Cut(raw, ":")
	hour, _ = strconv.Atoi(h)
	minute, _ = strconv.Atoi(m)
	if hour < dayStart {
		hour += 12
	}
	return hour, minute
}

// Hour24 converts an "H:MM" time to the hour used for grid placement.
// End boundaries at :45 or later round up to the next hour, since the
// session then occupies that display row as well. An empty time yields 0,
// which never matches a display row.
func Hour24(raw string, end bool) int {
	if raw == "" {
		return 0
	}
	hour, minute := Clock(raw)
	if end && minute >= 45 {
		hour++
	}
	return hour
}
