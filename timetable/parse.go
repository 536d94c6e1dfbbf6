// Package timetable turns a weekly class timetable copied out of a
// university portal into a Schedule, and lays a Schedule out on a fixed
// grid of hourly rows and weekday columns.
//
// Parsing never fails. Text the parser does not understand simply yields
// fewer sessions: a missing day has no entry, a day without a readable
// clause has an empty one, and text without any day name gives an empty
// Schedule. Whether an empty result is a problem is for the caller to
// decide.
//
// Everything in the package is a pure function over its inputs and is safe
// for concurrent use.
package timetable

import (
	"sort"
	"strings"
	"time"
)

// NormalizeSpace collapses every run of whitespace, line breaks included,
// into a single space.
func NormalizeSpace(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

type dayMark struct {
	day time.Weekday
	at  int
}

// segments locates the first occurrence of each weekday name and returns
// the days in the order they appear in text.
func segments(text string) []dayMark {
	marks := make([]dayMark, 0, len(Weekdays))
	for _, d := range Weekdays {
		if i := strings.Index(text, d.String()); i >= 0 {
			marks = append(marks, dayMark{day: d, at: i})
		}
	}
	sort.Slice(marks, func(i, j int) bool {
		return marks[i].at < marks[j].at
	})
	return marks
}

// Parse builds a Schedule from pasted timetable text. Each day's sessions
// come from the text between its name and the next day name found, so days
// may appear in any order.
func Parse(raw string) Schedule {
	text := NormalizeSpace(raw)
	marks := segments(text)

	schedule := make(Schedule, len(marks))
	for i, m := range marks {
		start := m.at + len(m.day.String())
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1].at
		}
		schedule[m.day] = Extract(text[start:end])
	}
	return schedule
}
