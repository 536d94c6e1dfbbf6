package timetable

import "time"

// Weekdays lists every day keyword recognized in pasted text, in week order.
var Weekdays = []time.Weekday{
	time.Sunday,
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
}

// GridDays lists the columns of the rendered week.
var GridDays = []time.Weekday{
	time.Sunday,
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
}

// Lecture is the session type that gets the lecture colour.
const Lecture = "Lecture"

// Session is one class meeting extracted from the pasted timetable.
type Session struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location"`
	Group    string `json:"group"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Start24  int    `json:"start24"`
	End24    int    `json:"end24"`
}

func (s Session) IsLecture() bool {
	return s.Type == Lecture
}

// Span returns the number of display rows the session covers, at least one.
func (s Session) Span() int {
	if n := s.End24 - s.Start24; n > 1 {
		return n
	}
	return 1
}

// Badge is the short type label shown on a grid cell.
func (s Session) Badge() string {
	if s.IsLecture() {
		return "LEC"
	}
	return "TUT"
}

// Schedule maps each weekday found in the text to its sessions, in the
// order they appeared. A Schedule is never modified after Parse returns it.
type Schedule map[time.Weekday][]Session

// Days returns the days that have at least one session, in week order.
func (s Schedule) Days() []time.Weekday {
	var days []time.Weekday
	for _, d := range Weekdays {
		if len(s[d]) > 0 {
			days = append(days, d)
		}
	}
	return days
}

// Len returns the number of sessions across all days.
func (s Schedule) Len() int {
	n := 0
	for _, sessions := range s {
		n += len(sessions)
	}
	return n
}
