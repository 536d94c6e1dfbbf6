// Package ical exports a Schedule as an iCalendar file of weekly recurring
// events. Times are floating local times: a calendar shows them at the
// stated clock time wherever it is opened.
package ical

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"schedgrid/errors"
	"schedgrid/timetable"
)

const (
	prodID      = "-//schedgrid//timetable//EN"
	floating    = "20060102T150405"
	defaultWeek = 15
)

// Options describes where the exported term starts and how long it runs.
type Options struct {
	// WeekStart is the Sunday of the first week of classes.
	WeekStart time.Time
	// Weeks is how many times each session repeats. Zero means 15.
	Weeks int
	// Now stamps the events; zero means time.Now.
	Now time.Time
}

// Build turns schedule into a calendar with one recurring event per session.
func Build(schedule timetable.Schedule, opts Options) (*ics.Calendar, error) {
	if opts.WeekStart.Weekday() != time.Sunday {
		return nil, errors.NewError("ical.Build", opts.WeekStart.Format("2006-01-02"), errors.ErrInvalidWeek)
	}
	if opts.Weeks <= 0 {
		opts.Weeks = defaultWeek
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)

	y, m, d := opts.WeekStart.Date()
	for _, day := range timetable.Weekdays {
		for _, s := range schedule[day] {
			date := time.Date(y, m, d+int(day), 0, 0, 0, 0, time.Local)
			addEvent(cal, s, date, opts)
		}
	}
	return cal, nil
}

func addEvent(cal *ics.Calendar, s timetable.Session, date time.Time, opts Options) {
	y, m, d := date.Date()
	sh, sm := timetable.Clock(s.Start)
	eh, em := timetable.Clock(s.End)
	start := time.Date(y, m, d, sh, sm, 0, 0, time.Local)
	end := time.Date(y, m, d, eh, em, 0, 0, time.Local)

	event := cal.AddEvent(uuid.NewString())
	event.SetDtStampTime(opts.Now)
	event.SetProperty(ics.ComponentPropertyDtStart, start.Format(floating))
	event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(floating))
	event.SetProperty(ics.ComponentPropertyRrule, fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", opts.Weeks))
	event.SetSummary(fmt.Sprintf("%s %s (%s)", s.Code, s.Name, s.Type))
	event.SetLocation(s.Location)
	event.SetDescription("Group " + s.Group)
}

// Export writes the calendar for schedule to w.
func Export(w io.Writer, schedule timetable.Schedule, opts Options) error {
	cal, err := Build(schedule, opts)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return errors.NewError("ical.Export", "cannot write calendar", err)
	}
	return nil
}

// Filename is the download name for a student's calendar.
func Filename(name string) string {
	if name == "" {
		name = "My"
	}
	return name + "_Schedule.ics"
}
