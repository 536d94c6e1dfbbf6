package timetable

import (
	"testing"
	"time"

	"schedgrid/tests"
)

func TestParseScenario(t *testing.T) {
	s := Parse("Sunday CS101, Intro to CS : Regular Lecture At [B204] From 9:00 To 10:45 - 12 -")
	sessions := s[time.Sunday]
	if len(sessions) != 1 {
		t.Fatalf("got %d Sunday sessions", len(sessions))
	}
	got := sessions[0]
	if got.Code != "CS101" || got.Name != "Intro to CS" || got.Type != "Lecture" ||
		got.Location != "B204" || got.Start24 != 9 || got.End24 != 11 || got.Group != "12" {
		t.Errorf("unexpected session %+v", got)
	}
}

func TestParsePortalPaste(t *testing.T) {
	s := Parse(tests.PortalPaste)

	if n := s.Len(); n != tests.PortalPasteSessions {
		t.Errorf("Len() = %d, want %d", n, tests.PortalPasteSessions)
	}

	wantCounts := map[time.Weekday]int{
		time.Sunday:    2,
		time.Monday:    1,
		time.Tuesday:   1,
		time.Wednesday: 0,
		time.Thursday:  1,
	}
	for day, want := range wantCounts {
		sessions, ok := s[day]
		if !ok {
			t.Errorf("%v missing from schedule", day)
			continue
		}
		if len(sessions) != want {
			t.Errorf("%v has %d sessions, want %d", day, len(sessions), want)
		}
	}
	if _, ok := s[time.Friday]; ok {
		t.Errorf("Friday should be absent")
	}

	sun := s[time.Sunday]
	if sun[0].Code != "MTHN203" || sun[0].Location != "CCEC Lab2" || sun[0].Span() != 2 {
		t.Errorf("unexpected first Sunday session %+v", sun[0])
	}
	if sun[1].Code != "CMPN101" || sun[1].Type != "Tutorial" {
		t.Errorf("unexpected second Sunday session %+v", sun[1])
	}
	if mon := s[time.Monday][0]; mon.Start24 != 13 || mon.End24 != 15 {
		t.Errorf("Monday hours = %d-%d, want 13-15", mon.Start24, mon.End24)
	}
	if tue := s[time.Tuesday][0]; tue.Code != "CMPN101" || tue.Location != "Hall 5" {
		t.Errorf("unexpected Tuesday session %+v", tue)
	}

	days := s.Days()
	want := []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Thursday}
	if len(days) != len(want) {
		t.Fatalf("Days() = %v, want %v", days, want)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("Days() = %v, want %v", days, want)
		}
	}
}

func TestParseNoDays(t *testing.T) {
	s := Parse("CS101, Intro to CS : Regular Lecture At [B204] From 9:00 To 10:45 - 12 -")
	if s == nil || len(s) != 0 {
		t.Errorf("expected an empty schedule, got %v", s)
	}
	if s := Parse(""); len(s) != 0 {
		t.Errorf("expected an empty schedule for empty input, got %v", s)
	}
}

func TestParseDayOrderIndependent(t *testing.T) {
	a := tests.Clause("AAA100", "First", "Lecture", "R1", "9:00", "9:50", "1")
	b := tests.Clause("BBB200", "Second", "Tutorial", "R2", "10:00", "10:50", "2")
	c := tests.Clause("CCC300", "Third", "Lecture", "R3", "11:00", "11:50", "3")

	s := Parse("Thursday " + a + "\nMonday " + b + "\nSunday " + c)

	check := func(day time.Weekday, code string) {
		t.Helper()
		sessions := s[day]
		if len(sessions) != 1 || sessions[0].Code != code {
			t.Errorf("%v = %+v, want only %s", day, sessions, code)
		}
	}
	check(time.Thursday, "AAA100")
	check(time.Monday, "BBB200")
	check(time.Sunday, "CCC300")
}

func TestParseDuplicateDayKeyword(t *testing.T) {
	a := tests.Clause("AAA100", "First", "Lecture", "R1", "9:00", "9:50", "1")
	b := tests.Clause("BBB200", "Second", "Tutorial", "R2", "10:00", "10:50", "2")

	s := Parse("Sunday " + a + " Sunday " + b)
	if n := len(s[time.Sunday]); n != 2 {
		t.Errorf("Sunday has %d sessions, want both clauses after the first keyword", n)
	}
}

func TestNormalizeSpace(t *testing.T) {
	got := NormalizeSpace("  Sunday\r\n\tCS101, Intro \n\n To ")
	if got != "Sunday CS101, Intro To" {
		t.Errorf("got %q", got)
	}
}
