package timetable

import "testing"

func TestSessionSpan(t *testing.T) {
	cases := []struct {
		start, end int
		want       int
	}{
		{9, 11, 2},
		{11, 12, 1},
		{15, 15, 1},
		{14, 13, 1},
		{0, 0, 1},
	}
	for _, c := range cases {
		s := Session{Start24: c.start, End24: c.end}
		if got := s.Span(); got != c.want {
			t.Errorf("Span(%d-%d) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestSessionBadge(t *testing.T) {
	for typ, want := range map[string]string{
		"Lecture":  "LEC",
		"Tutorial": "TUT",
		"Lab":      "TUT",
		"lecture":  "TUT",
		"":         "TUT",
	} {
		s := Session{Type: typ}
		if got := s.Badge(); got != want {
			t.Errorf("Badge(%q) = %s, want %s", typ, got, want)
		}
		if s.IsLecture() != (want == "LEC") {
			t.Errorf("IsLecture(%q) = %v", typ, s.IsLecture())
		}
	}
}
