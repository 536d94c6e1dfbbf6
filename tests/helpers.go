// Package tests holds fixtures shared by the package tests.
package tests

import "strings"

// PortalPaste is a week as copied from the student portal: day headers on
// their own lines, one clause per line, a malformed Tuesday line without its
// group marker, and a Wednesday with nothing readable.
const PortalPaste = `Sunday
MTHN203, Calculus III : Regular Lecture At [0](CCEC Lab2) Hall A From 9:00 To 10:45 - 12 -
CMPN101, Logic Design : Tutorial At [B204] From 11:00 To 11:50 - 3 -

Monday
ELCN111, Electronics : Regular Lecture At [2304] Main building From 1:00 To 2:45 - 7 -

Tuesday
PHYN102, Physics : Lab At [L1] From 8:00 To 9:30
CMPN101, Logic Design : Regular Lecture At [0](Hall 5) From 12:00 To 1:50 - 1 -

Wednesday
No classes scheduled

Thursday
GENN001, Technical Writing : Tutorial At [C12] From 3:00 To 3:40 - 22 -
`

// PortalPasteSessions is the number of well-formed clauses in PortalPaste.
const PortalPasteSessions = 5

// PortalHTML is PortalPaste as the portal serves it when copied from the
// page source.
var PortalHTML = "<html><head><style>td{}</style></head><body><table>" +
	rows(PortalPaste) + "</table><script>var x = 'Friday';</script></body></html>"

func rows(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		b.WriteString("<tr><td>")
		b.WriteString(line)
		b.WriteString("</td></tr>")
	}
	return b.String()
}

// Clause formats one portal line.
func Clause(code, name, kind, room, start, end, group string) string {
	return code + ", " + name + " : " + kind + " At [" + room + "] From " + start + " To " + end + " - " + group + " -"
}
