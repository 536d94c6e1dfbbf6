package timetable

import (
	"regexp"
	"strings"
)

// A clause reads
//
//	CODE, Name : Kind At [ROOM](Room description) free text From H:MM To H:MM - N -
//
// The code is either letters and digits with at most one space between
// them ("CMPN 101") or a single token. The name ends at the first colon;
// any later colons belong to the kind, whose last word is the type. The
// kind may not contain a time or a bracket and the free text after the room
// may not contain a colon, so a clause that is missing its time range or
// group marker cannot borrow them from the clause after it.
var clausePattern = regexp.MustCompile(`\b([A-Za-z]+ ?\d+[A-Za-z]*|[^\s,]+)\s*,\s*` +
	`([^:\[\]]+?)\s*:\s*` +
	`((?:[^:\[\]]|:[^\d\[\]])+?)\s*At\s*` +
	`\[([^\[\]]+)\](?:\(([^()]*)\))?` +
	`([^:]*?)\s*` +
	`From\s*(\d{1,2}:\d{2})\s*To\s*(\d{1,2}:\d{2})\s*` +
	`-\s*(\d+)\s*-`)

const (
	mCode = iota + 1
	mName
	mKind
	mRoom
	mRoomDesc
	mTrailer
	mStart
	mEnd
	mGroup
)

// placeholderRoom is what the portal prints in the brackets when the real
// location is only given in the parenthesized description.
const placeholderRoom = "0"

// Extract returns the sessions found in one day's segment of normalized
// text, left to right. Fragments that do not form a complete clause are
// skipped. A segment with no clauses gives an empty slice.
func Extract(segment string) []Session {
	matches := clausePattern.FindAllStringSubmatch(segment, -1)
	sessions := make([]Session, 0, len(matches))
	for _, m := range matches {
		sessions = append(sessions, sessionFromMatch(m))
	}
	return sessions
}

func sessionFromMatch(m []string) Session {
	location := strings.TrimSpace(m[mRoom])
	desc := strings.TrimSpace(m[mRoomDesc])
	if location == placeholderRoom && desc != "" {
		location = desc
	}
	return Session{
		Code:     m[mCode],
		Name:     strings.TrimSpace(m[mName]),
		Type:     sessionType(m[mKind]),
		Location: location,
		Group:    m[mGroup],
		Start:    m[mStart],
		End:      m[mEnd],
		Start24:  Hour24(m[mStart], false),
		End24:    Hour24(m[mEnd], true),
	}
}

// sessionType keeps the last word of the kind phrase: "Regular Lecture" is
// a Lecture.
func sessionType(kind string) string {
	words := strings.Fields(kind)
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}
