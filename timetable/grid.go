package timetable

import "time"

// DisplayRow is one hourly band of the grid.
type DisplayRow struct {
	Label string `json:"label"`
	Start int    `json:"start"`
}

// DisplayRows are the hourly bands from 8:00 to 7:00 PM. Labels use the
// portal's 12-hour style, starts are 24-hour.
var DisplayRows = []DisplayRow{
	{"8:00 - 9:00", 8},
	{"9:00 - 10:00", 9},
	{"10:00 - 11:00", 10},
	{"11:00 - 12:00", 11},
	{"12:00 - 1:00", 12},
	{"1:00 - 2:00", 13},
	{"2:00 - 3:00", 14},
	{"3:00 - 4:00", 15},
	{"4:00 - 5:00", 16},
	{"5:00 - 6:00", 17},
	{"6:00 - 7:00", 18},
}

// Cell is one (day, row) position of a laid out grid. Session is nil for an
// empty cell. A session is only ever placed in the row it starts in; Span
// tells how many rows its block reaches down, and the rows it reaches into
// are left empty.
type Cell struct {
	Day     time.Weekday
	Row     DisplayRow
	Session *Session
	Span    int
}

func (c Cell) Empty() bool {
	return c.Session == nil
}

// Grid is a laid out Schedule. Cells is indexed [row][day] following Rows
// and Days.
type Grid struct {
	Days  []time.Weekday
	Rows  []DisplayRow
	Cells [][]Cell
}

// Cell returns the cell at the given row and day index.
func (g Grid) Cell(row, day int) Cell {
	return g.Cells[row][day]
}

// Layout places every session of schedule onto the rows and days given.
// The first session of a day starting at a row's hour takes the cell; any
// other session starting at the same hour is left out of the grid. The
// schedule is not modified and the result depends on nothing else.
func Layout(schedule Schedule, rows []DisplayRow, days []time.Weekday) Grid {
	grid := Grid{
		Days:  append([]time.Weekday(nil), days...),
		Rows:  append([]DisplayRow(nil), rows...),
		Cells: make([][]Cell, len(rows)),
	}
	for r, row := range rows {
		grid.Cells[r] = make([]Cell, len(days))
		for d, day := range days {
			cell := Cell{Day: day, Row: row, Span: 1}
			for _, s := range schedule[day] {
				if s.Start24 == row.Start {
					s := s
					cell.Session = &s
					cell.Span = s.Span()
					break
				}
			}
			grid.Cells[r][d] = cell
		}
	}
	return grid
}
