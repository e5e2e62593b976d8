package term

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is an indivisible unit on the screen. It is not necessarily 1 column
// wide.
type Cell struct {
	Text  string
	Style string
}

// Line is a row of cells. A Line owns its cells; it never refers to the
// component that produced it.
type Line []Cell

// Width returns the total width of the line.
func (l Line) Width() int { return cellsWidth(l) }

// String returns the content of the line without styling.
func (l Line) String() string {
	var sb strings.Builder
	for _, c := range l {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// VTString returns the content of the line with SGR sequences. The style is
// reset at the end of the line if any cell is styled.
func (l Line) VTString() string {
	var sb strings.Builder
	style := ""
	for _, c := range l {
		if c.Style != style {
			sb.WriteString("\033[0;" + c.Style + "m")
			style = c.Style
		}
		sb.WriteString(c.Text)
	}
	if style != "" {
		sb.WriteString("\033[m")
	}
	return sb.String()
}

// Equal returns whether two lines have the same cells.
func (l Line) Equal(l2 Line) bool {
	eq, _ := compareCells(l, l2)
	return eq
}

// Clone returns a copy of the line that does not share storage with l.
func (l Line) Clone() Line {
	return append(Line(nil), l...)
}

// Returns the total width of a Cell slice.
func cellsWidth(cs []Cell) int {
	w := 0
	for _, c := range cs {
		w += runewidth.StringWidth(c.Text)
	}
	return w
}

// Returns whether two Cell slices are equal, and when they are not, the first
// index at which they differ.
func compareCells(r1, r2 []Cell) (bool, int) {
	for i, c := range r1 {
		if i >= len(r2) || c != r2[i] {
			return false, i
		}
	}
	if len(r1) < len(r2) {
		return false, len(r1)
	}
	return true, 0
}

// StringWidth returns the number of columns s occupies.
func StringWidth(s string) int { return runewidth.StringWidth(s) }
