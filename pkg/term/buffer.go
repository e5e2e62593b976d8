package term

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"src.retui.sh/pkg/ui"
)

// Buffer is a rectangular area of cells that components render into. Unlike
// the terminal itself, it has a fixed width and height; content outside of the
// rectangle is clipped.
type Buffer struct {
	Width, Height int
	// Cells holds Height rows of Width cells each. A wide character occupies
	// its first column; the following columns hold a zero-width placeholder.
	Cells [][]Cell
}

const placeholder = ""

var blank = Cell{Text: " "}

// NewBuffer creates a blank Buffer of the given size.
func NewBuffer(width, height int) *Buffer {
	width, height = max(width, 0), max(height, 0)
	cells := make([][]Cell, height)
	for i := range cells {
		cells[i] = makeSpacing(width)
	}
	return &Buffer{width, height, cells}
}

// Write writes text at (x, y) with the given style, clipping at the right
// edge of the buffer and at clipRight if it is smaller. Newlines are not
// interpreted. It returns the column after the last cell written.
func (b *Buffer) Write(x, y int, text string, style string, clipRight int) int {
	if y < 0 || y >= b.Height {
		return x
	}
	right := min(b.Width, clipRight)
	row := b.Cells[y]
	for _, r := range text {
		s := string(r)
		w := runewidth.RuneWidth(r)
		if r < 0x20 || r == 0x7f {
			s, w = "^"+string(r^0x40), 2
		}
		if w == 0 {
			// Combining characters attach to the previous cell.
			if x > 0 && x <= right {
				row[x-1].Text += s
			}
			continue
		}
		if x+w > right {
			break
		}
		if x >= 0 {
			row[x] = Cell{s, style}
			for i := 1; i < w; i++ {
				row[x+i] = Cell{placeholder, style}
			}
		}
		x += w
	}
	return x
}

// WriteText writes styled text at (x, y), like Write.
func (b *Buffer) WriteText(x, y int, t ui.Text, clipRight int) int {
	for _, seg := range t {
		x = b.Write(x, y, seg.Text, seg.SGR(), clipRight)
	}
	return x
}

// Fill sets the style of the cells in the given rectangle, keeping their text.
func (b *Buffer) Fill(x, y, w, h int, style string) {
	for i := max(y, 0); i < min(y+h, b.Height); i++ {
		for j := max(x, 0); j < min(x+w, b.Width); j++ {
			b.Cells[i][j].Style = style
		}
	}
}

// Lines converts the buffer to lines. Trailing unstyled blanks of each line
// and trailing empty lines are dropped, and wide-character placeholders are
// removed.
func (b *Buffer) Lines() []Line {
	lines := make([]Line, 0, b.Height)
	for _, row := range b.Cells {
		end := len(row)
		for end > 0 && row[end-1] == blank {
			end--
		}
		line := make(Line, 0, end)
		for _, c := range row[:end] {
			if c.Text != placeholder {
				line = append(line, c)
			}
		}
		lines = append(lines, line)
	}
	for len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// TTYString returns a text representation of the buffer. It uses box drawing
// characters to represent the border of the buffer, and embeds SGR sequences to
// represent the style of the text.
func (b *Buffer) TTYString() string {
	if b == nil {
		return "nil"
	}
	sb := new(strings.Builder)
	fmt.Fprintf(sb, "Width = %d, Height = %d\n", b.Width, b.Height)
	sb.WriteString("┌" + strings.Repeat("─", b.Width) + "┐\n")
	for _, row := range b.Cells {
		sb.WriteRune('│')
		sb.WriteString(Line(row).VTString())
		sb.WriteString("│\n")
	}
	sb.WriteString("└" + strings.Repeat("─", b.Width) + "┘\n")
	return sb.String()
}

func makeSpacing(n int) []Cell {
	s := make([]Cell, n)
	for i := 0; i < n; i++ {
		s[i] = blank
	}
	return s
}
