package comp

import (
	"src.retui.sh/pkg/term"
	"src.retui.sh/pkg/ui"
)

// Canvas is the area of the frame assigned to a component. Coordinates are
// relative to the top left corner of the area, and everything outside of it
// is clipped.
type Canvas struct {
	buf                 *term.Buffer
	x, y, width, height int
}

// Width returns the width of the canvas.
func (c *Canvas) Width() int { return c.width }

// Height returns the height of the canvas.
func (c *Canvas) Height() int { return c.height }

// WriteText writes styled text starting at (x, y). Newlines are not
// interpreted; use WriteLines for multi-line content.
func (c *Canvas) WriteText(x, y int, t ui.Text) {
	if y < 0 || y >= c.height {
		return
	}
	c.buf.WriteText(c.x+x, c.y+y, t, c.x+c.width)
}

// WriteLines writes lines starting at (x, y), one row per line.
func (c *Canvas) WriteLines(x, y int, lines []term.Line) {
	for i, line := range lines {
		if y+i < 0 || y+i >= c.height {
			continue
		}
		col := c.x + x
		for _, cell := range line {
			col = c.buf.Write(col, c.y+y+i, cell.Text, cell.Style, c.x+c.width)
		}
	}
}

// Fill applies style to the whole canvas, keeping the text.
func (c *Canvas) Fill(style ui.Style) {
	c.buf.Fill(c.x, c.y, c.width, c.height, style.SGR())
}
