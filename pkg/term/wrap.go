package term

import (
	"github.com/mattn/go-runewidth"
	"src.retui.sh/pkg/ui"
)

// Wrap lays out styled text into lines no wider than width, breaking at
// newlines and wherever a character would not fit. A width of 0 or less
// disables wrapping. Control characters are shown in caret notation.
func Wrap(t ui.Text, width int) []Line {
	lines := []Line{nil}
	col := 0
	for _, seg := range t {
		style := seg.SGR()
		for _, r := range seg.Text {
			if r == '\n' {
				lines = append(lines, nil)
				col = 0
				continue
			}
			s, w := string(r), runewidth.RuneWidth(r)
			if r < 0x20 || r == 0x7f {
				s, w = "^"+string(r^0x40), 2
			}
			last := len(lines) - 1
			if w == 0 {
				if n := len(lines[last]); n > 0 {
					lines[last][n-1].Text += s
				}
				continue
			}
			if width > 0 && col+w > width && col > 0 {
				lines = append(lines, nil)
				last++
				col = 0
			}
			lines[last] = append(lines[last], Cell{s, style})
			col += w
		}
	}
	return lines
}

// MaxWidth returns the width of the widest line.
func MaxWidth(lines []Line) int {
	w := 0
	for _, line := range lines {
		w = max(w, line.Width())
	}
	return w
}
