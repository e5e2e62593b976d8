// Package ui contains types that may be used by different editor frontends.
package ui

import (
	"strings"
)

// Text contains of a list of styled Segments.
type Text []*Segment

// Segment is a string that has some style applied to it.
type Segment struct {
	Style
	Text string
}

// T constructs a new Text with the given content and the given Style.
func T(s string, style ...Style) Text {
	seg := &Segment{Text: s}
	for _, st := range style {
		seg.Style = seg.Style.Merge(st)
	}
	return Text{seg}
}

// Concat returns a new Text with the segments of t2 added to the end.
func (t Text) Concat(t2 Text) Text {
	return append(append(Text(nil), t...), t2...)
}

// String returns the content of the Text without any styling.
func (t Text) String() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// VTString renders the styled text using VT-style escape sequences.
func (t Text) VTString() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.VTString())
	}
	return sb.String()
}

// VTString renders the styled segment using VT-style escape sequences.
func (s *Segment) VTString() string {
	sgr := s.SGR()
	if sgr == "" {
		return s.Text
	}
	return "\033[" + sgr + "m" + s.Text + "\033[m"
}

// SplitLines splits the Text at newlines. The segments of the result do not
// alias the segments of t.
func (t Text) SplitLines() []Text {
	lines := []Text{nil}
	for _, seg := range t {
		parts := strings.Split(seg.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], &Segment{seg.Style, part})
			}
		}
	}
	return lines
}
