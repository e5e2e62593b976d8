package ui

import "strings"

// Style specifies how something (mostly a string) shall be displayed.
type Style struct {
	Fg         Color
	Bg         Color
	Bold       bool
	Dim        bool
	Italic     bool
	Underlined bool
	Blink      bool
	Inverse    bool
}

// SGR returns SGR sequence for the style.
func (s Style) SGR() string {
	var sgr []string

	addIf := func(b bool, code string) {
		if b {
			sgr = append(sgr, code)
		}
	}
	addIf(s.Bold, "1")
	addIf(s.Dim, "2")
	addIf(s.Italic, "3")
	addIf(s.Underlined, "4")
	addIf(s.Blink, "5")
	addIf(s.Inverse, "7")
	if s.Fg != nil {
		sgr = append(sgr, s.Fg.fgSGR())
	}
	if s.Bg != nil {
		sgr = append(sgr, s.Bg.bgSGR())
	}

	return strings.Join(sgr, ";")
}

// Merge returns a copy of s with all non-zero attributes of s2 applied on top.
func (s Style) Merge(s2 Style) Style {
	if s2.Fg != nil {
		s.Fg = s2.Fg
	}
	if s2.Bg != nil {
		s.Bg = s2.Bg
	}
	s.Bold = s.Bold || s2.Bold
	s.Dim = s.Dim || s2.Dim
	s.Italic = s.Italic || s2.Italic
	s.Underlined = s.Underlined || s2.Underlined
	s.Blink = s.Blink || s2.Blink
	s.Inverse = s.Inverse || s2.Inverse
	return s
}
