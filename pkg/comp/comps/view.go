package comps

import (
	"strings"

	"src.retui.sh/pkg/comp"
	"src.retui.sh/pkg/layout"
	"src.retui.sh/pkg/ui"
)

// BorderStyle selects the characters used for the border of a view.
type BorderStyle int

// Possible values of BorderStyle.
const (
	NoBorder BorderStyle = iota
	SingleBorder
	RoundBorder
	DoubleBorder
)

// Top left, top right, bottom left, bottom right, horizontal, vertical.
var borderChars = map[BorderStyle][6]string{
	SingleBorder: {"┌", "┐", "└", "┘", "─", "│"},
	RoundBorder:  {"╭", "╮", "╰", "╯", "─", "│"},
	DoubleBorder: {"╔", "╗", "╚", "╝", "═", "║"},
}

// ViewProps keeps the props of a view.
type ViewProps struct {
	Layout      layout.Style
	Border      BorderStyle
	BorderStyle ui.Style
	// Background is applied to the whole area of the view when not zero.
	Background ui.Style
}

// ViewKind is the kind of views, which lay out their children and may draw a
// border around them.
var ViewKind = &comp.Kind{Name: "View", New: func() comp.Component { return &view{} }}

// View builds a view element.
func View(p ViewProps, children ...comp.Element) comp.Element {
	return comp.New(ViewKind, p, children...)
}

type view struct {
	props ViewProps
}

func (v *view) Update(props any, _ *comp.Hooks, u *comp.Updater) {
	v.props, _ = props.(ViewProps)
	style := v.props.Layout
	if v.props.Border != NoBorder {
		style = style.Border()
	}
	u.SetLayoutStyle(style)
	u.UpdateChildren(u.Children(), nil)
}

func (v *view) Render(c *comp.Canvas) {
	if v.props.Background != (ui.Style{}) {
		c.Fill(v.props.Background)
	}
	chars, ok := borderChars[v.props.Border]
	w, h := c.Width(), c.Height()
	if !ok || w < 2 || h < 2 {
		return
	}
	st := v.props.BorderStyle
	c.WriteText(0, 0, ui.T(chars[0]+strings.Repeat(chars[4], w-2)+chars[1], st))
	for y := 1; y < h-1; y++ {
		c.WriteText(0, y, ui.T(chars[5], st))
		c.WriteText(w-1, y, ui.T(chars[5], st))
	}
	c.WriteText(0, h-1, ui.T(chars[2]+strings.Repeat(chars[4], w-2)+chars[3], st))
}
