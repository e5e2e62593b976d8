// Package comps provides basic components.
package comps

import (
	"src.retui.sh/pkg/comp"
	"src.retui.sh/pkg/term"
	"src.retui.sh/pkg/ui"
)

// TextProps keeps the props of a text component.
type TextProps struct {
	Content ui.Text
}

// TextKind is the kind of text components, which show styled text wrapped to
// their width.
var TextKind = &comp.Kind{Name: "Text", New: func() comp.Component { return &text{} }}

// Text builds a text element with a single style.
func Text(content string, style ...ui.Style) comp.Element {
	return StyledText(ui.T(content, style...))
}

// StyledText builds a text element.
func StyledText(t ui.Text) comp.Element {
	return comp.New(TextKind, TextProps{t})
}

type text struct {
	content ui.Text
}

func (t *text) Update(props any, _ *comp.Hooks, u *comp.Updater) {
	p, _ := props.(TextProps)
	t.content = p.Content
	u.SetMeasure(func(avail int) (int, int) {
		lines := term.Wrap(t.content, avail)
		return term.MaxWidth(lines), len(lines)
	})
}

func (t *text) Render(c *comp.Canvas) {
	c.WriteLines(0, 0, term.Wrap(t.content, c.Width()))
}
