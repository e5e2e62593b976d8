package comps

import (
	"src.retui.sh/pkg/comp"
	"src.retui.sh/pkg/layout"
	"src.retui.sh/pkg/term"
	"src.retui.sh/pkg/ui"
)

// StaticProps keeps the props of a static component.
type StaticProps struct {
	Items []string
}

// StaticKind is the kind of static components.
//
// A static component writes its items, followed by its children, to the
// static region of the output, where they stay above everything else. Only
// the items and children beyond those written by earlier passes are written;
// changes to items and children that have already been written are ignored.
// This makes it suitable for output that only grows, like a log of completed
// tasks.
//
// A static component takes no space in the dynamic region.
var StaticKind = &comp.Kind{Name: "Static", New: func() comp.Component { return &static{} }}

// Static builds a static element.
func Static(items []string, children ...comp.Element) comp.Element {
	return comp.New(StaticKind, StaticProps{items}, children...)
}

type static struct {
	nItems    int
	nChildren int
}

func (s *static) Update(props any, _ *comp.Hooks, u *comp.Updater) {
	p, _ := props.(StaticProps)
	width := u.Width()
	var lines []term.Line
	if len(p.Items) > s.nItems {
		for _, item := range p.Items[s.nItems:] {
			lines = append(lines, term.Wrap(ui.T(item), width)...)
		}
		s.nItems = len(p.Items)
	}
	if children := u.Children(); len(children) > s.nChildren {
		for _, child := range children[s.nChildren:] {
			lines = append(lines, u.RenderDetached(child, width)...)
		}
		s.nChildren = len(children)
	}
	if len(lines) > 0 {
		u.CommitStatic(lines...)
	}
	u.SetLayoutStyle(layout.Style{Display: layout.None})
}
