package comp

import (
	"src.retui.sh/pkg/layout"
	"src.retui.sh/pkg/term"
)

// Updater lets a component declare its layout and its children during an
// update.
type Updater struct {
	inst            *instance
	s               *session
	children        []Element
	updatedChildren bool
}

// SetLayoutStyle sets the layout style of the component. The style is reset
// to the zero value before each update.
func (u *Updater) SetLayoutStyle(style layout.Style) {
	u.inst.node.Style = style
}

// SetMeasure sets the function that measures the intrinsic size of the
// component. It is only consulted for components without children.
func (u *Updater) SetMeasure(f layout.MeasureFunc) {
	u.inst.node.Measure = f
}

// Children returns the children of the element being updated.
func (u *Updater) Children() []Element { return u.children }

// UpdateChildren reconciles the children of the component with the given
// elements, updating them recursively. If override is not nil, it replaces
// the layout style of every child after the child has been updated.
//
// A component that does not call UpdateChildren during an update has no
// children after it.
func (u *Updater) UpdateChildren(children []Element, override *layout.Style) {
	u.updatedChildren = true
	u.inst.children = u.s.reconcile(u.inst.children, children)
	u.inst.node.Children = make([]*layout.Node, len(u.inst.children))
	for i, child := range u.inst.children {
		if override != nil {
			child.node.Style = *override
		}
		u.inst.node.Children[i] = &child.node
	}
}

// Width returns the width of the area being rendered into, usually the width
// of the terminal.
func (u *Updater) Width() int { return u.s.width }

// CommitStatic appends lines to the static region of the output. Committed
// lines are written above the dynamic region when the current pass is
// painted, and are never changed afterwards.
func (u *Updater) CommitStatic(lines ...term.Line) {
	u.s.splitter.CommitStatic(lines...)
}

// RenderDetached renders an element on its own, in a separate tree that is
// discarded afterwards, and returns the resulting lines. Static lines
// committed in that tree come first.
//
// Tasks started in the detached tree are cancelled when it is discarded, but
// RenderDetached does not wait for them to return.
func (u *Updater) RenderDetached(el Element, width int) []term.Line {
	return renderLines(el, width, false)
}
