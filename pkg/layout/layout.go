// Package layout computes the geometry of a tree of nodes, using a small
// subset of the flexbox model.
//
// Compute is pure and synchronous: it reads the Style and Measure of each
// node and writes the resulting Layout, and nothing else.
package layout

// MeasureFunc returns the intrinsic size of a leaf when it is at most
// availWidth cells wide. A negative availWidth means unlimited.
type MeasureFunc func(availWidth int) (width, height int)

// Node is a node in the layout tree.
type Node struct {
	Style    Style
	Measure  MeasureFunc
	Children []*Node

	// Layout is written by Compute.
	Layout Layout
}

// Layout is the resolved geometry of a node. X and Y are relative to the
// root of the tree.
type Layout struct {
	X, Y, Width, Height int
}

// Compute lays out the tree rooted at root in an area of the given size. A
// negative height means the height is unbounded, which is the case for inline
// terminal output that grows downwards.
func Compute(root *Node, width, height int) {
	w := width
	if v, ok := root.Style.Width.resolve(width); ok {
		w = v
	}
	w = clamp(w, root.Style.MinWidth, root.Style.MaxWidth)
	h := root.heightFor(w, height)
	if height >= 0 && root.Style.Height.IsAuto() {
		h = min(h, height)
	}
	root.place(0, 0, w, h)
}

func (n *Node) hidden() bool { return n.Style.Display == None }

// visibleChildren returns the children that take part in layout.
func (n *Node) visibleChildren() []*Node {
	var visible []*Node
	for _, c := range n.Children {
		if !c.hidden() {
			visible = append(visible, c)
		}
	}
	return visible
}

func (n *Node) gaps(count int) int {
	if count <= 1 {
		return 0
	}
	return n.Style.Gap * (count - 1)
}

// intrinsicWidth returns the width the node would like to have, given at most
// avail cells.
func (n *Node) intrinsicWidth(avail int) int {
	if n.hidden() {
		return 0
	}
	s := n.Style
	if v, ok := s.Width.resolve(avail); ok {
		return clamp(v, s.MinWidth, s.MaxWidth)
	}
	innerAvail := -1
	if avail >= 0 {
		innerAvail = max(avail-s.Padding.horizontal(), 0)
	}
	w := 0
	switch {
	case n.Measure != nil:
		w, _ = n.Measure(innerAvail)
	case s.Direction == Row:
		children := n.visibleChildren()
		for _, c := range children {
			w += c.intrinsicWidth(innerAvail) + c.Style.Margin.horizontal()
		}
		w += n.gaps(len(children))
	default:
		for _, c := range n.visibleChildren() {
			w = max(w, c.intrinsicWidth(innerAvail)+c.Style.Margin.horizontal())
		}
	}
	w += s.Padding.horizontal()
	if avail >= 0 {
		w = min(w, avail)
	}
	return clamp(w, s.MinWidth, s.MaxWidth)
}

// heightFor returns the height of the node when it is w cells wide, inside a
// container whose inner height is containerH (negative if unknown).
func (n *Node) heightFor(w, containerH int) int {
	if n.hidden() {
		return 0
	}
	s := n.Style
	if v, ok := s.Height.resolve(containerH); ok {
		return clamp(v, s.MinHeight, s.MaxHeight)
	}
	innerW := max(w-s.Padding.horizontal(), 0)
	h := 0
	switch {
	case n.Measure != nil:
		_, h = n.Measure(innerW)
	case s.Direction == Row:
		children := n.visibleChildren()
		widths := n.rowWidths(children, innerW)
		for i, c := range children {
			h = max(h, c.heightFor(widths[i], -1)+c.Style.Margin.vertical())
		}
	default:
		children := n.visibleChildren()
		for _, c := range children {
			h += c.heightFor(n.columnWidth(c, innerW), -1) + c.Style.Margin.vertical()
		}
		h += n.gaps(len(children))
	}
	return clamp(h+s.Padding.vertical(), s.MinHeight, s.MaxHeight)
}

// columnWidth returns the width of a child of a column container; children
// without a definite width stretch to fill the container.
func (n *Node) columnWidth(c *Node, innerW int) int {
	if v, ok := c.Style.Width.resolve(innerW); ok {
		return clamp(v, c.Style.MinWidth, c.Style.MaxWidth)
	}
	return clamp(innerW-c.Style.Margin.horizontal(), c.Style.MinWidth, c.Style.MaxWidth)
}

// rowWidths returns the widths of the children of a row container, with free
// space distributed among growing children.
func (n *Node) rowWidths(children []*Node, innerW int) []int {
	widths := make([]int, len(children))
	used := n.gaps(len(children))
	for i, c := range children {
		remain := max(innerW-used-c.Style.Margin.horizontal(), 0)
		widths[i] = c.intrinsicWidth(remain)
		used += widths[i] + c.Style.Margin.horizontal()
	}
	distribute(children, widths, innerW-used)
	return widths
}

// distribute adds free space to sizes in proportion to the Grow of each
// child. The last growing child absorbs rounding remainders.
func distribute(children []*Node, sizes []int, free int) {
	if free <= 0 {
		return
	}
	total := 0
	for _, c := range children {
		if c.Style.Grow > 0 {
			total += c.Style.Grow
		}
	}
	if total == 0 {
		return
	}
	remain := free
	last := -1
	for i, c := range children {
		if c.Style.Grow > 0 {
			add := free * c.Style.Grow / total
			sizes[i] += add
			remain -= add
			last = i
		}
	}
	sizes[last] += remain
}

func (n *Node) place(x, y, w, h int) {
	n.Layout = Layout{x, y, w, h}
	if n.hidden() {
		n.Layout.Width, n.Layout.Height = 0, 0
		for _, c := range n.Children {
			c.place(x, y, 0, 0)
		}
		return
	}
	s := n.Style
	innerX, innerY := x+s.Padding.Left, y+s.Padding.Top
	innerW := max(w-s.Padding.horizontal(), 0)
	innerH := max(h-s.Padding.vertical(), 0)

	children := n.visibleChildren()
	for _, c := range n.Children {
		if c.hidden() {
			c.place(innerX, innerY, 0, 0)
		}
	}
	switch s.Direction {
	case Row:
		widths := n.rowWidths(children, innerW)
		cx := innerX
		for i, c := range children {
			ch := innerH - c.Style.Margin.vertical()
			if v, ok := c.Style.Height.resolve(innerH); ok {
				ch = clamp(v, c.Style.MinHeight, c.Style.MaxHeight)
			}
			cx += c.Style.Margin.Left
			c.place(cx, innerY+c.Style.Margin.Top, widths[i], max(ch, 0))
			cx += widths[i] + c.Style.Margin.Right + s.Gap
		}
	default:
		widths := make([]int, len(children))
		heights := make([]int, len(children))
		used := n.gaps(len(children))
		for i, c := range children {
			widths[i] = n.columnWidth(c, innerW)
			heights[i] = c.heightFor(widths[i], innerH)
			used += heights[i] + c.Style.Margin.vertical()
		}
		distribute(children, heights, innerH-used)
		cy := innerY
		for i, c := range children {
			cy += c.Style.Margin.Top
			c.place(innerX+c.Style.Margin.Left, cy, widths[i], heights[i])
			cy += heights[i] + c.Style.Margin.Bottom + s.Gap
		}
	}
}
