package layout

// Direction is the main axis of a container.
type Direction uint8

const (
	// Column stacks children from top to bottom. It is the default.
	Column Direction = iota
	// Row places children from left to right.
	Row
)

// Display controls whether a node takes part in layout.
type Display uint8

const (
	// Flex is the default; the node is laid out normally.
	Flex Display = iota
	// None removes the node and its subtree from layout; it gets a zero size.
	None
)

type dimensionKind uint8

const (
	auto dimensionKind = iota
	cells
	percent
)

// Dimension is a length along one axis. The zero value is Auto.
type Dimension struct {
	kind  dimensionKind
	value int
}

// Auto is a Dimension determined by the content and the container.
var Auto = Dimension{}

// Cells returns a Dimension of n terminal cells.
func Cells(n int) Dimension { return Dimension{cells, max(n, 0)} }

// Percent returns a Dimension relative to the size of the container.
func Percent(p int) Dimension { return Dimension{percent, max(p, 0)} }

// IsAuto reports whether d is Auto.
func (d Dimension) IsAuto() bool { return d.kind == auto }

// resolve returns the length of d relative to a container of size avail, and
// whether d is definite. A percentage of an unknown size (avail < 0) is not
// definite.
func (d Dimension) resolve(avail int) (int, bool) {
	switch d.kind {
	case cells:
		return d.value, true
	case percent:
		if avail < 0 {
			return 0, false
		}
		return avail * d.value / 100, true
	}
	return 0, false
}

// Edges holds lengths for the four sides of a box.
type Edges struct {
	Top, Right, Bottom, Left int
}

// Uniform returns Edges with all sides set to n.
func Uniform(n int) Edges { return Edges{n, n, n, n} }

// Symmetric returns Edges with the given vertical and horizontal lengths.
func Symmetric(vertical, horizontal int) Edges {
	return Edges{vertical, horizontal, vertical, horizontal}
}

func (e Edges) horizontal() int { return e.Left + e.Right }
func (e Edges) vertical() int   { return e.Top + e.Bottom }

// Style is the geometry request of a node.
type Style struct {
	Display   Display
	Direction Direction

	Width, Height       Dimension
	MinWidth, MinHeight int
	// MaxWidth and MaxHeight are ignored when 0.
	MaxWidth, MaxHeight int
	Padding, Margin     Edges
	// Gap is the space between adjacent children along the main axis.
	Gap int
	// Grow is the share of the free space along the container's main axis
	// that the node takes. Free space only exists when the container has a
	// definite size.
	Grow int
}

// Border returns a copy of s with one more cell of padding on each side,
// which is what a border drawn by a component occupies.
func (s Style) Border() Style {
	s.Padding.Top++
	s.Padding.Right++
	s.Padding.Bottom++
	s.Padding.Left++
	return s
}

func clamp(v, lo, hi int) int {
	if hi > 0 && v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return max(v, 0)
}
