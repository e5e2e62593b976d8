package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// text returns a leaf that measures like a single unwrapped line of n cells.
func text(n int) *Node {
	return &Node{Measure: func(avail int) (int, int) {
		if avail >= 0 && n > avail {
			if avail == 0 {
				return 0, n
			}
			return avail, (n + avail - 1) / avail
		}
		return n, 1
	}}
}

func layouts(nodes ...*Node) []Layout {
	ls := make([]Layout, len(nodes))
	for i, n := range nodes {
		ls[i] = n.Layout
	}
	return ls
}

func TestCompute_Column(t *testing.T) {
	a, b := text(3), text(5)
	root := &Node{Children: []*Node{a, b}}
	Compute(root, 10, -1)
	want := []Layout{{0, 0, 10, 2}, {0, 0, 10, 1}, {0, 1, 10, 1}}
	if diff := cmp.Diff(want, layouts(root, a, b)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestCompute_ColumnWrapsText(t *testing.T) {
	a := text(25)
	root := &Node{Children: []*Node{a}}
	Compute(root, 10, -1)
	if a.Layout.Height != 3 {
		t.Errorf("wrapped text has height %d, want 3", a.Layout.Height)
	}
}

func TestCompute_Row(t *testing.T) {
	a, b := text(3), text(2)
	root := &Node{Style: Style{Direction: Row, Gap: 1}, Children: []*Node{a, b}}
	Compute(root, 10, -1)
	want := []Layout{{0, 0, 10, 1}, {0, 0, 3, 1}, {4, 0, 2, 1}}
	if diff := cmp.Diff(want, layouts(root, a, b)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestCompute_RowGrow(t *testing.T) {
	a, b, c := text(2), text(2), text(2)
	b.Style.Grow = 1
	c.Style.Grow = 2
	root := &Node{Style: Style{Direction: Row}, Children: []*Node{a, b, c}}
	Compute(root, 12, -1)
	// 6 cells of free space: b gets 2, c gets 4.
	want := []Layout{{0, 0, 2, 1}, {2, 0, 4, 1}, {6, 0, 6, 1}}
	if diff := cmp.Diff(want, layouts(a, b, c)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestCompute_RowNegativeGrowIsIgnored(t *testing.T) {
	a, b := text(2), text(2)
	a.Style.Grow = -1
	b.Style.Grow = -2
	root := &Node{Style: Style{Direction: Row}, Children: []*Node{a, b}}
	Compute(root, 10, -1)
	want := []Layout{{0, 0, 10, 1}, {0, 0, 2, 1}, {2, 0, 2, 1}}
	if diff := cmp.Diff(want, layouts(root, a, b)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	b.Style.Grow = 1
	Compute(root, 10, -1)
	want = []Layout{{0, 0, 10, 1}, {0, 0, 2, 1}, {2, 0, 8, 1}}
	if diff := cmp.Diff(want, layouts(root, a, b)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestCompute_PaddingAndMargin(t *testing.T) {
	a := text(3)
	a.Style.Margin = Edges{Top: 1, Left: 2}
	root := &Node{Style: Style{Padding: Uniform(1)}, Children: []*Node{a}}
	Compute(root, 10, -1)
	want := []Layout{{0, 0, 10, 4}, {3, 2, 6, 1}}
	if diff := cmp.Diff(want, layouts(root, a)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestCompute_FixedAndPercent(t *testing.T) {
	a, b := text(1), text(1)
	a.Style.Height = Cells(3)
	b.Style.Width = Percent(50)
	root := &Node{Children: []*Node{a, b}}
	Compute(root, 20, -1)
	want := []Layout{{0, 0, 20, 3}, {0, 3, 10, 1}}
	if diff := cmp.Diff(want, layouts(a, b)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestCompute_ColumnGrowWithDefiniteHeight(t *testing.T) {
	a, b := text(1), text(1)
	b.Style.Grow = 1
	root := &Node{Style: Style{Height: Cells(5)}, Children: []*Node{a, b}}
	Compute(root, 10, -1)
	want := []Layout{{0, 0, 10, 1}, {0, 1, 10, 4}}
	if diff := cmp.Diff(want, layouts(a, b)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestCompute_DisplayNone(t *testing.T) {
	a, hidden, b := text(1), text(4), text(1)
	hidden.Style.Display = None
	root := &Node{Style: Style{Gap: 1}, Children: []*Node{a, hidden, b}}
	Compute(root, 10, -1)
	want := []Layout{{0, 0, 10, 3}, {0, 0, 10, 1}, {0, 0, 0, 0}, {0, 2, 10, 1}}
	if diff := cmp.Diff(want, layouts(root, a, hidden, b)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestCompute_MaxHeightOfArea(t *testing.T) {
	root := &Node{Children: []*Node{text(1), text(1), text(1)}}
	Compute(root, 10, 2)
	if root.Layout.Height != 2 {
		t.Errorf("root height %d, want 2", root.Layout.Height)
	}
}

func TestBorder(t *testing.T) {
	s := Style{Padding: Edges{Left: 2}}.Border()
	if s.Padding != (Edges{1, 1, 1, 3}) {
		t.Errorf("got padding %v", s.Padding)
	}
}
