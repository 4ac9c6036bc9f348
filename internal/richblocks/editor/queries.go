package editor

import (
	"strings"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

// Node returns the node at p.
func (ed *Editor) Node(p Path) (Node, bool) {
	return ed.doc.Get(p)
}

// Above returns the lowest element above at matching match. The node at at
// itself and the root are never returned.
func (ed *Editor) Above(at Path, match func(*Element) bool) (*Element, Path, bool) {
	for i := len(at) - 1; i >= 1; i-- {
		p := at[:i].Clone()
		el, ok := ed.doc.Element(p)
		if !ok {
			continue
		}
		if match == nil || match(el) {
			return el, p, true
		}
	}
	return nil, nil, false
}

// Start returns the first position inside the node at p.
func (ed *Editor) Start(p Path) Point {
	leaves := ed.doc.Leaves(p)
	if len(leaves) == 0 {
		return Point{Path: p.Clone()}
	}
	return Point{Path: leaves[0]}
}

// End returns the last position inside the node at p.
func (ed *Editor) End(p Path) Point {
	leaves := ed.doc.Leaves(p)
	if len(leaves) == 0 {
		return Point{Path: p.Clone()}
	}
	last := leaves[len(leaves)-1]
	t, _ := ed.doc.Leaf(last)
	return Point{Path: last, Offset: runeLen(t.Text)}
}

func (ed *Editor) IsStart(pt Point, p Path) bool {
	return pt.Equal(ed.Start(p))
}

func (ed *Editor) IsEnd(pt Point, p Path) bool {
	return pt.Equal(ed.End(p))
}

func (ed *Editor) IsEdge(pt Point, p Path) bool {
	return ed.IsStart(pt, p) || ed.IsEnd(pt, p)
}

// Last returns the last leaf below p.
func (ed *Editor) Last(p Path) (*Text, Path, bool) {
	leaves := ed.doc.Leaves(p)
	if len(leaves) == 0 {
		return nil, nil, false
	}
	lp := leaves[len(leaves)-1]
	t, _ := ed.doc.Leaf(lp)
	return t, lp, true
}

// String returns the text covered by r.
func (ed *Editor) String(r Range) string {
	start, end := r.Edges()
	var sb strings.Builder
	for _, lp := range ed.leavesBetween(start.Path, end.Path) {
		t, _ := ed.doc.Leaf(lp)
		from, to := 0, runeLen(t.Text)
		if lp.Equal(start.Path) {
			from = start.Offset
		}
		if lp.Equal(end.Path) {
			to = end.Offset
		}
		sb.WriteString(runeSlice(t.Text, from, to))
	}
	return sb.String()
}

// leavesBetween returns leaf paths from a to b inclusive, in document order.
func (ed *Editor) leavesBetween(a, b Path) []Path {
	var res []Path
	for _, lp := range ed.doc.Leaves(nil) {
		if lp.Compare(a) >= 0 && lp.Compare(b) <= 0 {
			res = append(res, lp)
		}
	}
	return res
}

// elementsInRange returns matching elements that contain a leaf of r, in document order.
func (ed *Editor) elementsInRange(r Range, match func(*Element) bool) []Path {
	start, end := r.Edges()
	seen := make(map[string]struct{})
	var res []Path
	for _, lp := range ed.leavesBetween(start.Path, end.Path) {
		for _, a := range lp.Ancestors() {
			if len(a) == 0 {
				continue
			}
			el, ok := ed.doc.Element(a)
			if !ok || !match(el) {
				continue
			}
			key := pathKey(a)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			res = append(res, a.Clone())
		}
	}
	return res
}

// isTextBlock reports whether el is a block holding inline content.
func (ed *Editor) isTextBlock(el *Element) bool {
	return !ed.IsInline(el) && el.Type() != edtypes.TypeList
}

// TextBlock returns the lowest text block containing the leaf at p.
func (ed *Editor) TextBlock(p Path) (*Element, Path, bool) {
	return ed.Above(p, ed.isTextBlock)
}

// voidAbove returns the void element containing p.
func (ed *Editor) voidAbove(p Path) (Path, bool) {
	_, vp, ok := ed.Above(p, ed.IsVoid)
	return vp, ok
}

func (ed *Editor) textBlocks() []Path {
	var res []Path
	ed.doc.Walk(func(n Node, p Path) bool {
		el, ok := n.(*Element)
		if !ok {
			return false
		}
		if ed.isTextBlock(el) {
			res = append(res, p.Clone())
		}
		return true
	})
	return res
}

// previousTextBlock returns the text block before p in document order.
func (ed *Editor) previousTextBlock(p Path) (Path, bool) {
	var res Path
	for _, bp := range ed.textBlocks() {
		if bp.Compare(p) != -1 {
			break
		}
		res = bp
	}
	return res, res != nil
}

// blockOffset converts pt into an offset inside the text of the block at bp.
func (ed *Editor) blockOffset(bp Path, pt Point) int {
	off := 0
	for _, lp := range ed.doc.Leaves(bp) {
		if lp.Equal(pt.Path) {
			return off + pt.Offset
		}
		t, _ := ed.doc.Leaf(lp)
		off += runeLen(t.Text)
	}
	return off
}

// pointAtBlockOffset is the inverse of blockOffset. A boundary between leaves
// resolves to the end of the earlier leaf.
func (ed *Editor) pointAtBlockOffset(bp Path, k int) Point {
	cum := 0
	for _, lp := range ed.doc.Leaves(bp) {
		t, _ := ed.doc.Leaf(lp)
		l := runeLen(t.Text)
		if k <= cum+l {
			return Point{Path: lp, Offset: max(0, k-cum)}
		}
		cum += l
	}
	return ed.End(bp)
}

// Marks returns the marks the next typed character gets.
func (ed *Editor) Marks() edtypes.Marks {
	if ed.selection == nil {
		return 0
	}
	sel := *ed.selection
	if !sel.IsCollapsed() {
		start, end := sel.Edges()
		leaves := ed.leavesBetween(start.Path, end.Path)
		if len(leaves) == 0 {
			return 0
		}
		t, _ := ed.doc.Leaf(leaves[0])
		return t.Marks
	}
	if ed.marks != nil {
		return *ed.marks
	}

	anchor := sel.Anchor
	t, ok := ed.doc.Leaf(anchor.Path)
	if !ok {
		return 0
	}
	if anchor.Offset == 0 {
		// at the start of a leaf the marks come from the previous leaf of the same block
		if _, bp, ok := ed.TextBlock(anchor.Path); ok {
			var prev Path
			for _, lp := range ed.doc.Leaves(bp) {
				if lp.Equal(anchor.Path) {
					break
				}
				prev = lp
			}
			if prev != nil {
				pt, _ := ed.doc.Leaf(prev)
				return pt.Marks
			}
		}
	}
	return t.Marks
}

// IsMarkActive reports whether m is among Marks.
func (ed *Editor) IsMarkActive(m edtypes.Mark) bool {
	return ed.Marks().Has(m)
}
