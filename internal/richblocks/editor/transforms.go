package editor

import (
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

// Select sets the selection. Ranges pointing outside the document are rejected.
func (ed *Editor) Select(r Range) bool {
	if !ed.validRange(r) {
		return false
	}
	ed.Apply(SetSelection{Old: ed.Selection(), New: &r})
	return true
}

// SelectPoint collapses the selection at pt.
func (ed *Editor) SelectPoint(pt Point) bool {
	return ed.Select(edtypes.Collapsed(pt))
}

func (ed *Editor) Deselect() {
	if ed.selection == nil {
		return
	}
	ed.Apply(SetSelection{Old: ed.Selection()})
}

// InsertNode inserts n at p without touching the selection.
func (ed *Editor) InsertNode(p Path, n Node) {
	ed.Apply(InsertNode{Path: p.Clone(), Node: n})
}

func (ed *Editor) RemoveNode(p Path) bool {
	n, ok := ed.doc.Get(p)
	if !ok {
		return false
	}
	ed.Apply(RemoveNode{Path: p.Clone(), Node: n})
	return true
}

// MoveNode moves the node at from so that it ends up at to.
func (ed *Editor) MoveNode(from, to Path) bool {
	if _, ok := ed.doc.Get(from); !ok || len(to) == 0 {
		return false
	}
	ed.Apply(MoveNode{Path: from.Clone(), NewPath: to.Clone()})
	return true
}

// SetBlock replaces the block of the element at p.
func (ed *Editor) SetBlock(p Path, b Block) bool {
	el, ok := ed.doc.Element(p)
	if !ok {
		return false
	}
	ed.Apply(SetBlock{Path: p.Clone(), Old: el.Block, New: b})
	return true
}

// insertTextTransform inserts text at the selection as is, without pending marks.
func (ed *Editor) insertTextTransform(text string) {
	if ed.selection == nil || text == "" {
		return
	}
	ed.WithoutNormalizing(func() {
		if !ed.selection.IsCollapsed() {
			ed.DeleteRange(*ed.selection)
		}
		if ed.selection == nil {
			return
		}
		at := ed.selection.Anchor
		if _, ok := ed.voidAbove(at.Path); ok {
			return
		}
		ed.apply(InsertText{Path: at.Path.Clone(), Offset: at.Offset, Text: text})
	})
}

// baseInsertText is the innermost link of InsertText: pending marks go into a new leaf.
func (ed *Editor) baseInsertText(text string) {
	if ed.selection == nil || text == "" {
		return
	}
	ed.WithoutNormalizing(func() {
		if !ed.selection.IsCollapsed() {
			ed.DeleteRange(*ed.selection)
		}
		if ed.selection == nil {
			return
		}
		at := ed.selection.Anchor
		if _, ok := ed.voidAbove(at.Path); ok {
			return
		}
		if ed.marks != nil {
			marks := *ed.marks
			if t, ok := ed.doc.Leaf(at.Path); ok && t.Marks != marks {
				ed.insertLeafAt(at, &Text{Type: edtypes.TextType, Text: text, Marks: marks})
				ed.marks = nil
				return
			}
		}
		ed.apply(InsertText{Path: at.Path.Clone(), Offset: at.Offset, Text: text})
		ed.marks = nil
	})
}

// insertLeafAt puts n at pt, splitting the leaf there, and selects its end.
func (ed *Editor) insertLeafAt(pt Point, n Node) Path {
	t, ok := ed.doc.Leaf(pt.Path)
	if !ok {
		return nil
	}
	var at Path
	switch {
	case pt.Offset <= 0:
		at = pt.Path.Clone()
	case pt.Offset >= runeLen(t.Text):
		at = pt.Path.Next()
	default:
		ed.apply(SplitNode{Path: pt.Path.Clone(), Position: pt.Offset, Leaf: leafProps(t)})
		at = pt.Path.Next()
	}
	ed.apply(InsertNode{Path: at, Node: n})
	end := ed.End(at)
	ed.apply(SetSelection{Old: ed.Selection(), New: &Range{Anchor: end, Focus: end.Clone()}})
	return at
}

// splitNodes splits from the leaf at at up to and including the node at highest.
// Without always, a level is left alone when at sits on its edge.
func (ed *Editor) splitNodes(at Point, highest Path, always bool) {
	before := ed.pointRef(at, backward)
	defer before.unref()

	position := at.Offset
	for depth := len(at.Path); depth >= len(highest) && depth > 0; depth-- {
		p := at.Path[:depth].Clone()
		n, ok := ed.doc.Get(p)
		if !ok {
			return
		}
		var props SplitNode
		switch v := n.(type) {
		case *Element:
			if ed.IsVoid(v) {
				return
			}
			props.Block = edtypes.CloneBlock(v.Block)
		case *Text:
			props.Leaf = leafProps(v)
		}

		pt, ok := before.current()
		if !ok {
			return
		}
		isEnd := ed.IsEnd(pt, p)
		split := false
		if always || !ed.IsEdge(pt, p) {
			split = true
			ed.apply(SplitNode{Path: p, Position: position, Block: props.Block, Leaf: props.Leaf})
		}
		position = p.Last()
		if split || isEnd {
			position++
		}
	}
}

// SplitBlock splits the lowest text block at the selection, like pressing Enter
// in a plain editor. The cursor ends at the start of the second half.
func (ed *Editor) SplitBlock() {
	if ed.selection == nil {
		return
	}
	ed.WithoutNormalizing(func() {
		if !ed.selection.IsCollapsed() {
			ed.DeleteRange(*ed.selection)
		}
		if ed.selection == nil {
			return
		}
		at := ed.selection.Anchor
		_, bp, ok := ed.TextBlock(at.Path)
		if !ok {
			return
		}
		ed.splitNodes(at, bp, true)
	})
}

// InsertBlock inserts a block element at the selection: before the current block
// when the cursor is at its start, after it at its end, otherwise between the two
// halves of a split. The cursor moves to the end of the new block.
func (ed *Editor) InsertBlock(el *Element) (Path, bool) {
	var res Path
	ed.WithoutNormalizing(func() {
		if ed.selection != nil && !ed.selection.IsCollapsed() {
			ed.DeleteRange(*ed.selection)
		}
		var at Point
		if ed.selection != nil {
			at = ed.selection.Anchor
		} else {
			at = ed.End(nil)
		}

		_, bp, ok := ed.TextBlock(at.Path)
		if !ok {
			return
		}
		ref := ed.PathRef(bp)
		isAtEnd := ed.IsEnd(at, bp)
		ed.splitNodes(at, bp, false)
		p := ref.Unref()
		if p == nil {
			return
		}
		if isAtEnd {
			p = p.Next()
		}
		ed.apply(InsertNode{Path: p, Node: el})
		end := ed.End(p)
		ed.apply(SetSelection{Old: ed.Selection(), New: &Range{Anchor: end, Focus: end.Clone()}})
		res = p
	})
	return res, res != nil
}

// InsertInline inserts an inline node at the selection and selects its end.
func (ed *Editor) InsertInline(n Node) (Path, bool) {
	if ed.selection == nil {
		return nil, false
	}
	var res Path
	ed.WithoutNormalizing(func() {
		if !ed.selection.IsCollapsed() {
			ed.DeleteRange(*ed.selection)
		}
		if ed.selection == nil {
			return
		}
		at := ed.selection.Anchor
		if _, ok := ed.voidAbove(at.Path); ok {
			return
		}
		res = ed.insertLeafAt(at, n)
	})
	return res, res != nil
}

// UnwrapNode replaces the element at p with its children.
func (ed *Editor) UnwrapNode(p Path) bool {
	el, ok := ed.doc.Element(p)
	if !ok {
		return false
	}
	ed.WithoutNormalizing(func() {
		ed.unwrap(p.Clone(), len(el.Children))
	})
	return true
}

// WrapInline wraps the content of r into a new inline element of block b. Leaves
// on the edges are split first. Each text block gets its own wrapper.
func (ed *Editor) WrapInline(b Block, r Range) {
	if r.IsCollapsed() {
		return
	}
	ed.WithoutNormalizing(func() {
		start, end := r.Edges()
		startRef := ed.pointRef(start, forward)
		endRef := ed.pointRef(end, backward)

		ed.splitLeafAt(end)
		if st, ok := startRef.current(); ok {
			ed.splitLeafAt(st)
		}
		s, ok1 := startRef.current()
		e, ok2 := endRef.current()
		if ok1 && ok2 {
			// last block first so the paths of the rest stay valid
			blocks := ed.elementsInRange(Range{Anchor: s, Focus: e}, ed.isTextBlock)
			for i := len(blocks) - 1; i >= 0; i-- {
				ed.wrapInBlock(blocks[i], s, e, b)
			}
		}

		s, ok1 = startRef.unref()
		e, ok2 = endRef.unref()
		if ok1 && ok2 && ed.selection != nil && ed.validPoint(s) && ed.validPoint(e) {
			ed.apply(SetSelection{Old: ed.Selection(), New: &Range{Anchor: s, Focus: e}})
		}
	})
}

func (ed *Editor) splitLeafAt(pt Point) {
	t, ok := ed.doc.Leaf(pt.Path)
	if !ok || pt.Offset <= 0 || pt.Offset >= runeLen(t.Text) {
		return
	}
	ed.apply(SplitNode{Path: pt.Path.Clone(), Position: pt.Offset, Leaf: leafProps(t)})
}

// wrapInBlock moves the direct children of the block at bp covered by [s, e]
// into a new element of block b.
func (ed *Editor) wrapInBlock(bp Path, s, e Point, b Block) {
	el, ok := ed.doc.Element(bp)
	if !ok {
		return
	}
	first, last := -1, -1
	for i := range el.Children {
		cp := bp.Child(i)
		cs, ce := ed.Start(cp), ed.End(cp)
		if cs.Compare(s) >= 0 && ce.Compare(e) <= 0 {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return
	}

	w := last + 1
	ed.apply(InsertNode{Path: bp.Child(w), Node: &Element{Block: edtypes.CloneBlock(b)}})
	for k := 0; k <= last-first; k++ {
		ed.apply(MoveNode{Path: bp.Child(first), NewPath: bp.Child(w).Child(k)})
		w--
	}
}

// LiftNode moves the node at p out of its parent, splitting the parent when p
// sits in the middle. An emptied parent is removed.
func (ed *Editor) LiftNode(p Path) bool {
	if len(p) < 2 {
		return false
	}
	parentPath := p.Parent().Clone()
	parent, ok := ed.doc.Element(parentPath)
	if !ok {
		return false
	}
	index, length := p.Last(), len(parent.Children)

	ed.WithoutNormalizing(func() {
		switch {
		case length == 1:
			ed.apply(MoveNode{Path: p.Clone(), NewPath: parentPath.Next()})
			ed.apply(RemoveNode{Path: parentPath, Node: mustGet(ed.doc, parentPath)})
		case index == 0:
			ed.apply(MoveNode{Path: p.Clone(), NewPath: parentPath})
		case index == length-1:
			ed.apply(MoveNode{Path: p.Clone(), NewPath: parentPath.Next()})
		default:
			ed.apply(SplitNode{Path: parentPath, Position: index + 1, Block: edtypes.CloneBlock(parent.Block)})
			ed.apply(MoveNode{Path: p.Clone(), NewPath: parentPath.Next()})
		}
	})
	return true
}

func mustGet(doc *Document, p Path) Node {
	n, _ := doc.Get(p)
	return n
}

// MergeBlock merges the text block at p into the text block before it. The
// block is moved next to its target first; an empty target is removed instead.
func (ed *Editor) MergeBlock(p Path) bool {
	el, ok := ed.doc.Element(p)
	if !ok {
		return false
	}
	prevPath, ok := ed.previousTextBlock(p)
	if !ok {
		return false
	}
	prev, _ := ed.doc.Element(prevPath)

	ed.WithoutNormalizing(func() {
		common := commonPath(p, prevPath)

		// topmost ancestor left empty by the move
		var emptyRef *PathRef
		for i := len(common) + 1; i < len(p); i++ {
			if ed.singleChildChain(p, i) {
				emptyRef = ed.PathRef(p[:i])
				break
			}
		}

		newPath := prevPath.Next()
		if !p.Equal(newPath) {
			ed.apply(MoveNode{Path: p.Clone(), NewPath: newPath})
		}
		if emptyRef != nil {
			if ep := emptyRef.Unref(); ep != nil {
				ed.apply(RemoveNode{Path: ep, Node: mustGet(ed.doc, ep)})
			}
		}

		if ed.isEmptyElement(prev) {
			ed.apply(RemoveNode{Path: prevPath, Node: prev})
			return
		}
		ed.apply(MergeNode{Path: newPath, Position: len(prev.Children), Block: el.Block})
	})
	return true
}

// singleChildChain reports whether every ancestor of p from depth i down has one child.
func (ed *Editor) singleChildChain(p Path, i int) bool {
	for j := i; j < len(p); j++ {
		children, ok := ed.doc.ChildrenAt(p[:j])
		if !ok || len(children) != 1 {
			return false
		}
	}
	return true
}

func (ed *Editor) isEmptyElement(el *Element) bool {
	if ed.IsVoid(el) {
		return false
	}
	if len(el.Children) == 0 {
		return true
	}
	t, ok := el.Children[0].(*Text)
	return len(el.Children) == 1 && ok && t.Text == ""
}

// DeleteRange removes the content of r. Nodes fully inside are removed, edge
// leaves trimmed and the two edge blocks merged.
func (ed *Editor) DeleteRange(r Range) {
	if r.IsCollapsed() {
		return
	}
	start, end := r.Edges()

	ed.WithoutNormalizing(func() {
		if start.Path.Equal(end.Path) {
			if vp, ok := ed.voidAbove(start.Path); ok {
				ed.apply(RemoveNode{Path: vp, Node: mustGet(ed.doc, vp)})
				return
			}
			t, ok := ed.doc.Leaf(start.Path)
			if !ok {
				return
			}
			ed.apply(RemoveText{Path: start.Path.Clone(), Offset: start.Offset, Text: runeSlice(t.Text, start.Offset, end.Offset)})
			return
		}

		_, startVoid := ed.voidAbove(start.Path)
		_, endVoid := ed.voidAbove(end.Path)
		_, startBlock, okS := ed.TextBlock(start.Path)
		_, endBlock, okE := ed.TextBlock(end.Path)
		acrossBlocks := okS && okE && !startBlock.Equal(endBlock)

		var between []Path
		ed.doc.Walk(func(n Node, p Path) bool {
			if isCommon(p, start.Path) || isCommon(p, end.Path) {
				if el, ok := n.(*Element); ok && ed.IsVoid(el) {
					between = append(between, p.Clone())
					return false
				}
				return true
			}
			if p.Compare(start.Path) > 0 && p.Compare(end.Path) < 0 {
				between = append(between, p.Clone())
			}
			return false
		})

		refs := make([]*PathRef, len(between))
		for i, p := range between {
			refs[i] = ed.PathRef(p)
		}
		startRef := ed.pointRef(start, backward)
		endRef := ed.pointRef(end, forward)
		var endBlockRef *PathRef
		if acrossBlocks && !startVoid && !endVoid {
			endBlockRef = ed.PathRef(endBlock)
		}

		if !startVoid {
			if t, ok := ed.doc.Leaf(start.Path); ok && start.Offset < runeLen(t.Text) {
				ed.apply(RemoveText{Path: start.Path.Clone(), Offset: start.Offset, Text: runeSlice(t.Text, start.Offset, runeLen(t.Text))})
			}
		}
		for i := len(refs) - 1; i >= 0; i-- {
			if p := refs[i].Unref(); p != nil {
				ed.apply(RemoveNode{Path: p, Node: mustGet(ed.doc, p)})
			}
		}
		if e, ok := endRef.unref(); ok && !endVoid && e.Offset > 0 {
			if t, ok := ed.doc.Leaf(e.Path); ok {
				ed.apply(RemoveText{Path: e.Path, Offset: 0, Text: runeSlice(t.Text, 0, e.Offset)})
			}
		}
		if endBlockRef != nil {
			if p := endBlockRef.Unref(); p != nil {
				ed.MergeBlock(p)
			}
		}

		if s, ok := startRef.unref(); ok && ed.validPoint(s) {
			ed.apply(SetSelection{Old: ed.Selection(), New: &Range{Anchor: s, Focus: s.Clone()}})
		}
	})
}

// DeleteBackward removes one character before the cursor, or the selected content.
// At the start of a block the block is merged into the previous one.
func (ed *Editor) DeleteBackward() {
	if ed.selection == nil {
		return
	}
	ed.WithoutNormalizing(func() {
		sel := *ed.selection
		if !sel.IsCollapsed() {
			ed.DeleteRange(sel)
			return
		}
		at := sel.Anchor
		if vp, ok := ed.voidAbove(at.Path); ok {
			ed.apply(RemoveNode{Path: vp, Node: mustGet(ed.doc, vp)})
			return
		}
		_, bp, ok := ed.TextBlock(at.Path)
		if !ok {
			return
		}
		if off := ed.blockOffset(bp, at); off > 0 {
			ed.DeleteRange(Range{Anchor: ed.pointAtBlockOffset(bp, off-1), Focus: at})
			return
		}

		prevPath, ok := ed.previousTextBlock(bp)
		if !ok {
			return
		}
		prev, _ := ed.doc.Element(prevPath)
		if ed.IsVoid(prev) {
			cur, _ := ed.doc.Element(bp)
			if ed.isEmptyElement(cur) {
				ed.apply(RemoveNode{Path: bp, Node: cur})
				end := ed.End(prevPath)
				ed.apply(SetSelection{Old: ed.Selection(), New: &Range{Anchor: end, Focus: end.Clone()}})
				return
			}
			ed.apply(RemoveNode{Path: prevPath, Node: prev})
			return
		}
		ed.MergeBlock(bp)
	})
}

// WrapNode wraps the node at p into a new element of block b.
func (ed *Editor) WrapNode(p Path, b Block) (Path, bool) {
	if len(p) == 0 {
		return nil, false
	}
	if _, ok := ed.doc.Get(p); !ok {
		return nil, false
	}
	wrapper := p.Next()
	ed.WithoutNormalizing(func() {
		ed.apply(InsertNode{Path: wrapper, Node: &Element{Block: edtypes.CloneBlock(b)}})
		ed.apply(MoveNode{Path: p.Clone(), NewPath: wrapper.Child(0)})
	})
	return p.Clone(), true
}

// MergeNodes appends the children of the element at p to its previous sibling
// and removes it.
func (ed *Editor) MergeNodes(p Path) bool {
	if len(p) == 0 || p.Last() == 0 {
		return false
	}
	el, ok := ed.doc.Element(p)
	if !ok {
		return false
	}
	prev, ok := ed.doc.Element(p.Previous())
	if !ok {
		return false
	}
	ed.Apply(MergeNode{Path: p.Clone(), Position: len(prev.Children), Block: el.Block})
	return true
}
