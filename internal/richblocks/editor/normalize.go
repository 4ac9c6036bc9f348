package editor

import (
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

// Normalize returns doc repaired to the document invariants with the default
// plugin stack. A valid document comes back unchanged.
func Normalize(doc *Document, opts ...Option) *Document {
	return New(doc, opts...).Document()
}

// baseNormalizeNode fixes at most one violation in the children of e. Every fix
// dirties the parent again, so the loop comes back until nothing is left.
func (ed *Editor) baseNormalizeNode(e NodeEntry) {
	if _, ok := e.Node.(*Text); ok {
		return
	}

	root := len(e.Path) == 0
	var el *Element
	var children []Node
	if root {
		children = ed.doc.Children
	} else {
		var ok bool
		if el, ok = e.Node.(*Element); !ok {
			return
		}
		children = el.Children
	}

	if len(children) == 0 {
		if root {
			ed.apply(InsertNode{Path: Path{0}, Node: edtypes.NewParagraph()})
		} else {
			ed.apply(InsertNode{Path: e.Path.Child(0), Node: edtypes.NewText("")})
		}
		return
	}

	if !root && ed.IsVoid(el) {
		ed.normalizeVoid(el, e.Path)
		return
	}

	if root || el.Type() == edtypes.TypeList {
		for i, c := range children {
			if ed.normalizeBlockChild(root, children, c, e.Path, i) {
				return
			}
		}
		return
	}

	for i, c := range children {
		if ed.normalizeInlineChild(el, children, c, e.Path.Child(i), i) {
			return
		}
	}
}

// normalizeBlockChild handles children of the root and of lists.
func (ed *Editor) normalizeBlockChild(root bool, children []Node, c Node, parent Path, i int) bool {
	cp := parent.Child(i)
	if ed.isInlineNode(c) {
		var wrapper Block = &edtypes.Paragraph{}
		if !root {
			wrapper = &edtypes.ListItem{}
		}
		ed.wrapRun(children, parent, i, wrapper)
		return true
	}

	child := c.(*Element)
	switch t := child.Type(); {
	case root && t == edtypes.TypeListItem:
		// a list item outside a list becomes a paragraph
		ed.apply(SetBlock{Path: cp, Old: child.Block, New: &edtypes.Paragraph{Typography: typographyOf(child.Block)}})
		return true
	case !root && t != edtypes.TypeListItem && t != edtypes.TypeList:
		ed.apply(SetBlock{Path: cp, Old: child.Block, New: &edtypes.ListItem{Typography: typographyOf(child.Block)}})
		return true
	}
	return false
}

// wrapRun wraps the run of inline children starting at i into a new block.
func (ed *Editor) wrapRun(children []Node, parent Path, i int, b Block) {
	j := i
	for j < len(children) && ed.isInlineNode(children[j]) {
		j++
	}
	run := make([]Node, j-i)
	copy(run, children[i:j])

	at := parent.Child(i)
	ed.apply(InsertNode{Path: at, Node: &Element{Block: b, Children: run}})
	for k := i; k < j; k++ {
		ed.apply(RemoveNode{Path: at.Next(), Node: children[k]})
	}
}

// normalizeInlineChild handles children of text blocks and inline elements.
func (ed *Editor) normalizeInlineChild(parent *Element, children []Node, c Node, cp Path, i int) bool {
	switch n := c.(type) {
	case *Element:
		if !ed.IsInline(n) {
			if ed.IsVoid(n) || n.Type() == edtypes.TypeList {
				// the node is moved out of its parent, its content stays intact
				ed.apply(MoveNode{Path: cp, NewPath: cp.Parent().Next()})
				return true
			}
			ed.unwrap(cp, len(n.Children))
			return true
		}
		if parent.Type() == edtypes.TypeLink && n.Type() == edtypes.TypeLink {
			ed.unwrap(cp, len(n.Children))
			return true
		}
		if n.Type() == edtypes.TypeLink && edtypes.NodeString(n) == "" && onlyTexts(n.Children) {
			ed.apply(RemoveNode{Path: cp, Node: n})
			return true
		}
		if i == 0 || !isText(children[i-1]) {
			ed.apply(InsertNode{Path: cp, Node: edtypes.NewText("")})
			return true
		}
		if i == len(children)-1 {
			ed.apply(InsertNode{Path: cp.Next(), Node: edtypes.NewText("")})
			return true
		}

	case *Text:
		if i == 0 {
			return false
		}
		prev, ok := children[i-1].(*Text)
		if !ok {
			return false
		}
		switch {
		case leafProps(prev) == leafProps(n):
			ed.apply(MergeNode{Path: cp, Position: runeLen(prev.Text), Leaf: leafProps(n)})
			return true
		case prev.Text == "":
			ed.apply(RemoveNode{Path: cp.Previous(), Node: prev})
			return true
		case n.Text == "":
			ed.apply(RemoveNode{Path: cp, Node: n})
			return true
		}
	}
	return false
}

// normalizeVoid keeps exactly one empty leaf in a void element.
func (ed *Editor) normalizeVoid(el *Element, p Path) {
	children := el.Children
	if len(children) > 1 {
		last := len(children) - 1
		ed.apply(RemoveNode{Path: p.Child(last), Node: children[last]})
		return
	}
	switch c := children[0].(type) {
	case *Text:
		if c.Text != "" {
			ed.apply(RemoveText{Path: p.Child(0), Offset: 0, Text: c.Text})
		}
	case *Element:
		ed.apply(RemoveNode{Path: p.Child(0), Node: c})
	}
}

// unwrap lifts the children of the element at p into its parent and removes it.
func (ed *Editor) unwrap(p Path, n int) {
	parent, idx := p.Parent(), p.Last()
	for k := 0; k < n; k++ {
		at := parent.Child(idx + k)
		ed.apply(MoveNode{Path: at.Child(0), NewPath: at})
	}
	el, _ := ed.doc.Get(parent.Child(idx + n))
	ed.apply(RemoveNode{Path: parent.Child(idx + n), Node: el})
}

func (ed *Editor) isInlineNode(n Node) bool {
	switch v := n.(type) {
	case *Text:
		return true
	case *Element:
		return ed.IsInline(v)
	}
	return false
}

func isText(n Node) bool {
	_, ok := n.(*Text)
	return ok
}

func onlyTexts(nodes []Node) bool {
	for _, n := range nodes {
		if !isText(n) {
			return false
		}
	}
	return true
}

func typographyOf(b Block) edtypes.Typography {
	if s, ok := b.(edtypes.Styled); ok {
		return *edtypes.CloneBlock(s).(edtypes.Styled).Typo()
	}
	return edtypes.Typography{}
}
