package edtypes

import "strings"

// TextType is the type every normalized leaf carries.
const TextType = "text"

// Node is either *Text or *Element.
type Node interface {
	node()
}

// Text is a leaf. An empty Type marks a bare leaf that the normalizer has not seen yet.
type Text struct {
	Type  string
	Text  string
	Marks Marks
}

// Element is a structural node. Block holds the type and its attributes.
type Element struct {
	Block    Block
	Children []Node
}

func (*Text) node()    {}
func (*Element) node() {}

// NewText returns a typed leaf.
func NewText(s string, marks ...Mark) *Text {
	t := &Text{Type: TextType, Text: s}
	for _, m := range marks {
		t.Marks = t.Marks.With(m)
	}
	return t
}

// NewElement returns an element of the given block. An element without children
// gets an empty leaf.
func NewElement(b Block, children ...Node) *Element {
	if len(children) == 0 {
		children = []Node{NewText("")}
	}
	return &Element{Block: b, Children: children}
}

func NewParagraph(children ...Node) *Element {
	return NewElement(&Paragraph{}, children...)
}

// Type returns the block type of the element.
func (e *Element) Type() BlockType {
	if e == nil || e.Block == nil {
		return TypeParagraph
	}
	return e.Block.BlockType()
}

// WithChildren returns a shallow copy of e with new children.
func (e *Element) WithChildren(children []Node) *Element {
	return &Element{Block: e.Block, Children: children}
}

// WithBlock returns a shallow copy of e with a new block.
func (e *Element) WithBlock(b Block) *Element {
	return &Element{Block: b, Children: e.Children}
}

// Clone returns a copy of t.
func (t *Text) Clone() *Text {
	c := *t
	return &c
}

// Children returns the child list of an element or nil for leaves.
func Children(n Node) []Node {
	if el, ok := n.(*Element); ok {
		return el.Children
	}
	return nil
}

// NodeString concatenates every leaf below n.
func NodeString(n Node) string {
	switch v := n.(type) {
	case *Text:
		return v.Text
	case *Element:
		var sb strings.Builder
		for _, c := range v.Children {
			sb.WriteString(NodeString(c))
		}
		return sb.String()
	}
	return ""
}

// DeepCopy clones a subtree, including block attributes.
func DeepCopy(n Node) Node {
	switch v := n.(type) {
	case *Text:
		return v.Clone()
	case *Element:
		children := make([]Node, len(v.Children))
		for i, c := range v.Children {
			children[i] = DeepCopy(c)
		}
		return &Element{Block: CloneBlock(v.Block), Children: children}
	}
	return nil
}
