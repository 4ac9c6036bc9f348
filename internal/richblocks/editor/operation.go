package editor

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

var (
	ErrInvalidPath   = errors.New("invalid path")
	ErrInvalidOffset = errors.New("invalid offset")
	ErrNodeMismatch  = errors.New("node kinds do not match")
)

// Operation is a primitive, invertible change of the document or of the selection.
// Apply never modifies the input document: changed nodes are copied along the path.
type Operation interface {
	Kind() string
	Inverse() Operation
	Apply(doc *Document) (*Document, error)
}

// LeafProps are the attributes of a leaf other than its text.
type LeafProps struct {
	Type  string        `json:"type"`
	Marks edtypes.Marks `json:"marks"`
}

func leafProps(t *Text) LeafProps {
	return LeafProps{Type: t.Type, Marks: t.Marks}
}

type InsertNode struct {
	Path Path
	Node Node
}

type RemoveNode struct {
	Path Path
	Node Node
}

// MoveNode moves the node at Path so that it ends up at NewPath.
type MoveNode struct {
	Path    Path
	NewPath Path
}

type SetBlock struct {
	Path Path
	Old  Block
	New  Block
}

type SetLeaf struct {
	Path Path
	Old  LeafProps
	New  LeafProps
}

type InsertText struct {
	Path   Path
	Offset int
	Text   string
}

type RemoveText struct {
	Path   Path
	Offset int
	Text   string
}

// SplitNode splits the node at Path at Position. The second half gets Block
// (elements) or Leaf (texts).
type SplitNode struct {
	Path     Path
	Position int
	Block    Block
	Leaf     LeafProps
}

// MergeNode merges the node at Path into its previous sibling. Position is the
// length of the previous sibling, Block and Leaf the attributes of the merged node.
type MergeNode struct {
	Path     Path
	Position int
	Block    Block
	Leaf     LeafProps
}

type SetSelection struct {
	Old *Range
	New *Range
}

func (InsertNode) Kind() string   { return "insert_node" }
func (RemoveNode) Kind() string   { return "remove_node" }
func (MoveNode) Kind() string     { return "move_node" }
func (SetBlock) Kind() string     { return "set_node" }
func (SetLeaf) Kind() string      { return "set_leaf" }
func (InsertText) Kind() string   { return "insert_text" }
func (RemoveText) Kind() string   { return "remove_text" }
func (SplitNode) Kind() string    { return "split_node" }
func (MergeNode) Kind() string    { return "merge_node" }
func (SetSelection) Kind() string { return "set_selection" }

func (o InsertNode) Inverse() Operation { return RemoveNode(o) }
func (o RemoveNode) Inverse() Operation { return InsertNode(o) }

func (o MoveNode) Inverse() Operation {
	if o.Path.Equal(o.NewPath) {
		return o
	}
	if o.Path.IsSibling(o.NewPath) {
		return MoveNode{Path: o.NewPath, NewPath: o.Path}
	}
	// both paths are taken in the tree after the move
	inversePath := transformPath(o.Path, o, forward)
	inverseNewPath := transformPath(o.Path.Next(), o, forward)
	return MoveNode{Path: inversePath, NewPath: inverseNewPath}
}

func (o SetBlock) Inverse() Operation { return SetBlock{Path: o.Path, Old: o.New, New: o.Old} }
func (o SetLeaf) Inverse() Operation  { return SetLeaf{Path: o.Path, Old: o.New, New: o.Old} }
func (o InsertText) Inverse() Operation {
	return RemoveText(o)
}
func (o RemoveText) Inverse() Operation {
	return InsertText(o)
}

func (o SplitNode) Inverse() Operation {
	return MergeNode{Path: o.Path.Next(), Position: o.Position, Block: o.Block, Leaf: o.Leaf}
}

func (o MergeNode) Inverse() Operation {
	return SplitNode{Path: o.Path.Previous(), Position: o.Position, Block: o.Block, Leaf: o.Leaf}
}

func (o SetSelection) Inverse() Operation { return SetSelection{Old: o.New, New: o.Old} }

func (o InsertNode) Apply(doc *Document) (*Document, error) {
	if len(o.Path) == 0 {
		return nil, ErrInvalidPath
	}
	return withChildren(doc, o.Path.Parent(), func(ch []Node) ([]Node, error) {
		i := o.Path.Last()
		if i < 0 || i > len(ch) {
			return nil, fmt.Errorf("insert at %v: %w", o.Path, ErrInvalidPath)
		}
		return slices.Insert(ch, i, o.Node), nil
	})
}

func (o RemoveNode) Apply(doc *Document) (*Document, error) {
	if len(o.Path) == 0 {
		return nil, ErrInvalidPath
	}
	return withChildren(doc, o.Path.Parent(), func(ch []Node) ([]Node, error) {
		i := o.Path.Last()
		if i < 0 || i >= len(ch) {
			return nil, fmt.Errorf("remove at %v: %w", o.Path, ErrInvalidPath)
		}
		return slices.Delete(ch, i, i+1), nil
	})
}

func (o MoveNode) Apply(doc *Document) (*Document, error) {
	if o.Path.Equal(o.NewPath) {
		return doc, nil
	}
	if o.Path.IsAncestorOf(o.NewPath) {
		return nil, fmt.Errorf("move %v into itself: %w", o.Path, ErrInvalidPath)
	}
	n, ok := doc.Get(o.Path)
	if !ok {
		return nil, fmt.Errorf("move from %v: %w", o.Path, ErrInvalidPath)
	}
	res, err := RemoveNode{Path: o.Path}.Apply(doc)
	if err != nil {
		return nil, err
	}
	return InsertNode{Path: transformPath(o.Path, o, forward), Node: n}.Apply(res)
}

func (o SetBlock) Apply(doc *Document) (*Document, error) {
	return withNode(doc, o.Path, func(n Node) (Node, error) {
		el, ok := n.(*Element)
		if !ok {
			return nil, fmt.Errorf("set block on leaf %v: %w", o.Path, ErrNodeMismatch)
		}
		return el.WithBlock(o.New), nil
	})
}

func (o SetLeaf) Apply(doc *Document) (*Document, error) {
	return withNode(doc, o.Path, func(n Node) (Node, error) {
		t, ok := n.(*Text)
		if !ok {
			return nil, fmt.Errorf("set leaf on element %v: %w", o.Path, ErrNodeMismatch)
		}
		c := t.Clone()
		c.Type, c.Marks = o.New.Type, o.New.Marks
		return c, nil
	})
}

func (o InsertText) Apply(doc *Document) (*Document, error) {
	return withNode(doc, o.Path, func(n Node) (Node, error) {
		t, ok := n.(*Text)
		if !ok {
			return nil, fmt.Errorf("insert text into element %v: %w", o.Path, ErrNodeMismatch)
		}
		r := []rune(t.Text)
		if o.Offset < 0 || o.Offset > len(r) {
			return nil, fmt.Errorf("insert text at %v:%d: %w", o.Path, o.Offset, ErrInvalidOffset)
		}
		c := t.Clone()
		c.Text = string(r[:o.Offset]) + o.Text + string(r[o.Offset:])
		return c, nil
	})
}

func (o RemoveText) Apply(doc *Document) (*Document, error) {
	return withNode(doc, o.Path, func(n Node) (Node, error) {
		t, ok := n.(*Text)
		if !ok {
			return nil, fmt.Errorf("remove text from element %v: %w", o.Path, ErrNodeMismatch)
		}
		r := []rune(t.Text)
		end := o.Offset + runeLen(o.Text)
		if o.Offset < 0 || end > len(r) {
			return nil, fmt.Errorf("remove text at %v:%d: %w", o.Path, o.Offset, ErrInvalidOffset)
		}
		c := t.Clone()
		c.Text = string(r[:o.Offset]) + string(r[end:])
		return c, nil
	})
}

func (o SplitNode) Apply(doc *Document) (*Document, error) {
	if len(o.Path) == 0 {
		return nil, ErrInvalidPath
	}
	return withChildren(doc, o.Path.Parent(), func(ch []Node) ([]Node, error) {
		i := o.Path.Last()
		if i < 0 || i >= len(ch) {
			return nil, fmt.Errorf("split at %v: %w", o.Path, ErrInvalidPath)
		}
		var before, after Node
		switch n := ch[i].(type) {
		case *Text:
			r := []rune(n.Text)
			if o.Position < 0 || o.Position > len(r) {
				return nil, fmt.Errorf("split text at %v:%d: %w", o.Path, o.Position, ErrInvalidOffset)
			}
			b := n.Clone()
			b.Text = string(r[:o.Position])
			before = b
			after = &Text{Type: o.Leaf.Type, Marks: o.Leaf.Marks, Text: string(r[o.Position:])}
		case *Element:
			if o.Position < 0 || o.Position > len(n.Children) {
				return nil, fmt.Errorf("split element at %v:%d: %w", o.Path, o.Position, ErrInvalidOffset)
			}
			before = n.WithChildren(slices.Clone(n.Children[:o.Position]))
			after = &Element{Block: o.Block, Children: slices.Clone(n.Children[o.Position:])}
		}
		ch[i] = before
		return slices.Insert(ch, i+1, after), nil
	})
}

func (o MergeNode) Apply(doc *Document) (*Document, error) {
	if len(o.Path) == 0 {
		return nil, ErrInvalidPath
	}
	return withChildren(doc, o.Path.Parent(), func(ch []Node) ([]Node, error) {
		i := o.Path.Last()
		if i < 1 || i >= len(ch) {
			return nil, fmt.Errorf("merge at %v: %w", o.Path, ErrInvalidPath)
		}
		switch n := ch[i].(type) {
		case *Text:
			prev, ok := ch[i-1].(*Text)
			if !ok {
				return nil, fmt.Errorf("merge at %v: %w", o.Path, ErrNodeMismatch)
			}
			m := prev.Clone()
			m.Text += n.Text
			ch[i-1] = m
		case *Element:
			prev, ok := ch[i-1].(*Element)
			if !ok {
				return nil, fmt.Errorf("merge at %v: %w", o.Path, ErrNodeMismatch)
			}
			children := make([]Node, 0, len(prev.Children)+len(n.Children))
			children = append(children, prev.Children...)
			children = append(children, n.Children...)
			ch[i-1] = prev.WithChildren(children)
		}
		return slices.Delete(ch, i, i+1), nil
	})
}

// SetSelection does not touch the document.
func (o SetSelection) Apply(doc *Document) (*Document, error) {
	return doc, nil
}

// updateChildren copies the spine down to p and replaces the child list found there.
func updateChildren(children []Node, p Path, fn func([]Node) ([]Node, error)) ([]Node, error) {
	if len(p) == 0 {
		return fn(slices.Clone(children))
	}
	i := p[0]
	if i < 0 || i >= len(children) {
		return nil, ErrInvalidPath
	}
	el, ok := children[i].(*Element)
	if !ok {
		return nil, ErrInvalidPath
	}
	nc, err := updateChildren(el.Children, p[1:], fn)
	if err != nil {
		return nil, err
	}
	res := slices.Clone(children)
	res[i] = el.WithChildren(nc)
	return res, nil
}

func withChildren(doc *Document, parent Path, fn func([]Node) ([]Node, error)) (*Document, error) {
	nc, err := updateChildren(doc.Children, parent, fn)
	if err != nil {
		return nil, err
	}
	return &Document{Children: nc}, nil
}

func withNode(doc *Document, p Path, fn func(Node) (Node, error)) (*Document, error) {
	if len(p) == 0 {
		return nil, ErrInvalidPath
	}
	return withChildren(doc, p.Parent(), func(ch []Node) ([]Node, error) {
		i := p.Last()
		if i < 0 || i >= len(ch) {
			return nil, fmt.Errorf("node at %v: %w", p, ErrInvalidPath)
		}
		n, err := fn(ch[i])
		if err != nil {
			return nil, err
		}
		ch[i] = n
		return ch, nil
	})
}

func runeLen(s string) int {
	return len([]rune(s))
}

func runeSlice(s string, from, to int) string {
	r := []rune(s)
	from = max(0, min(from, len(r)))
	to = max(from, min(to, len(r)))
	return string(r[from:to])
}
