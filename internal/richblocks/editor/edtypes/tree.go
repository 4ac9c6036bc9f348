package edtypes

// Get returns the node at path. The empty path has no node.
func (d *Document) Get(p Path) (Node, bool) {
	if d == nil || len(p) == 0 {
		return nil, false
	}
	children := d.Children
	var n Node
	for _, i := range p {
		if i < 0 || i >= len(children) {
			return nil, false
		}
		n = children[i]
		children = Children(n)
	}
	return n, true
}

// ChildrenAt returns the child list of the root (empty path) or of the element at p.
func (d *Document) ChildrenAt(p Path) ([]Node, bool) {
	if len(p) == 0 {
		return d.Children, true
	}
	n, ok := d.Get(p)
	if !ok {
		return nil, false
	}
	el, ok := n.(*Element)
	if !ok {
		return nil, false
	}
	return el.Children, true
}

// Element returns the element at p.
func (d *Document) Element(p Path) (*Element, bool) {
	n, ok := d.Get(p)
	if !ok {
		return nil, false
	}
	el, ok := n.(*Element)
	return el, ok
}

// Leaf returns the text leaf at p.
func (d *Document) Leaf(p Path) (*Text, bool) {
	n, ok := d.Get(p)
	if !ok {
		return nil, false
	}
	t, ok := n.(*Text)
	return t, ok
}

// Walk visits every node in document order. Returning false skips the subtree.
func (d *Document) Walk(fn func(n Node, p Path) bool) {
	for i, c := range d.Children {
		walk(c, Path{i}, fn)
	}
}

func walk(n Node, p Path, fn func(Node, Path) bool) {
	if !fn(n, p) {
		return
	}
	for i, c := range Children(n) {
		walk(c, p.Child(i), fn)
	}
}

// Leaves returns the paths of all text leaves below p (p itself when it is a leaf).
func (d *Document) Leaves(p Path) []Path {
	var res []Path
	visit := func(n Node, lp Path) bool {
		if _, ok := n.(*Text); ok {
			res = append(res, lp)
		}
		return true
	}
	if len(p) == 0 {
		d.Walk(visit)
		return res
	}
	n, ok := d.Get(p)
	if !ok {
		return nil
	}
	walk(n, p.Clone(), visit)
	return res
}

// String concatenates the text below p. The empty path returns the whole document.
func (d *Document) String(p Path) string {
	if len(p) == 0 {
		var s string
		for _, c := range d.Children {
			s += NodeString(c)
		}
		return s
	}
	n, ok := d.Get(p)
	if !ok {
		return ""
	}
	return NodeString(n)
}
