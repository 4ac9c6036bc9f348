package edtypes

import "slices"

// Path addresses a node by child indexes from the root.
type Path []int

// Point is a position inside a leaf. Offset counts runes.
type Point struct {
	Path   Path `json:"path"`
	Offset int  `json:"offset"`
}

// Range is a selection. Anchor may come after Focus.
type Range struct {
	Anchor Point `json:"anchor"`
	Focus  Point `json:"focus"`
}

func (p Path) Clone() Path {
	return slices.Clone(p)
}

func (p Path) Equal(o Path) bool {
	return slices.Equal(p, o)
}

// Parent returns the path of the parent node. The root has no parent.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

// Last returns the index of the node in its parent.
func (p Path) Last() int {
	return p[len(p)-1]
}

func (p Path) Child(i int) Path {
	res := make(Path, len(p)+1)
	copy(res, p)
	res[len(p)] = i
	return res
}

func (p Path) Next() Path {
	res := p.Clone()
	res[len(res)-1]++
	return res
}

func (p Path) Previous() Path {
	res := p.Clone()
	res[len(res)-1]--
	return res
}

// Compare orders paths in document order. Ancestors compare equal to descendants.
func (p Path) Compare(o Path) int {
	n := min(len(p), len(o))
	for i := 0; i < n; i++ {
		if p[i] < o[i] {
			return -1
		}
		if p[i] > o[i] {
			return 1
		}
	}
	return 0
}

// IsAncestorOf reports whether p is a strict ancestor of o.
func (p Path) IsAncestorOf(o Path) bool {
	return len(p) < len(o) && p.Compare(o) == 0
}

// IsSibling reports whether p and o share a parent and differ.
func (p Path) IsSibling(o Path) bool {
	if len(p) != len(o) || len(p) == 0 {
		return false
	}
	return p.Parent().Equal(o.Parent()) && p.Last() != o.Last()
}

// EndsBefore reports whether p is a preceding sibling of o or of one of o's ancestors.
func (p Path) EndsBefore(o Path) bool {
	if len(p) == 0 || len(o) < len(p) {
		return false
	}
	i := len(p) - 1
	return slices.Equal(p[:i], o[:i]) && p[i] < o[i]
}

// IsBefore reports whether p comes strictly before o in document order.
func (p Path) IsBefore(o Path) bool {
	return p.Compare(o) == -1
}

// Levels returns every ancestor of p from the root down, followed by p.
func (p Path) Levels() []Path {
	res := make([]Path, 0, len(p)+1)
	for i := 0; i <= len(p); i++ {
		res = append(res, p[:i:i])
	}
	return res
}

// Ancestors returns the strict ancestors of p from the root down.
func (p Path) Ancestors() []Path {
	l := p.Levels()
	return l[:len(l)-1]
}

func (pt Point) Equal(o Point) bool {
	return pt.Offset == o.Offset && pt.Path.Equal(o.Path)
}

// Compare orders points in document order.
func (pt Point) Compare(o Point) int {
	if c := pt.Path.Compare(o.Path); c != 0 {
		return c
	}
	switch {
	case pt.Offset < o.Offset:
		return -1
	case pt.Offset > o.Offset:
		return 1
	}
	return 0
}

func (pt Point) Clone() Point {
	return Point{Path: pt.Path.Clone(), Offset: pt.Offset}
}

// Collapsed returns an empty range at pt.
func Collapsed(pt Point) Range {
	return Range{Anchor: pt.Clone(), Focus: pt.Clone()}
}

func (r Range) IsCollapsed() bool {
	return r.Anchor.Equal(r.Focus)
}

// IsBackward reports whether the focus comes before the anchor.
func (r Range) IsBackward() bool {
	return r.Anchor.Compare(r.Focus) > 0
}

// Edges returns the start and end of the range in document order.
func (r Range) Edges() (Point, Point) {
	if r.IsBackward() {
		return r.Focus, r.Anchor
	}
	return r.Anchor, r.Focus
}

func (r Range) Start() Point {
	s, _ := r.Edges()
	return s
}

func (r Range) End() Point {
	_, e := r.Edges()
	return e
}

func (r Range) Clone() Range {
	return Range{Anchor: r.Anchor.Clone(), Focus: r.Focus.Clone()}
}
