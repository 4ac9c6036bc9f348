package editor

// affinity decides where a position sitting exactly on a split or insertion goes.
type affinity int

const (
	forward affinity = iota
	backward
	inward
)

// transformPath returns where path ends up after op. Nil means the node was removed.
func transformPath(path Path, op Operation, aff affinity) Path {
	if path == nil {
		return nil
	}
	p := path.Clone()
	if len(p) == 0 {
		return p
	}

	switch o := op.(type) {
	case InsertNode:
		if o.Path.Equal(p) || o.Path.EndsBefore(p) || o.Path.IsAncestorOf(p) {
			p[len(o.Path)-1]++
		}

	case RemoveNode:
		if o.Path.Equal(p) || o.Path.IsAncestorOf(p) {
			return nil
		}
		if o.Path.EndsBefore(p) {
			p[len(o.Path)-1]--
		}

	case MergeNode:
		if o.Path.Equal(p) || o.Path.EndsBefore(p) {
			p[len(o.Path)-1]--
		} else if o.Path.IsAncestorOf(p) {
			p[len(o.Path)-1]--
			p[len(o.Path)] += o.Position
		}

	case SplitNode:
		switch {
		case o.Path.Equal(p):
			switch aff {
			case forward:
				p[len(p)-1]++
			case backward:
			default:
				return nil
			}
		case o.Path.EndsBefore(p):
			p[len(o.Path)-1]++
		case o.Path.IsAncestorOf(p) && path[len(o.Path)] >= o.Position:
			p[len(o.Path)-1]++
			p[len(o.Path)] -= o.Position
		}

	case MoveNode:
		from, to := o.Path, o.NewPath
		if from.Equal(to) {
			return p
		}
		if from.IsAncestorOf(p) || from.Equal(p) {
			res := to.Clone()
			if from.EndsBefore(to) && len(from) < len(to) {
				res[len(from)-1]--
			}
			return append(res, p[len(from):]...)
		}
		switch {
		case from.IsSibling(to) && (to.IsAncestorOf(p) || to.Equal(p)):
			if from.EndsBefore(p) {
				p[len(from)-1]--
			} else {
				p[len(from)-1]++
			}
		case to.EndsBefore(p) || to.Equal(p) || to.IsAncestorOf(p):
			if from.EndsBefore(p) {
				p[len(from)-1]--
			}
			p[len(to)-1]++
		case from.EndsBefore(p):
			if to.Equal(p) {
				p[len(to)-1]++
			}
			p[len(from)-1]--
		}
	}
	return p
}

// transformPoint returns where pt ends up after op. False means the leaf was removed.
func transformPoint(pt Point, op Operation, aff affinity) (Point, bool) {
	p := pt.Clone()
	switch o := op.(type) {
	case InsertNode, MoveNode:
		p.Path = transformPath(p.Path, op, aff)

	case InsertText:
		if o.Path.Equal(p.Path) && (o.Offset < p.Offset || (o.Offset == p.Offset && aff == forward)) {
			p.Offset += runeLen(o.Text)
		}

	case MergeNode:
		if o.Path.Equal(p.Path) {
			p.Offset += o.Position
		}
		p.Path = transformPath(p.Path, op, aff)

	case RemoveText:
		if o.Path.Equal(p.Path) && o.Offset <= p.Offset {
			p.Offset -= min(p.Offset-o.Offset, runeLen(o.Text))
		}

	case RemoveNode:
		if o.Path.Equal(p.Path) || o.Path.IsAncestorOf(p.Path) {
			return Point{}, false
		}
		p.Path = transformPath(p.Path, op, aff)

	case SplitNode:
		if o.Path.Equal(p.Path) {
			if o.Position == p.Offset && aff == inward {
				return Point{}, false
			}
			if o.Position < p.Offset || (o.Position == p.Offset && aff == forward) {
				p.Offset -= o.Position
				p.Path = transformPath(p.Path, op, forward)
			}
		} else {
			p.Path = transformPath(p.Path, op, aff)
		}
	}
	if p.Path == nil {
		return Point{}, false
	}
	return p, true
}

// dirtyPaths lists the paths op may have left unnormalized.
func dirtyPaths(op Operation) []Path {
	switch o := op.(type) {
	case InsertText:
		return o.Path.Levels()
	case RemoveText:
		return o.Path.Levels()
	case SetBlock:
		return o.Path.Levels()
	case SetLeaf:
		return o.Path.Levels()

	case InsertNode:
		res := o.Path.Levels()
		if el, ok := o.Node.(*Element); ok {
			res = append(res, descendantPaths(el, o.Path)...)
		}
		return res

	case MergeNode:
		return append(o.Path.Ancestors(), o.Path.Previous())

	case MoveNode:
		if o.Path.Equal(o.NewPath) {
			return nil
		}
		var oldAncestors, newAncestors []Path
		for _, a := range o.Path.Ancestors() {
			oldAncestors = append(oldAncestors, transformPath(a, op, forward))
		}
		for _, a := range o.NewPath.Ancestors() {
			newAncestors = append(newAncestors, transformPath(a, op, forward))
		}
		newParent := newAncestors[len(newAncestors)-1]
		res := append(oldAncestors, newAncestors...)
		return append(res, newParent.Child(o.NewPath.Last()))

	case RemoveNode:
		return o.Path.Ancestors()

	case SplitNode:
		return append(o.Path.Levels(), o.Path.Next())
	}
	return nil
}

func descendantPaths(el *Element, base Path) []Path {
	var res []Path
	for i, c := range el.Children {
		p := base.Child(i)
		res = append(res, p)
		if ce, ok := c.(*Element); ok {
			res = append(res, descendantPaths(ce, p)...)
		}
	}
	return res
}

// commonPath returns the deepest path that is an ancestor of both or equal to both.
func commonPath(a, b Path) Path {
	var res Path
	for i := 0; i < len(a) && i < len(b) && a[i] == b[i]; i++ {
		res = append(res, a[i])
	}
	return res
}

// isCommon reports whether p is o or one of its ancestors.
func isCommon(p, o Path) bool {
	return p.Equal(o) || p.IsAncestorOf(o)
}
