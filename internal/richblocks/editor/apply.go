package editor

import (
	"slices"
	"strconv"
	"strings"
)

// PathRef follows a path through later operations until it is released.
type PathRef struct {
	ed   *Editor
	path Path
	aff  affinity
}

// PathRef starts tracking p.
func (ed *Editor) PathRef(p Path) *PathRef {
	r := &PathRef{ed: ed, path: p.Clone(), aff: forward}
	ed.pathRefs[r] = struct{}{}
	return r
}

// Current returns the tracked path or nil when the node was removed.
func (r *PathRef) Current() Path {
	return r.path
}

// Unref stops tracking and returns the final path.
func (r *PathRef) Unref() Path {
	delete(r.ed.pathRefs, r)
	return r.path
}

type pointRef struct {
	ed    *Editor
	point *Point
	aff   affinity
}

func (ed *Editor) pointRef(pt Point, aff affinity) *pointRef {
	c := pt.Clone()
	r := &pointRef{ed: ed, point: &c, aff: aff}
	ed.pointRefs[r] = struct{}{}
	return r
}

func (r *pointRef) current() (Point, bool) {
	if r.point == nil {
		return Point{}, false
	}
	return *r.point, true
}

func (r *pointRef) unref() (Point, bool) {
	delete(r.ed.pointRefs, r)
	return r.current()
}

// apply runs op through the ApplyObserver chain. The innermost link is baseApply.
func (ed *Editor) apply(op Operation) {
	ed.applyAt(len(ed.plugins)-1, op)
}

func (ed *Editor) applyAt(i int, op Operation) {
	for ; i >= 0; i-- {
		if ao, ok := ed.plugins[i].(ApplyObserver); ok {
			next := i - 1
			ao.Apply(ed, op, func(op Operation) { ed.applyAt(next, op) })
			return
		}
	}
	ed.baseApply(op)
}

func (ed *Editor) baseApply(op Operation) {
	if sel, ok := op.(SetSelection); ok {
		if sel.New == nil {
			ed.selection = nil
		} else {
			r := sel.New.Clone()
			ed.selection = &r
		}
		ed.marks = nil
		ed.history.record(op)
		return
	}

	doc, err := op.Apply(ed.doc)
	if err != nil {
		ed.logger.Error("apply operation", "kind", op.Kind(), "err", err)
		return
	}
	ed.doc = doc

	for r := range ed.pathRefs {
		r.path = transformPath(r.path, op, r.aff)
	}
	for r := range ed.pointRefs {
		if r.point == nil {
			continue
		}
		if pt, ok := transformPoint(*r.point, op, r.aff); ok {
			r.point = &pt
		} else {
			r.point = nil
		}
	}

	old := ed.dirty
	ed.dirty = nil
	clear(ed.dirtyKeys)
	for _, p := range old {
		if np := transformPath(p, op, forward); np != nil {
			ed.addDirty(np)
		}
	}
	for _, p := range dirtyPaths(op) {
		ed.addDirty(p)
	}

	ed.transformSelection(op)
	ed.history.record(op)
}

func (ed *Editor) transformSelection(op Operation) {
	if ed.selection == nil {
		return
	}
	sel := ed.selection.Clone()
	for _, pt := range []*Point{&sel.Anchor, &sel.Focus} {
		np, ok := transformPoint(*pt, op, forward)
		if !ok {
			rm, isRemove := op.(RemoveNode)
			if !isRemove {
				ed.selection = nil
				return
			}
			np, ok = ed.nearestPoint(rm.Path)
			if !ok {
				ed.selection = nil
				return
			}
		}
		*pt = np
	}
	ed.selection = &sel
}

// nearestPoint picks a position next to a removed node: the end of the previous
// leaf or the start of the next one, whichever shares more ancestors with it.
func (ed *Editor) nearestPoint(removed Path) (Point, bool) {
	var prev, next Path
	for _, lp := range ed.doc.Leaves(nil) {
		if lp.Compare(removed) == -1 {
			prev = lp
			continue
		}
		next = lp
		break
	}

	preferNext := false
	if prev != nil && next != nil {
		if next.Equal(removed) {
			preferNext = next.Last() == 0
		} else {
			preferNext = len(commonPath(prev, removed)) < len(commonPath(next, removed))
		}
	}

	switch {
	case prev != nil && !preferNext:
		t, _ := ed.doc.Leaf(prev)
		return Point{Path: prev, Offset: runeLen(t.Text)}, true
	case next != nil:
		return Point{Path: next, Offset: 0}, true
	}
	return Point{}, false
}

func pathKey(p Path) string {
	var sb strings.Builder
	for i, v := range p {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

func (ed *Editor) addDirty(p Path) {
	key := pathKey(p)
	if _, ok := ed.dirtyKeys[key]; ok {
		return
	}
	ed.dirtyKeys[key] = struct{}{}
	ed.dirty = append(ed.dirty, p.Clone())
}

func (ed *Editor) popDirty() Path {
	p := ed.dirty[len(ed.dirty)-1]
	ed.dirty = ed.dirty[:len(ed.dirty)-1]
	delete(ed.dirtyKeys, pathKey(p))
	return p
}

// normalizeAll marks every node dirty and normalizes the whole document.
func (ed *Editor) normalizeAll() {
	ed.addDirty(Path{})
	ed.doc.Walk(func(_ Node, p Path) bool {
		ed.addDirty(p)
		return true
	})
	ed.WithoutNormalizing(func() {})
}

func (ed *Editor) normalize() {
	if ed.suspended > 0 || len(ed.dirty) == 0 {
		return
	}
	ed.suspended++
	defer func() { ed.suspended-- }()

	// empty elements first: parent rules expect children to be present
	for _, p := range slices.Clone(ed.dirty) {
		if children, ok := ed.doc.ChildrenAt(p); ok && len(children) == 0 {
			ed.normalizeNode(ed.entry(p))
		}
	}

	limit := max(len(ed.dirty)*42, 1000)
	for i := 0; len(ed.dirty) > 0; i++ {
		if i > limit {
			ed.logger.Warn("normalization did not converge", "iterations", i, "dirty", len(ed.dirty))
			ed.dirty = nil
			clear(ed.dirtyKeys)
			return
		}
		p := ed.popDirty()
		if len(p) > 0 {
			if _, ok := ed.doc.Get(p); !ok {
				continue
			}
		}
		ed.normalizeNode(ed.entry(p))
	}
}

// NodeEntry is a node with its path. The root has a nil Node and an empty Path.
type NodeEntry struct {
	Node Node
	Path Path
}

func (ed *Editor) entry(p Path) NodeEntry {
	if len(p) == 0 {
		return NodeEntry{Path: Path{}}
	}
	n, _ := ed.doc.Get(p)
	return NodeEntry{Node: n, Path: p}
}

func (ed *Editor) normalizeNode(e NodeEntry) {
	ed.normalizeAt(len(ed.plugins)-1, e)
}

func (ed *Editor) normalizeAt(i int, e NodeEntry) {
	for ; i >= 0; i-- {
		if nn, ok := ed.plugins[i].(NodeNormalizer); ok {
			next := i - 1
			nn.NormalizeNode(ed, e, func() { ed.normalizeAt(next, e) })
			return
		}
	}
	ed.baseNormalizeNode(e)
}
