package editor

import "github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"

type DragDirection string

const (
	DragUpward   DragDirection = "upward"
	DragDownward DragDirection = "downward"
)

// Draggable reports whether the element at p can be reordered by dragging.
// Only top-level blocks qualify; links, list items and nested lists never do.
func Draggable(doc *Document, p Path) bool {
	if len(p) != 1 {
		return false
	}
	el, ok := doc.Element(p)
	if !ok {
		return false
	}
	switch b := el.Block.(type) {
	case *edtypes.Link, *edtypes.ListItem:
		return false
	case *edtypes.List:
		return b.IndentLevel <= 0
	}
	return true
}

// DragSession tracks one drag of a top-level block.
type DragSession struct {
	Source    int           `json:"source"`
	Target    int           `json:"target"`
	Direction DragDirection `json:"direction,omitempty"`
}

// StartDrag captures the source block. It fails for blocks that cannot be dragged.
func StartDrag(doc *Document, index int) (*DragSession, bool) {
	if !Draggable(doc, Path{index}) {
		return nil, false
	}
	return &DragSession{Source: index, Target: index}, true
}

// Over records the hovered drop target. A positive vertical offset means the
// pointer moves downward.
func (s *DragSession) Over(index int, offsetY float64) {
	s.Target = index
	if offsetY > 0 {
		s.Direction = DragDownward
	} else {
		s.Direction = DragUpward
	}
}

// Drop moves the source block to the target index and returns the announcement.
// Dropping on the source itself or outside the document does nothing.
func (s *DragSession) Drop(ed *Editor) (string, bool) {
	n := len(ed.doc.Children)
	if s.Target == s.Source || s.Target < 0 || s.Target >= n || s.Source >= n {
		return "", false
	}
	if !ed.MoveNode(Path{s.Source}, Path{s.Target}) {
		return "", false
	}
	return MovedAnnouncement(s.Source, s.Target, len(ed.doc.Children)), true
}
