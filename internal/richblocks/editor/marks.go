package editor

import (
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

// Modifier is a text mark with its toolbar label and keyboard shortcut.
type Modifier struct {
	Mark  edtypes.Mark `json:"-"`
	Name  string       `json:"name"`
	Label string       `json:"label"`
	Key   string       `json:"key"`
	Shift bool         `json:"shift,omitempty"`
}

// Modifiers lists the marks in toolbar order. Shortcuts need Ctrl or Meta.
var Modifiers = []Modifier{
	{Mark: edtypes.Uppercase, Name: "uppercase", Label: "Uppercase", Key: "A"},
	{Mark: edtypes.Superscript, Name: "superscript", Label: "Superscript", Key: "A"},
	{Mark: edtypes.Subscript, Name: "subscript", Label: "Subscript", Key: "A"},
	{Mark: edtypes.Bold, Name: "bold", Label: "Bold", Key: "b"},
	{Mark: edtypes.Italic, Name: "italic", Label: "Italic", Key: "i"},
	{Mark: edtypes.Underline, Name: "underline", Label: "Underline", Key: "u"},
	{Mark: edtypes.Strikethrough, Name: "strikethrough", Label: "Strikethrough", Key: "S", Shift: true},
	{Mark: edtypes.InlineCode, Name: "code", Label: "Inline code", Key: "e"},
}

// Matches reports whether ev is the shortcut of m.
func (m Modifier) Matches(ev KeyEvent) bool {
	if !ev.Ctrl && !ev.Meta {
		return false
	}
	return ev.Key == m.Key && (!m.Shift || ev.Shift)
}

// AddMark adds m to the selected leaves, or to the pending marks when collapsed.
func (ed *Editor) AddMark(m edtypes.Mark) {
	ed.updateMarks(func(ms edtypes.Marks) edtypes.Marks { return ms.With(m) })
}

// RemoveMark removes m from the selected leaves, or from the pending marks.
func (ed *Editor) RemoveMark(m edtypes.Mark) {
	ed.updateMarks(func(ms edtypes.Marks) edtypes.Marks { return ms.Without(m) })
}

// ToggleMark removes m when active and adds it otherwise. Without a selection the
// cursor goes to the end of the document first.
func (ed *Editor) ToggleMark(m edtypes.Mark) {
	if ed.selection == nil {
		ed.SelectPoint(ed.End(nil))
	}
	if ed.IsMarkActive(m) {
		ed.RemoveMark(m)
	} else {
		ed.AddMark(m)
	}
}

func (ed *Editor) updateMarks(fn func(edtypes.Marks) edtypes.Marks) {
	if ed.selection == nil {
		return
	}
	if ed.selection.IsCollapsed() {
		ms := fn(ed.Marks())
		ed.marks = &ms
		return
	}

	sel := *ed.selection
	ed.WithoutNormalizing(func() {
		start, end := sel.Edges()
		startRef := ed.pointRef(start, forward)
		endRef := ed.pointRef(end, backward)

		ed.splitLeafAt(end)
		if s, ok := startRef.current(); ok {
			ed.splitLeafAt(s)
		}
		s, ok1 := startRef.unref()
		e, ok2 := endRef.unref()
		if !ok1 || !ok2 {
			return
		}

		for _, lp := range ed.leavesBetween(s.Path, e.Path) {
			if !s.Path.Equal(e.Path) {
				t, _ := ed.doc.Leaf(lp)
				if lp.Equal(s.Path) && s.Offset == runeLen(t.Text) || lp.Equal(e.Path) && e.Offset == 0 {
					continue
				}
			}
			if _, ok := ed.voidAbove(lp); ok {
				continue
			}
			t, _ := ed.doc.Leaf(lp)
			props := leafProps(t)
			next := LeafProps{Type: props.Type, Marks: fn(props.Marks)}
			if next != props {
				ed.apply(SetLeaf{Path: lp, Old: props, New: next})
			}
		}

		r := Range{Anchor: s, Focus: e}
		if sel.IsBackward() {
			r = Range{Anchor: e, Focus: s}
		}
		ed.apply(SetSelection{Old: ed.Selection(), New: &r})
	})
}
