package editor

import (
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

// Plugin extends the editor. A plugin takes part in a behavior by implementing
// the matching interface below; the others are skipped.
type Plugin interface {
	PluginName() string
}

// TextInserter overrides typed-text insertion. Calling next continues the chain.
type TextInserter interface {
	InsertText(ed *Editor, text string, next func(string))
}

// DataInserter overrides paste and drop handling.
type DataInserter interface {
	InsertData(ed *Editor, data DataTransfer, next func(DataTransfer))
}

// ApplyObserver sees every operation before it reaches the document.
type ApplyObserver interface {
	Apply(ed *Editor, op Operation, next func(Operation))
}

type VoidMatcher interface {
	IsVoid(el *Element) bool
}

type InlineMatcher interface {
	IsInline(el *Element) bool
}

// NodeNormalizer fixes a dirty node. It must either apply one fix or call next.
type NodeNormalizer interface {
	NormalizeNode(ed *Editor, e NodeEntry, next func())
}

// DataTransfer is pasted or dropped content.
type DataTransfer struct {
	Text string `json:"text,omitempty"`
	HTML string `json:"html,omitempty"`
}

// DefaultPlugins returns the stack used when none is given, innermost first.
func DefaultPlugins() []Plugin {
	return []Plugin{
		SchemaPlugin{},
		VoidPlugin{Types: []edtypes.BlockType{edtypes.TypeImage, edtypes.TypeSeparator}},
		&LinksPlugin{ShouldSaveLinkPath: true},
		CodePlugin{},
	}
}

// SchemaPlugin gives every leaf the text type.
type SchemaPlugin struct{}

func (SchemaPlugin) PluginName() string { return "schema" }

func (SchemaPlugin) NormalizeNode(ed *Editor, e NodeEntry, next func()) {
	if t, ok := e.Node.(*Text); ok && t.Type != edtypes.TextType {
		ed.apply(SetLeaf{Path: e.Path, Old: leafProps(t), New: LeafProps{Type: edtypes.TextType, Marks: t.Marks}})
		return
	}
	next()
}

// VoidPlugin marks block types without editable content.
type VoidPlugin struct {
	Types []edtypes.BlockType
}

func (VoidPlugin) PluginName() string { return "voids" }

func (p VoidPlugin) IsVoid(el *Element) bool {
	for _, t := range p.Types {
		if el.Type() == t {
			return true
		}
	}
	return false
}

// CodePlugin pastes plain text verbatim while the cursor is inside a code block.
type CodePlugin struct{}

func (CodePlugin) PluginName() string { return "code" }

func (CodePlugin) InsertData(ed *Editor, data DataTransfer, next func(DataTransfer)) {
	if data.Text != "" && ed.selection != nil {
		if _, _, ok := ed.Above(ed.selection.Anchor.Path, isType(edtypes.TypeCode)); ok {
			ed.insertTextTransform(data.Text)
			return
		}
	}
	next(data)
}

func isType(t edtypes.BlockType) func(*Element) bool {
	return func(el *Element) bool {
		return el.Type() == t
	}
}

// InsertText inserts typed text at the selection through the plugin chain.
func (ed *Editor) InsertText(text string) {
	ed.WithoutNormalizing(func() {
		ed.insertTextAt(len(ed.plugins)-1, text)
	})
}

func (ed *Editor) insertTextAt(i int, text string) {
	for ; i >= 0; i-- {
		if ti, ok := ed.plugins[i].(TextInserter); ok {
			next := i - 1
			ti.InsertText(ed, text, func(t string) { ed.insertTextAt(next, t) })
			return
		}
	}
	ed.baseInsertText(text)
}

// InsertData pastes data at the selection through the plugin chain.
func (ed *Editor) InsertData(data DataTransfer) {
	ed.WithoutNormalizing(func() {
		ed.insertDataAt(len(ed.plugins)-1, data)
	})
}

func (ed *Editor) insertDataAt(i int, data DataTransfer) {
	for ; i >= 0; i-- {
		if di, ok := ed.plugins[i].(DataInserter); ok {
			next := i - 1
			di.InsertData(ed, data, func(d DataTransfer) { ed.insertDataAt(next, d) })
			return
		}
	}
	ed.baseInsertData(data)
}
