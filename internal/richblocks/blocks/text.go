package blocks

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

type paragraphContract struct{ base }

// Paragraph is the default block. Unknown block types behave like it.
func Paragraph() editor.Contract {
	return paragraphContract{base{
		name:       "paragraph",
		typ:        edtypes.TypeParagraph,
		label:      "Text",
		icon:       "paragraph",
		inSelector: true,
	}}
}

func (paragraphContract) Convert(ed *editor.Editor) (editor.Path, bool) {
	return editor.Convert(ed, &edtypes.Paragraph{})
}

func (paragraphContract) Render(el *editor.Element, children []*html.Node) *html.Node {
	return withChildren(newNode(atom.P, typographyAttrs(el.Block)...), children)
}

func (paragraphContract) OnEnter(ed *editor.Editor) {
	editor.PressEnterTwiceToExit(ed)
}

var headingNames = [...]string{"heading-one", "heading-two", "heading-three", "heading-four", "heading-five", "heading-six"}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

type headingContract struct {
	base
	level int
}

// Heading returns the contract of one heading level, 1 to 6.
func Heading(level int) editor.Contract {
	level = min(max(level, 1), 6)
	return headingContract{
		base: base{
			name:       headingNames[level-1],
			typ:        edtypes.TypeHeading,
			label:      "Heading " + strconv.Itoa(level),
			icon:       "heading-" + strconv.Itoa(level),
			selectable: true,
			inSelector: true,
			snippets:   []string{strings.Repeat("#", level)},
		},
		level: level,
	}
}

func (c headingContract) Match(el *editor.Element) bool {
	h, ok := el.Block.(*edtypes.Heading)
	return ok && h.Level == c.level
}

func (c headingContract) Convert(ed *editor.Editor) (editor.Path, bool) {
	return editor.Convert(ed, &edtypes.Heading{Level: c.level})
}

func (c headingContract) Render(el *editor.Element, children []*html.Node) *html.Node {
	return withChildren(newNode(headingAtoms[c.level-1], typographyAttrs(el.Block)...), children)
}

// OnEnter starts a paragraph after the heading when the cursor is at its end,
// and splits the heading otherwise.
func (headingContract) OnEnter(ed *editor.Editor) {
	sel := ed.Selection()
	if sel == nil {
		return
	}
	if _, p, ok := ed.TextBlock(sel.Anchor.Path); ok && sel.IsCollapsed() && ed.IsEnd(sel.Anchor, p) {
		ed.InsertBlock(edtypes.NewParagraph())
		return
	}
	ed.SplitBlock()
}

type quoteContract struct{ base }

func Quote() editor.Contract {
	return quoteContract{base{
		name:       "quote",
		typ:        edtypes.TypeQuote,
		label:      "Quote",
		icon:       "quote",
		selectable: true,
		inSelector: true,
		snippets:   []string{">"},
	}}
}

func (quoteContract) Convert(ed *editor.Editor) (editor.Path, bool) {
	return editor.Convert(ed, &edtypes.Quote{})
}

func (quoteContract) Render(el *editor.Element, children []*html.Node) *html.Node {
	return withChildren(newNode(atom.Blockquote, typographyAttrs(el.Block)...), children)
}

func (quoteContract) OnEnter(ed *editor.Editor) {
	editor.PressEnterTwiceToExit(ed)
}
