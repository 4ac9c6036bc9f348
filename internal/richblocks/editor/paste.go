package editor

import (
	"strings"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/mdimport"
)

// baseInsertData is the innermost link of InsertData. HTML is imported as a
// fragment; plain text is inserted line by line, each line in its own block.
func (ed *Editor) baseInsertData(data DataTransfer) {
	if ed.selection == nil {
		return
	}
	if data.HTML != "" {
		doc, err := mdimport.FromHTML(data.HTML)
		if err != nil {
			ed.logger.Warn("paste html", "err", err)
		} else if len(doc.Children) > 0 {
			ed.InsertFragment(doc.Children)
			return
		}
	}
	if data.Text == "" {
		return
	}

	lines := strings.Split(strings.ReplaceAll(data.Text, "\r\n", "\n"), "\n")
	ed.WithoutNormalizing(func() {
		for i, line := range lines {
			if i > 0 {
				ed.SplitBlock()
			}
			if line != "" {
				ed.insertTextAt(len(ed.plugins)-1, line)
			}
		}
	})
}

// InsertFragment inserts nodes at the selection. Inline content goes into the
// current block; blocks are placed around it, replacing it when it is empty.
func (ed *Editor) InsertFragment(fragment []Node) {
	if ed.selection == nil || len(fragment) == 0 {
		return
	}
	ed.WithoutNormalizing(func() {
		if !ed.selection.IsCollapsed() {
			ed.DeleteRange(*ed.selection)
		}
		if ed.selection == nil {
			return
		}

		if inlines, ok := ed.inlineFragment(fragment); ok {
			ed.insertInlines(inlines)
			return
		}

		at := ed.selection.Anchor
		top := Path{at.Path[0]}
		block, ok := ed.doc.Element(top)
		if !ok {
			return
		}
		blocks := ed.wrapInlineRuns(fragment)

		empty := ed.isEmptyElement(block)
		var insertAt Path
		switch {
		case empty:
			insertAt = top
		case ed.IsEnd(at, top):
			insertAt = top.Next()
		case ed.IsStart(at, top):
			insertAt = top
		default:
			ref := ed.PathRef(top)
			ed.splitNodes(at, top, true)
			p := ref.Unref()
			if p == nil {
				return
			}
			insertAt = p.Next()
		}

		for i, n := range blocks {
			ed.apply(InsertNode{Path: Path{insertAt[0] + i}, Node: edtypes.DeepCopy(n)})
		}
		last := Path{insertAt[0] + len(blocks) - 1}
		if empty {
			old := Path{insertAt[0] + len(blocks)}
			ed.apply(RemoveNode{Path: old, Node: mustGet(ed.doc, old)})
		}
		end := ed.End(last)
		ed.apply(SetSelection{Old: ed.Selection(), New: &Range{Anchor: end, Focus: end.Clone()}})
	})
}

// inlineFragment returns the inline content of a fragment made of inline nodes
// or of a single paragraph.
func (ed *Editor) inlineFragment(fragment []Node) ([]Node, bool) {
	if len(fragment) == 1 {
		if el, ok := fragment[0].(*Element); ok && el.Type() == edtypes.TypeParagraph {
			return el.Children, true
		}
	}
	for _, n := range fragment {
		if !ed.isInlineNode(n) {
			return nil, false
		}
	}
	return fragment, true
}

func (ed *Editor) insertInlines(nodes []Node) {
	for _, n := range nodes {
		if t, ok := n.(*Text); ok && t.Text == "" {
			continue
		}
		if ed.selection == nil {
			return
		}
		ed.insertLeafAt(ed.selection.Anchor, edtypes.DeepCopy(n))
	}
}

// wrapInlineRuns puts top-level inline nodes of a fragment into paragraphs.
func (ed *Editor) wrapInlineRuns(fragment []Node) []Node {
	var res []Node
	var run []Node
	flush := func() {
		if len(run) > 0 {
			res = append(res, edtypes.NewElement(&edtypes.Paragraph{}, run...))
			run = nil
		}
	}
	for _, n := range fragment {
		if ed.isInlineNode(n) {
			run = append(run, n)
			continue
		}
		flush()
		res = append(res, n)
	}
	flush()
	return res
}
