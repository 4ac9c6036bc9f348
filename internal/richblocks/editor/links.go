package editor

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

var (
	urlTailRegex  = regexp.MustCompile(`https?://\S+$`)
	urlExactRegex = regexp.MustCompile(`^https?://\S+$`)
)

// LinksPlugin makes links inline, turns typed and pasted URLs into links and
// remembers where the last link was inserted.
type LinksPlugin struct {
	ShouldSaveLinkPath bool

	lastInsertedLinkPath Path
}

func (*LinksPlugin) PluginName() string { return "links" }

func (*LinksPlugin) IsInline(el *Element) bool {
	return el.Type() == edtypes.TypeLink
}

// LastInsertedLinkPath returns the path of the last inserted link, kept current
// across later operations.
func (p *LinksPlugin) LastInsertedLinkPath() Path {
	return p.lastInsertedLinkPath.Clone()
}

func (p *LinksPlugin) Apply(ed *Editor, op Operation, next func(Operation)) {
	if p.lastInsertedLinkPath != nil {
		p.lastInsertedLinkPath = transformPath(p.lastInsertedLinkPath, op, forward)
	}
	if ins, ok := op.(InsertNode); ok && p.ShouldSaveLinkPath {
		if el, ok := ins.Node.(*Element); ok && el.Type() == edtypes.TypeLink {
			p.lastInsertedLinkPath = ins.Path.Clone()
		}
	}
	next(op)
}

// InsertText links a URL right before the cursor when whitespace is typed after it.
// The whitespace itself goes after the new link.
func (p *LinksPlugin) InsertText(ed *Editor, text string, next func(string)) {
	sel := ed.selection
	if sel == nil || !sel.IsCollapsed() || !isWhitespace(text) {
		next(text)
		return
	}
	anchor := sel.Anchor
	if _, _, inLink := ed.Above(anchor.Path, isType(edtypes.TypeLink)); inLink {
		next(text)
		return
	}
	_, bp, ok := ed.Above(anchor.Path, func(el *Element) bool { return el.Type() != edtypes.TypeLink })
	if !ok {
		next(text)
		return
	}

	before := ed.String(Range{Anchor: ed.Start(bp), Focus: anchor})
	url := urlTailRegex.FindString(before)
	if url == "" {
		next(text)
		return
	}

	urlStart := runeLen(before) - runeLen(url)
	r := Range{
		Anchor: ed.pointAtBlockOffset(bp, urlStart),
		Focus:  anchor,
	}
	ed.apply(SetSelection{Old: ed.Selection(), New: &r})
	p.ShouldSaveLinkPath = true
	InsertLink(ed, url)

	if lp := p.lastInsertedLinkPath; lp != nil {
		after := lp.Next()
		if _, ok := ed.doc.Leaf(after); !ok {
			ed.apply(InsertNode{Path: after, Node: edtypes.NewText("")})
		}
		ed.apply(SetSelection{Old: ed.Selection(), New: &Range{Anchor: Point{Path: after}, Focus: Point{Path: after}}})
	}
	next(text)
}

// InsertData turns a pasted bare URL into a link.
func (p *LinksPlugin) InsertData(ed *Editor, data DataTransfer, next func(DataTransfer)) {
	text := strings.TrimSpace(data.Text)
	if text != "" && urlExactRegex.MatchString(text) && ed.selection != nil {
		InsertLink(ed, text)
		return
	}
	next(data)
}

func isWhitespace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// LastInsertedLinkPath returns the path the links plugin recorded, or nil.
func (ed *Editor) LastInsertedLinkPath() Path {
	for _, p := range ed.plugins {
		if lp, ok := p.(*LinksPlugin); ok {
			return lp.LastInsertedLinkPath()
		}
	}
	return nil
}

// InsertLink links the selection to url. Links already in the selection are
// removed first. A collapsed selection gets a new link showing the URL.
func InsertLink(ed *Editor, url string) {
	if ed.selection == nil {
		return
	}
	ed.WithoutNormalizing(func() {
		links := ed.elementsInRange(*ed.selection, isType(edtypes.TypeLink))
		for i := len(links) - 1; i >= 0; i-- {
			ed.UnwrapNode(links[i])
		}
		if ed.selection == nil {
			return
		}
		if ed.selection.IsCollapsed() {
			ed.InsertInline(edtypes.NewElement(&edtypes.Link{URL: url}, edtypes.NewText(url)))
			return
		}
		ed.WrapInline(&edtypes.Link{URL: url}, *ed.selection)
	})
}

// EditLink changes the URL of the link at the cursor. A non-empty text that
// differs from the current one replaces the link content.
func EditLink(ed *Editor, url, text string) bool {
	if ed.selection == nil {
		return false
	}
	el, p, ok := ed.Above(ed.selection.Anchor.Path, isType(edtypes.TypeLink))
	if !ok {
		return false
	}
	ed.WithoutNormalizing(func() {
		ed.apply(SetBlock{Path: p, Old: el.Block, New: &edtypes.Link{URL: url}})
		if text == "" || text == edtypes.NodeString(el) {
			return
		}
		for i := len(el.Children) - 1; i >= 0; i-- {
			ed.apply(RemoveNode{Path: p.Child(i), Node: el.Children[i]})
		}
		ed.apply(InsertNode{Path: p.Child(0), Node: edtypes.NewText(text)})
	})
	return true
}

// RemoveLink unwraps every link in the selection.
func RemoveLink(ed *Editor) bool {
	if ed.selection == nil {
		return false
	}
	links := ed.elementsInRange(*ed.selection, isType(edtypes.TypeLink))
	if len(links) == 0 {
		return false
	}
	ed.WithoutNormalizing(func() {
		for i := len(links) - 1; i >= 0; i-- {
			ed.UnwrapNode(links[i])
		}
	})
	return true
}
