package blocks

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

type listContract struct {
	base
	format edtypes.ListFormat
}

// List returns the contract of one list format.
func List(format edtypes.ListFormat) editor.Contract {
	b := base{
		name:       "list-unordered",
		typ:        edtypes.TypeList,
		label:      "Bulleted list",
		icon:       "bullet-list",
		selectable: true,
		inSelector: true,
		snippets:   []string{"-", "*", "+"},
	}
	if format == edtypes.ListOrdered {
		b.name = "list-ordered"
		b.label = "Numbered list"
		b.icon = "numbered-list"
		b.snippets = []string{"1."}
	}
	return listContract{base: b, format: format}
}

func (c listContract) Match(el *editor.Element) bool {
	l, ok := el.Block.(*edtypes.List)
	if !ok {
		return false
	}
	if l.Format == "" {
		return c.format == edtypes.ListUnordered
	}
	return l.Format == c.format
}

// Convert changes the format of the list at the selection, or turns the block
// into the single item of a new list.
func (c listContract) Convert(ed *editor.Editor) (editor.Path, bool) {
	if sel := ed.Selection(); sel != nil {
		if el, p, ok := ed.Above(sel.Anchor.Path, isList); ok {
			l := edtypes.CloneBlock(el.Block).(*edtypes.List)
			l.Format = c.format
			ed.SetBlock(p, l)
			return p, true
		}
	}

	var res editor.Path
	ed.WithoutNormalizing(func() {
		p, ok := editor.Convert(ed, &edtypes.ListItem{})
		if !ok {
			return
		}
		res, _ = ed.WrapNode(p, &edtypes.List{Format: c.format})
	})
	return res, res != nil
}

func (c listContract) Render(el *editor.Element, children []*html.Node) *html.Node {
	a := atom.Ul
	if c.format == edtypes.ListOrdered {
		a = atom.Ol
	}
	attrs := typographyAttrs(el.Block)
	if l, ok := el.Block.(*edtypes.List); ok && l.IndentLevel > 0 {
		attrs = append(attrs, attr("data-indent-level", strconv.Itoa(l.IndentLevel)))
	}
	return withChildren(newNode(a, attrs...), children)
}

func isList(el *editor.Element) bool {
	return el.Type() == edtypes.TypeList
}

func isListItem(el *editor.Element) bool {
	return el.Type() == edtypes.TypeListItem
}

// listContext is the item at the cursor and the list holding it.
type listContext struct {
	item     *editor.Element
	itemPath editor.Path
	list     *editor.Element
	listPath editor.Path
}

func currentListItem(ed *editor.Editor) (listContext, bool) {
	sel := ed.Selection()
	if sel == nil {
		return listContext{}, false
	}
	item, itemPath, ok := ed.Above(sel.Anchor.Path, isListItem)
	if !ok {
		return listContext{}, false
	}
	n, ok := ed.Node(itemPath.Parent())
	if !ok {
		return listContext{}, false
	}
	list, ok := n.(*editor.Element)
	if !ok || !isList(list) {
		return listContext{}, false
	}
	return listContext{item: item, itemPath: itemPath, list: list, listPath: itemPath.Parent().Clone()}, true
}

func typographyOf(b edtypes.Block) edtypes.Typography {
	if s, ok := edtypes.CloneBlock(b).(edtypes.Styled); ok {
		return *s.Typo()
	}
	return edtypes.Typography{}
}

func isEmptyItem(el *editor.Element) bool {
	if len(el.Children) != 1 {
		return false
	}
	t, ok := el.Children[0].(*edtypes.Text)
	return ok && t.Text == ""
}

// replaceWithParagraph swaps the element at p for an empty paragraph and selects it.
func replaceWithParagraph(ed *editor.Editor, p editor.Path) {
	ed.WithoutNormalizing(func() {
		ed.RemoveNode(p)
		ed.InsertNode(p, edtypes.NewParagraph())
		ed.SelectPoint(ed.Start(p))
	})
}

// OnEnter exits the list on an empty item, adds an item at the end of one and
// splits it otherwise.
func (listContract) OnEnter(ed *editor.Editor) {
	lc, ok := currentListItem(ed)
	if !ok {
		editor.PressEnterTwiceToExit(ed)
		return
	}
	sel := ed.Selection()

	switch {
	case len(lc.list.Children) == 1 && isEmptyItem(lc.item):
		replaceWithParagraph(ed, lc.listPath)
	case isEmptyItem(lc.item):
		ed.WithoutNormalizing(func() {
			ref := ed.PathRef(lc.listPath)
			ed.RemoveNode(lc.itemPath)
			lp := ref.Unref()
			if lp == nil {
				return
			}
			at := lp.Next()
			ed.InsertNode(at, edtypes.NewParagraph())
			ed.SelectPoint(ed.Start(at))
		})
	case sel.IsCollapsed() && ed.IsEnd(sel.Anchor, lc.itemPath):
		ed.InsertBlock(edtypes.NewElement(&edtypes.ListItem{}))
	default:
		ed.SplitBlock()
	}
}

// OnBackspace replaces an empty list with a paragraph, lifts the first item
// out of the list when the cursor is at its start and joins the two lists
// around a removed empty item.
func (listContract) OnBackspace(ed *editor.Editor) bool {
	lc, ok := currentListItem(ed)
	if !ok {
		return false
	}
	sel := ed.Selection()
	if !sel.IsCollapsed() {
		return false
	}

	switch {
	case len(lc.list.Children) == 1 && isEmptyItem(lc.item):
		replaceWithParagraph(ed, lc.listPath)
		return true

	case lc.itemPath.Last() == 0 && ed.IsStart(sel.Anchor, lc.itemPath):
		ed.WithoutNormalizing(func() {
			ref := ed.PathRef(lc.itemPath)
			ed.LiftNode(lc.itemPath)
			if p := ref.Unref(); p != nil {
				ed.SetBlock(p, &edtypes.Paragraph{Typography: typographyOf(lc.item.Block)})
			}
		})
		return true

	case isEmptyItem(lc.item):
		i := lc.itemPath.Last()
		if i == 0 || i >= len(lc.list.Children)-1 {
			return false
		}
		prev, ok1 := lc.list.Children[i-1].(*editor.Element)
		next, ok2 := lc.list.Children[i+1].(*editor.Element)
		if !ok1 || !ok2 || !isList(prev) || !isList(next) {
			return false
		}
		pl, nl := prev.Block.(*edtypes.List), next.Block.(*edtypes.List)
		if pl.Format != nl.Format || pl.IndentLevel != nl.IndentLevel {
			return false
		}
		ed.WithoutNormalizing(func() {
			ed.RemoveNode(lc.itemPath)
			ed.MergeNodes(lc.itemPath)
			end := ed.End(lc.itemPath.Previous())
			ed.SelectPoint(end)
		})
		return true
	}
	return false
}

// OnTab indents the item under the previous one; with shift it moves a nested
// item one level up.
func (listContract) OnTab(ed *editor.Editor, shift bool) {
	lc, ok := currentListItem(ed)
	if !ok {
		return
	}
	list := lc.list.Block.(*edtypes.List)

	if shift {
		if list.IndentLevel == 0 {
			return
		}
		ed.LiftNode(lc.itemPath)
		return
	}

	i := lc.itemPath.Last()
	if i == 0 {
		return
	}
	if prev, ok := lc.list.Children[i-1].(*editor.Element); ok && isList(prev) {
		ed.MoveNode(lc.itemPath, lc.listPath.Child(i-1).Child(len(prev.Children)))
		return
	}
	ed.WrapNode(lc.itemPath, &edtypes.List{Format: list.Format, IndentLevel: list.IndentLevel + 1})
}

type listItemContract struct{ base }

// ListItem is never offered in the menu; items exist only inside lists.
func ListItem() editor.Contract {
	return listItemContract{base{
		name:  "list-item",
		typ:   edtypes.TypeListItem,
		label: "List item",
		icon:  "bullet-list",
	}}
}

func (listItemContract) Convert(ed *editor.Editor) (editor.Path, bool) {
	return List(edtypes.ListUnordered).Convert(ed)
}

func (listItemContract) Render(el *editor.Element, children []*html.Node) *html.Node {
	return withChildren(newNode(atom.Li, typographyAttrs(el.Block)...), children)
}
