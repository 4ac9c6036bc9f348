package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

func caret(off int, path ...int) Range {
	return edtypes.Collapsed(Point{Path: Path(path), Offset: off})
}

func para(s string) *Element {
	return edtypes.NewParagraph(edtypes.NewText(s))
}

func blockTexts(ed *Editor) []string {
	var res []string
	for _, c := range ed.Document().Children {
		res = append(res, edtypes.NodeString(c))
	}
	return res
}

func mustElement(t *testing.T, doc *Document, p Path) *Element {
	t.Helper()
	el, ok := doc.Element(p)
	require.True(t, ok, "no element at %v", p)
	return el
}

func TestNormalize_RepairsDocument(t *testing.T) {
	doc := &Document{Children: []Node{
		&Text{Text: "loose"},
		edtypes.NewElement(&edtypes.Heading{Level: 2}, &Text{Text: "a"}, &Text{Text: "b"}),
		edtypes.NewElement(&edtypes.ListItem{Typography: edtypes.Typography{FontFamily: "georgia"}}, edtypes.NewText("orphan")),
	}}

	res := Normalize(doc)
	require.Len(t, res.Children, 3)

	assert.Equal(t, edtypes.TypeParagraph, mustElement(t, res, Path{0}).Type())
	assert.Equal(t, "loose", edtypes.NodeString(res.Children[0]))

	h := mustElement(t, res, Path{1})
	require.Len(t, h.Children, 1)
	assert.Equal(t, "ab", edtypes.NodeString(h))

	orphan := mustElement(t, res, Path{2})
	assert.Equal(t, edtypes.TypeParagraph, orphan.Type())
	assert.Equal(t, "georgia", orphan.Block.(*edtypes.Paragraph).FontFamily)

	res.Walk(func(n Node, _ Path) bool {
		if tx, ok := n.(*Text); ok {
			assert.Equal(t, edtypes.TextType, tx.Type)
		}
		return true
	})
}

func TestNormalize_Idempotent(t *testing.T) {
	doc := &Document{Children: []Node{
		edtypes.NewElement(&edtypes.List{Format: edtypes.ListUnordered},
			para("first"),
			&Text{Text: "second"},
		),
		edtypes.NewElement(&edtypes.Image{}, edtypes.NewText("junk")),
		edtypes.NewParagraph(
			edtypes.NewText("a"),
			edtypes.NewElement(&edtypes.Link{URL: "https://example.com"}, edtypes.NewText("")),
			edtypes.NewText("b"),
		),
	}}

	once := Normalize(doc)
	twice := Normalize(once)
	assert.Equal(t, once, twice)

	list := mustElement(t, once, Path{0})
	require.Len(t, list.Children, 2)
	for _, c := range list.Children {
		assert.Equal(t, edtypes.TypeListItem, c.(*Element).Type())
	}

	img := mustElement(t, once, Path{1})
	require.Len(t, img.Children, 1)
	assert.Equal(t, "", edtypes.NodeString(img))

	p := mustElement(t, once, Path{2})
	require.Len(t, p.Children, 1, "empty link is dropped and the leaves merged")
	assert.Equal(t, "ab", edtypes.NodeString(p))
}

func TestNormalize_EmptyDocument(t *testing.T) {
	for _, doc := range []*Document{nil, {}} {
		res := Normalize(doc)
		require.Len(t, res.Children, 1)
		el := mustElement(t, res, Path{0})
		assert.Equal(t, edtypes.TypeParagraph, el.Type())
		assert.Equal(t, "", edtypes.NodeString(el))
	}
}

func TestNormalize_LinkGetsSurroundingLeaves(t *testing.T) {
	doc := edtypes.NewDocument(edtypes.NewParagraph(
		edtypes.NewElement(&edtypes.Link{URL: "https://example.com"}, edtypes.NewText("site")),
	))

	p := mustElement(t, Normalize(doc), Path{0})
	require.Len(t, p.Children, 3)
	assert.Equal(t, "", p.Children[0].(*Text).Text)
	assert.Equal(t, edtypes.TypeLink, p.Children[1].(*Element).Type())
	assert.Equal(t, "", p.Children[2].(*Text).Text)
}

func newOpsDocument() *Document {
	return edtypes.NewDocument(
		para("hello"),
		para("world"),
		edtypes.NewElement(&edtypes.List{Format: edtypes.ListUnordered},
			edtypes.NewElement(&edtypes.ListItem{}, edtypes.NewText("item")),
		),
	)
}

func TestOperation_Inverse(t *testing.T) {
	base := newOpsDocument()
	tests := []struct {
		name string
		op   Operation
	}{
		{"insert text", InsertText{Path: Path{0, 0}, Offset: 5, Text: "!"}},
		{"remove text", RemoveText{Path: Path{1, 0}, Offset: 0, Text: "wor"}},
		{"split leaf", SplitNode{Path: Path{0, 0}, Position: 2, Leaf: LeafProps{Type: edtypes.TextType}}},
		{"merge blocks", MergeNode{Path: Path{1}, Position: 1, Block: &edtypes.Paragraph{}}},
		{"move sibling", MoveNode{Path: Path{0}, NewPath: Path{2}}},
		{"move across parents", MoveNode{Path: Path{0, 0}, NewPath: Path{1, 1}}},
		{"move into list", MoveNode{Path: Path{1}, NewPath: Path{2, 1}}},
		{"insert node", InsertNode{Path: Path{1}, Node: para("new")}},
		{"remove node", RemoveNode{Path: Path{1}, Node: base.Children[1]}},
		{"set block", SetBlock{Path: Path{0}, Old: &edtypes.Paragraph{}, New: &edtypes.Heading{Level: 1}}},
		{"set leaf", SetLeaf{
			Path: Path{0, 0},
			Old:  LeafProps{Type: edtypes.TextType},
			New:  LeafProps{Type: edtypes.TextType, Marks: edtypes.Marks(edtypes.Bold)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after, err := tt.op.Apply(base)
			require.NoError(t, err)
			assert.NotEqual(t, base, after)

			back, err := tt.op.Inverse().Apply(after)
			require.NoError(t, err)
			assert.Equal(t, newOpsDocument(), back)
			assert.Equal(t, newOpsDocument(), base, "apply must not modify its input")
		})
	}
}

func TestOperation_InvalidPath(t *testing.T) {
	base := newOpsDocument()

	_, err := InsertText{Path: Path{9, 0}, Text: "x"}.Apply(base)
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = InsertText{Path: Path{0, 0}, Offset: 42, Text: "x"}.Apply(base)
	assert.ErrorIs(t, err, ErrInvalidOffset)

	_, err = SetBlock{Path: Path{0, 0}, New: &edtypes.Quote{}}.Apply(base)
	assert.ErrorIs(t, err, ErrNodeMismatch)

	_, err = MoveNode{Path: Path{2}, NewPath: Path{2, 0, 1}}.Apply(base)
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestTransformPath(t *testing.T) {
	move := MoveNode{Path: Path{1}, NewPath: Path{2}}
	assert.Equal(t, Path{2, 0}, transformPath(Path{1, 0}, move, forward))
	assert.Equal(t, Path{1}, transformPath(Path{2}, move, forward))
	assert.Equal(t, Path{0}, transformPath(Path{0}, move, forward))

	rm := RemoveNode{Path: Path{0}}
	assert.Nil(t, transformPath(Path{0, 3}, rm, forward))
	assert.Equal(t, Path{0, 1}, transformPath(Path{1, 1}, rm, forward))

	split := SplitNode{Path: Path{0, 1}, Position: 3}
	assert.Equal(t, Path{0, 2}, transformPath(Path{0, 1}, split, forward))
	assert.Equal(t, Path{0, 1}, transformPath(Path{0, 1}, split, backward))
	assert.Nil(t, transformPath(Path{0, 1}, split, inward))
}

func TestPathRef_FollowsOperations(t *testing.T) {
	ed := New(edtypes.NewDocument(para("a"), para("b")))
	ref := ed.PathRef(Path{1})

	ed.InsertNode(Path{0}, para("new"))
	assert.Equal(t, Path{2}, ref.Current())

	ed.RemoveNode(Path{2})
	assert.Nil(t, ref.Unref())
}

func TestWithoutNormalizing_Deferred(t *testing.T) {
	ed := New(edtypes.NewDocument(para("a")))

	ed.WithoutNormalizing(func() {
		ed.InsertNode(Path{1}, &Element{Block: &edtypes.Quote{}})
		el := mustElement(t, ed.Document(), Path{1})
		assert.Empty(t, el.Children, "normalization waits for the outermost transaction")
	})

	el := mustElement(t, ed.Document(), Path{1})
	require.Len(t, el.Children, 1)
	assert.Equal(t, edtypes.TextType, el.Children[0].(*Text).Type)
}

func TestHistory_UndoRedo(t *testing.T) {
	ed := New(edtypes.NewDocument(para("hello")), WithSelection(caret(5, 0, 0)))
	assert.False(t, ed.CanUndo())

	ed.InsertText(" world")
	assert.Equal(t, []string{"hello world"}, blockTexts(ed))
	require.True(t, ed.CanUndo())

	require.True(t, ed.Undo())
	assert.Equal(t, []string{"hello"}, blockTexts(ed))
	assert.False(t, ed.CanUndo())
	require.True(t, ed.CanRedo())

	require.True(t, ed.Redo())
	assert.Equal(t, []string{"hello world"}, blockTexts(ed))
	assert.False(t, ed.CanRedo())
}

func TestHistory_SelectionOnlyBatchIsSkipped(t *testing.T) {
	ed := New(edtypes.NewDocument(para("hello")))

	require.True(t, ed.SelectPoint(Point{Path: Path{0, 0}, Offset: 2}))
	ed.Deselect()
	assert.False(t, ed.CanUndo())
}

func TestHistory_NewEditClearsRedo(t *testing.T) {
	ed := New(edtypes.NewDocument(para("ab")), WithSelection(caret(2, 0, 0)))

	ed.InsertText("c")
	ed.Undo()
	require.True(t, ed.CanRedo())

	ed.InsertText("d")
	assert.False(t, ed.CanRedo())
	assert.Equal(t, []string{"abd"}, blockTexts(ed))
}

func TestSelect_RejectsInvalidRange(t *testing.T) {
	ed := New(edtypes.NewDocument(para("abc")))

	assert.False(t, ed.Select(caret(10, 0, 0)))
	assert.False(t, ed.Select(caret(0, 3, 0)))
	assert.Nil(t, ed.Selection())

	ed = New(edtypes.NewDocument(para("abc")), WithSelection(caret(7, 0, 0)))
	assert.Nil(t, ed.Selection(), "invalid initial selection is dropped")
}

func TestDeleteBackward_MergesBlocks(t *testing.T) {
	ed := New(edtypes.NewDocument(para("a"), para("b")), WithSelection(caret(0, 1, 0)))

	ed.DeleteBackward()
	assert.Equal(t, []string{"ab"}, blockTexts(ed))
	require.NotNil(t, ed.Selection())
	assert.Equal(t, Point{Path: Path{0, 0}, Offset: 1}, ed.Selection().Anchor)
}

func TestDeleteBackward_RemovesVoidBefore(t *testing.T) {
	doc := edtypes.NewDocument(
		para("a"),
		edtypes.NewElement(&edtypes.Separator{}),
		para(""),
	)
	ed := New(doc, WithSelection(caret(0, 2, 0)))

	ed.DeleteBackward()
	require.Len(t, ed.Document().Children, 2)
	assert.Equal(t, edtypes.TypeSeparator, mustElement(t, ed.Document(), Path{1}).Type())
	assert.Equal(t, Path{1, 0}, ed.Selection().Anchor.Path)
}

func TestDeleteRange_AcrossBlocks(t *testing.T) {
	ed := New(edtypes.NewDocument(para("hello"), para("middle"), para("world")))

	ed.DeleteRange(Range{
		Anchor: Point{Path: Path{0, 0}, Offset: 2},
		Focus:  Point{Path: Path{2, 0}, Offset: 3},
	})
	assert.Equal(t, []string{"held"}, blockTexts(ed))
}

func TestSplitBlock(t *testing.T) {
	ed := New(edtypes.NewDocument(para("hello")), WithSelection(caret(2, 0, 0)))

	ed.SplitBlock()
	assert.Equal(t, []string{"he", "llo"}, blockTexts(ed))
	assert.Equal(t, Point{Path: Path{1, 0}}, ed.Selection().Anchor)
}

func TestWrapNodeAndLift(t *testing.T) {
	doc := edtypes.NewDocument(
		para("a"),
		edtypes.NewElement(&edtypes.ListItem{}, edtypes.NewText("b")),
	)
	ed := New(doc)
	// an item outside a list becomes a paragraph
	require.Equal(t, edtypes.TypeParagraph, mustElement(t, ed.Document(), Path{1}).Type())

	ed.WithoutNormalizing(func() {
		ed.SetBlock(Path{1}, &edtypes.ListItem{})
		p, ok := ed.WrapNode(Path{1}, &edtypes.List{Format: edtypes.ListOrdered})
		require.True(t, ok)
		assert.Equal(t, Path{1}, p)
	})

	list := mustElement(t, ed.Document(), Path{1})
	assert.Equal(t, edtypes.TypeList, list.Type())
	require.Len(t, list.Children, 1)
	assert.Equal(t, "b", edtypes.NodeString(list))

	require.True(t, ed.LiftNode(Path{1, 0}))
	require.Len(t, ed.Document().Children, 2)
	assert.Equal(t, edtypes.TypeParagraph, mustElement(t, ed.Document(), Path{1}).Type())
}

func TestMergeNodes(t *testing.T) {
	list := func(s string) *Element {
		return edtypes.NewElement(&edtypes.List{Format: edtypes.ListUnordered},
			edtypes.NewElement(&edtypes.ListItem{}, edtypes.NewText(s)))
	}
	ed := New(edtypes.NewDocument(list("one"), list("two")))

	require.True(t, ed.MergeNodes(Path{1}))
	require.Len(t, ed.Document().Children, 1)
	assert.Len(t, mustElement(t, ed.Document(), Path{0}).Children, 2)
	assert.False(t, ed.MergeNodes(Path{0}))
}
