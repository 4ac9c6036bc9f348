package blocks

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

func caret(off int, path ...int) editor.Range {
	return edtypes.Collapsed(editor.Point{Path: editor.Path(path), Offset: off})
}

func newEditor(caretAt editor.Range, children ...edtypes.Node) *editor.Editor {
	return editor.New(edtypes.NewDocument(children...),
		editor.WithRegistry(NewRegistry()),
		editor.WithSelection(caretAt),
	)
}

func item(s string) *edtypes.Element {
	return edtypes.NewElement(&edtypes.ListItem{}, edtypes.NewText(s))
}

func list(format edtypes.ListFormat, indent int, children ...edtypes.Node) *edtypes.Element {
	return edtypes.NewElement(&edtypes.List{Format: format, IndentLevel: indent}, children...)
}

func element(t *testing.T, ed *editor.Editor, p editor.Path) *edtypes.Element {
	t.Helper()
	el, ok := ed.Document().Element(p)
	require.True(t, ok, "no element at %v", p)
	return el
}

func types(ed *editor.Editor) []edtypes.BlockType {
	var res []edtypes.BlockType
	for _, c := range ed.Document().Children {
		res = append(res, c.(*edtypes.Element).Type())
	}
	return res
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		block edtypes.Block
		want  string
	}{
		{&edtypes.Paragraph{}, "paragraph"},
		{&edtypes.Heading{Level: 2}, "heading-two"},
		{&edtypes.Heading{Level: 6}, "heading-six"},
		{&edtypes.List{Format: edtypes.ListOrdered}, "list-ordered"},
		{&edtypes.List{}, "list-unordered"},
		{&edtypes.ListItem{}, "list-item"},
		{&edtypes.Code{}, "code"},
		{&edtypes.Separator{}, "separator"},
		{&edtypes.Unknown{Name: "callout"}, "paragraph"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			c := r.Resolve(edtypes.NewElement(tt.block))
			require.NotNil(t, c)
			assert.Equal(t, tt.want, c.Name())
		})
	}
	assert.Equal(t, "paragraph", r.Fallback().Name())
}

func TestRegistry_Menu(t *testing.T) {
	var names []string
	for _, m := range NewRegistry().Menu() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{
		"heading-one", "heading-two", "heading-three", "heading-four", "heading-five", "heading-six",
		"list-unordered", "list-ordered",
		"image", "quote", "code", "separator",
	}, names)
}

func TestHeading_Contract(t *testing.T) {
	c := Heading(3)
	assert.Equal(t, "Heading 3", c.Label())
	assert.Equal(t, []string{"###"}, c.Snippets())
	assert.True(t, c.Match(edtypes.NewElement(&edtypes.Heading{Level: 3})))
	assert.False(t, c.Match(edtypes.NewElement(&edtypes.Heading{Level: 1})))

	assert.Equal(t, "heading-six", Heading(9).Name())
}

func TestConvert_KeepsTypography(t *testing.T) {
	typo := edtypes.Typography{FontFamily: "georgia", FontColor: "#FF0000"}
	ed := newEditor(caret(0, 0, 0), edtypes.NewElement(&edtypes.Paragraph{Typography: typo}, edtypes.NewText("x")))
	r := ed.Registry()

	c, ok := r.ByName("heading-two")
	require.True(t, ok)
	_, ok = c.Convert(ed)
	require.True(t, ok)

	h := element(t, ed, editor.Path{0}).Block.(*edtypes.Heading)
	assert.Equal(t, 2, h.Level)
	assert.Equal(t, "georgia", h.FontFamily)
	assert.Equal(t, "#FF0000", h.FontColor)

	c, _ = r.ByName("code")
	_, ok = c.Convert(ed)
	require.True(t, ok)
	code := element(t, ed, editor.Path{0}).Block.(*edtypes.Code)
	assert.Equal(t, "plaintext", code.Language)

	c, _ = r.ByName("quote")
	c.Convert(ed)
	q := element(t, ed, editor.Path{0}).Block.(*edtypes.Quote)
	assert.True(t, q.Typography.IsZero(), "code blocks drop typography")
	assert.Equal(t, "x", edtypes.NodeString(ed.Document().Children[0]))
}

func TestConvert_ListRoundTrip(t *testing.T) {
	ed := newEditor(caret(1, 0, 0), edtypes.NewParagraph(edtypes.NewText("a")))
	r := ed.Registry()

	c, _ := r.ByName("list-unordered")
	_, ok := c.Convert(ed)
	require.True(t, ok)
	l := element(t, ed, editor.Path{0})
	assert.Equal(t, edtypes.ListUnordered, l.Block.(*edtypes.List).Format)
	assert.Equal(t, edtypes.TypeListItem, element(t, ed, editor.Path{0, 0}).Type())

	c, _ = r.ByName("list-ordered")
	c.Convert(ed)
	assert.Equal(t, edtypes.ListOrdered, element(t, ed, editor.Path{0}).Block.(*edtypes.List).Format)

	c, _ = r.ByName("paragraph")
	c.Convert(ed)
	assert.Equal(t, []edtypes.BlockType{edtypes.TypeParagraph}, types(ed))
	assert.Equal(t, "a", edtypes.NodeString(ed.Document().Children[0]))
}

func TestCode_EnterTwiceToExit(t *testing.T) {
	ed := newEditor(caret(1, 0, 0), edtypes.NewElement(&edtypes.Code{Language: "go"}, edtypes.NewText("x")))

	eff := editor.HandleKeyDown(ed, editor.KeyEvent{Key: "Enter"})
	assert.True(t, eff.PreventDefault)
	assert.Equal(t, "x\n", edtypes.NodeString(ed.Document().Children[0]))

	editor.HandleKeyDown(ed, editor.KeyEvent{Key: "Enter"})
	assert.Equal(t, []edtypes.BlockType{edtypes.TypeCode, edtypes.TypeParagraph}, types(ed))
	assert.Equal(t, "x", edtypes.NodeString(ed.Document().Children[0]))
}

func TestHeading_Enter(t *testing.T) {
	ed := newEditor(caret(5, 0, 0), edtypes.NewElement(&edtypes.Heading{Level: 1}, edtypes.NewText("Title")))
	editor.HandleKeyDown(ed, editor.KeyEvent{Key: "Enter"})
	assert.Equal(t, []edtypes.BlockType{edtypes.TypeHeading, edtypes.TypeParagraph}, types(ed))

	ed = newEditor(caret(2, 0, 0), edtypes.NewElement(&edtypes.Heading{Level: 1}, edtypes.NewText("Title")))
	editor.HandleKeyDown(ed, editor.KeyEvent{Key: "Enter"})
	assert.Equal(t, []edtypes.BlockType{edtypes.TypeHeading, edtypes.TypeHeading}, types(ed))
	assert.Equal(t, "tle", edtypes.NodeString(ed.Document().Children[1]))
}

func TestHeading_ShiftEnterInsertsLineBreak(t *testing.T) {
	ed := newEditor(caret(2, 0, 0), edtypes.NewElement(&edtypes.Heading{Level: 1}, edtypes.NewText("Title")))
	editor.HandleKeyDown(ed, editor.KeyEvent{Key: "Enter", Shift: true})
	assert.Equal(t, "Ti\ntle", edtypes.NodeString(ed.Document().Children[0]))
}

func TestList_Enter(t *testing.T) {
	ed := newEditor(caret(3, 0, 0, 0), list(edtypes.ListUnordered, 0, item("one")))

	editor.HandleKeyDown(ed, editor.KeyEvent{Key: "Enter"})
	require.Len(t, element(t, ed, editor.Path{0}).Children, 2)
	assert.Equal(t, editor.Path{0, 1, 0}, ed.Selection().Anchor.Path)

	// пустой пункт в конце выводит из списка
	editor.HandleKeyDown(ed, editor.KeyEvent{Key: "Enter"})
	assert.Equal(t, []edtypes.BlockType{edtypes.TypeList, edtypes.TypeParagraph}, types(ed))
	assert.Len(t, element(t, ed, editor.Path{0}).Children, 1)
	assert.Equal(t, editor.Path{1, 0}, ed.Selection().Anchor.Path)
}

func TestList_EnterOnOnlyEmptyItem(t *testing.T) {
	ed := newEditor(caret(0, 0, 0, 0), list(edtypes.ListOrdered, 0, item("")))

	editor.HandleKeyDown(ed, editor.KeyEvent{Key: "Enter"})
	assert.Equal(t, []edtypes.BlockType{edtypes.TypeParagraph}, types(ed))
}

func TestList_EnterSplitsItem(t *testing.T) {
	ed := newEditor(caret(2, 0, 0, 0), list(edtypes.ListUnordered, 0, item("abcd")))

	editor.HandleKeyDown(ed, editor.KeyEvent{Key: "Enter"})
	l := element(t, ed, editor.Path{0})
	require.Len(t, l.Children, 2)
	assert.Equal(t, "ab", edtypes.NodeString(l.Children[0]))
	assert.Equal(t, "cd", edtypes.NodeString(l.Children[1]))
}

func TestList_BackspaceLiftsFirstItem(t *testing.T) {
	typo := edtypes.Typography{FontFamily: "georgia"}
	first := edtypes.NewElement(&edtypes.ListItem{Typography: typo}, edtypes.NewText("one"))
	ed := newEditor(caret(0, 0, 0, 0), list(edtypes.ListUnordered, 0, first, item("two")))

	eff := editor.HandleKeyDown(ed, editor.KeyEvent{Key: "Backspace"})
	assert.True(t, eff.PreventDefault)
	assert.Equal(t, []edtypes.BlockType{edtypes.TypeParagraph, edtypes.TypeList}, types(ed))
	p := element(t, ed, editor.Path{0}).Block.(*edtypes.Paragraph)
	assert.Equal(t, "georgia", p.FontFamily)
	assert.Equal(t, "two", edtypes.NodeString(ed.Document().Children[1]))
}

func TestList_BackspaceInsideItemIsNative(t *testing.T) {
	ed := newEditor(caret(2, 0, 1, 0), list(edtypes.ListUnordered, 0, item("one"), item("two")))

	eff := editor.Dispatch(ed, editor.KeyEvent{Key: "Backspace"})
	assert.False(t, eff.PreventDefault)
	assert.Equal(t, "to", edtypes.NodeString(element(t, ed, editor.Path{0, 1})))
}

func TestList_BackspaceJoinsNestedLists(t *testing.T) {
	ed := newEditor(caret(0, 0, 1, 0),
		list(edtypes.ListUnordered, 0,
			list(edtypes.ListUnordered, 1, item("x")),
			item(""),
			list(edtypes.ListUnordered, 1, item("y")),
		),
	)

	eff := editor.HandleKeyDown(ed, editor.KeyEvent{Key: "Backspace"})
	require.True(t, eff.PreventDefault)
	outer := element(t, ed, editor.Path{0})
	require.Len(t, outer.Children, 1)
	nested := outer.Children[0].(*edtypes.Element)
	assert.Equal(t, edtypes.TypeList, nested.Type())
	assert.Len(t, nested.Children, 2)
}

func TestList_TabIndentAndOutdent(t *testing.T) {
	ed := newEditor(caret(0, 0, 1, 0), list(edtypes.ListUnordered, 0, item("a"), item("b")))

	eff := editor.HandleKeyDown(ed, editor.KeyEvent{Key: "Tab"})
	require.True(t, eff.PreventDefault)
	nested := element(t, ed, editor.Path{0, 1})
	require.Equal(t, edtypes.TypeList, nested.Type())
	assert.Equal(t, 1, nested.Block.(*edtypes.List).IndentLevel)
	assert.Equal(t, "b", edtypes.NodeString(nested))

	editor.HandleKeyDown(ed, editor.KeyEvent{Key: "Tab", Shift: true})
	l := element(t, ed, editor.Path{0})
	require.Len(t, l.Children, 2)
	assert.Equal(t, edtypes.TypeListItem, l.Children[1].(*edtypes.Element).Type())
}

func TestList_TabOnFirstItemDoesNothing(t *testing.T) {
	ed := newEditor(caret(0, 0, 0, 0), list(edtypes.ListUnordered, 0, item("a")))
	before := ed.Document()

	editor.HandleKeyDown(ed, editor.KeyEvent{Key: "Tab"})
	assert.Equal(t, before, ed.Document())
}

func TestSnippets(t *testing.T) {
	tests := []struct {
		typed string
		want  edtypes.BlockType
	}{
		{"#", edtypes.TypeHeading},
		{"-", edtypes.TypeList},
		{"1.", edtypes.TypeList},
		{">", edtypes.TypeQuote},
		{"```", edtypes.TypeCode},
	}
	for _, tt := range tests {
		t.Run(tt.typed, func(t *testing.T) {
			ed := editor.New(edtypes.NewDocument(edtypes.NewParagraph(edtypes.NewText(tt.typed))),
				editor.WithRegistry(NewRegistry()),
				editor.WithSnippetConversion(true),
				editor.WithSelection(caret(len(tt.typed), 0, 0)),
			)

			eff := editor.HandleKeyDown(ed, editor.KeyEvent{Key: " "})
			assert.True(t, eff.Converted)
			assert.Equal(t, tt.typed, eff.Snippet)
			assert.Equal(t, tt.want, element(t, ed, editor.Path{0}).Type())
			assert.Equal(t, "", ed.Document().String(nil))
		})
	}
}

func TestSnippets_DisabledOnlyReports(t *testing.T) {
	ed := newEditor(caret(2, 0, 0), edtypes.NewParagraph(edtypes.NewText("##")))

	eff := editor.HandleKeyDown(ed, editor.KeyEvent{Key: " "})
	assert.Equal(t, "##", eff.Snippet)
	assert.False(t, eff.Converted)
	assert.Equal(t, []edtypes.BlockType{edtypes.TypeParagraph}, types(ed))
}

func TestSeparator_SnippetInsertsBlock(t *testing.T) {
	ed := editor.New(edtypes.NewDocument(edtypes.NewParagraph(edtypes.NewText("---"))),
		editor.WithRegistry(NewRegistry()),
		editor.WithSnippetConversion(true),
		editor.WithSelection(caret(3, 0, 0)),
	)

	editor.HandleKeyDown(ed, editor.KeyEvent{Key: " "})
	assert.Equal(t, []edtypes.BlockType{edtypes.TypeParagraph, edtypes.TypeSeparator}, types(ed))
}

func TestVoid_EnterAddsParagraph(t *testing.T) {
	ed := newEditor(caret(0, 0, 0),
		edtypes.NewElement(&edtypes.Image{Image: edtypes.ImageAsset{URL: "/a.png"}}, edtypes.NewText("")),
		edtypes.NewParagraph(edtypes.NewText("after")),
	)

	editor.HandleKeyDown(ed, editor.KeyEvent{Key: "Enter"})
	assert.Equal(t, []edtypes.BlockType{edtypes.TypeImage, edtypes.TypeParagraph, edtypes.TypeParagraph}, types(ed))
	assert.Equal(t, editor.Path{1, 0}, ed.Selection().Anchor.Path)
}

func render(t *testing.T, el *edtypes.Element, children ...*html.Node) string {
	t.Helper()
	n := NewRegistry().Resolve(el).Render(el, children)
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func TestRender(t *testing.T) {
	typo := edtypes.Typography{FontFamily: "georgia", FontColor: "#FF0000"}
	assert.Equal(t,
		`<h2 data-font-family="georgia" style="font-family: georgia; color: #FF0000">Hi</h2>`,
		render(t, edtypes.NewElement(&edtypes.Heading{Level: 2, Typography: typo}), textNode("Hi")))

	assert.Equal(t,
		`<pre><code class="language-go">x := 1</code></pre>`,
		render(t, edtypes.NewElement(&edtypes.Code{Language: "go"}), textNode("x := 1")))

	assert.Equal(t,
		`<hr style="border-style: dashed; border-color: #000000"/>`,
		render(t, edtypes.NewElement(&edtypes.Separator{Style: "dashed", Color: "#000000"})))

	assert.Equal(t,
		`<img src="/a.png" alt="A" width="800" height="600"/>`,
		render(t, edtypes.NewElement(&edtypes.Image{Image: edtypes.ImageAsset{URL: "/a.png", AlternativeText: "A", Width: 800, Height: 600}})))

	assert.Equal(t,
		`<ol data-indent-level="1"></ol>`,
		render(t, &edtypes.Element{Block: &edtypes.List{Format: edtypes.ListOrdered, IndentLevel: 1}}))

	assert.Equal(t,
		`<a href="https://example.com">site</a>`,
		render(t, edtypes.NewElement(&edtypes.Link{URL: "https://example.com"}), textNode("site")))
}

func TestRender_FontSettingsAsJSON(t *testing.T) {
	p := &edtypes.Paragraph{Typography: edtypes.Typography{FontSettings: []edtypes.FontSetting{
		{Breakpoint: "mobile", FontSize: edtypes.Ptr("14")},
	}}}
	out := render(t, edtypes.NewElement(p))
	assert.Contains(t, out, `data-font-settings="[{&#34;breakpoint&#34;:&#34;mobile&#34;,&#34;fontSize&#34;:&#34;14&#34;`)
}
