package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/blocks"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

func sampleDocument() *edtypes.Document {
	return edtypes.NewDocument(
		edtypes.NewParagraph(edtypes.NewText("Hello "), edtypes.NewText("world", edtypes.Bold)),
		edtypes.NewElement(&edtypes.Heading{Level: 2}, edtypes.NewText("Title")),
		edtypes.NewElement(&edtypes.List{Format: edtypes.ListOrdered},
			edtypes.NewElement(&edtypes.ListItem{}, edtypes.NewText("one")),
			edtypes.NewElement(&edtypes.ListItem{}, edtypes.NewText("two")),
		),
		edtypes.NewElement(&edtypes.Code{Language: "go"}, edtypes.NewText("x := 1")),
		edtypes.NewElement(&edtypes.Separator{}),
		edtypes.NewElement(&edtypes.Image{Image: edtypes.ImageAsset{URL: "/a.png", AlternativeText: "A"}}),
	)
}

func TestRawHTML(t *testing.T) {
	tests := []struct {
		name string
		doc  *edtypes.Document
		want string
	}{
		{
			"marks",
			edtypes.NewDocument(edtypes.NewParagraph(
				edtypes.NewText("Hello "),
				edtypes.NewText("world", edtypes.Bold, edtypes.Italic),
			)),
			`<p>Hello <em><strong>world</strong></em></p>`,
		},
		{
			"uppercase outside",
			edtypes.NewDocument(edtypes.NewParagraph(edtypes.NewText("up", edtypes.Uppercase, edtypes.InlineCode))),
			`<p><span style="text-transform: uppercase"><code>up</code></span></p>`,
		},
		{
			"line break",
			edtypes.NewDocument(edtypes.NewParagraph(edtypes.NewText("a\nb"))),
			`<p>a<br/>b</p>`,
		},
		{
			"link",
			edtypes.NewDocument(edtypes.NewParagraph(
				edtypes.NewText(""),
				edtypes.NewElement(&edtypes.Link{URL: "https://example.com"}, edtypes.NewText("site")),
				edtypes.NewText(""),
			)),
			`<p><a href="https://example.com">site</a></p>`,
		},
		{
			"list",
			edtypes.NewDocument(edtypes.NewElement(&edtypes.List{Format: edtypes.ListUnordered},
				edtypes.NewElement(&edtypes.ListItem{}, edtypes.NewText("one")),
			)),
			`<ul><li>one</li></ul>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RawHTML(tt.doc, blocks.NewRegistry())
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestHTML_Sanitized(t *testing.T) {
	typo := edtypes.Typography{FontFamily: "georgia", FontColor: "#FF0000"}
	doc := edtypes.NewDocument(
		edtypes.NewElement(&edtypes.Heading{Level: 1, Typography: typo}, edtypes.NewText("Title")),
		edtypes.NewParagraph(
			edtypes.NewText(""),
			edtypes.NewElement(&edtypes.Link{URL: "javascript:alert(1)"}, edtypes.NewText("click")),
			edtypes.NewText(""),
		),
		edtypes.NewElement(&edtypes.Image{Image: edtypes.ImageAsset{URL: "javascript:alert(2)"}}),
		edtypes.NewElement(&edtypes.Code{Language: "go"}, edtypes.NewText("<script>alert(3)</script>")),
	)

	out, err := HTML(doc, blocks.NewRegistry())
	require.NoError(t, err)
	assert.Contains(t, out, `data-font-family="georgia"`)
	assert.Contains(t, out, "click")
	assert.Contains(t, out, `class="language-go"`)
	assert.NotContains(t, out, "javascript")
	assert.NotContains(t, out, "<script>")
}

func TestHTML_Document(t *testing.T) {
	out, err := HTML(sampleDocument(), blocks.NewRegistry())
	require.NoError(t, err)
	for _, want := range []string{"<strong>world</strong>", "<h2>Title</h2>", "<li>one</li>", "<hr", `src="/a.png"`} {
		assert.Contains(t, out, want)
	}
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown(sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, "Hello **world**\n\n## Title\n\n1. one\n2. two\n\n```go\nx := 1\n```\n\n---\n\n![A](/a.png)", out)
}

func TestMarkdown_NestedListsAndLinks(t *testing.T) {
	doc := edtypes.NewDocument(
		edtypes.NewElement(&edtypes.List{Format: edtypes.ListUnordered},
			edtypes.NewElement(&edtypes.ListItem{}, edtypes.NewText("a")),
			edtypes.NewElement(&edtypes.List{Format: edtypes.ListOrdered, IndentLevel: 1},
				edtypes.NewElement(&edtypes.ListItem{}, edtypes.NewText("b")),
			),
		),
		edtypes.NewParagraph(
			edtypes.NewText("see "),
			edtypes.NewElement(&edtypes.Link{URL: "https://example.com"}, edtypes.NewText("site")),
			edtypes.NewText("\nnext", edtypes.Underline),
		),
	)

	out, err := Markdown(doc)
	require.NoError(t, err)
	assert.Equal(t, "- a\n  1. b\n\nsee [site](https://example.com)  \nnext", out)
}

func TestText(t *testing.T) {
	assert.Equal(t, "Hello world\nTitle\nonetwo\nx := 1\n\n", Text(sampleDocument()))
}
