package mdimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

func element(t *testing.T, n edtypes.Node) *edtypes.Element {
	t.Helper()
	el, ok := n.(*edtypes.Element)
	require.True(t, ok, "expected element, got %T", n)
	return el
}

func TestFromMarkdownBlocks(t *testing.T) {
	src := "# Title\n\nSome **bold** and *italic* text.\n\n> quoted\n\n---\n\n```go\nfmt.Println(1)\n```\n"
	doc := FromMarkdown([]byte(src))
	require.Len(t, doc.Children, 5)

	h := element(t, doc.Children[0])
	assert.Equal(t, edtypes.TypeHeading, h.Type())
	assert.Equal(t, 1, h.Block.(*edtypes.Heading).Level)
	assert.Equal(t, "Title", edtypes.NodeString(h))

	p := element(t, doc.Children[1])
	assert.Equal(t, edtypes.TypeParagraph, p.Type())
	assert.Equal(t, "Some bold and italic text.", edtypes.NodeString(p))
	var bold, italic bool
	for _, c := range p.Children {
		tx := c.(*edtypes.Text)
		if tx.Text == "bold" {
			bold = tx.Marks.Has(edtypes.Bold)
		}
		if tx.Text == "italic" {
			italic = tx.Marks.Has(edtypes.Italic)
		}
	}
	assert.True(t, bold)
	assert.True(t, italic)

	assert.Equal(t, edtypes.TypeQuote, element(t, doc.Children[2]).Type())
	assert.Equal(t, edtypes.TypeSeparator, element(t, doc.Children[3]).Type())

	code := element(t, doc.Children[4])
	assert.Equal(t, "go", code.Block.(*edtypes.Code).Language)
	assert.Equal(t, "fmt.Println(1)", edtypes.NodeString(code))
}

func TestFromMarkdownLists(t *testing.T) {
	doc := FromMarkdown([]byte("1. one\n2. two\n   - nested\n"))
	require.Len(t, doc.Children, 1)

	list := element(t, doc.Children[0])
	lb := list.Block.(*edtypes.List)
	assert.Equal(t, edtypes.ListOrdered, lb.Format)
	assert.Equal(t, 0, lb.IndentLevel)
	require.Len(t, list.Children, 3)

	assert.Equal(t, "one", edtypes.NodeString(list.Children[0]))
	assert.Equal(t, "two", edtypes.NodeString(list.Children[1]))

	nested := element(t, list.Children[2])
	nb := nested.Block.(*edtypes.List)
	assert.Equal(t, edtypes.ListUnordered, nb.Format)
	assert.Equal(t, 1, nb.IndentLevel)
	assert.Equal(t, "nested", edtypes.NodeString(nested))
}

func TestFromMarkdownLinksAndImages(t *testing.T) {
	doc := FromMarkdown([]byte("see [site](https://example.com) here\n\n![cat](https://example.com/cat.png)\n"))
	require.Len(t, doc.Children, 2)

	p := element(t, doc.Children[0])
	link := element(t, p.Children[1])
	assert.Equal(t, "https://example.com", link.Block.(*edtypes.Link).URL)
	assert.Equal(t, "site", edtypes.NodeString(link))

	img := element(t, doc.Children[1])
	asset := img.Block.(*edtypes.Image).Image
	assert.Equal(t, "https://example.com/cat.png", asset.URL)
	assert.Equal(t, "cat", asset.AlternativeText)
}

func TestFromMarkdownEmpty(t *testing.T) {
	doc := FromMarkdown(nil)
	require.Len(t, doc.Children, 1)
	assert.Equal(t, edtypes.TypeParagraph, element(t, doc.Children[0]).Type())
}

func TestFromHTML(t *testing.T) {
	doc, err := FromHTML(`<h2>Head</h2><p>plain <strong>strong</strong></p><script>alert(1)</script>`)
	require.NoError(t, err)
	require.Len(t, doc.Children, 2)

	h := element(t, doc.Children[0])
	assert.Equal(t, 2, h.Block.(*edtypes.Heading).Level)
	assert.Equal(t, "plain strong", edtypes.NodeString(doc.Children[1]))
	assert.NotContains(t, edtypes.NodeString(doc.Children[1]), "alert")
}

func TestFromHTMLBlank(t *testing.T) {
	doc, err := FromHTML(`<script>x()</script>`)
	require.NoError(t, err)
	assert.Empty(t, doc.Children)
}
