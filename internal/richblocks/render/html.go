// Экспорт документа в HTML и Markdown.
//
// Основные возможности:
//   - Сборка HTML дерева из описаний отрисовки блоков (golang.org/x/net/html).
//   - Очистка результата политикой redactor-policy и минификация.
//   - Экспорт в Markdown для превью и уведомлений.
package render

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
	policy "github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/redactor-policy"
)

var minifier *minify.M = minify.New()

func init() {
	minifier.Add("text/html", &mhtml.Minifier{
		KeepEndTags:         true,
		KeepQuotes:          true,
		KeepDefaultAttrVals: true,
	})
}

// markTags wraps a leaf from the innermost tag outwards.
var markTags = []struct {
	mark edtypes.Mark
	atom atom.Atom
}{
	{edtypes.InlineCode, atom.Code},
	{edtypes.Bold, atom.Strong},
	{edtypes.Italic, atom.Em},
	{edtypes.Underline, atom.U},
	{edtypes.Strikethrough, atom.S},
	{edtypes.Superscript, atom.Sup},
	{edtypes.Subscript, atom.Sub},
}

// Nodes builds the HTML tree of every top-level block.
func Nodes(doc *edtypes.Document, reg *editor.Registry) []*html.Node {
	var res []*html.Node
	for _, c := range doc.Children {
		res = append(res, node(c, reg)...)
	}
	return res
}

func node(n edtypes.Node, reg *editor.Registry) []*html.Node {
	switch v := n.(type) {
	case *edtypes.Text:
		return leaf(v)
	case *edtypes.Element:
		var children []*html.Node
		for _, c := range v.Children {
			children = append(children, node(c, reg)...)
		}
		c := reg.Resolve(v)
		if c == nil {
			return children
		}
		return []*html.Node{c.Render(v, children)}
	}
	return nil
}

// leaf renders the text of a leaf with its marks. Line breaks become <br>.
func leaf(t *edtypes.Text) []*html.Node {
	if t.Text == "" {
		return nil
	}
	var res []*html.Node
	for i, line := range strings.Split(t.Text, "\n") {
		if i > 0 {
			res = append(res, element(atom.Br))
		}
		if line != "" {
			res = append(res, &html.Node{Type: html.TextNode, Data: line})
		}
	}

	for _, mt := range markTags {
		if t.Marks.Has(mt.mark) {
			res = []*html.Node{wrap(element(mt.atom), res)}
		}
	}
	if t.Marks.Has(edtypes.Uppercase) {
		span := element(atom.Span)
		span.Attr = []html.Attribute{{Key: "style", Val: "text-transform: uppercase"}}
		res = []*html.Node{wrap(span, res)}
	}
	return res
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func wrap(parent *html.Node, children []*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

// RawHTML renders the document without sanitizing or minifying it.
func RawHTML(doc *edtypes.Document, reg *editor.Registry) (string, error) {
	var sb strings.Builder
	for _, n := range Nodes(doc, reg) {
		if err := html.Render(&sb, n); err != nil {
			return "", fmt.Errorf("render block: %w", err)
		}
	}
	return sb.String(), nil
}

// HTML renders, sanitizes and minifies the document.
func HTML(doc *edtypes.Document, reg *editor.Registry) (string, error) {
	raw, err := RawHTML(doc, reg)
	if err != nil {
		return "", err
	}
	clean := policy.UgcPolicy.Sanitize(raw)
	res, err := minifier.String("text/html", clean)
	if err != nil {
		slog.Warn("Error minify rendered document", "err", err)
		return clean, nil
	}
	return res, nil
}
