// Импорт Markdown и HTML в блоки документа.
package mdimport

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// FromMarkdown parses src into a block document. Constructs without a block
// counterpart (tables, raw HTML) are skipped. The result is not normalized.
func FromMarkdown(src []byte) *edtypes.Document {
	root := md.Parser().Parse(text.NewReader(src))
	b := builder{src: src}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		b.block(n)
	}
	if len(b.out) == 0 {
		return edtypes.EmptyDocument()
	}
	return &edtypes.Document{Children: b.out}
}

type builder struct {
	src []byte
	out []edtypes.Node
}

func (b *builder) block(n ast.Node) {
	switch v := n.(type) {
	case *ast.Heading:
		b.out = append(b.out, edtypes.NewElement(&edtypes.Heading{Level: min(max(v.Level, 1), 6)}, b.inlines(v, 0)...))
	case *ast.Paragraph, *ast.TextBlock:
		b.paragraph(n, &edtypes.Paragraph{})
	case *ast.Blockquote:
		var children []edtypes.Node
		for c := v.FirstChild(); c != nil; c = c.NextSibling() {
			if len(children) > 0 {
				children = append(children, edtypes.NewText("\n"))
			}
			children = append(children, b.inlines(c, 0)...)
		}
		b.out = append(b.out, edtypes.NewElement(&edtypes.Quote{}, children...))
	case *ast.List:
		b.out = append(b.out, b.list(v, 0))
	case *ast.FencedCodeBlock:
		b.out = append(b.out, edtypes.NewElement(&edtypes.Code{Language: string(v.Language(b.src))}, edtypes.NewText(b.lines(v))))
	case *ast.CodeBlock:
		b.out = append(b.out, edtypes.NewElement(&edtypes.Code{Language: "plaintext"}, edtypes.NewText(b.lines(v))))
	case *ast.ThematicBreak:
		b.out = append(b.out, edtypes.NewElement(&edtypes.Separator{}))
	}
}

// paragraph emits a block of inline content. Images inside it become image
// blocks and split the paragraph around them.
func (b *builder) paragraph(n ast.Node, blk edtypes.Block) {
	var run []edtypes.Node
	flush := func() {
		if len(run) > 0 && !blankRun(run) {
			b.out = append(b.out, edtypes.NewElement(edtypes.CloneBlock(blk), run...))
		}
		run = nil
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if img, ok := c.(*ast.Image); ok {
			flush()
			b.out = append(b.out, imageBlock(img, b.src))
			continue
		}
		run = append(run, b.inline(c, 0)...)
	}
	flush()
}

func (b *builder) list(l *ast.List, indent int) *edtypes.Element {
	format := edtypes.ListUnordered
	if l.IsOrdered() {
		format = edtypes.ListOrdered
	}
	var children []edtypes.Node
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		var content []edtypes.Node
		var nested []edtypes.Node
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, b.list(sub, indent+1))
				continue
			}
			if len(content) > 0 {
				content = append(content, edtypes.NewText("\n"))
			}
			content = append(content, b.inlines(c, 0)...)
		}
		children = append(children, edtypes.NewElement(&edtypes.ListItem{}, content...))
		children = append(children, nested...)
	}
	return edtypes.NewElement(&edtypes.List{Format: format, IndentLevel: indent}, children...)
}

func (b *builder) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(b.src))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (b *builder) inlines(n ast.Node, marks edtypes.Marks) []edtypes.Node {
	var res []edtypes.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		res = append(res, b.inline(c, marks)...)
	}
	return res
}

func (b *builder) inline(n ast.Node, marks edtypes.Marks) []edtypes.Node {
	switch v := n.(type) {
	case *ast.Text:
		s := string(v.Segment.Value(b.src))
		if v.SoftLineBreak() {
			s += " "
		}
		if v.HardLineBreak() {
			s += "\n"
		}
		return []edtypes.Node{&edtypes.Text{Type: edtypes.TextType, Text: s, Marks: marks}}
	case *ast.String:
		return []edtypes.Node{&edtypes.Text{Type: edtypes.TextType, Text: string(v.Value), Marks: marks}}
	case *ast.CodeSpan:
		var sb strings.Builder
		for c := v.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				sb.Write(t.Segment.Value(b.src))
			}
		}
		return []edtypes.Node{&edtypes.Text{Type: edtypes.TextType, Text: sb.String(), Marks: marks.With(edtypes.InlineCode)}}
	case *ast.Emphasis:
		if v.Level >= 2 {
			return b.inlines(v, marks.With(edtypes.Bold))
		}
		return b.inlines(v, marks.With(edtypes.Italic))
	case *extast.Strikethrough:
		return b.inlines(v, marks.With(edtypes.Strikethrough))
	case *ast.Link:
		children := b.inlines(v, marks)
		return []edtypes.Node{edtypes.NewElement(&edtypes.Link{URL: string(v.Destination)}, children...)}
	case *ast.AutoLink:
		url := string(v.URL(b.src))
		return []edtypes.Node{edtypes.NewElement(&edtypes.Link{URL: url}, &edtypes.Text{Type: edtypes.TextType, Text: string(v.Label(b.src)), Marks: marks})}
	case *ast.Image:
		// картинка внутри ссылки или заголовка остаётся текстом
		return []edtypes.Node{&edtypes.Text{Type: edtypes.TextType, Text: altText(v, b.src), Marks: marks}}
	case *ast.RawHTML:
		return nil
	}
	return b.inlines(n, marks)
}

func imageBlock(img *ast.Image, src []byte) *edtypes.Element {
	alt := altText(img, src)
	return edtypes.NewElement(&edtypes.Image{Image: edtypes.ImageAsset{
		URL:             string(img.Destination),
		AlternativeText: alt,
		Name:            alt,
		Caption:         string(img.Title),
	}})
}

func altText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

func blankRun(nodes []edtypes.Node) bool {
	for _, n := range nodes {
		if strings.TrimSpace(edtypes.NodeString(n)) != "" {
			return false
		}
		if _, ok := n.(*edtypes.Element); ok {
			return false
		}
	}
	return true
}
