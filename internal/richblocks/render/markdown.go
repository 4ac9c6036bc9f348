package render

import (
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
	policy "github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/redactor-policy"
)

// Markdown exports the document. Underline, superscript and subscript have no
// Markdown form and are dropped; uppercase text is written in capitals.
func Markdown(doc *edtypes.Document) (string, error) {
	var sb strings.Builder
	m := md.NewMarkdown(&sb)
	first := true
	for _, c := range doc.Children {
		el, ok := c.(*edtypes.Element)
		if !ok {
			continue
		}
		if !first {
			m.PlainText("")
		}
		first = false
		markdownBlock(m, el)
	}
	if err := m.Build(); err != nil {
		return "", fmt.Errorf("build markdown: %w", err)
	}
	return sb.String(), nil
}

func markdownBlock(m *md.Markdown, el *edtypes.Element) {
	switch b := el.Block.(type) {
	case *edtypes.Heading:
		text := inlineMarkdown(el.Children)
		switch b.Level {
		case 1:
			m.H1(text)
		case 2:
			m.H2(text)
		case 3:
			m.H3(text)
		case 4:
			m.H4(text)
		case 5:
			m.H5(text)
		default:
			m.H6(text)
		}
	case *edtypes.Quote:
		m.Blockquote(inlineMarkdown(el.Children))
	case *edtypes.List:
		items := listItems(el)
		if b.Format == edtypes.ListOrdered {
			m.OrderedList(items...)
		} else {
			m.BulletList(items...)
		}
	case *edtypes.Code:
		lang := b.Language
		if lang == "plaintext" {
			lang = ""
		}
		m.CodeBlocks(md.SyntaxHighlight(lang), edtypes.NodeString(el))
	case *edtypes.Separator:
		m.HorizontalRule()
	case *edtypes.Image:
		alt := policy.StripTagsPolicy.Sanitize(b.Image.AlternativeText)
		m.PlainText(md.Image(alt, b.Image.URL))
	default:
		m.PlainText(inlineMarkdown(el.Children))
	}
}

// listItems returns one entry per item. A nested list continues the entry
// before it, indented under its marker.
func listItems(el *edtypes.Element) []string {
	list, _ := el.Block.(*edtypes.List)
	indent := "  "
	if list != nil && list.Format == edtypes.ListOrdered {
		indent = "   "
	}

	var items []string
	for _, c := range el.Children {
		child, ok := c.(*edtypes.Element)
		if !ok {
			continue
		}
		if nested, ok := child.Block.(*edtypes.List); ok {
			var lines []string
			for i, it := range listItems(child) {
				marker := "- "
				if nested.Format == edtypes.ListOrdered {
					marker = fmt.Sprintf("%d. ", i+1)
				}
				lines = append(lines, indent+marker+strings.ReplaceAll(it, "\n", "\n"+indent))
			}
			if len(items) == 0 {
				items = append(items, "")
			}
			items[len(items)-1] += "\n" + strings.Join(lines, "\n")
			continue
		}
		items = append(items, inlineMarkdown(child.Children))
	}
	return items
}

func inlineMarkdown(nodes []edtypes.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		switch v := n.(type) {
		case *edtypes.Text:
			sb.WriteString(leafMarkdown(v))
		case *edtypes.Element:
			text := inlineMarkdown(v.Children)
			if l, ok := v.Block.(*edtypes.Link); ok {
				sb.WriteString(md.Link(text, l.URL))
			} else {
				sb.WriteString(text)
			}
		}
	}
	return sb.String()
}

func leafMarkdown(t *edtypes.Text) string {
	s := t.Text
	if strings.TrimSpace(s) == "" {
		return strings.ReplaceAll(s, "\n", "  \n")
	}
	if t.Marks.Has(edtypes.Uppercase) {
		s = strings.ToUpper(s)
	}
	switch {
	case t.Marks.Has(edtypes.InlineCode):
		s = md.Code(s)
	default:
		if t.Marks.Has(edtypes.Strikethrough) {
			s = md.Strikethrough(s)
		}
		if t.Marks.Has(edtypes.Italic) {
			s = md.Italic(s)
		}
		if t.Marks.Has(edtypes.Bold) {
			s = md.Bold(s)
		}
	}
	// жесткий перенос строки
	return strings.ReplaceAll(s, "\n", "  \n")
}

// Text returns the plain text of the document, one block per line.
func Text(doc *edtypes.Document) string {
	lines := make([]string, 0, len(doc.Children))
	for _, c := range doc.Children {
		lines = append(lines, edtypes.NodeString(c))
	}
	return strings.Join(lines, "\n")
}
