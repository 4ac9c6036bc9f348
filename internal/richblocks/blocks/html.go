package blocks

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

func newNode(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func withChildren(n *html.Node, children []*html.Node) *html.Node {
	for _, c := range children {
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		n.AppendChild(c)
	}
	return n
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// typographyAttrs renders the style overlay: family and color inline, the
// breakpoint settings as JSON for the site stylesheet.
func typographyAttrs(b edtypes.Block) []html.Attribute {
	s, ok := b.(edtypes.Styled)
	if !ok {
		return nil
	}
	t := s.Typo()
	var attrs []html.Attribute
	var style []string
	if t.FontFamily != "" {
		style = append(style, "font-family: "+t.FontFamily)
		attrs = append(attrs, attr("data-font-family", t.FontFamily))
	}
	if t.FontColor != "" {
		style = append(style, "color: "+t.FontColor)
	}
	if len(style) > 0 {
		attrs = append(attrs, attr("style", strings.Join(style, "; ")))
	}
	if len(t.FontSettings) > 0 {
		if data, err := json.Marshal(t.FontSettings); err == nil {
			attrs = append(attrs, attr("data-font-settings", string(data)))
		}
	}
	return attrs
}

func jsonAttr(key string, v any) (html.Attribute, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return html.Attribute{}, false
	}
	return attr(key, string(data)), true
}
