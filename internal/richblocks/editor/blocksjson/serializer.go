package blocksjson

import (
	"encoding/json"
	"log/slog"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

// Serialize сериализует документ в JSON массив блоков. Перед записью выполняется очистка.
func Serialize(doc *edtypes.Document) ([]byte, error) {
	return json.Marshal(Clean(Encode(doc)))
}

// SerializeValue возвращает строковое значение поля.
func SerializeValue(doc *edtypes.Document) (string, error) {
	b, err := Serialize(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Encode переводит документ в узлы формата хранения без очистки.
func Encode(doc *edtypes.Document) []RawNode {
	if doc == nil {
		return []RawNode{}
	}
	res := make([]RawNode, 0, len(doc.Children))
	for _, n := range doc.Children {
		if node := serializeNode(n); node != nil {
			res = append(res, node)
		}
	}
	return res
}

func serializeNode(n edtypes.Node) RawNode {
	switch v := n.(type) {
	case *edtypes.Text:
		return serializeText(v)
	case *edtypes.Element:
		return serializeElement(v)
	default:
		slog.Warn("Unknown node for serialization", "node", n)
		return nil
	}
}

func serializeText(t *edtypes.Text) RawNode {
	node := RawNode{keyText: t.Text}
	if t.Type != "" {
		node[keyType] = t.Type
	}
	serializeMarks(node, t.Marks)
	return node
}

// serializeElement пишет атрибуты варианта блока плоско рядом с type.
func serializeElement(el *edtypes.Element) RawNode {
	node := RawNode{keyType: string(el.Type())}

	switch b := el.Block.(type) {
	case *edtypes.Paragraph:
		serializeTypography(node, b.Typography)
	case *edtypes.Heading:
		node["level"] = b.Level
		serializeTypography(node, b.Typography)
	case *edtypes.Quote:
		serializeTypography(node, b.Typography)
	case *edtypes.List:
		node["format"] = string(b.Format)
		if b.IndentLevel > 0 {
			node["indentLevel"] = b.IndentLevel
		}
		serializeTypography(node, b.Typography)
	case *edtypes.ListItem:
		serializeTypography(node, b.Typography)
	case *edtypes.Link:
		node["url"] = b.URL
	case *edtypes.Image:
		node[keyImage] = b.Image
		if b.Settings != nil {
			node[keyImageSettings] = b.Settings
		}
	case *edtypes.Code:
		if b.Language != "" {
			node["language"] = b.Language
		}
	case *edtypes.Separator:
		if b.Style != "" {
			node[keySeparatorStyle] = b.Style
		}
		if b.Color != "" {
			node[keySeparatorColor] = b.Color
		}
		if b.Settings != nil {
			node[keySeparatorSettings] = b.Settings
		}
	case *edtypes.Unknown:
		for k, v := range b.Attrs {
			node[k] = v
		}
		serializeTypography(node, b.Typography)
	case nil:
		node[keyType] = string(edtypes.TypeParagraph)
	default:
		slog.Warn("Unknown block variant for serialization", "type", el.Type())
	}

	children := make([]RawNode, 0, len(el.Children))
	for _, c := range el.Children {
		if child := serializeNode(c); child != nil {
			children = append(children, child)
		}
	}
	node[keyChildren] = children
	return node
}

func serializeTypography(node RawNode, t edtypes.Typography) {
	if t.FontFamily != "" {
		node[keyFontFamily] = t.FontFamily
	}
	if t.FontColor != "" {
		node[keyFontColor] = t.FontColor
	}
	if t.FontSettings != nil {
		node[keyFontSettings] = t.FontSettings
	}
}
