package blocksjson

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

var ErrNotArray = errors.New("blocks value is not a JSON array")

func init() {
	edtypes.BlocksParser = ParseJSON
	edtypes.BlocksSerializer = Serialize
}

// ParseJSON парсит JSON массив блоков в edtypes.Document.
// Пустой массив дает документ из одного пустого параграфа.
func ParseJSON(r io.Reader) (*edtypes.Document, error) {
	var payload any
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, err
	}

	arr, ok := payload.([]any)
	if !ok {
		return nil, ErrNotArray
	}

	nodes, _ := childNodes(arr)
	return Decode(nodes), nil
}

// ParseValue разбирает строковое значение поля. Ошибка разбора или не-массив
// заменяются документом с одним пустым параграфом, ошибка только логируется.
func ParseValue(value string) *edtypes.Document {
	if strings.TrimSpace(value) == "" {
		return edtypes.EmptyDocument()
	}
	doc, err := ParseJSON(strings.NewReader(value))
	if err != nil {
		slog.Error("Parse blocks value, fallback to empty document", "err", err)
		return edtypes.EmptyDocument()
	}
	return doc
}

// Decode собирает документ из уже разобранных узлов.
func Decode(nodes []map[string]any) *edtypes.Document {
	doc := &edtypes.Document{
		Children: make([]edtypes.Node, 0, len(nodes)),
	}
	for _, n := range nodes {
		if node := parseNode(n); node != nil {
			doc.Children = append(doc.Children, node)
		}
	}
	if len(doc.Children) == 0 {
		return edtypes.EmptyDocument()
	}
	return doc
}

// parseNode различает элемент и лист: элемент всегда несет массив children.
func parseNode(node map[string]any) edtypes.Node {
	if node == nil {
		return nil
	}
	typ := getAttrString(node, keyType)
	if _, hasChildren := node[keyChildren]; !hasChildren {
		if _, hasText := node[keyText]; hasText || typ == "" || typ == edtypes.TextType {
			return parseText(node)
		}
	}

	el := &edtypes.Element{Block: parseBlock(edtypes.BlockType(typ), node)}
	if children, ok := childNodes(node[keyChildren]); ok {
		el.Children = make([]edtypes.Node, 0, len(children))
		for _, c := range children {
			if child := parseNode(c); child != nil {
				el.Children = append(el.Children, child)
			}
		}
	}
	return el
}
