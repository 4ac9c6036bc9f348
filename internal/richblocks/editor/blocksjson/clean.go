package blocksjson

import "github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"

// Clean удаляет атрибуты, не относящиеся к типу узла, и рекурсивно чистит потомков.
// Входные данные не изменяются, повторный вызов ничего не меняет.
//
//   - separator: без атрибутов шрифта;
//   - image, code: без атрибутов шрифта и разделителя;
//   - остальные блоки: без атрибутов разделителя.
func Clean(nodes []RawNode) []RawNode {
	res := make([]RawNode, len(nodes))
	for i, n := range nodes {
		res[i] = cleanNode(n)
	}
	return res
}

// CleanDocument кодирует и очищает документ.
func CleanDocument(doc *edtypes.Document) []RawNode {
	return Clean(Encode(doc))
}

func cleanNode(node map[string]any) RawNode {
	cleaned := make(RawNode, len(node))
	for k, v := range node {
		cleaned[k] = v
	}

	children, isElement := childNodes(node[keyChildren])
	if !isElement {
		return cleaned
	}

	switch edtypes.BlockType(getAttrString(node, keyType)) {
	case edtypes.TypeSeparator:
		deleteKeys(cleaned, fontKeys)
	case edtypes.TypeImage, edtypes.TypeCode:
		deleteKeys(cleaned, fontKeys)
		deleteKeys(cleaned, separatorKeys)
	default:
		deleteKeys(cleaned, separatorKeys)
	}

	cleanedChildren := make([]RawNode, len(children))
	for i, c := range children {
		cleanedChildren[i] = cleanNode(c)
	}
	cleaned[keyChildren] = cleanedChildren
	return cleaned
}

func deleteKeys(node RawNode, keys []string) {
	for _, k := range keys {
		delete(node, k)
	}
}
