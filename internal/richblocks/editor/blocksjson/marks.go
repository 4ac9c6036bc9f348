package blocksjson

import "github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"

// parseMarks собирает булевы поля листа в набор меток.
func parseMarks(node map[string]any) edtypes.Marks {
	var marks edtypes.Marks
	for _, m := range edtypes.AllMarks {
		if getAttrBool(node, m.String()) {
			marks = marks.With(m)
		}
	}
	return marks
}

// serializeMarks пишет только активные метки, как это делает редактор на стороне хоста.
func serializeMarks(node RawNode, marks edtypes.Marks) {
	for _, m := range marks.List() {
		node[m.String()] = true
	}
}
