package blocksjson

import (
	"log/slog"
	"slices"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

// parseText преобразует лист в edtypes.Text. Отсутствующий type сохраняется пустым,
// его восстанавливает нормализатор.
func parseText(node map[string]any) *edtypes.Text {
	text := &edtypes.Text{
		Type: getAttrString(node, keyType),
		Text: getAttrString(node, keyText),
	}
	text.Marks = parseMarks(node)
	return text
}

// parseBlock разбирает атрибуты элемента по его типу.
func parseBlock(typ edtypes.BlockType, node map[string]any) edtypes.Block {
	switch typ {
	case edtypes.TypeParagraph, "":
		return &edtypes.Paragraph{Typography: parseTypography(node)}
	case edtypes.TypeHeading:
		return parseHeading(node)
	case edtypes.TypeQuote:
		return &edtypes.Quote{Typography: parseTypography(node)}
	case edtypes.TypeList:
		return parseList(node)
	case edtypes.TypeListItem:
		return &edtypes.ListItem{Typography: parseTypography(node)}
	case edtypes.TypeLink:
		return &edtypes.Link{URL: getAttrString(node, "url")}
	case edtypes.TypeImage:
		return parseImage(node)
	case edtypes.TypeCode:
		return &edtypes.Code{Language: getAttrString(node, "language")}
	case edtypes.TypeSeparator:
		return parseSeparator(node)
	default:
		slog.Warn("Unknown block type, keep as paragraph-like block", "type", typ)
		return parseUnknown(typ, node)
	}
}

func parseTypography(node map[string]any) edtypes.Typography {
	t := edtypes.Typography{
		FontFamily: getAttrString(node, keyFontFamily),
		FontColor:  getAttrString(node, keyFontColor),
	}
	var settings []edtypes.FontSetting
	if decodeAttr(node, keyFontSettings, &settings) {
		t.FontSettings = settings
	}
	return t
}

func parseHeading(node map[string]any) *edtypes.Heading {
	level := getAttrInt(node, "level")
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return &edtypes.Heading{
		Typography: parseTypography(node),
		Level:      level,
	}
}

func parseList(node map[string]any) *edtypes.List {
	format := edtypes.ListFormat(getAttrString(node, "format"))
	if format != edtypes.ListOrdered {
		format = edtypes.ListUnordered
	}
	return &edtypes.List{
		Typography:  parseTypography(node),
		Format:      format,
		IndentLevel: getAttrInt(node, "indentLevel"),
	}
}

func parseImage(node map[string]any) *edtypes.Image {
	img := &edtypes.Image{}
	decodeAttr(node, keyImage, &img.Image)
	var settings []edtypes.ImageSetting
	if decodeAttr(node, keyImageSettings, &settings) {
		img.Settings = settings
	}
	return img
}

func parseSeparator(node map[string]any) *edtypes.Separator {
	sep := &edtypes.Separator{
		Style: getAttrString(node, keySeparatorStyle),
		Color: getAttrString(node, keySeparatorColor),
	}
	var settings []edtypes.SeparatorSetting
	if decodeAttr(node, keySeparatorSettings, &settings) {
		sep.Settings = settings
	}
	return sep
}

func parseUnknown(typ edtypes.BlockType, node map[string]any) *edtypes.Unknown {
	u := &edtypes.Unknown{
		Name:       string(typ),
		Typography: parseTypography(node),
	}
	for k, v := range node {
		if k == keyType || k == keyChildren || slices.Contains(fontKeys, k) {
			continue
		}
		if u.Attrs == nil {
			u.Attrs = make(map[string]any)
		}
		u.Attrs[k] = v
	}
	return u
}
