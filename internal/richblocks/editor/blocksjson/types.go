// Пакет blocksjson читает и пишет документ в формате хранения поля: JSON массив
// блоков, где атрибуты лежат плоско рядом с type и children, а метки текста
// являются булевыми полями листа.
package blocksjson

// RawNode представляет узел в том виде, в котором он хранится в JSON.
// Используется map, чтобы очистка и неизвестные типы блоков не теряли атрибуты.
type RawNode map[string]any

const (
	keyType     = "type"
	keyChildren = "children"
	keyText     = "text"

	keyFontFamily   = "fontFamily"
	keyFontColor    = "fontColor"
	keyFontSettings = "fontSettings"

	keySeparatorStyle       = "separatorStyle"
	keySeparatorColor       = "separatorColor"
	keySeparatorSettings    = "separatorSettings"
	keySeparatorSize        = "separatorSize"
	keySeparatorOrientation = "separatorOrientation"

	keyImage         = "image"
	keyImageSettings = "imageSettings"
)

var fontKeys = []string{keyFontFamily, keyFontColor, keyFontSettings}

var separatorKeys = []string{
	keySeparatorStyle,
	keySeparatorColor,
	keySeparatorSettings,
	keySeparatorSize,
	keySeparatorOrientation,
}
