// Определяет политики безопасности для HTML, который строится из блоков документа. Политики разрешают только те атрибуты и стили, которые порождают сами блоки.
//
// Основные возможности:
//   - Разрешение атрибутов оформления шрифта, разделителя и изображения для конкретных элементов.
//   - Ограничение допустимых значений атрибутов с помощью регулярных выражений.
//   - Ограничение допустимых стилей (цвет, шрифт, стиль линии разделителя).
//   - Использование pre-определенных политик (StrictPolicy, UGCPolicy) для упрощения настройки.
package policy

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var StripTagsPolicy *bluemonday.Policy = bluemonday.StrictPolicy()
var UgcPolicy *bluemonday.Policy = bluemonday.UGCPolicy()

func init() {
	textBlocks := []string{"p", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "ul", "ol", "li"}

	colorRegexp := regexp.MustCompile(`^(#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|rgba?\((\d+),\s*(\d+),\s*(\d+)(,\s*[\d.]+)?\)|inherit)$`)
	fontRegexp := regexp.MustCompile(`^[a-zA-Z0-9 ,'"_-]{1,64}$`)
	borderStyleRegexp := regexp.MustCompile(`^(solid|dashed|dotted|double|groove|ridge|inset|outset|none)$`)
	uppercaseRegexp := regexp.MustCompile(`^uppercase$`)
	languageRegexp := regexp.MustCompile(`^language-[a-z0-9+#-]{1,32}$`)
	indentRegexp := regexp.MustCompile(`^\d{1,2}$`)
	settingsRegexp := regexp.MustCompile(`^\[\s*(\{[^{}]*}\s*(,\s*\{[^{}]*}\s*)*)?]$`)

	UgcPolicy.AllowAttrs("data-font-family").Matching(fontRegexp).OnElements(textBlocks...)
	UgcPolicy.AllowAttrs("data-font-settings").Matching(settingsRegexp).OnElements(textBlocks...)
	UgcPolicy.AllowAttrs("data-indent-level").Matching(indentRegexp).OnElements("ul", "ol")
	UgcPolicy.AllowAttrs("data-separator-settings").Matching(settingsRegexp).OnElements("hr")
	UgcPolicy.AllowAttrs("data-image-settings").Matching(settingsRegexp).OnElements("img")
	UgcPolicy.AllowAttrs("class").Matching(languageRegexp).OnElements("code")

	UgcPolicy.AllowStyles("color").Matching(colorRegexp).OnElements(textBlocks...)
	UgcPolicy.AllowStyles("font-family").Matching(fontRegexp).OnElements(textBlocks...)
	UgcPolicy.AllowStyles("border-style").Matching(borderStyleRegexp).OnElements("hr")
	UgcPolicy.AllowStyles("border-color").Matching(colorRegexp).OnElements("hr")
	UgcPolicy.AllowStyles("text-transform").Matching(uppercaseRegexp).OnElements("span")
}
