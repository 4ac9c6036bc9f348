package mdimport

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/microcosm-cc/bluemonday"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

var (
	pastePolicy = bluemonday.UGCPolicy()

	mdConverter = converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			strikethrough.NewStrikethroughPlugin(),
		),
	)
)

// FromHTML imports pasted HTML. Scripts, styles and unknown markup are dropped
// before the conversion.
func FromHTML(src string) (*edtypes.Document, error) {
	clean := pastePolicy.Sanitize(src)
	if strings.TrimSpace(clean) == "" {
		return &edtypes.Document{}, nil
	}
	mdText, err := mdConverter.ConvertString(clean)
	if err != nil {
		return nil, fmt.Errorf("convert html to markdown: %w", err)
	}
	if strings.TrimSpace(mdText) == "" {
		return &edtypes.Document{}, nil
	}
	return FromMarkdown([]byte(mdText)), nil
}
