// Реализации блоков редактора: сопоставление узлов, конвертация, обработка клавиш и
// описание отрисовки в виде дерева golang.org/x/net/html.
//
// Основные возможности:
//   - Закрытый набор блоков: абзац, заголовки 1-6, цитата, списки, ссылка, изображение, код, разделитель.
//   - Сниппеты для быстрого преобразования блока при наборе.
//   - Обработчики Enter, Backspace и Tab для списков, заголовков и void-блоков.
package blocks

import (
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

// base holds the static description shared by every contract.
type base struct {
	name       string
	typ        edtypes.BlockType
	label      string
	icon       string
	selectable bool
	inSelector bool
	snippets   []string
}

func (b base) Name() string                  { return b.name }
func (b base) Type() edtypes.BlockType       { return b.typ }
func (b base) Label() string                 { return b.label }
func (b base) Icon() string                  { return b.icon }
func (b base) Selectable() bool              { return b.selectable }
func (b base) IsInBlocksSelector() bool      { return b.inSelector }
func (b base) Snippets() []string            { return b.snippets }
func (b base) Match(el *editor.Element) bool { return el.Type() == b.typ }

// NewRegistry returns the registry with every block in selector order.
func NewRegistry() *editor.Registry {
	contracts := []editor.Contract{Paragraph()}
	for level := 1; level <= 6; level++ {
		contracts = append(contracts, Heading(level))
	}
	contracts = append(contracts,
		List(edtypes.ListUnordered),
		List(edtypes.ListOrdered),
		ListItem(),
		Link(),
		Image(),
		Quote(),
		Code(),
		Separator(),
	)
	return editor.NewRegistry(contracts...)
}

// insertParagraphAfter puts an empty paragraph after the top-level block at the
// selection and moves the cursor into it.
func insertParagraphAfter(ed *editor.Editor) {
	sel := ed.Selection()
	if sel == nil || len(sel.Anchor.Path) == 0 {
		return
	}
	at := editor.Path{sel.Anchor.Path[0] + 1}
	ed.WithoutNormalizing(func() {
		ed.InsertNode(at, edtypes.NewParagraph())
		ed.SelectPoint(ed.Start(at))
	})
}
