// Package editor реализует безголовый движок редактора блоков: применение операций,
// нормализацию, выделение, историю и команды поверх модели edtypes.
//
// Основные возможности:
//   - Неизменяемые операции с обратными операциями и трансформацией путей.
//   - Нормализация по "грязным" путям после каждой транзакции.
//   - Цепочка плагинов: вставка текста, вставка данных, применение операций, нормализация.
//   - Реестр блоков, конвертация, клавиатурные команды и перетаскивание.
package editor

import (
	"log/slog"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/settings"
)

type (
	Document = edtypes.Document
	Node     = edtypes.Node
	Element  = edtypes.Element
	Text     = edtypes.Text
	Path     = edtypes.Path
	Point    = edtypes.Point
	Range    = edtypes.Range
	Block    = edtypes.Block
)

// Editor holds one document, its selection and the machinery that keeps it normalized.
// An Editor is not safe for concurrent use.
type Editor struct {
	doc       *Document
	selection *Range
	marks     *edtypes.Marks
	focused   bool

	registry *Registry
	plugins  []Plugin
	config   *settings.Config
	logger   *slog.Logger

	snippetConversion bool

	dirty     []Path
	dirtyKeys map[string]struct{}
	suspended int

	pathRefs  map[*PathRef]struct{}
	pointRefs map[*pointRef]struct{}

	history history
}

type Option func(*Editor)

// WithRegistry sets the block registry used by keyboard handling and conversion.
func WithRegistry(r *Registry) Option {
	return func(ed *Editor) {
		ed.registry = r
	}
}

// WithPlugins replaces the default plugin stack. The last plugin is the outermost.
func WithPlugins(plugins ...Plugin) Option {
	return func(ed *Editor) {
		ed.plugins = plugins
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(ed *Editor) {
		ed.logger = l
	}
}

// WithSnippetConversion turns matched snippets into block conversions.
func WithSnippetConversion(on bool) Option {
	return func(ed *Editor) {
		ed.snippetConversion = on
	}
}

// WithConfig sets the styling configuration of the field.
func WithConfig(cfg *settings.Config) Option {
	return func(ed *Editor) {
		ed.config = cfg
	}
}

// WithSelection sets the initial selection. Invalid ranges are ignored.
func WithSelection(r Range) Option {
	return func(ed *Editor) {
		ed.selection = &r
	}
}

// New opens doc in a new editor. A nil or empty document becomes a single empty
// paragraph. The document is normalized before New returns.
func New(doc *Document, opts ...Option) *Editor {
	if doc == nil {
		doc = edtypes.EmptyDocument()
	}
	ed := &Editor{
		doc:       &Document{Children: doc.Children},
		plugins:   DefaultPlugins(),
		registry:  NewRegistry(),
		config:    settings.DefaultConfig(),
		logger:    slog.Default(),
		dirtyKeys: make(map[string]struct{}),
		pathRefs:  make(map[*PathRef]struct{}),
		pointRefs: make(map[*pointRef]struct{}),
	}
	for _, opt := range opts {
		opt(ed)
	}

	if ed.selection != nil && !ed.validRange(*ed.selection) {
		ed.selection = nil
	}

	ed.normalizeAll()
	ed.history.saving = true
	return ed
}

// Document returns the current document. The returned value must not be modified.
func (ed *Editor) Document() *Document {
	return ed.doc
}

// Selection returns a copy of the selection or nil.
func (ed *Editor) Selection() *Range {
	if ed.selection == nil {
		return nil
	}
	r := ed.selection.Clone()
	return &r
}

func (ed *Editor) Registry() *Registry {
	return ed.registry
}

func (ed *Editor) Config() *settings.Config {
	return ed.config
}

func (ed *Editor) Logger() *slog.Logger {
	return ed.logger
}

func (ed *Editor) Focused() bool {
	return ed.focused
}

func (ed *Editor) Focus() {
	ed.focused = true
}

// Blur drops focus. The selection is kept.
func (ed *Editor) Blur() {
	ed.focused = false
}

// SnippetConversion reports whether matched snippets convert the block.
func (ed *Editor) SnippetConversion() bool {
	return ed.snippetConversion
}

// IsVoid reports whether el renders without editable content.
func (ed *Editor) IsVoid(el *Element) bool {
	for _, p := range ed.plugins {
		if m, ok := p.(VoidMatcher); ok && m.IsVoid(el) {
			return true
		}
	}
	return false
}

// IsInline reports whether el flows inside text.
func (ed *Editor) IsInline(el *Element) bool {
	for _, p := range ed.plugins {
		if m, ok := p.(InlineMatcher); ok && m.IsInline(el) {
			return true
		}
	}
	return false
}

// WithoutNormalizing runs fn as one transaction: normalization is deferred until the
// outermost call returns and the operations form one undo step.
func (ed *Editor) WithoutNormalizing(fn func()) {
	ed.suspended++
	func() {
		defer func() { ed.suspended-- }()
		fn()
	}()
	if ed.suspended == 0 {
		ed.normalize()
		ed.history.close()
	}
}

// Apply applies one operation through the plugin chain.
func (ed *Editor) Apply(op Operation) {
	ed.WithoutNormalizing(func() {
		ed.apply(op)
	})
}

func (ed *Editor) validRange(r Range) bool {
	return ed.validPoint(r.Anchor) && ed.validPoint(r.Focus)
}

func (ed *Editor) validPoint(pt Point) bool {
	t, ok := ed.doc.Leaf(pt.Path)
	if !ok {
		return false
	}
	return pt.Offset >= 0 && pt.Offset <= runeLen(t.Text)
}
