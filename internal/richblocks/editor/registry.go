package editor

import (
	"golang.org/x/net/html"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

// Contract describes one block kind: how it is recognized, offered, converted
// into and rendered.
type Contract interface {
	// Name is unique across the registry, e.g. "heading-two".
	Name() string
	Type() edtypes.BlockType
	Match(el *Element) bool
	Label() string
	Icon() string
	// Selectable contracts appear in the block menu.
	Selectable() bool
	// IsInBlocksSelector reports whether the contract takes part in the block selector.
	IsInBlocksSelector() bool
	Snippets() []string
	// Convert turns the block at the selection into this kind.
	Convert(ed *Editor) (Path, bool)
	Render(el *Element, children []*html.Node) *html.Node
}

// EnterHandler overrides Enter inside the block.
type EnterHandler interface {
	OnEnter(ed *Editor)
}

// BackspaceHandler reports true when it handled Backspace and native deletion must not run.
type BackspaceHandler interface {
	OnBackspace(ed *Editor) bool
}

// TabHandler handles Tab and Shift+Tab.
type TabHandler interface {
	OnTab(ed *Editor, shift bool)
}

// Registry maps elements to their contracts. The paragraph contract is the fallback.
type Registry struct {
	order    []Contract
	byType   map[edtypes.BlockType][]Contract
	byName   map[string]Contract
	fallback Contract
}

// NewRegistry registers contracts in menu order. A later contract with the same
// name replaces the earlier one.
func NewRegistry(contracts ...Contract) *Registry {
	r := &Registry{
		byType: make(map[edtypes.BlockType][]Contract),
		byName: make(map[string]Contract),
	}
	for _, c := range contracts {
		r.Register(c)
	}
	return r
}

func (r *Registry) Register(c Contract) {
	if old, ok := r.byName[c.Name()]; ok {
		for i, o := range r.order {
			if o.Name() == old.Name() {
				r.order[i] = c
			}
		}
		list := r.byType[old.Type()]
		for i, o := range list {
			if o.Name() == old.Name() {
				list[i] = c
			}
		}
	} else {
		r.order = append(r.order, c)
		r.byType[c.Type()] = append(r.byType[c.Type()], c)
	}
	r.byName[c.Name()] = c
	if c.Type() == edtypes.TypeParagraph {
		r.fallback = c
	}
}

// Resolve returns the contract of el, or the fallback for unknown types.
func (r *Registry) Resolve(el *Element) Contract {
	if el != nil {
		for _, c := range r.byType[el.Type()] {
			if c.Match(el) {
				return c
			}
		}
	}
	return r.fallback
}

func (r *Registry) ByName(name string) (Contract, bool) {
	c, ok := r.byName[name]
	return c, ok
}

func (r *Registry) Contracts() []Contract {
	return r.order
}

func (r *Registry) Fallback() Contract {
	return r.fallback
}

// MenuItem is an entry of the block selector.
type MenuItem struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Label    string   `json:"label"`
	Icon     string   `json:"icon"`
	Snippets []string `json:"snippets,omitempty"`
}

// Menu lists the selectable contracts in registration order.
func (r *Registry) Menu() []MenuItem {
	var res []MenuItem
	for _, c := range r.order {
		if !c.Selectable() || !c.IsInBlocksSelector() {
			continue
		}
		res = append(res, MenuItem{
			Name:     c.Name(),
			Type:     string(c.Type()),
			Label:    c.Label(),
			Icon:     c.Icon(),
			Snippets: c.Snippets(),
		})
	}
	return res
}

// Current returns the top-level block at the selection and its contract.
func (ed *Editor) Current() (*Element, Contract, bool) {
	if ed.selection == nil || len(ed.selection.Anchor.Path) == 0 {
		return nil, nil, false
	}
	el, ok := ed.doc.Element(Path{ed.selection.Anchor.Path[0]})
	if !ok {
		return nil, nil, false
	}
	c := ed.registry.Resolve(el)
	return el, c, c != nil
}
