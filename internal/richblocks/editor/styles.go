package editor

import (
	"reflect"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/settings"
)

// InitStyles gives every styled element one setting entry per configured
// breakpoint, with the defaults on the base breakpoint. Separators without a
// style or color get the defaults too. It returns the number of changed elements.
func (ed *Editor) InitStyles() int {
	type change struct {
		path Path
		old  Block
		new  Block
	}
	var changes []change
	ed.doc.Walk(func(n Node, p Path) bool {
		el, ok := n.(*Element)
		if !ok {
			return false
		}
		if b := ed.initBlock(el.Block); !reflect.DeepEqual(b, el.Block) {
			changes = append(changes, change{path: p.Clone(), old: el.Block, new: b})
		}
		return true
	})
	if len(changes) == 0 {
		return 0
	}
	ed.WithoutNormalizing(func() {
		for _, c := range changes {
			ed.apply(SetBlock{Path: c.path, Old: c.old, New: c.new})
		}
	})
	return len(changes)
}

func (ed *Editor) initBlock(b Block) Block {
	nb := edtypes.CloneBlock(b)
	switch v := nb.(type) {
	case *edtypes.Separator:
		if v.Style == "" {
			v.Style = ed.config.Defaults.SeparatorStyle
		}
		if v.Color == "" {
			v.Color = ed.config.Defaults.Color
		}
		v.Settings = ed.config.EnsureSeparatorSettings(v.Settings)
	case *edtypes.Image:
		v.Settings = ed.config.EnsureImageSettings(v)
	case edtypes.Styled:
		t := v.Typo()
		t.FontSettings = ed.config.EnsureFontSettings(t.FontSettings)
	}
	return nb
}

// styledBlocks returns the paths of the styled text blocks touched by the selection.
func (ed *Editor) styledBlocks() []Path {
	if ed.selection == nil {
		return nil
	}
	return ed.elementsInRange(*ed.selection, func(el *Element) bool {
		if !ed.isTextBlock(el) || ed.IsVoid(el) {
			return false
		}
		_, ok := el.Block.(edtypes.Styled)
		return ok
	})
}

// updateStyled runs fn on a copy of the typography of each selected styled block.
func (ed *Editor) updateStyled(fn func(t *edtypes.Typography)) bool {
	paths := ed.styledBlocks()
	if len(paths) == 0 {
		return false
	}
	ed.WithoutNormalizing(func() {
		for _, p := range paths {
			el, ok := ed.doc.Element(p)
			if !ok {
				continue
			}
			nb := edtypes.CloneBlock(el.Block)
			fn(nb.(edtypes.Styled).Typo())
			ed.apply(SetBlock{Path: p, Old: el.Block, New: nb})
		}
	})
	return true
}

// SetFontFamily sets the font family of the selected blocks. An empty value
// removes the override.
func (ed *Editor) SetFontFamily(family string) bool {
	return ed.updateStyled(func(t *edtypes.Typography) {
		t.FontFamily = family
	})
}

func (ed *Editor) SetFontColor(color string) bool {
	return ed.updateStyled(func(t *edtypes.Typography) {
		t.FontColor = color
	})
}

// SetFontSetting sets one font attribute of breakpoint bp on the selected blocks.
func (ed *Editor) SetFontSetting(bp string, key settings.FontKey, value string) bool {
	return ed.updateStyled(func(t *edtypes.Typography) {
		t.FontSettings = ed.config.UpdateFontSetting(t.FontSettings, bp, key, value)
	})
}

// voidAtSelection returns the void block of type bt at the selection.
func (ed *Editor) voidAtSelection(bt edtypes.BlockType) (*Element, Path, bool) {
	if ed.selection == nil {
		return nil, nil, false
	}
	el, p, ok := ed.Above(ed.selection.Anchor.Path, isType(bt))
	return el, p, ok
}

func (ed *Editor) updateSeparator(fn func(s *edtypes.Separator)) bool {
	el, p, ok := ed.voidAtSelection(edtypes.TypeSeparator)
	if !ok {
		return false
	}
	nb := edtypes.CloneBlock(el.Block).(*edtypes.Separator)
	fn(nb)
	ed.Apply(SetBlock{Path: p, Old: el.Block, New: nb})
	return true
}

func (ed *Editor) SetSeparatorStyle(style string) bool {
	return ed.updateSeparator(func(s *edtypes.Separator) {
		s.Style = style
	})
}

func (ed *Editor) SetSeparatorColor(color string) bool {
	return ed.updateSeparator(func(s *edtypes.Separator) {
		s.Color = color
	})
}

// SetSeparatorSetting sets size, length or orientation of breakpoint bp.
func (ed *Editor) SetSeparatorSetting(bp string, key settings.SeparatorKey, value string) bool {
	return ed.updateSeparator(func(s *edtypes.Separator) {
		s.Settings = ed.config.UpdateSeparatorSetting(s.Settings, bp, key, value)
	})
}

func (ed *Editor) updateImage(fn func(img *edtypes.Image)) bool {
	el, p, ok := ed.voidAtSelection(edtypes.TypeImage)
	if !ok {
		return false
	}
	nb := edtypes.CloneBlock(el.Block).(*edtypes.Image)
	fn(nb)
	ed.Apply(SetBlock{Path: p, Old: el.Block, New: nb})
	return true
}

// SetImageSetting sets width, height or aspect lock of breakpoint bp. A locked
// entry keeps the intrinsic aspect ratio.
func (ed *Editor) SetImageSetting(bp string, key settings.ImageKey, value string) bool {
	return ed.updateImage(func(img *edtypes.Image) {
		img.Settings = ed.config.UpdateImageSetting(img, bp, key, value)
	})
}

// SetImageAsset points the image at the selection to asset. Stored sizes are
// dropped so the base breakpoint starts from the intrinsic size of the new asset.
func (ed *Editor) SetImageAsset(asset edtypes.ImageAsset) bool {
	return ed.updateImage(func(img *edtypes.Image) {
		img.Image = asset
		img.Settings = nil
		img.Settings = ed.config.EnsureImageSettings(img)
	})
}

// SetCodeLanguage sets the language of the code block at the selection.
func (ed *Editor) SetCodeLanguage(lang string) bool {
	if ed.selection == nil {
		return false
	}
	el, p, ok := ed.Above(ed.selection.Anchor.Path, isType(edtypes.TypeCode))
	if !ok {
		return false
	}
	ed.Apply(SetBlock{Path: p, Old: el.Block, New: &edtypes.Code{Language: lang}})
	return true
}
