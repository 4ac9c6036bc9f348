package editor

import (
	"slices"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

// Convert turns the block at the selection (or the last block when there is
// none) into target. A block inside a list is lifted out of every list first.
// Font family, color and settings survive unless target cannot carry them.
func Convert(ed *Editor, target Block) (Path, bool) {
	var res Path
	ed.WithoutNormalizing(func() {
		var at Path
		if ed.selection != nil {
			at = ed.selection.Anchor.Path
		} else if _, lp, ok := ed.Last(nil); ok {
			at = lp
		}
		if at == nil {
			return
		}

		ref := ed.PathRef(at)
		ed.liftOutOfLists(ref)
		at = ref.Unref()
		if at == nil {
			return
		}

		el, p, ok := ed.Above(at, func(el *Element) bool { return el.Type() != edtypes.TypeLink })
		if !ok {
			return
		}
		ed.apply(SetBlock{Path: p, Old: el.Block, New: convertedBlock(el.Block, target)})
		res = p
	})
	return res, res != nil
}

// liftOutOfLists lifts the list item holding the tracked leaf until no list is above it.
func (ed *Editor) liftOutOfLists(ref *PathRef) {
	for range 32 {
		p := ref.Current()
		if p == nil {
			return
		}
		_, listPath, ok := ed.Above(p, isType(edtypes.TypeList))
		if !ok {
			return
		}
		ed.LiftNode(p[:len(listPath)+1].Clone())
	}
}

// convertedBlock builds the block a conversion sets: target attributes plus
// the typography of src when target is a text block.
func convertedBlock(src, target Block) Block {
	b := edtypes.CloneBlock(target)
	dst, ok := b.(edtypes.Styled)
	if !ok {
		return b
	}
	from, ok := src.(edtypes.Styled)
	if !ok {
		return b
	}

	t := from.Typo()
	if t.FontFamily != "" {
		dst.Typo().FontFamily = t.FontFamily
	}
	if t.FontColor != "" {
		dst.Typo().FontColor = t.FontColor
	}
	if len(t.FontSettings) > 0 {
		settings := make([]edtypes.FontSetting, len(t.FontSettings))
		for i, s := range t.FontSettings {
			settings[i] = s.Clone()
		}
		dst.Typo().FontSettings = slices.Clip(settings)
	}
	return b
}
