package editor

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

// KeyEvent is a key press as the host reports it.
type KeyEvent struct {
	Key   string `json:"key"`
	Shift bool   `json:"shiftKey,omitempty"`
	Ctrl  bool   `json:"ctrlKey,omitempty"`
	Meta  bool   `json:"metaKey,omitempty"`
	Alt   bool   `json:"altKey,omitempty"`
}

// Effects tell the host what happened besides document changes.
type Effects struct {
	PreventDefault bool   `json:"preventDefault"`
	Blur           bool   `json:"blur,omitempty"`
	Announcement   string `json:"announcement,omitempty"`
	Snippet        string `json:"snippet,omitempty"`
	Converted      bool   `json:"converted,omitempty"`
}

// exitMarks are cleared after a line break at the end of a block.
var exitMarks = []edtypes.Mark{
	edtypes.Uppercase,
	edtypes.Superscript,
	edtypes.Subscript,
	edtypes.Bold,
	edtypes.Italic,
	edtypes.Underline,
	edtypes.Strikethrough,
	edtypes.InlineCode,
}

// HandleKeyDown runs the editor key bindings for ev. It does not perform the
// native action of the key; see Dispatch.
func HandleKeyDown(ed *Editor, ev KeyEvent) Effects {
	var eff Effects
	switch ev.Key {
	case "Enter":
		eff.PreventDefault = true
		handleEnter(ed, ev)
		return eff
	case "Backspace":
		eff.PreventDefault = handleBackspace(ed)
		return eff
	case "Tab":
		eff.PreventDefault = handleTab(ed, ev)
		return eff
	case "Escape":
		ed.Blur()
		eff.Blur = true
		return eff
	}

	if ev.Ctrl || ev.Meta {
		for _, m := range Modifiers {
			if m.Matches(ev) {
				ed.ToggleMark(m.Mark)
				eff.PreventDefault = true
				return eff
			}
		}
		if ev.Shift && (ev.Key == "ArrowUp" || ev.Key == "ArrowDown") {
			if from, to, ok := MoveCurrentBlock(ed, ev.Key == "ArrowUp"); ok {
				eff.PreventDefault = true
				eff.Announcement = MovedAnnouncement(from, to, len(ed.doc.Children))
			}
			return eff
		}
	}

	if ev.Key == " " {
		if c, trigger, ok := CheckSnippet(ed); ok {
			eff.Snippet = trigger
			if ed.snippetConversion {
				convertSnippet(ed, c)
				eff.Converted = true
				eff.PreventDefault = true
			} else {
				ed.logger.Debug("snippet matched", "snippet", trigger, "block", c.Name())
			}
		}
	}
	return eff
}

// Dispatch runs HandleKeyDown and then the native action of the key unless it
// was prevented: deletion for Backspace, insertion for printable characters.
func Dispatch(ed *Editor, ev KeyEvent) Effects {
	eff := HandleKeyDown(ed, ev)
	if eff.PreventDefault || eff.Blur {
		return eff
	}
	switch {
	case ev.Key == "Backspace":
		ed.DeleteBackward()
	case !ev.Ctrl && !ev.Meta && utf8.RuneCountInString(ev.Key) == 1:
		ed.InsertText(ev.Key)
	}
	return eff
}

// MovedAnnouncement is the screen reader text after a block moved from one index to another.
func MovedAnnouncement(from, to, total int) string {
	return fmt.Sprintf("block.%d, moved. New position in the editor: %d of %d.", from+1, to+1, total)
}

func handleEnter(ed *Editor, ev KeyEvent) {
	el, c, ok := ed.Current()
	if !ok {
		PressEnterTwiceToExit(ed)
		return
	}
	if ev.Shift && el.Type() != edtypes.TypeImage {
		ed.insertTextTransform("\n")
		return
	}
	if h, ok := c.(EnterHandler); ok {
		h.OnEnter(ed)
		return
	}
	if h, ok := ed.registry.Fallback().(EnterHandler); ok {
		h.OnEnter(ed)
		return
	}
	PressEnterTwiceToExit(ed)
}

func handleBackspace(ed *Editor) bool {
	_, c, ok := ed.Current()
	if !ok {
		return false
	}
	if h, ok := c.(BackspaceHandler); ok {
		return h.OnBackspace(ed)
	}
	return false
}

func handleTab(ed *Editor, ev KeyEvent) bool {
	_, c, ok := ed.Current()
	if !ok {
		return false
	}
	if h, ok := c.(TabHandler); ok {
		h.OnTab(ed, ev.Shift)
		return true
	}
	return false
}

// PressEnterTwiceToExit inserts a line break. A second Enter on an empty last
// line removes that line break and starts a paragraph after the block.
func PressEnterTwiceToExit(ed *Editor) {
	if ed.selection == nil {
		return
	}
	anchor := ed.selection.Anchor
	el, p, ok := ed.Above(anchor.Path, func(el *Element) bool { return el.Type() != edtypes.TypeLink })
	if !ok {
		return
	}
	isEnd := ed.IsEnd(anchor, p)

	last, isText := el.Children[len(el.Children)-1].(*Text)
	if isEnd && isText && strings.HasSuffix(last.Text, "\n") {
		ed.WithoutNormalizing(func() {
			ed.DeleteBackward()
			ed.InsertBlock(edtypes.NewParagraph())
		})
		return
	}

	ed.WithoutNormalizing(func() {
		ed.insertTextTransform("\n")
		if isEnd {
			for _, m := range exitMarks {
				ed.RemoveMark(m)
			}
		}
	})
}

// MoveCurrentBlock moves the top-level block at the selection one position up or
// down. It reports the old and new index.
func MoveCurrentBlock(ed *Editor, up bool) (int, int, bool) {
	if ed.selection == nil {
		return 0, 0, false
	}
	start := ed.selection.Start()
	if len(start.Path) == 0 {
		return 0, 0, false
	}
	from, n := start.Path[0], len(ed.doc.Children)
	to := from
	if up && from > 0 {
		to = from - 1
	}
	if !up && from < n-1 {
		to = from + 1
	}
	if to == from {
		return from, to, false
	}
	ed.MoveNode(Path{from}, Path{to})
	return from, to, true
}

// CheckSnippet matches the text between the line start and the cursor against
// the snippets of the registered contracts.
func CheckSnippet(ed *Editor) (Contract, string, bool) {
	if ed.selection == nil || !ed.selection.IsCollapsed() {
		return nil, "", false
	}
	anchor := ed.selection.Anchor
	_, bp, ok := ed.TextBlock(anchor.Path)
	if !ok {
		return nil, "", false
	}
	before := ed.String(Range{Anchor: ed.Start(bp), Focus: anchor})
	if i := strings.LastIndex(before, "\n"); i >= 0 {
		before = before[i+1:]
	}
	trigger := strings.TrimSpace(before)
	if trigger == "" {
		return nil, "", false
	}
	for _, c := range ed.registry.Contracts() {
		if slices.Contains(c.Snippets(), trigger) {
			return c, trigger, true
		}
	}
	return nil, "", false
}

// convertSnippet removes the typed trigger and converts the block.
func convertSnippet(ed *Editor, c Contract) {
	ed.WithoutNormalizing(func() {
		anchor := ed.selection.Anchor
		_, bp, ok := ed.TextBlock(anchor.Path)
		if !ok {
			return
		}
		off := ed.blockOffset(bp, anchor)
		text := []rune(ed.doc.String(bp))
		lineStart := off
		for lineStart > 0 && text[lineStart-1] != '\n' {
			lineStart--
		}
		if lineStart < off {
			ed.DeleteRange(Range{Anchor: ed.pointAtBlockOffset(bp, lineStart), Focus: anchor})
		}
		c.Convert(ed)
	})
}
