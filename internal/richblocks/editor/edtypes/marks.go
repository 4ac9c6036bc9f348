package edtypes

import "strings"

// Mark is a single text modifier.
type Mark uint16

// Marks is the set of modifiers active on a leaf.
type Marks uint16

const (
	Bold Mark = 1 << iota
	Italic
	Underline
	Strikethrough
	Uppercase
	Superscript
	Subscript
	InlineCode
)

// AllMarks lists every modifier in wire order.
var AllMarks = []Mark{Bold, Italic, Underline, Strikethrough, Uppercase, Superscript, Subscript, InlineCode}

var markNames = map[Mark]string{
	Bold:          "bold",
	Italic:        "italic",
	Underline:     "underline",
	Strikethrough: "strikethrough",
	Uppercase:     "uppercase",
	Superscript:   "superscript",
	Subscript:     "subscript",
	InlineCode:    "code",
}

// String returns the wire name of the mark.
func (m Mark) String() string {
	return markNames[m]
}

// ParseMark resolves a wire name.
func ParseMark(name string) (Mark, bool) {
	for m, n := range markNames {
		if n == name {
			return m, true
		}
	}
	return 0, false
}

func (ms Marks) Has(m Mark) bool {
	return ms&Marks(m) != 0
}

func (ms Marks) With(m Mark) Marks {
	return ms | Marks(m)
}

func (ms Marks) Without(m Mark) Marks {
	return ms &^ Marks(m)
}

// List returns the active marks in wire order.
func (ms Marks) List() []Mark {
	var res []Mark
	for _, m := range AllMarks {
		if ms.Has(m) {
			res = append(res, m)
		}
	}
	return res
}

func (ms Marks) String() string {
	names := make([]string, 0, len(AllMarks))
	for _, m := range ms.List() {
		names = append(names, m.String())
	}
	return strings.Join(names, ",")
}
