package edtypes

import (
	"encoding/json"
	"maps"
	"slices"
)

// BlockType is the value of the "type" attribute of an element.
type BlockType string

const (
	TypeParagraph BlockType = "paragraph"
	TypeHeading   BlockType = "heading"
	TypeQuote     BlockType = "quote"
	TypeList      BlockType = "list"
	TypeListItem  BlockType = "list-item"
	TypeLink      BlockType = "link"
	TypeImage     BlockType = "image"
	TypeCode      BlockType = "code"
	TypeSeparator BlockType = "separator"
)

type ListFormat string

const (
	ListUnordered ListFormat = "unordered"
	ListOrdered   ListFormat = "ordered"
)

// Block is the closed set of element variants.
type Block interface {
	BlockType() BlockType
}

// Typography is the style overlay shared by text blocks.
type Typography struct {
	FontFamily   string
	FontColor    string
	FontSettings []FontSetting
}

// Typo gives access to the overlay of a text block.
func (t *Typography) Typo() *Typography { return t }

// IsZero reports whether no font attribute is set.
func (t Typography) IsZero() bool {
	return t.FontFamily == "" && t.FontColor == "" && len(t.FontSettings) == 0
}

// Styled is implemented by every block that carries typography.
type Styled interface {
	Block
	Typo() *Typography
}

type Paragraph struct {
	Typography
}

type Heading struct {
	Typography
	Level int
}

type Quote struct {
	Typography
}

type List struct {
	Typography
	Format      ListFormat
	IndentLevel int
}

type ListItem struct {
	Typography
}

type Link struct {
	URL string
}

type Image struct {
	Image    ImageAsset
	Settings []ImageSetting
}

type Code struct {
	Language string
}

type Separator struct {
	Style    string
	Color    string
	Settings []SeparatorSetting
}

// Unknown keeps a block whose type is not registered. It behaves like a paragraph.
type Unknown struct {
	Typography
	Name  string
	Attrs map[string]any
}

func (*Paragraph) BlockType() BlockType { return TypeParagraph }
func (*Heading) BlockType() BlockType   { return TypeHeading }
func (*Quote) BlockType() BlockType     { return TypeQuote }
func (*List) BlockType() BlockType      { return TypeList }
func (*ListItem) BlockType() BlockType  { return TypeListItem }
func (*Link) BlockType() BlockType      { return TypeLink }
func (*Image) BlockType() BlockType     { return TypeImage }
func (*Code) BlockType() BlockType      { return TypeCode }
func (*Separator) BlockType() BlockType { return TypeSeparator }
func (u *Unknown) BlockType() BlockType { return BlockType(u.Name) }

// ImageAsset is the media entry an image block points to.
type ImageAsset struct {
	ID              int             `json:"id,omitempty"`
	DocumentID      string          `json:"documentId,omitempty"`
	Name            string          `json:"name,omitempty"`
	AlternativeText string          `json:"alternativeText,omitempty"`
	Caption         string          `json:"caption,omitempty"`
	URL             string          `json:"url"`
	PreviewURL      string          `json:"previewUrl,omitempty"`
	Width           int             `json:"width,omitempty"`
	Height          int             `json:"height,omitempty"`
	Hash            string          `json:"hash,omitempty"`
	Ext             string          `json:"ext,omitempty"`
	Mime            string          `json:"mime,omitempty"`
	Size            float64         `json:"size,omitempty"`
	Provider        string          `json:"provider,omitempty"`
	Formats         json.RawMessage `json:"formats,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
}

// CloneBlock returns a copy of b that shares nothing mutable with it.
func CloneBlock(b Block) Block {
	switch v := b.(type) {
	case *Paragraph:
		c := *v
		c.Typography = v.Typography.clone()
		return &c
	case *Heading:
		c := *v
		c.Typography = v.Typography.clone()
		return &c
	case *Quote:
		c := *v
		c.Typography = v.Typography.clone()
		return &c
	case *List:
		c := *v
		c.Typography = v.Typography.clone()
		return &c
	case *ListItem:
		c := *v
		c.Typography = v.Typography.clone()
		return &c
	case *Link:
		c := *v
		return &c
	case *Image:
		c := *v
		c.Image.Formats = slices.Clone(v.Image.Formats)
		c.Settings = make([]ImageSetting, len(v.Settings))
		for i, s := range v.Settings {
			c.Settings[i] = s.Clone()
		}
		if v.Settings == nil {
			c.Settings = nil
		}
		return &c
	case *Code:
		c := *v
		return &c
	case *Separator:
		c := *v
		c.Settings = make([]SeparatorSetting, len(v.Settings))
		for i, s := range v.Settings {
			c.Settings[i] = s.Clone()
		}
		if v.Settings == nil {
			c.Settings = nil
		}
		return &c
	case *Unknown:
		c := *v
		c.Typography = v.Typography.clone()
		c.Attrs = maps.Clone(v.Attrs)
		return &c
	}
	return b
}

func (t Typography) clone() Typography {
	if t.FontSettings == nil {
		return t
	}
	settings := make([]FontSetting, len(t.FontSettings))
	for i, s := range t.FontSettings {
		settings[i] = s.Clone()
	}
	t.FontSettings = settings
	return t
}

// NewBlock returns an attribute-less block of the given type.
func NewBlock(t BlockType) Block {
	switch t {
	case TypeParagraph:
		return &Paragraph{}
	case TypeHeading:
		return &Heading{Level: 1}
	case TypeQuote:
		return &Quote{}
	case TypeList:
		return &List{Format: ListUnordered}
	case TypeListItem:
		return &ListItem{}
	case TypeLink:
		return &Link{}
	case TypeImage:
		return &Image{}
	case TypeCode:
		return &Code{}
	case TypeSeparator:
		return &Separator{}
	}
	return &Unknown{Name: string(t)}
}
