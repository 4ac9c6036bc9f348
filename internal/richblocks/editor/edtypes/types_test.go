package edtypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

func TestPath(t *testing.T) {
	p := edtypes.Path{1, 2}

	assert.Equal(t, edtypes.Path{1}, p.Parent())
	assert.Equal(t, edtypes.Path{1, 3}, p.Next())
	assert.Equal(t, edtypes.Path{1, 1}, p.Previous())
	assert.Equal(t, edtypes.Path{1, 2, 0}, p.Child(0))
	assert.Equal(t, []edtypes.Path{{}, {1}, {1, 2}}, p.Levels())

	assert.True(t, edtypes.Path{1}.IsAncestorOf(p))
	assert.False(t, p.IsAncestorOf(p))
	assert.True(t, edtypes.Path{0}.EndsBefore(p))
	assert.True(t, edtypes.Path{1, 1}.EndsBefore(edtypes.Path{1, 2, 5}))
	assert.False(t, edtypes.Path{1, 2}.EndsBefore(p))
	assert.True(t, edtypes.Path{1, 1}.IsSibling(p))

	parent := p.Parent()
	_ = append(parent, 9)
	assert.Equal(t, edtypes.Path{1, 2}, p, "parent must not alias the child path")
}

func TestRange_Edges(t *testing.T) {
	r := edtypes.Range{
		Anchor: edtypes.Point{Path: edtypes.Path{2, 0}, Offset: 1},
		Focus:  edtypes.Point{Path: edtypes.Path{0, 0}, Offset: 4},
	}
	assert.True(t, r.IsBackward())
	assert.Equal(t, edtypes.Path{0, 0}, r.Start().Path)
	assert.Equal(t, edtypes.Path{2, 0}, r.End().Path)
	assert.False(t, r.IsCollapsed())
	assert.True(t, edtypes.Collapsed(r.Anchor).IsCollapsed())
}

func TestMarks(t *testing.T) {
	var ms edtypes.Marks
	ms = ms.With(edtypes.Bold).With(edtypes.InlineCode)

	assert.True(t, ms.Has(edtypes.Bold))
	assert.False(t, ms.Has(edtypes.Italic))
	assert.Equal(t, "bold,code", ms.String())
	assert.Equal(t, []edtypes.Mark{edtypes.Bold}, ms.Without(edtypes.InlineCode).List())

	m, ok := edtypes.ParseMark("strikethrough")
	require.True(t, ok)
	assert.Equal(t, edtypes.Strikethrough, m)
}

func TestCloneBlock_Independent(t *testing.T) {
	orig := &edtypes.Paragraph{Typography: edtypes.Typography{
		FontFamily:   "arial",
		FontSettings: []edtypes.FontSetting{{Breakpoint: "mobile", FontSize: edtypes.Ptr("12")}},
	}}

	clone := edtypes.CloneBlock(orig).(*edtypes.Paragraph)
	*clone.FontSettings[0].FontSize = "48"
	clone.FontFamily = "georgia"

	assert.Equal(t, "12", *orig.FontSettings[0].FontSize)
	assert.Equal(t, "arial", orig.FontFamily)
}

func TestStyled(t *testing.T) {
	var b edtypes.Block = &edtypes.Heading{Level: 2}
	s, ok := b.(edtypes.Styled)
	require.True(t, ok)
	s.Typo().FontFamily = "georgia"
	assert.Equal(t, "georgia", b.(*edtypes.Heading).FontFamily)

	for _, b := range []edtypes.Block{&edtypes.Code{}, &edtypes.Image{}, &edtypes.Separator{}, &edtypes.Link{}} {
		_, ok := b.(edtypes.Styled)
		assert.False(t, ok, "%s must not carry typography", b.BlockType())
	}
}

func TestDocument_Navigation(t *testing.T) {
	doc := edtypes.NewDocument(
		edtypes.NewParagraph(edtypes.NewText("ab"), edtypes.NewElement(&edtypes.Link{URL: "u"}, edtypes.NewText("cd"))),
		edtypes.NewElement(&edtypes.Code{}, edtypes.NewText("ef")),
	)

	leaf, ok := doc.Leaf(edtypes.Path{0, 1, 0})
	require.True(t, ok)
	assert.Equal(t, "cd", leaf.Text)

	_, ok = doc.Get(edtypes.Path{3})
	assert.False(t, ok)

	assert.Equal(t, "abcdef", doc.String(nil))
	assert.Equal(t, []edtypes.Path{{0, 0}, {0, 1, 0}}, doc.Leaves(edtypes.Path{0}))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "#0057FF", want: "#0057FF"},
		{raw: "#0057ff80", want: "#0057FF80"},
		{raw: "rgb(255, 0, 0)", want: "#FF0000"},
		{raw: "navy", wantErr: true},
		{raw: "#", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c, err := edtypes.ParseColor(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Hex())
		})
	}
}
