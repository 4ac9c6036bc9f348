package blocksjson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    *edtypes.Document
		wantErr bool
	}{
		{
			name: "paragraph with marks",
			json: `[{"type":"paragraph","children":[{"type":"text","text":"Hello","bold":true,"code":true},{"type":"text","text":" world"}]}]`,
			want: edtypes.NewDocument(
				edtypes.NewParagraph(
					edtypes.NewText("Hello", edtypes.Bold, edtypes.InlineCode),
					edtypes.NewText(" world"),
				),
			),
		},
		{
			name: "legacy leaf keeps empty type",
			json: `[{"type":"paragraph","children":[{"text":"old"}]}]`,
			want: edtypes.NewDocument(
				edtypes.NewParagraph(&edtypes.Text{Text: "old"}),
			),
		},
		{
			name: "heading with typography",
			json: `[{"type":"heading","level":2,"fontFamily":"georgia","fontColor":"#000000","fontSettings":[{"breakpoint":"mobile","fontSize":"12","fontLeading":null,"fontTracking":null,"fontAlignment":"left"}],"children":[{"type":"text","text":"Title"}]}]`,
			want: edtypes.NewDocument(
				edtypes.NewElement(&edtypes.Heading{
					Level: 2,
					Typography: edtypes.Typography{
						FontFamily: "georgia",
						FontColor:  "#000000",
						FontSettings: []edtypes.FontSetting{{
							Breakpoint:    "mobile",
							FontSize:      edtypes.Ptr("12"),
							FontAlignment: edtypes.Ptr("left"),
						}},
					},
				}, edtypes.NewText("Title")),
			),
		},
		{
			name: "list with link",
			json: `[{"type":"list","format":"ordered","indentLevel":1,"children":[{"type":"list-item","children":[{"type":"link","url":"https://strapi.io","children":[{"type":"text","text":"strapi"}]}]}]}]`,
			want: edtypes.NewDocument(
				edtypes.NewElement(&edtypes.List{Format: edtypes.ListOrdered, IndentLevel: 1},
					edtypes.NewElement(&edtypes.ListItem{},
						edtypes.NewElement(&edtypes.Link{URL: "https://strapi.io"}, edtypes.NewText("strapi")),
					),
				),
			),
		},
		{
			name: "separator",
			json: `[{"type":"separator","separatorStyle":"dashed","separatorColor":"#FF0000","separatorSettings":[{"breakpoint":"mobile","separatorSize":2,"separatorOrientation":"horizontal","separatorLength":50}],"children":[{"type":"text","text":""}]}]`,
			want: edtypes.NewDocument(
				edtypes.NewElement(&edtypes.Separator{
					Style: "dashed",
					Color: "#FF0000",
					Settings: []edtypes.SeparatorSetting{{
						Breakpoint:           "mobile",
						SeparatorSize:        edtypes.Ptr(2.0),
						SeparatorOrientation: edtypes.Ptr("horizontal"),
						SeparatorLength:      edtypes.Ptr(50.0),
					}},
				}),
			),
		},
		{
			name: "unknown block keeps attributes",
			json: `[{"type":"callout","tone":"info","fontFamily":"arial","children":[{"type":"text","text":"x"}]}]`,
			want: edtypes.NewDocument(
				edtypes.NewElement(&edtypes.Unknown{
					Name:       "callout",
					Typography: edtypes.Typography{FontFamily: "arial"},
					Attrs:      map[string]any{"tone": "info"},
				}, edtypes.NewText("x")),
			),
		},
		{
			name: "empty array",
			json: `[]`,
			want: edtypes.EmptyDocument(),
		},
		{
			name:    "object instead of array",
			json:    `{"type":"paragraph"}`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			json:    `[{"type":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseJSON(strings.NewReader(tt.json))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc)
		})
	}
}

func TestParseValue_Fallback(t *testing.T) {
	for _, payload := range []string{"", "not json", `{"a":1}`, `"string"`, "42"} {
		t.Run(payload, func(t *testing.T) {
			doc := ParseValue(payload)
			assert.Equal(t, edtypes.EmptyDocument(), doc)
		})
	}
}

func TestParseImage(t *testing.T) {
	doc, err := ParseJSON(strings.NewReader(`[{"type":"image","image":{"url":"/uploads/a.png","width":1600,"height":900,"alternativeText":"a"},"imageSettings":[{"breakpoint":"mobile","imageWidth":"800","imageHeight":"450","imageAspectRatioLocked":true}],"children":[{"type":"text","text":""}]}]`))
	require.NoError(t, err)

	el, ok := doc.Element(edtypes.Path{0})
	require.True(t, ok)
	img, ok := el.Block.(*edtypes.Image)
	require.True(t, ok)

	assert.Equal(t, "/uploads/a.png", img.Image.URL)
	assert.Equal(t, 1600, img.Image.Width)
	assert.Equal(t, 900, img.Image.Height)
	require.Len(t, img.Settings, 1)
	assert.Equal(t, "800", *img.Settings[0].ImageWidth)
	assert.True(t, img.Settings[0].Locked())
}
