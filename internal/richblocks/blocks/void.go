package blocks

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

type linkContract struct{ base }

// Link is inline and only created through the link commands.
func Link() editor.Contract {
	return linkContract{base{
		name:  "link",
		typ:   edtypes.TypeLink,
		label: "Link",
		icon:  "link",
	}}
}

func (linkContract) Convert(*editor.Editor) (editor.Path, bool) {
	return nil, false
}

func (linkContract) Render(el *editor.Element, children []*html.Node) *html.Node {
	var href string
	if l, ok := el.Block.(*edtypes.Link); ok {
		href = l.URL
	}
	return withChildren(newNode(atom.A, attr("href", href)), children)
}

type imageContract struct{ base }

func Image() editor.Contract {
	return imageContract{base{
		name:       "image",
		typ:        edtypes.TypeImage,
		label:      "Image",
		icon:       "image",
		selectable: true,
		inSelector: true,
	}}
}

// Convert turns the block into an image without an asset; the host fills it in later.
func (imageContract) Convert(ed *editor.Editor) (editor.Path, bool) {
	return editor.Convert(ed, &edtypes.Image{})
}

func (imageContract) Render(el *editor.Element, _ []*html.Node) *html.Node {
	img, ok := el.Block.(*edtypes.Image)
	if !ok {
		return newNode(atom.Img)
	}
	attrs := []html.Attribute{
		attr("src", img.Image.URL),
		attr("alt", img.Image.AlternativeText),
	}
	if img.Image.Width > 0 && img.Image.Height > 0 {
		attrs = append(attrs, attr("width", strconv.Itoa(img.Image.Width)), attr("height", strconv.Itoa(img.Image.Height)))
	}
	if len(img.Settings) > 0 {
		if a, ok := jsonAttr("data-image-settings", img.Settings); ok {
			attrs = append(attrs, a)
		}
	}
	return newNode(atom.Img, attrs...)
}

func (imageContract) OnEnter(ed *editor.Editor) {
	insertParagraphAfter(ed)
}

// CodeLanguage is an entry of the code block language list.
type CodeLanguage struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var CodeLanguages = []CodeLanguage{
	{"asm", "Assembly"},
	{"bash", "Bash"},
	{"c", "C"},
	{"clojure", "Clojure"},
	{"cobol", "COBOL"},
	{"cpp", "C++"},
	{"csharp", "C#"},
	{"css", "CSS"},
	{"dart", "Dart"},
	{"dockerfile", "Docker"},
	{"elixir", "Elixir"},
	{"erlang", "Erlang"},
	{"fortran", "Fortran"},
	{"go", "Go"},
	{"graphql", "GraphQL"},
	{"haskell", "Haskell"},
	{"haxe", "Haxe"},
	{"ini", "INI"},
	{"java", "Java"},
	{"javascript", "JavaScript"},
	{"jsx", "JavaScript (React)"},
	{"json", "JSON"},
	{"julia", "Julia"},
	{"kotlin", "Kotlin"},
	{"latex", "LaTeX"},
	{"lua", "Lua"},
	{"markdown", "Markdown"},
	{"matlab", "MATLAB"},
	{"makefile", "Makefile"},
	{"objectivec", "Objective-C"},
	{"perl", "Perl"},
	{"php", "PHP"},
	{"plaintext", "Plain text"},
	{"powershell", "PowerShell"},
	{"python", "Python"},
	{"r", "R"},
	{"ruby", "Ruby"},
	{"rust", "Rust"},
	{"sas", "SAS"},
	{"scala", "Scala"},
	{"scheme", "Scheme"},
	{"shell", "Shell"},
	{"sql", "SQL"},
	{"stata", "Stata"},
	{"swift", "Swift"},
	{"typescript", "TypeScript"},
	{"tsx", "TypeScript (React)"},
	{"vbnet", "VB.NET"},
	{"xml", "XML"},
	{"yaml", "YAML"},
}

type codeContract struct{ base }

func Code() editor.Contract {
	return codeContract{base{
		name:       "code",
		typ:        edtypes.TypeCode,
		label:      "Code block",
		icon:       "code-block",
		selectable: true,
		inSelector: true,
		snippets:   []string{"```"},
	}}
}

func (codeContract) Convert(ed *editor.Editor) (editor.Path, bool) {
	return editor.Convert(ed, &edtypes.Code{Language: "plaintext"})
}

func (codeContract) Render(el *editor.Element, children []*html.Node) *html.Node {
	lang := "plaintext"
	if c, ok := el.Block.(*edtypes.Code); ok && c.Language != "" {
		lang = c.Language
	}
	code := withChildren(newNode(atom.Code, attr("class", "language-"+lang)), children)
	return withChildren(newNode(atom.Pre), []*html.Node{code})
}

func (codeContract) OnEnter(ed *editor.Editor) {
	editor.PressEnterTwiceToExit(ed)
}

type separatorContract struct{ base }

func Separator() editor.Contract {
	return separatorContract{base{
		name:       "separator",
		typ:        edtypes.TypeSeparator,
		label:      "Separator",
		icon:       "minus",
		selectable: true,
		inSelector: true,
		snippets:   []string{"---", "***"},
	}}
}

// Convert inserts a separator at the selection instead of changing the block.
func (separatorContract) Convert(ed *editor.Editor) (editor.Path, bool) {
	return ed.InsertBlock(edtypes.NewElement(&edtypes.Separator{}))
}

func (separatorContract) Render(el *editor.Element, _ []*html.Node) *html.Node {
	s, ok := el.Block.(*edtypes.Separator)
	if !ok {
		return newNode(atom.Hr)
	}
	var style []string
	if s.Style != "" {
		style = append(style, "border-style: "+s.Style)
	}
	if s.Color != "" {
		style = append(style, "border-color: "+s.Color)
	}
	var attrs []html.Attribute
	if len(style) > 0 {
		attrs = append(attrs, attr("style", strings.Join(style, "; ")))
	}
	if len(s.Settings) > 0 {
		if a, ok := jsonAttr("data-separator-settings", s.Settings); ok {
			attrs = append(attrs, a)
		}
	}
	return newNode(atom.Hr, attrs...)
}

func (separatorContract) OnEnter(ed *editor.Editor) {
	insertParagraphAfter(ed)
}
