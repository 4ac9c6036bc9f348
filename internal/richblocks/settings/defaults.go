package settings

// Option is one entry of a select list.
type Option struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

var ColorOptions = []Option{
	{Label: "Black", Value: "#000000"},
	{Label: "White", Value: "#FFFFFF"},
	{Label: "Gray", Value: "#808080"},
	{Label: "Light Gray", Value: "#D3D3D3"},
	{Label: "Dark Gray", Value: "#A9A9A9"},

	{Label: "Red", Value: "#FF0000"},
	{Label: "Pink", Value: "#FFC0CB"},
	{Label: "Light Pink", Value: "#FFB6C1"},
	{Label: "Dark Pink", Value: "#FF1493"},

	{Label: "Orange", Value: "#FFA500"},
	{Label: "Light Orange", Value: "#FFDAB9"},
	{Label: "Dark Orange", Value: "#FF8C00"},

	{Label: "Yellow", Value: "#FFFF00"},
	{Label: "Light Yellow", Value: "#FFFFE0"},
	{Label: "Dark Yellow", Value: "#FFD700"},

	{Label: "Green", Value: "#00FF00"},
	{Label: "Light Green", Value: "#90EE90"},
	{Label: "Dark Green", Value: "#006B3C"},

	{Label: "Blue", Value: "#0000FF"},
	{Label: "Light Blue", Value: "#ADD8E6"},
	{Label: "Dark Blue", Value: "#000080"},

	{Label: "Purple", Value: "#800080"},
	{Label: "Light Purple", Value: "#E6E6FA"},
	{Label: "Dark Purple", Value: "#800080"},

	{Label: "Brown", Value: "#A52A2A"},
	{Label: "Light Brown", Value: "#F5DEB3"},
	{Label: "Dark Brown", Value: "#A52A2A"},
}

var FontFamilyOptions = []Option{
	{Label: "Arial", Value: "arial"},
	{Label: "Open Sans", Value: "open-sans"},
	{Label: "Times New Roman", Value: "times-new-roman"},
	{Label: "Georgia", Value: "georgia"},
}

var FontSizeOptions = sizeOptions("12")

var FontLeadingOptions = sizeOptions("24")

var FontTrackingOptions = []Option{
	{Label: "-100", Value: "-100"},
	{Label: "-75", Value: "-75"},
	{Label: "-50", Value: "-50"},
	{Label: "-25", Value: "-25"},
	{Label: "-10", Value: "-10"},
	{Label: "-5", Value: "-5"},
	{Label: "0", Value: "0", IsDefault: true},
	{Label: "5", Value: "5"},
	{Label: "10", Value: "10"},
	{Label: "25", Value: "25"},
	{Label: "50", Value: "50"},
	{Label: "75", Value: "75"},
	{Label: "100", Value: "100"},
	{Label: "200", Value: "200"},
}

var FontAlignmentOptions = []Option{
	{Label: "Left", Value: "left"},
	{Label: "Center", Value: "center"},
	{Label: "Right", Value: "right"},
	{Label: "Justify", Value: "justify"},
}

var ViewportOptions = []Option{
	{Label: "Mobile", Value: "mobile"},
	{Label: "Tablet", Value: "tablet"},
	{Label: "Desktop", Value: "desktop"},
}

var SeparatorStyleOptions = []Option{
	{Label: "Solid", Value: "solid", IsDefault: true},
	{Label: "Dashed", Value: "dashed"},
	{Label: "Dotted", Value: "dotted"},
	{Label: "Double", Value: "double"},
}

var SeparatorOrientationOptions = []Option{
	{Label: "Horizontal", Value: "horizontal", IsDefault: true},
	{Label: "Vertical", Value: "vertical"},
}

// Global defaults. The base breakpoint falls back to these.
var (
	DefaultColor    = ColorOptions[0].Value
	DefaultViewport = ViewportOptions[0].Value

	DefaultFontFamily    = FontFamilyOptions[0].Value
	DefaultFontSize      = FontSizeOptions[0].Value
	DefaultFontLeading   = FontLeadingOptions[0].Value
	DefaultFontAlignment = FontAlignmentOptions[0].Value
	DefaultFontTracking  = FontTrackingOptions[6].Value

	DefaultSeparatorStyle       = SeparatorStyleOptions[0].Value
	DefaultSeparatorOrientation = SeparatorOrientationOptions[0].Value
)

const (
	DefaultSeparatorSize   = 1.0
	DefaultSeparatorLength = 100.0
)

func sizeOptions(def string) []Option {
	values := []string{"6", "8", "9", "10", "11", "12", "14", "16", "18", "24", "30", "48", "60", "72", "150", "300"}
	res := make([]Option, len(values))
	for i, v := range values {
		res[i] = Option{Label: v, Value: v, IsDefault: v == def}
	}
	return res
}
