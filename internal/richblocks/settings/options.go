package settings

// PluginOptions are the field options the host stores with the field definition.
type PluginOptions struct {
	DisableDefaultFonts       bool `json:"disableDefaultFonts"`
	DisableDefaultColors      bool `json:"disableDefaultColors"`
	DisableDefaultViewports   bool `json:"disableDefaultViewports"`
	DisableDefaultSizes       bool `json:"disableDefaultSizes"`
	DisableDefaultLineHeights bool `json:"disableDefaultLineHeights"`
	DisableDefaultTracking    bool `json:"disableDefaultTracking"`
	DisableDefaultAlignments  bool `json:"disableDefaultAlignments"`

	CustomFontsPresets       string `json:"customFontsPresets,omitempty" validate:"omitempty,stringPreset"`
	CustomColorsPresets      string `json:"customColorsPresets,omitempty" validate:"omitempty,stringPreset"`
	CustomViewportsPresets   string `json:"customViewportsPresets,omitempty" validate:"omitempty,stringPreset"`
	CustomSizesPresets       string `json:"customSizesPresets,omitempty" validate:"omitempty,numericPreset"`
	CustomLineHeightsPresets string `json:"customLineHeightsPresets,omitempty" validate:"omitempty,numericPreset"`
	CustomTrackingPresets    string `json:"customTrackingPresets,omitempty" validate:"omitempty,signedNumericPreset"`
	CustomAlignmentsPresets  string `json:"customAlignmentsPresets,omitempty" validate:"omitempty,stringPreset"`
}

// Presets are the option lists offered by the toolbar.
type Presets struct {
	Viewports   []Option `json:"viewports"`
	Colors      []Option `json:"colors"`
	Fonts       []Option `json:"fonts"`
	Sizes       []Option `json:"sizes"`
	LineHeights []Option `json:"lineHeights"`
	Tracking    []Option `json:"tracking"`
	Alignments  []Option `json:"alignments"`

	SeparatorStyles       []Option `json:"separatorStyles"`
	SeparatorOrientations []Option `json:"separatorOrientations"`
}

// Defaults are the values a base breakpoint falls back to.
type Defaults struct {
	Viewport      string `json:"viewport"`
	Color         string `json:"color"`
	FontFamily    string `json:"fontFamily"`
	FontSize      string `json:"fontSize"`
	FontLeading   string `json:"fontLeading"`
	FontTracking  string `json:"fontTracking"`
	FontAlignment string `json:"fontAlignment"`

	SeparatorStyle       string  `json:"separatorStyle"`
	SeparatorSize        float64 `json:"separatorSize"`
	SeparatorLength      float64 `json:"separatorLength"`
	SeparatorOrientation string  `json:"separatorOrientation"`
}

// Config is the resolved styling configuration of one field.
type Config struct {
	Presets  Presets  `json:"presets"`
	Defaults Defaults `json:"defaults"`
}

// Resolve builds option lists and defaults from the field options.
func (o PluginOptions) Resolve() *Config {
	p := Presets{
		Viewports:   OptionsWithFallback(ViewportOptions, o.CustomViewportsPresets, o.DisableDefaultViewports),
		Colors:      OptionsWithFallback(ColorOptions, o.CustomColorsPresets, o.DisableDefaultColors),
		Fonts:       OptionsWithFallback(FontFamilyOptions, o.CustomFontsPresets, o.DisableDefaultFonts),
		Sizes:       OptionsWithFallback(FontSizeOptions, o.CustomSizesPresets, o.DisableDefaultSizes),
		LineHeights: OptionsWithFallback(FontLeadingOptions, o.CustomLineHeightsPresets, o.DisableDefaultLineHeights),
		Tracking:    OptionsWithFallback(FontTrackingOptions, o.CustomTrackingPresets, o.DisableDefaultTracking),
		Alignments:  OptionsWithFallback(FontAlignmentOptions, o.CustomAlignmentsPresets, o.DisableDefaultAlignments),

		SeparatorStyles:       SeparatorStyleOptions,
		SeparatorOrientations: SeparatorOrientationOptions,
	}

	return &Config{
		Presets: p,
		Defaults: Defaults{
			Viewport:      DefaultValue(p.Viewports, DefaultViewport),
			Color:         DefaultValue(p.Colors, DefaultColor),
			FontFamily:    DefaultValue(p.Fonts, DefaultFontFamily),
			FontSize:      DefaultValue(p.Sizes, DefaultFontSize),
			FontLeading:   DefaultValue(p.LineHeights, DefaultFontLeading),
			FontTracking:  DefaultValue(p.Tracking, DefaultFontTracking),
			FontAlignment: DefaultValue(p.Alignments, DefaultFontAlignment),

			SeparatorStyle:       DefaultSeparatorStyle,
			SeparatorSize:        DefaultSeparatorSize,
			SeparatorLength:      DefaultSeparatorLength,
			SeparatorOrientation: DefaultSeparatorOrientation,
		},
	}
}

// DefaultConfig is the configuration of a field without options.
func DefaultConfig() *Config {
	return PluginOptions{}.Resolve()
}

// Breakpoints returns the configured breakpoints, smallest first.
func (c *Config) Breakpoints() []string {
	return Values(c.Presets.Viewports)
}

// Base returns the base breakpoint.
func (c *Config) Base() string {
	if len(c.Presets.Viewports) == 0 {
		return c.Defaults.Viewport
	}
	return c.Presets.Viewports[0].Value
}

func (c *Config) breakpointIndex(bp string) int {
	for i, o := range c.Presets.Viewports {
		if o.Value == bp {
			return i
		}
	}
	return -1
}
