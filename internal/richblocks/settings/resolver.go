package settings

import (
	"strconv"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

type FontKey string

const (
	FontSize      FontKey = "fontSize"
	FontLeading   FontKey = "fontLeading"
	FontTracking  FontKey = "fontTracking"
	FontAlignment FontKey = "fontAlignment"
)

type SeparatorKey string

const (
	SeparatorSize        SeparatorKey = "separatorSize"
	SeparatorOrientation SeparatorKey = "separatorOrientation"
	SeparatorLength      SeparatorKey = "separatorLength"
)

type ImageKey string

const (
	ImageWidth  ImageKey = "imageWidth"
	ImageHeight ImageKey = "imageHeight"
	ImageLock   ImageKey = "imageAspectRatioLocked"
)

func findFont(settings []edtypes.FontSetting, bp string) (edtypes.FontSetting, bool) {
	for _, s := range settings {
		if s.Breakpoint == bp {
			return s, true
		}
	}
	return edtypes.FontSetting{Breakpoint: bp}, false
}

func findSeparator(settings []edtypes.SeparatorSetting, bp string) (edtypes.SeparatorSetting, bool) {
	for _, s := range settings {
		if s.Breakpoint == bp {
			return s, true
		}
	}
	return edtypes.SeparatorSetting{Breakpoint: bp}, false
}

func findImage(settings []edtypes.ImageSetting, bp string) (edtypes.ImageSetting, bool) {
	for _, s := range settings {
		if s.Breakpoint == bp {
			return s, true
		}
	}
	return edtypes.ImageSetting{Breakpoint: bp}, false
}

// orString: пустая строка считается незаданной
func orString(v *string, def string) *string {
	if v == nil || *v == "" {
		return edtypes.Ptr(def)
	}
	return edtypes.Ptr(*v)
}

func orFloat(v *float64, def float64) *float64 {
	if v == nil {
		return edtypes.Ptr(def)
	}
	return edtypes.Ptr(*v)
}

func emptyToNil(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return edtypes.Ptr(*v)
}

// ResolveFont returns the stored entry for bp. For the base breakpoint every
// attribute is concrete; other breakpoints keep nulls.
func (c *Config) ResolveFont(settings []edtypes.FontSetting, bp string) edtypes.FontSetting {
	s, _ := findFont(settings, bp)
	if bp != c.Base() {
		return edtypes.FontSetting{
			Breakpoint:    bp,
			FontSize:      emptyToNil(s.FontSize),
			FontLeading:   emptyToNil(s.FontLeading),
			FontTracking:  emptyToNil(s.FontTracking),
			FontAlignment: emptyToNil(s.FontAlignment),
		}
	}
	return edtypes.FontSetting{
		Breakpoint:    bp,
		FontSize:      orString(s.FontSize, c.Defaults.FontSize),
		FontLeading:   orString(s.FontLeading, c.Defaults.FontLeading),
		FontTracking:  orString(s.FontTracking, c.Defaults.FontTracking),
		FontAlignment: orString(s.FontAlignment, c.Defaults.FontAlignment),
	}
}

// ResolveSeparator is ResolveFont for separator settings.
func (c *Config) ResolveSeparator(settings []edtypes.SeparatorSetting, bp string) edtypes.SeparatorSetting {
	s, _ := findSeparator(settings, bp)
	if bp != c.Base() {
		s = s.Clone()
		s.SeparatorOrientation = emptyToNil(s.SeparatorOrientation)
		return s
	}
	return edtypes.SeparatorSetting{
		Breakpoint:           bp,
		SeparatorSize:        orFloat(s.SeparatorSize, c.Defaults.SeparatorSize),
		SeparatorOrientation: orString(s.SeparatorOrientation, c.Defaults.SeparatorOrientation),
		SeparatorLength:      orFloat(s.SeparatorLength, c.Defaults.SeparatorLength),
	}
}

// ResolveImage is ResolveFont for image settings. The base size defaults to the
// intrinsic size of the asset and stays nil when it is unknown.
func (c *Config) ResolveImage(img *edtypes.Image, bp string) edtypes.ImageSetting {
	s, _ := findImage(img.Settings, bp)
	res := edtypes.ImageSetting{
		Breakpoint:             bp,
		ImageWidth:             emptyToNil(s.ImageWidth),
		ImageHeight:            emptyToNil(s.ImageHeight),
		ImageAspectRatioLocked: edtypes.Ptr(s.Locked()),
	}
	if bp != c.Base() {
		return res
	}
	if res.ImageWidth == nil && img.Image.Width > 0 {
		res.ImageWidth = edtypes.Ptr(strconv.Itoa(img.Image.Width))
	}
	if res.ImageHeight == nil && img.Image.Height > 0 {
		res.ImageHeight = edtypes.Ptr(strconv.Itoa(img.Image.Height))
	}
	return res
}

// cascadeOrder returns bp and every smaller breakpoint down to the base.
// An unknown breakpoint resolves as the base.
func (c *Config) cascadeOrder(bp string) []string {
	i := c.breakpointIndex(bp)
	if i < 0 {
		return []string{c.Base()}
	}
	bps := c.Breakpoints()
	res := make([]string, 0, i+1)
	for ; i >= 0; i-- {
		res = append(res, bps[i])
	}
	return res
}

func firstString(vals ...*string) *string {
	for _, v := range vals {
		if v != nil && *v != "" {
			return edtypes.Ptr(*v)
		}
	}
	return nil
}

func firstFloat(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return edtypes.Ptr(*v)
		}
	}
	return nil
}

// CascadeFont returns concrete settings for bp. A null attribute is taken from
// the next smaller breakpoint, the base falls back to the global defaults.
func (c *Config) CascadeFont(settings []edtypes.FontSetting, bp string) edtypes.FontSetting {
	order := c.cascadeOrder(bp)
	base := c.ResolveFont(settings, c.Base())

	res := edtypes.FontSetting{Breakpoint: bp}
	var size, leading, tracking, align []*string
	for _, b := range order[:len(order)-1] {
		s, _ := findFont(settings, b)
		size = append(size, s.FontSize)
		leading = append(leading, s.FontLeading)
		tracking = append(tracking, s.FontTracking)
		align = append(align, s.FontAlignment)
	}
	res.FontSize = firstString(append(size, base.FontSize)...)
	res.FontLeading = firstString(append(leading, base.FontLeading)...)
	res.FontTracking = firstString(append(tracking, base.FontTracking)...)
	res.FontAlignment = firstString(append(align, base.FontAlignment)...)
	return res
}

// CascadeSeparator is CascadeFont for separator settings.
func (c *Config) CascadeSeparator(settings []edtypes.SeparatorSetting, bp string) edtypes.SeparatorSetting {
	order := c.cascadeOrder(bp)
	base := c.ResolveSeparator(settings, c.Base())

	res := edtypes.SeparatorSetting{Breakpoint: bp}
	var size, length []*float64
	var orientation []*string
	for _, b := range order[:len(order)-1] {
		s, _ := findSeparator(settings, b)
		size = append(size, s.SeparatorSize)
		length = append(length, s.SeparatorLength)
		orientation = append(orientation, s.SeparatorOrientation)
	}
	res.SeparatorSize = firstFloat(append(size, base.SeparatorSize)...)
	res.SeparatorLength = firstFloat(append(length, base.SeparatorLength)...)
	res.SeparatorOrientation = firstString(append(orientation, base.SeparatorOrientation)...)
	return res
}

// CascadeImage is CascadeFont for image settings. Width and height cascade as a
// pair so a breakpoint never mixes sizes of different breakpoints.
func (c *Config) CascadeImage(img *edtypes.Image, bp string) edtypes.ImageSetting {
	for _, b := range c.cascadeOrder(bp) {
		s := c.ResolveImage(img, b)
		if s.ImageWidth != nil || s.ImageHeight != nil || b == c.Base() {
			s.Breakpoint = bp
			return s
		}
	}
	return edtypes.ImageSetting{Breakpoint: bp, ImageAspectRatioLocked: edtypes.Ptr(true)}
}

func (c *Config) defaultFont(bp string) edtypes.FontSetting {
	if bp != c.Base() {
		return edtypes.FontSetting{Breakpoint: bp}
	}
	return edtypes.FontSetting{
		Breakpoint:    bp,
		FontSize:      edtypes.Ptr(c.Defaults.FontSize),
		FontLeading:   edtypes.Ptr(c.Defaults.FontLeading),
		FontTracking:  edtypes.Ptr(c.Defaults.FontTracking),
		FontAlignment: edtypes.Ptr(c.Defaults.FontAlignment),
	}
}

func (c *Config) defaultSeparator(bp string) edtypes.SeparatorSetting {
	if bp != c.Base() {
		return edtypes.SeparatorSetting{Breakpoint: bp}
	}
	return edtypes.SeparatorSetting{
		Breakpoint:           bp,
		SeparatorSize:        edtypes.Ptr(c.Defaults.SeparatorSize),
		SeparatorOrientation: edtypes.Ptr(c.Defaults.SeparatorOrientation),
		SeparatorLength:      edtypes.Ptr(c.Defaults.SeparatorLength),
	}
}

func (c *Config) defaultImage(bp string, asset edtypes.ImageAsset) edtypes.ImageSetting {
	s := edtypes.ImageSetting{Breakpoint: bp, ImageAspectRatioLocked: edtypes.Ptr(true)}
	if bp == c.Base() {
		if asset.Width > 0 {
			s.ImageWidth = edtypes.Ptr(strconv.Itoa(asset.Width))
		}
		if asset.Height > 0 {
			s.ImageHeight = edtypes.Ptr(strconv.Itoa(asset.Height))
		}
	}
	return s
}

// EnsureFontSettings returns exactly one entry per configured breakpoint, in
// breakpoint order. Stored entries are kept, missing ones get the defaults.
// Entries of breakpoints that are no longer configured are kept at the end.
func (c *Config) EnsureFontSettings(settings []edtypes.FontSetting) []edtypes.FontSetting {
	return ensure(c.Breakpoints(), settings,
		func(s edtypes.FontSetting) string { return s.Breakpoint },
		func(s edtypes.FontSetting) edtypes.FontSetting {
			return edtypes.FontSetting{
				Breakpoint:    s.Breakpoint,
				FontSize:      emptyToNil(s.FontSize),
				FontLeading:   emptyToNil(s.FontLeading),
				FontTracking:  emptyToNil(s.FontTracking),
				FontAlignment: emptyToNil(s.FontAlignment),
			}
		},
		c.defaultFont)
}

// EnsureSeparatorSettings is EnsureFontSettings for separator settings.
func (c *Config) EnsureSeparatorSettings(settings []edtypes.SeparatorSetting) []edtypes.SeparatorSetting {
	return ensure(c.Breakpoints(), settings,
		func(s edtypes.SeparatorSetting) string { return s.Breakpoint },
		edtypes.SeparatorSetting.Clone,
		c.defaultSeparator)
}

// EnsureImageSettings is EnsureFontSettings for image settings. The base entry
// of a new image gets the intrinsic size of the asset, all entries are locked.
func (c *Config) EnsureImageSettings(img *edtypes.Image) []edtypes.ImageSetting {
	return ensure(c.Breakpoints(), img.Settings,
		func(s edtypes.ImageSetting) string { return s.Breakpoint },
		func(s edtypes.ImageSetting) edtypes.ImageSetting {
			s = s.Clone()
			s.ImageWidth = emptyToNil(s.ImageWidth)
			s.ImageHeight = emptyToNil(s.ImageHeight)
			s.ImageAspectRatioLocked = edtypes.Ptr(s.Locked())
			return s
		},
		func(bp string) edtypes.ImageSetting { return c.defaultImage(bp, img.Image) })
}

func ensure[T any](breakpoints []string, settings []T, key func(T) string, clone func(T) T, def func(string) T) []T {
	stored := make(map[string]T, len(settings))
	var order []string
	for _, s := range settings {
		k := key(s)
		if _, ok := stored[k]; ok {
			continue
		}
		stored[k] = s
		order = append(order, k)
	}

	res := make([]T, 0, len(breakpoints))
	used := make(map[string]bool, len(breakpoints))
	for _, bp := range breakpoints {
		used[bp] = true
		if s, ok := stored[bp]; ok {
			res = append(res, clone(s))
			continue
		}
		res = append(res, def(bp))
	}
	for _, k := range order {
		if !used[k] {
			res = append(res, clone(stored[k]))
		}
	}
	return res
}

// UpdateFontSetting sets one attribute of bp. An empty value means inherit.
func (c *Config) UpdateFontSetting(settings []edtypes.FontSetting, bp string, key FontKey, value string) []edtypes.FontSetting {
	res := c.EnsureFontSettings(settings)
	i := indexOf(res, bp, func(s edtypes.FontSetting) string { return s.Breakpoint })
	if i < 0 {
		res = append(res, c.defaultFont(bp))
		i = len(res) - 1
	}

	var v *string
	if value != "" {
		v = edtypes.Ptr(value)
	}
	switch key {
	case FontSize:
		res[i].FontSize = v
	case FontLeading:
		res[i].FontLeading = v
	case FontTracking:
		res[i].FontTracking = v
	case FontAlignment:
		res[i].FontAlignment = v
	}
	return res
}

// UpdateSeparatorSetting sets one attribute of bp. Size and length are parsed as
// numbers, an empty or invalid value means inherit.
func (c *Config) UpdateSeparatorSetting(settings []edtypes.SeparatorSetting, bp string, key SeparatorKey, value string) []edtypes.SeparatorSetting {
	res := c.EnsureSeparatorSettings(settings)
	i := indexOf(res, bp, func(s edtypes.SeparatorSetting) string { return s.Breakpoint })
	if i < 0 {
		res = append(res, edtypes.SeparatorSetting{Breakpoint: bp})
		i = len(res) - 1
	}

	switch key {
	case SeparatorSize:
		res[i].SeparatorSize = parseFloat(value)
	case SeparatorLength:
		res[i].SeparatorLength = parseFloat(value)
	case SeparatorOrientation:
		res[i].SeparatorOrientation = emptyToNil(&value)
	}
	return res
}

func parseFloat(value string) *float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

func indexOf[T any](settings []T, bp string, key func(T) string) int {
	for i, s := range settings {
		if key(s) == bp {
			return i
		}
	}
	return -1
}
