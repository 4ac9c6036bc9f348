package edtypes

// FontSetting is the typography override of one breakpoint. Nil means inherit.
type FontSetting struct {
	Breakpoint    string  `json:"breakpoint"`
	FontSize      *string `json:"fontSize"`
	FontLeading   *string `json:"fontLeading"`
	FontTracking  *string `json:"fontTracking"`
	FontAlignment *string `json:"fontAlignment"`
}

// SeparatorSetting is the separator override of one breakpoint.
type SeparatorSetting struct {
	Breakpoint           string   `json:"breakpoint"`
	SeparatorSize        *float64 `json:"separatorSize"`
	SeparatorOrientation *string  `json:"separatorOrientation"`
	SeparatorLength      *float64 `json:"separatorLength"`
}

// ImageSetting is the image size override of one breakpoint.
// A nil ImageAspectRatioLocked reads as locked.
type ImageSetting struct {
	Breakpoint             string  `json:"breakpoint"`
	ImageWidth             *string `json:"imageWidth"`
	ImageHeight            *string `json:"imageHeight"`
	ImageAspectRatioLocked *bool   `json:"imageAspectRatioLocked,omitempty"`
}

func (s FontSetting) Clone() FontSetting {
	return FontSetting{
		Breakpoint:    s.Breakpoint,
		FontSize:      clonePtr(s.FontSize),
		FontLeading:   clonePtr(s.FontLeading),
		FontTracking:  clonePtr(s.FontTracking),
		FontAlignment: clonePtr(s.FontAlignment),
	}
}

func (s SeparatorSetting) Clone() SeparatorSetting {
	return SeparatorSetting{
		Breakpoint:           s.Breakpoint,
		SeparatorSize:        clonePtr(s.SeparatorSize),
		SeparatorOrientation: clonePtr(s.SeparatorOrientation),
		SeparatorLength:      clonePtr(s.SeparatorLength),
	}
}

func (s ImageSetting) Clone() ImageSetting {
	return ImageSetting{
		Breakpoint:             s.Breakpoint,
		ImageWidth:             clonePtr(s.ImageWidth),
		ImageHeight:            clonePtr(s.ImageHeight),
		ImageAspectRatioLocked: clonePtr(s.ImageAspectRatioLocked),
	}
}

// Locked reports the aspect lock, defaulting to true.
func (s ImageSetting) Locked() bool {
	return s.ImageAspectRatioLocked == nil || *s.ImageAspectRatioLocked
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
