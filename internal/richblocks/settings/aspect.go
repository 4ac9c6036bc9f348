package settings

import (
	"math"
	"strconv"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

// UpdateImageSetting sets the width, height or lock of bp. While the entry is
// locked and the intrinsic size is known, setting one side recomputes the
// other from the intrinsic aspect ratio.
func (c *Config) UpdateImageSetting(img *edtypes.Image, bp string, key ImageKey, value string) []edtypes.ImageSetting {
	res := c.EnsureImageSettings(img)
	i := indexOf(res, bp, func(s edtypes.ImageSetting) string { return s.Breakpoint })
	if i < 0 {
		res = append(res, edtypes.ImageSetting{Breakpoint: bp, ImageAspectRatioLocked: edtypes.Ptr(true)})
		i = len(res) - 1
	}

	if key == ImageLock {
		locked, err := strconv.ParseBool(value)
		if err != nil {
			locked = true
		}
		res[i].ImageAspectRatioLocked = edtypes.Ptr(locked)
		return res
	}

	res[i] = applyAspect(res[i], img.Image.Width, img.Image.Height, key, value)
	return res
}

func applyAspect(s edtypes.ImageSetting, iw, ih int, key ImageKey, value string) edtypes.ImageSetting {
	v := emptyToNil(&value)
	n, ok := leadingInt(value)

	if s.Locked() && iw > 0 && ih > 0 && v != nil && ok {
		ratio := float64(iw) / float64(ih)
		switch key {
		case ImageWidth:
			s.ImageWidth = v
			s.ImageHeight = edtypes.Ptr(strconv.Itoa(int(math.Round(float64(n) / ratio))))
		case ImageHeight:
			s.ImageHeight = v
			s.ImageWidth = edtypes.Ptr(strconv.Itoa(int(math.Round(float64(n) * ratio))))
		}
		return s
	}

	switch key {
	case ImageWidth:
		s.ImageWidth = v
	case ImageHeight:
		s.ImageHeight = v
	}
	return s
}

// leadingInt parses the leading integer of s: "800px" gives 800.
func leadingInt(s string) (int, bool) {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}
