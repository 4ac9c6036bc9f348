package edtypes

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"
)

var (
	colorReg = regexp.MustCompile(`[rgb()#\s"]`)
)

type Color color.RGBA

// ParseColor разбирает цвет в форматах #RRGGBB, #RRGGBBAA и rgb(r, g, b).
func ParseColor(raw string) (Color, error) {
	if len(raw) < 2 {
		return Color{}, errors.New("unsupported color format")
	}
	isDecRGB := strings.Contains(raw, "rgb(")
	isHex := raw[0] == '#' || raw[1] == '#'
	raw = colorReg.ReplaceAllString(raw, "")
	if isDecRGB {
		c := Color{A: 255}
		for i, n := range strings.Split(raw, ",") {
			nn, err := strconv.ParseUint(n, 10, 8)
			if err != nil {
				return c, err
			}

			switch i {
			case 0:
				c.R = uint8(nn)
			case 1:
				c.G = uint8(nn)
			case 2:
				c.B = uint8(nn)
			case 3:
				c.A = uint8(nn)
			}
		}
		return c, nil
	} else if isHex {
		b, err := hex.DecodeString(raw)
		if err != nil {
			return Color{}, err
		}
		if len(b) < 3 {
			return Color{}, errors.New("unsupported color format")
		}
		c := Color{
			R: b[0],
			G: b[1],
			B: b[2],
			A: 255,
		}
		if len(b) > 3 {
			c.A = b[3]
		}
		return c, nil
	}
	return Color{}, errors.New("unsupported color format")
}

// Hex returns the #RRGGBB form, with alpha only when it is not opaque.
func (c Color) Hex() string {
	if c.A != 255 {
		return "#" + strings.ToUpper(hex.EncodeToString([]byte{c.R, c.G, c.B, c.A}))
	}
	return "#" + strings.ToUpper(hex.EncodeToString([]byte{c.R, c.G, c.B}))
}

func (c Color) MarshalJSON() ([]byte, error) {
	return fmt.Appendf(nil, "%q", c.Hex()), nil
}

func (c *Color) UnmarshalJSON(data []byte) error {
	if string(data) == "null" || string(data) == `""` {
		return nil
	}

	cc, err := ParseColor(string(data))
	*c = cc

	return err
}
