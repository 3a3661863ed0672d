package style

import "image/color"

// namedColors are the color keywords understood by Color.
var namedColors = map[Property]color.Color{
	"transparent": color.Transparent,
	"black":       color.Black,
	"white":       color.White,
	"red":         color.RGBA{0xff, 0, 0, 0xff},
	"green":       color.RGBA{0, 0x80, 0, 0xff},
	"blue":        color.RGBA{0, 0, 0xff, 0xff},
	"gray":        color.RGBA{0x80, 0x80, 0x80, 0xff},
	"grey":        color.RGBA{0x80, 0x80, 0x80, 0xff},
}

// Color converts a color property into a color.Color. "default" and the
// null style return nil, meaning the renderer decides. Unknown colors are
// black.
func (p Property) Color() color.Color {
	if p == "default" || p.IsEmpty() {
		return nil
	}
	if c, ok := namedColors[p]; ok {
		return c
	}
	tracer().Debugf("unknown color %q, using black", p)
	return color.Black
}
