package palette

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 24-bit RGB value packed as 0xRRGGBB.
//
// Packing colours into a single integer keeps them comparable and usable as
// map keys, which the frequency and merge passes rely on.
type Color uint32

// NewColor packs 8-bit red, green and blue components into a Color.
func NewColor(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// RGB unpacks the red, green and blue components.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex formats the colour as "#RRGGBB".
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return fmt.Sprintf("%06X", uint32(c)&0xFFFFFF)
}

func (c Color) colorful() colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
}

// distanceSquared returns the squared Euclidean distance between two colours
// in 8-bit RGB space.
func distanceSquared(a, b Color) int {
	r1, g1, b1 := a.RGB()
	r2, g2, b2 := b.RGB()
	dr := int(r1) - int(r2)
	dg := int(g1) - int(g2)
	db := int(b1) - int(b2)
	return dr*dr + dg*dg + db*db
}

// Distance returns the Euclidean distance between two colours in 8-bit RGB
// space. It is symmetric and zero for identical colours.
func Distance(a, b Color) float64 {
	return math.Sqrt(float64(distanceSquared(a, b)))
}

// withinRadius reports whether Distance(a, b) <= radius. The comparison is done
// on squared integers so that colours exactly radius apart always qualify.
func withinRadius(a, b Color, radius int) bool {
	return distanceSquared(a, b) <= radius*radius
}
