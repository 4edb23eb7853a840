package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
)

// DefaultGridColor is the tile boundary colour used when none is given.
const DefaultGridColor = "#00000060"

// GridOverlay returns a copy of img with a line drawn every spacing pixels in
// both directions, marking the tile boundaries of a design.
//
// The lines are blended over the image, so a translucent colour such as
// "#00000060" keeps the underlying pixels visible. The outer edge is not drawn.
func GridOverlay(img image.Image, spacing int, gridColorHex string) (*image.NRGBA, error) {
	if spacing <= 0 {
		return nil, fmt.Errorf("grid spacing must be positive, got %d", spacing)
	}

	gridColor, err := parseHexColor(gridColorHex)
	if err != nil {
		return nil, fmt.Errorf("invalid grid colour %q: %w", gridColorHex, err)
	}

	result := imaging.Clone(img)
	bounds := result.Bounds()
	line := image.NewUniform(gridColor)

	for x := bounds.Min.X + spacing; x < bounds.Max.X; x += spacing {
		draw.Draw(result, image.Rect(x, bounds.Min.Y, x+1, bounds.Max.Y), line, image.Point{}, draw.Over)
	}
	for y := bounds.Min.Y + spacing; y < bounds.Max.Y; y += spacing {
		draw.Draw(result, image.Rect(bounds.Min.X, y, bounds.Max.X, y+1), line, image.Point{}, draw.Over)
	}

	return result, nil
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080".
// The alpha form is non-premultiplied.
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, err
	}

	switch len(hex) {
	case 6:
		return color.NRGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	case 8:
		return color.NRGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}
}
