package palette

import (
	"fmt"
	"image"
)

// Buffer is a flat, row-major grid of packed RGB pixels.
//
// A Buffer is owned by one pipeline stage at a time; stages that rewrite
// pixels (quantization, reduction) mutate Pix in place.
type Buffer struct {
	Width  int
	Height int
	Pix    []Color
}

// NewBuffer allocates a zeroed (black) buffer of the given size.
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid buffer size %dx%d", width, height)
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]Color, width*height),
	}, nil
}

// FromImage copies an image into a new Buffer. Alpha is discarded; colours are
// read as non-premultiplied 8-bit components.
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	buf, err := NewBuffer(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < buf.Height; y++ {
			row := nrgba.Pix[nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			for x := 0; x < buf.Width; x++ {
				i := x * 4
				buf.Pix[y*buf.Width+x] = NewColor(row[i], row[i+1], row[i+2])
			}
		}
		return buf, nil
	}

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if a != 0 && a != 0xFFFF {
				// Un-premultiply so translucent pixels keep their hue.
				r = r * 0xFFFF / a
				g = g * 0xFFFF / a
				b = b * 0xFFFF / a
			}
			buf.Pix[y*buf.Width+x] = NewColor(uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}
	return buf, nil
}

// At returns the colour at (x, y).
func (b *Buffer) At(x, y int) Color {
	return b.Pix[y*b.Width+x]
}

// Len returns the number of pixels in the buffer.
func (b *Buffer) Len() int {
	return len(b.Pix)
}

// Image renders the buffer as a fully opaque NRGBA image.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, c := range b.Pix {
		r, g, bl := c.RGB()
		img.Pix[i*4+0] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = bl
		img.Pix[i*4+3] = 0xFF
	}
	return img
}

// replace rewrites every pixel found in remap to its mapped colour.
func (b *Buffer) replace(remap map[Color]Color) {
	if len(remap) == 0 {
		return
	}
	for i, c := range b.Pix {
		if to, ok := remap[c]; ok {
			b.Pix[i] = to
		}
	}
}
