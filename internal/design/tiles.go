package design

import (
	"errors"
	"fmt"
	"math"
)

// TilePixels is the edge length of one tile in pixels.
const TilePixels = 32

// ErrInvalidGeometry is returned for non-positive image or tile sizes.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Dimensions is the size of a design in tiles.
type Dimensions struct {
	TileWidth  int `json:"tile_width"`
	TileHeight int `json:"tile_height"`
}

// PixelWidth returns the design width in pixels.
func (d Dimensions) PixelWidth() int {
	return d.TileWidth * TilePixels
}

// PixelHeight returns the design height in pixels.
func (d Dimensions) PixelHeight() int {
	return d.TileHeight * TilePixels
}

// String formats the dimensions as "WxH".
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.TileWidth, d.TileHeight)
}

// ResolveTileHeight picks the tile height whose ratio tileWidth/height best
// approximates the aspect ratio of a width x height image.
//
// Candidate heights are scanned upwards from 1 and the first height whose
// error is no larger than the next one's is returned. This is the first local
// minimum of |ratio - tileWidth/h|. A tie between h and h+1 keeps the smaller
// height h.
func ResolveTileHeight(width, height, tileWidth int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: image size %dx%d", ErrInvalidGeometry, width, height)
	}
	if tileWidth <= 0 {
		return 0, fmt.Errorf("%w: tile width %d", ErrInvalidGeometry, tileWidth)
	}

	ratio := float64(width) / float64(height)
	errAt := func(h int) float64 {
		return math.Abs(ratio - float64(tileWidth)/float64(h))
	}

	h := 1
	for errAt(h) > errAt(h+1) {
		h++
	}
	return h, nil
}

// Resolve returns the tile dimensions for a width x height image that is
// tileWidth tiles wide.
func Resolve(width, height, tileWidth int) (Dimensions, error) {
	tileHeight, err := ResolveTileHeight(width, height, tileWidth)
	if err != nil {
		return Dimensions{}, err
	}
	return Dimensions{TileWidth: tileWidth, TileHeight: tileHeight}, nil
}
