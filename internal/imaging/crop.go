package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropResult describes how a source image was fitted to a tile grid.
type CropResult struct {
	SourceWidth  int `json:"source_width"`
	SourceHeight int `json:"source_height"`

	// X and Y are the top-left corner of the kept region within the source.
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	// OutputWidth and OutputHeight are the size after resampling.
	OutputWidth  int `json:"output_width"`
	OutputHeight int `json:"output_height"`
}

// String formats the crop as "WxH -> W'xH'".
func (r CropResult) String() string {
	return fmt.Sprintf("%dx%d -> %dx%d", r.SourceWidth, r.SourceHeight, r.Width, r.Height)
}

// CropToAspect crops img to the aspect ratio tileWidth:tileHeight, keeping the
// centre.
//
// If the source is wider than the target the excess columns are split between
// the left and right edges, otherwise the excess rows are split between top
// and bottom. With an odd excess the extra pixel is dropped from the right
// (or bottom) edge.
func CropToAspect(img image.Image, tileWidth, tileHeight int) (*image.NRGBA, CropResult, error) {
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, CropResult{}, fmt.Errorf("invalid tile dimensions %dx%d", tileWidth, tileHeight)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, CropResult{}, fmt.Errorf("image has no pixels (%dx%d)", w, h)
	}

	res := CropResult{SourceWidth: w, SourceHeight: h, Width: w, Height: h}

	if w*tileHeight > h*tileWidth {
		// too wide
		res.Width = h * tileWidth / tileHeight
		res.X = (w - res.Width) / 2
	} else {
		// too tall, or already matching
		res.Height = w * tileHeight / tileWidth
		res.Y = (h - res.Height) / 2
	}

	if res.Width <= 0 || res.Height <= 0 {
		return nil, CropResult{}, fmt.Errorf("image %dx%d is too small for %dx%d tiles", w, h, tileWidth, tileHeight)
	}

	rect := image.Rect(res.X, res.Y, res.X+res.Width, res.Y+res.Height).Add(bounds.Min)
	cropped := imaging.Crop(img, rect)

	res.OutputWidth = res.Width
	res.OutputHeight = res.Height
	return cropped, res, nil
}

// ScaleToTiles resamples img to exactly tileWidth*tilePixels by
// tileHeight*tilePixels pixels using a box (area-averaging) filter.
func ScaleToTiles(img image.Image, tileWidth, tileHeight, tilePixels int) (*image.NRGBA, error) {
	if tileWidth <= 0 || tileHeight <= 0 || tilePixels <= 0 {
		return nil, fmt.Errorf("invalid tile grid %dx%d of %dpx tiles", tileWidth, tileHeight, tilePixels)
	}
	return imaging.Resize(img, tileWidth*tilePixels, tileHeight*tilePixels, imaging.Box), nil
}

// FitToTiles crops img to the tile aspect ratio and resamples it to the tile
// grid resolution.
func FitToTiles(img image.Image, tileWidth, tileHeight, tilePixels int) (*image.NRGBA, CropResult, error) {
	cropped, res, err := CropToAspect(img, tileWidth, tileHeight)
	if err != nil {
		return nil, CropResult{}, err
	}

	scaled, err := ScaleToTiles(cropped, tileWidth, tileHeight, tilePixels)
	if err != nil {
		return nil, CropResult{}, err
	}

	res.OutputWidth = scaled.Bounds().Dx()
	res.OutputHeight = scaled.Bounds().Dy()
	return scaled, res, nil
}
