// Package imaging provides the image I/O and geometry operations of the design
// indexer.
//
// This package loads source pictures, fits them to a tile grid, draws tile
// boundaries and writes previews. It works with standard Go image.Image types;
// colour work on individual pixels lives in the palette package.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with (0,0) at the
// top-left corner, X increasing rightward and Y increasing downward. Regions
// are half-open: (X, Y) is inclusive, (X+Width, Y+Height) is exclusive.
//
// # Fitting to Tiles
//
// FitToTiles crops a source image to the aspect ratio of the tile grid,
// keeping the centre, and resamples the result with an area-averaging filter
// to exactly tileWidth*tilePixels by tileHeight*tilePixels pixels.
//
// # Formats
//
// Decoding supports PNG, JPEG, GIF, BMP, TIFF and WebP. Previews can be written
// as PNG, JPEG or BMP; the encoder is chosen from the output file extension.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The other functions are
// stateless and never modify their input images.
package imaging
