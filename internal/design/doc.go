// Package design turns a picture into an indexed tile design.
//
// A design is a grid of 32x32 pixel tiles whose pixels use no more than
// palette.MaxColors colours. Indexing runs in two stages:
//
//   - Stage 1 resolves how many tiles tall the design should be for the
//     requested width, crops the picture around its centre to that aspect
//     ratio and resamples it to the tile grid, then snaps every pixel to the
//     quantized HSV palette.
//   - Stage 2 counts the colours, reduces them if there are too many and
//     labels the survivors.
//
// The resulting Design can be rendered as a preview image, printed as a
// legend plus label map, or summarised as JSON.
package design
