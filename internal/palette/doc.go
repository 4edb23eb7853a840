// Package palette quantizes and reduces the colours of a design.
//
// Pixels are held as packed 24-bit RGB values in a flat Buffer. The package
// provides the three colour stages of the indexing pipeline:
//
//   - Quantization: every pixel is snapped to the centre of one of
//     30 (hue) x 16 (saturation) x 16 (value) HSV buckets.
//   - Reduction: near-duplicate colours are merged greedily, the rarer colour
//     into the more common one, at a growing RGB radius until no more than
//     MaxColors colours remain.
//   - Labelling: each surviving colour gets a single character used to print
//     the paint-by-index map.
//
// # Colour Distance
//
// Distances are plain Euclidean distances between 8-bit RGB triples. Radius
// checks compare squared integers, so two colours exactly r apart are always
// within radius r.
//
// # Ordering
//
// Frequency lists keep the order in which colours first appear in a row-major
// scan. Reduction visits colours by descending count, breaking ties with that
// order, and labels are handed out in that order as well, so identical input
// always produces identical output.
package palette
