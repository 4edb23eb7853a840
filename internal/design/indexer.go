package design

import (
	"fmt"
	"image"
	"io"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/ironsheep/design-indexer/internal/imaging"
	"github.com/ironsheep/design-indexer/internal/palette"
)

// Options configures an Indexer.
type Options struct {
	// TileWidth is the design width in tiles. Must be positive.
	TileWidth int

	// Progress receives the stage banners printed while indexing. Nil
	// discards them.
	Progress io.Writer

	// Logger receives debug diagnostics such as the merge trace. Nil uses a
	// null logger.
	Logger hclog.Logger
}

// Indexer turns source images into indexed designs.
type Indexer struct {
	tileWidth int
	progress  io.Writer
	logger    hclog.Logger
}

// Design is an indexed picture: its tile geometry, the reduced pixel buffer
// and the label of every colour.
type Design struct {
	Dimensions Dimensions
	Crop       imaging.CropResult
	Buffer     *palette.Buffer
	Reduction  *palette.Reduction
	Labels     *palette.Labels
}

// New creates an Indexer.
func New(opts Options) (*Indexer, error) {
	if opts.TileWidth <= 0 {
		return nil, fmt.Errorf("%w: tile width must be positive, got %d", ErrInvalidGeometry, opts.TileWidth)
	}

	ix := &Indexer{
		tileWidth: opts.TileWidth,
		progress:  opts.Progress,
		logger:    opts.Logger,
	}
	if ix.progress == nil {
		ix.progress = io.Discard
	}
	if ix.logger == nil {
		ix.logger = hclog.NewNullLogger()
	}
	return ix, nil
}

// Index runs the full pipeline on img: resolve the tile geometry, crop and
// scale to the tile grid, quantize, reduce to at most palette.MaxColors
// colours and assign labels. img is not modified.
func (ix *Indexer) Index(img image.Image) (*Design, error) {
	start := time.Now()
	bounds := img.Bounds()

	ix.printf("=== STAGE 1 ===\n")
	ix.printf("Determining optimal tile dimensions... (given width: %d)\n", ix.tileWidth)

	dims, err := Resolve(bounds.Dx(), bounds.Dy(), ix.tileWidth)
	if err != nil {
		return nil, err
	}
	ix.printf("The optimal tile dimensions are %s.\n", dims)

	ix.printf("Scaling and cropping the image...\n")
	scaled, crop, err := imaging.FitToTiles(img, dims.TileWidth, dims.TileHeight, TilePixels)
	if err != nil {
		return nil, fmt.Errorf("failed to fit image to tiles: %w", err)
	}
	ix.printf("%s\n", crop)
	ix.logger.Debug("fitted image to tiles", "tiles", dims.String(), "crop", crop.String(),
		"output_width", crop.OutputWidth, "output_height", crop.OutputHeight)

	ix.printf("Approximating image to the tile palette...\n")
	buf, err := palette.FromImage(scaled)
	if err != nil {
		return nil, err
	}
	palette.QuantizeBuffer(buf)

	ix.printf("\n=== STAGE 2 ===\n")
	ix.printf("Counting indexed colours...\n")
	initial := len(palette.Frequencies(buf))
	ix.printf("There are %d colours.\n", initial)
	if initial > palette.MaxColors {
		ix.printf("Reduction required. Performing reduction...\n")
	}

	reduction := palette.Reduce(buf)
	for _, m := range reduction.Merges {
		ix.logger.Debug("assimilated colour", "target", m.Target.String(), "source", m.Source.String(),
			"distance", fmt.Sprintf("%.3f", m.Distance), "radius", m.Radius)
	}
	ix.printf("Reduction finished.\n")
	ix.printf("Reduced to %d colours.\n", len(reduction.Colors))

	ix.logger.Debug("indexed design", "colours", len(reduction.Colors), "initial_colours", reduction.Initial,
		"radius", reduction.Radius, "rounds", reduction.Rounds, "elapsed", time.Since(start))

	return &Design{
		Dimensions: dims,
		Crop:       crop,
		Buffer:     buf,
		Reduction:  reduction,
		Labels:     palette.AssignLabels(reduction.Colors),
	}, nil
}

func (ix *Indexer) printf(format string, args ...interface{}) {
	fmt.Fprintf(ix.progress, format, args...)
}

// Image renders the reduced design as an image, one pixel per design pixel.
func (d *Design) Image() *image.NRGBA {
	return d.Buffer.Image()
}

// Rows returns the label map, one string of label characters per pixel row.
func (d *Design) Rows() ([]string, error) {
	return d.Labels.Grid(d.Buffer)
}
