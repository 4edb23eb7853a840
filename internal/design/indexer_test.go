package design

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/ironsheep/design-indexer/internal/palette"
)

func solidImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func gradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 8), B: 128, A: 255})
		}
	}
	return img
}

func indexSolidRed(t *testing.T) (*Design, string) {
	t.Helper()

	var progress bytes.Buffer
	ix, err := New(Options{TileWidth: 2, Progress: &progress})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	d, err := ix.Index(solidImage(2, 1, color.NRGBA{R: 255, A: 255}))
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	return d, progress.String()
}

func TestIndex_SolidRed(t *testing.T) {
	d, progress := indexSolidRed(t)

	if d.Dimensions != (Dimensions{TileWidth: 2, TileHeight: 1}) {
		t.Errorf("Dimensions: got %s, want 2x1", d.Dimensions)
	}
	if d.Crop.OutputWidth != 64 || d.Crop.OutputHeight != 32 {
		t.Errorf("output size: got %dx%d, want 64x32", d.Crop.OutputWidth, d.Crop.OutputHeight)
	}
	if d.Buffer.Width != 64 || d.Buffer.Height != 32 {
		t.Errorf("buffer size: got %dx%d, want 64x32", d.Buffer.Width, d.Buffer.Height)
	}
	if d.Labels.Len() != 1 {
		t.Fatalf("Labels.Len: got %d, want 1", d.Labels.Len())
	}

	lb := d.Labels.Entries()[0]
	if lb.Char != '0' {
		t.Errorf("label: got %q, want '0'", lb.Char)
	}
	if lb.Count != 64*32 {
		t.Errorf("count: got %d, want %d", lb.Count, 64*32)
	}
	if lb.Bucket != (palette.Bucket{Hue: 1, Sat: 16, Val: 16}) {
		t.Errorf("bucket: got %+v, want (1,16,16)", lb.Bucket)
	}

	rows, err := d.Rows()
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	want := strings.Repeat("0", 64)
	for y, row := range rows {
		if row != want {
			t.Fatalf("row %d: got %q, want all zeros", y, row)
		}
	}

	preview := d.Image()
	for _, pt := range []image.Point{{0, 0}, {63, 31}, {32, 16}} {
		got := preview.NRGBAAt(pt.X, pt.Y)
		if got != (color.NRGBA{R: 255, A: 255}) {
			t.Errorf("preview at %v: got %v, want solid red", pt, got)
		}
	}

	for _, line := range []string{
		"=== STAGE 1 ===",
		"Determining optimal tile dimensions... (given width: 2)",
		"The optimal tile dimensions are 2x1.",
		"2x1 -> 2x1",
		"=== STAGE 2 ===",
		"There are 1 colours.",
		"Reduction finished.",
		"Reduced to 1 colours.",
	} {
		if !strings.Contains(progress, line) {
			t.Errorf("progress missing %q:\n%s", line, progress)
		}
	}
	if strings.Contains(progress, "Reduction required") {
		t.Errorf("progress should not announce a reduction for one colour:\n%s", progress)
	}
}

func TestIndex_ReducesManyColours(t *testing.T) {
	var progress bytes.Buffer
	ix, err := New(Options{TileWidth: 2, Progress: &progress})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	d, err := ix.Index(gradientImage(64, 32))
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}

	if d.Reduction.Initial <= palette.MaxColors {
		t.Fatalf("gradient should start with more than %d colours, got %d", palette.MaxColors, d.Reduction.Initial)
	}
	if d.Labels.Len() > palette.MaxColors {
		t.Errorf("Labels.Len: got %d, want <= %d", d.Labels.Len(), palette.MaxColors)
	}
	if d.Reduction.Radius < 1 {
		t.Errorf("Radius: got %d, want >= 1", d.Reduction.Radius)
	}
	if !strings.Contains(progress.String(), "Reduction required. Performing reduction...") {
		t.Errorf("progress should announce the reduction:\n%s", progress.String())
	}
	if want := fmt.Sprintf("Reduced to %d colours.\n", d.Labels.Len()); !strings.Contains(progress.String(), want) {
		t.Errorf("progress missing final colour count %q:\n%s", want, progress.String())
	}

	rows, err := d.Rows()
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(rows) != 32 {
		t.Fatalf("rows: got %d, want 32", len(rows))
	}
	for y, row := range rows {
		if len(row) != 64 {
			t.Errorf("row %d: got %d labels, want 64", y, len(row))
		}
	}

	total := 0
	for _, lb := range d.Labels.Entries() {
		total += lb.Count
	}
	if total != 64*32 {
		t.Errorf("label counts: got %d, want %d", total, 64*32)
	}
}

func TestIndex_Crops(t *testing.T) {
	ix, err := New(Options{TileWidth: 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	d, err := ix.Index(solidImage(300, 100, color.NRGBA{B: 255, A: 255}))
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}

	if d.Dimensions.TileHeight != 1 {
		t.Errorf("TileHeight: got %d, want 1", d.Dimensions.TileHeight)
	}
	if d.Crop.Width != 100 || d.Crop.X != 100 {
		t.Errorf("crop: got x=%d width=%d, want x=100 width=100", d.Crop.X, d.Crop.Width)
	}
	if d.Buffer.Width != 32 || d.Buffer.Height != 32 {
		t.Errorf("buffer size: got %dx%d, want 32x32", d.Buffer.Width, d.Buffer.Height)
	}
}

func TestNew_InvalidTileWidth(t *testing.T) {
	for _, tw := range []int{0, -1} {
		if _, err := New(Options{TileWidth: tw}); !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("New(TileWidth: %d): got %v, want ErrInvalidGeometry", tw, err)
		}
	}
}

func TestIndex_DoesNotModifyInput(t *testing.T) {
	img := gradientImage(64, 32)
	before := append([]uint8(nil), img.Pix...)

	ix, err := New(Options{TileWidth: 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := ix.Index(img); err != nil {
		t.Fatalf("Index failed: %v", err)
	}

	if !bytes.Equal(before, img.Pix) {
		t.Error("Index modified the source image")
	}
}
