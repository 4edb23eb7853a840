package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/design-indexer/internal/design"
)

var testBuild = BuildInfo{Version: "1.0.0-test", BuildTime: "today", GitCommit: "abc123"}

// writeTestImage writes a solid PNG into a temp dir and returns its path.
func writeTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "source.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// execute runs the command tree with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	cmd := NewRootCmd(testBuild)
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestRootCmd_TextReport(t *testing.T) {
	src := writeTestImage(t, 2, 1, color.NRGBA{R: 255, A: 255})
	out := filepath.Join(t.TempDir(), "result.png")

	stdout, stderr, err := execute(t, src, "2", "-o", out)
	if err != nil {
		t.Fatalf("Execute failed: %v\nstderr: %s", err, stderr)
	}

	for _, want := range []string{
		"=== STAGE 1 ===\n",
		"The optimal tile dimensions are 2x1.\n",
		"=== STAGE 2 ===\n",
		"There are 1 colours.\n",
		"Reduced to 1 colours.\n",
		"Image written to " + out + ".\n",
		"The colours are:\n0\t(1,16,16)\nThe map is:\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}

	mapText := stdout[strings.Index(stdout, "The map is:\n")+len("The map is:\n"):]
	rows := strings.Split(strings.TrimSuffix(mapText, "\n"), "\n")
	if len(rows) != 32 {
		t.Fatalf("map rows: got %d, want 32", len(rows))
	}
	if want := strings.Repeat("0 ", 64); rows[0] != want {
		t.Errorf("map row: got %q, want %q", rows[0], want)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("design not written: %v", err)
	}
	defer f.Close()
	written, err := png.Decode(f)
	if err != nil {
		t.Fatalf("design is not a PNG: %v", err)
	}
	if b := written.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("design size: got %dx%d, want 64x32", b.Dx(), b.Dy())
	}
}

func TestRootCmd_JSONReport(t *testing.T) {
	src := writeTestImage(t, 300, 100, color.NRGBA{G: 255, A: 255})
	out := filepath.Join(t.TempDir(), "result.bmp")

	stdout, stderr, err := execute(t, "--format", "json", "--grid", "-o", out, src)
	if err != nil {
		t.Fatalf("Execute failed: %v\nstderr: %s", err, stderr)
	}

	var summary design.Summary
	if err := json.Unmarshal([]byte(stdout), &summary); err != nil {
		t.Fatalf("stdout is not a JSON summary: %v\n%s", err, stdout)
	}
	if summary.Dimensions != (design.Dimensions{TileWidth: 1, TileHeight: 1}) {
		t.Errorf("dimensions: got %+v, want 1x1", summary.Dimensions)
	}
	if summary.Crop.Width != 100 || summary.Crop.Height != 100 {
		t.Errorf("crop: got %dx%d, want 100x100", summary.Crop.Width, summary.Crop.Height)
	}
	if len(summary.Map) != 32 {
		t.Errorf("map rows: got %d, want 32", len(summary.Map))
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("design not written: %v", err)
	}
}

func TestRootCmd_Errors(t *testing.T) {
	src := writeTestImage(t, 4, 4, color.White)
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no arguments", nil, "accepts between 1 and 2 arg(s)"},
		{"too many arguments", []string{src, "1", "2"}, "accepts between 1 and 2 arg(s)"},
		{"non-numeric tile width", []string{src, "wide", "-o", filepath.Join(dir, "a.png")}, "invalid tile width"},
		{"zero tile width", []string{src, "0", "-o", filepath.Join(dir, "b.png")}, "invalid tile width"},
		{"unknown format", []string{src, "-f", "xml", "-o", filepath.Join(dir, "c.png")}, "unsupported format"},
		{"unsupported output", []string{src, "-o", filepath.Join(dir, "d.gif")}, "unsupported output format"},
		{"missing image", []string{filepath.Join(dir, "missing.png"), "-o", filepath.Join(dir, "e.png")}, "failed to open image"},
		{"bad grid colour", []string{src, "--grid", "--grid-color", "zz", "-o", filepath.Join(dir, "f.png")}, "invalid grid colour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error: got %q, want it to contain %q", err.Error(), tt.wantErr)
			}
			if !strings.Contains(stderr, "Error:") {
				t.Errorf("stderr should carry the diagnostic, got %q", stderr)
			}
		})
	}
}

func TestParseTileWidth(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{[]string{"img.png"}, 1, false},
		{[]string{"img.png", "3"}, 3, false},
		{[]string{"img.png", " 7 "}, 7, false},
		{[]string{"img.png", "-2"}, 0, true},
		{[]string{"img.png", "1.5"}, 0, true},
	}

	for _, tt := range tests {
		got, err := parseTileWidth(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTileWidth(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTileWidth(%q): got %d, want %d", tt.args, got, tt.want)
		}
	}
}

func TestNewLogger_Levels(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv(LogLevelEnv, "")
		logger := newLogger(&bytes.Buffer{}, false)
		if !logger.IsInfo() || logger.IsDebug() {
			t.Error("default level should be info")
		}
	})

	t.Run("verbose", func(t *testing.T) {
		t.Setenv(LogLevelEnv, "warn")
		logger := newLogger(&bytes.Buffer{}, true)
		if !logger.IsDebug() {
			t.Error("verbose should enable debug")
		}
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(LogLevelEnv, "warn")
		logger := newLogger(&bytes.Buffer{}, false)
		if logger.IsInfo() || !logger.IsWarn() {
			t.Error("environment should set warn level")
		}
	})
}

func TestRootCmd_VerboseLogsMerges(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 8), B: 128, A: 255})
		}
	}
	src := filepath.Join(t.TempDir(), "gradient.png")
	f, err := os.Create(src)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	f.Close()

	stdout, stderr, err := execute(t, "-v", "-o", filepath.Join(t.TempDir(), "out.png"), src, "2")
	if err != nil {
		t.Fatalf("Execute failed: %v\nstderr: %s", err, stderr)
	}

	if !strings.Contains(stdout, "Reduction required. Performing reduction...") {
		t.Errorf("stdout should announce the reduction:\n%s", stdout)
	}
	if !strings.Contains(stderr, "assimilated colour") {
		t.Errorf("stderr should carry the merge trace:\n%s", stderr)
	}
}
