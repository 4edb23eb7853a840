// Package cli provides the command-line interface for the design indexer.
package cli

import (
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/design-indexer/internal/design"
	"github.com/ironsheep/design-indexer/internal/imaging"
)

// LogLevelEnv overrides the log level ("trace", "debug", "info", "warn",
// "error").
const LogLevelEnv = "DESIGN_INDEXER_LOG_LEVEL"

// DefaultOutput is the file the reduced design is written to.
const DefaultOutput = "result.png"

// BuildInfo carries the version metadata set at link time.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// String formats the build information over three lines.
func (b BuildInfo) String() string {
	return fmt.Sprintf("design-indexer %s\n  Build time: %s\n  Git commit: %s", b.Version, b.BuildTime, b.GitCommit)
}

type rootOptions struct {
	output    string
	format    string
	grid      bool
	gridColor string
	verbose   bool
}

// NewRootCmd builds the design-indexer command tree.
func NewRootCmd(build BuildInfo) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "design-indexer <image> [tile-width]",
		Short: "Turn a picture into an indexed tile design",
		Long: `design-indexer crops and scales a picture to a grid of 32x32 pixel tiles,
snaps it to a 30x16x16 HSV palette and merges similar colours until at most
15 remain. It writes the reduced design as an image and prints a legend of
the colours followed by a map giving the label of every pixel.

The tile width defaults to 1; the tile height is chosen to match the aspect
ratio of the picture.

Examples:
  # Index a picture one tile wide
  design-indexer photo.jpg

  # Index a picture four tiles wide and write a BMP with tile boundaries
  design-indexer --grid -o design.bmp photo.png 4

  # Print the design as JSON
  design-indexer -f json photo.png 2`,
		Args:    cobra.RangeArgs(1, 2),
		Version: build.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid past this point; errors are not usage errors.
			cmd.SilenceUsage = true
			return runIndex(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", DefaultOutput, "file to write the reduced design to (.png, .jpg, .jpeg, .bmp)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(design.FormatText), "report format (text, json)")
	cmd.Flags().BoolVar(&opts.grid, "grid", false, "draw tile boundaries on the written design")
	cmd.Flags().StringVar(&opts.gridColor, "grid-color", imaging.DefaultGridColor, "grid line colour as hex with optional alpha")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")

	cmd.SetVersionTemplate(build.String() + "\n")

	cmd.AddCommand(newServeCmd(opts, build))
	cmd.AddCommand(newVersionCmd(build))

	return cmd
}

// Execute runs the command tree and exits with status 1 on failure.
func Execute(build BuildInfo) {
	if err := NewRootCmd(build).Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the stderr logger. verbose selects debug; otherwise the
// level comes from LogLevelEnv, defaulting to info.
func newLogger(w io.Writer, verbose bool) hclog.Logger {
	level := hclog.Info
	if env := hclog.LevelFromString(os.Getenv(LogLevelEnv)); env != hclog.NoLevel {
		level = env
	}
	if verbose {
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "design-indexer",
		Output: w,
		Level:  level,
	})
}

// parseTileWidth parses the optional tile-width argument.
func parseTileWidth(args []string) (int, error) {
	if len(args) < 2 {
		return 1, nil
	}
	tw, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil || tw <= 0 {
		return 0, fmt.Errorf("invalid tile width %q: must be a positive integer", args[1])
	}
	return tw, nil
}

// runIndex executes the root command.
func runIndex(cmd *cobra.Command, opts *rootOptions, args []string) error {
	imagePath := args[0]

	tileWidth, err := parseTileWidth(args)
	if err != nil {
		return err
	}

	format, err := design.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	// Fail on an unsupported output extension before doing any work.
	if _, err := imaging.EncoderFor(opts.output); err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	stdout := cmd.OutOrStdout()

	progress := io.Discard
	if format == design.FormatText {
		progress = stdout
	}

	img, err := imaging.NewImageCache().Load(imagePath)
	if err != nil {
		return err
	}
	logger.Debug("loaded image", "path", imagePath, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	ix, err := design.New(design.Options{
		TileWidth: tileWidth,
		Progress:  progress,
		Logger:    logger.Named("indexer"),
	})
	if err != nil {
		return err
	}

	d, err := ix.Index(img)
	if err != nil {
		return err
	}

	var preview image.Image = d.Image()
	if opts.grid {
		preview, err = imaging.GridOverlay(preview, design.TilePixels, opts.gridColor)
		if err != nil {
			return err
		}
	}

	if err := imaging.Save(opts.output, preview); err != nil {
		return err
	}
	logger.Debug("wrote design", "path", opts.output)
	fmt.Fprintf(progress, "Image written to %s.\n", opts.output)

	return design.WriteReport(stdout, d, format)
}
