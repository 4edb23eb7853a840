package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// EncoderFor picks an encoder from the file extension of path.
//
// Supported extensions are .png, .jpg/.jpeg and .bmp. JPEG is written at
// quality 95; the output is lossy and will not reproduce the palette exactly.
func EncoderFor(path string) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(95), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (supported: .png, .jpg, .jpeg, .bmp)", filepath.Ext(path))
	}
}

// Save writes img to path, choosing the encoder from the file extension.
//
// A failed write can leave a partial file behind.
func Save(path string, img image.Image) error {
	encoder, err := EncoderFor(path)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, img, encoder); err != nil {
		return fmt.Errorf("failed to write image %s: %w", path, err)
	}
	return nil
}

// EncodePNGBase64 encodes img as a base64 PNG string.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
