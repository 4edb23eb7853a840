package design

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ironsheep/design-indexer/internal/imaging"
)

// Format selects how a design report is written.
type Format string

const (
	// FormatText prints the legend and the space-separated label map.
	FormatText Format = "text"
	// FormatJSON prints a single JSON document.
	FormatJSON Format = "json"
)

// ParseFormat validates a report format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json)", s)
	}
}

// LegendEntry describes one colour of a design.
type LegendEntry struct {
	Label string `json:"label"`
	Hex   string `json:"hex"`
	Hue   int    `json:"hue"` // 1-based bucket indices
	Sat   int    `json:"sat"`
	Val   int    `json:"val"`
	Count int    `json:"count"`
}

// Summary is the machine-readable form of a design.
type Summary struct {
	Dimensions    Dimensions         `json:"dimensions"`
	Crop          imaging.CropResult `json:"crop"`
	InitialColors int                `json:"initial_colors"`
	Colors        int                `json:"colors"`
	Radius        int                `json:"radius"`
	Legend        []LegendEntry      `json:"legend"`
	Map           []string           `json:"map"`
}

// Legend lists the design's colours in label order.
func (d *Design) Legend() []LegendEntry {
	labels := d.Labels.Entries()
	legend := make([]LegendEntry, 0, len(labels))
	for _, lb := range labels {
		legend = append(legend, LegendEntry{
			Label: string(lb.Char),
			Hex:   lb.Color.Hex(),
			Hue:   lb.Bucket.Hue,
			Sat:   lb.Bucket.Sat,
			Val:   lb.Bucket.Val,
			Count: lb.Count,
		})
	}
	return legend
}

// Summary collects the design into a Summary.
func (d *Design) Summary() (*Summary, error) {
	rows, err := d.Rows()
	if err != nil {
		return nil, err
	}
	return &Summary{
		Dimensions:    d.Dimensions,
		Crop:          d.Crop,
		InitialColors: d.Reduction.Initial,
		Colors:        d.Labels.Len(),
		Radius:        d.Reduction.Radius,
		Legend:        d.Legend(),
		Map:           rows,
	}, nil
}

// WriteReport writes the legend and label map of d in the given format.
func WriteReport(w io.Writer, d *Design, format Format) error {
	switch format {
	case FormatText:
		if err := WriteLegend(w, d); err != nil {
			return err
		}
		return WriteMap(w, d)
	case FormatJSON:
		return WriteJSON(w, d)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteLegend prints one "<label>\t(<hue>,<sat>,<val>)" line per colour.
func WriteLegend(w io.Writer, d *Design) error {
	var b strings.Builder
	b.WriteString("The colours are:\n")
	for _, lb := range d.Labels.Entries() {
		b.WriteString(lb.String())
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMap prints the label map, one line per pixel row with every label
// followed by a space.
func WriteMap(w io.Writer, d *Design) error {
	rows, err := d.Rows()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("The map is:\n")
	for _, row := range rows {
		for _, ch := range row {
			b.WriteRune(ch)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	_, err = io.WriteString(w, b.String())
	return err
}

// WriteJSON prints the design summary as indented JSON.
func WriteJSON(w io.Writer, d *Design) error {
	summary, err := d.Summary()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}
