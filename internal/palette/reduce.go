package palette

// MaxColors is the largest number of distinct colours a reduced design may
// use.
const MaxColors = 15

// Merge records one colour being assimilated into another.
type Merge struct {
	Target   Color   `json:"target"`
	Source   Color   `json:"source"`
	Distance float64 `json:"distance"`
	Radius   int     `json:"radius"`
}

// Reduction describes the outcome of Reduce.
type Reduction struct {
	// Initial is the number of distinct colours before reduction.
	Initial int `json:"initial"`

	// Radius is the last merge radius applied, or 0 if no reduction was
	// needed.
	Radius int `json:"radius"`

	// Rounds is the number of radius rounds performed.
	Rounds int `json:"rounds"`

	// Merges lists every assimilation in the order it happened.
	Merges []Merge `json:"merges,omitempty"`

	// Colors holds the surviving colours in first-occurrence order.
	Colors []ColorCount `json:"colors"`
}

// Reduce merges the colours of buf until at most MaxColors remain, rewriting
// buf in place.
//
// Each round uses a radius one larger than the last, starting at 1. Within a
// round colours are visited by descending pixel count; every colour that has
// not been absorbed yet absorbs all later, unabsorbed colours within the
// radius. A colour absorbed during a round takes no further part in it.
func Reduce(buf *Buffer) *Reduction {
	return reduce(buf, MaxColors)
}

func reduce(buf *Buffer, limit int) *Reduction {
	counts := Frequencies(buf)
	result := &Reduction{Initial: len(counts)}

	for radius := 1; len(counts) > limit; radius++ {
		var merges []Merge
		counts, merges = reduceRound(counts, radius)
		applyMerges(buf, merges)

		result.Radius = radius
		result.Rounds++
		result.Merges = append(result.Merges, merges...)
	}

	result.Colors = counts
	return result
}

// reduceRound performs one merge pass at the given radius and returns the
// surviving colours, still in their original order, together with the merges
// that took place.
func reduceRound(counts []ColorCount, radius int) ([]ColorCount, []Merge) {
	order := byCountDesc(counts)
	assimilated := make(map[Color]bool)
	absorbed := make(map[Color]int)
	var merges []Merge

	for i, target := range order {
		if assimilated[target.Color] {
			continue
		}
		for _, source := range order[i+1:] {
			if assimilated[source.Color] {
				continue
			}
			if !withinRadius(target.Color, source.Color, radius) {
				continue
			}
			assimilated[source.Color] = true
			absorbed[target.Color] += source.Count
			merges = append(merges, Merge{
				Target:   target.Color,
				Source:   source.Color,
				Distance: Distance(target.Color, source.Color),
				Radius:   radius,
			})
		}
	}

	if len(merges) == 0 {
		return counts, nil
	}

	survivors := make([]ColorCount, 0, len(counts)-len(merges))
	for _, cc := range counts {
		if assimilated[cc.Color] {
			continue
		}
		cc.Count += absorbed[cc.Color]
		survivors = append(survivors, cc)
	}
	return survivors, merges
}

// applyMerges rewrites the pixels of every merged source colour to its target.
// A target is never a source within the same round, so a single pass suffices.
func applyMerges(buf *Buffer, merges []Merge) {
	remap := make(map[Color]Color, len(merges))
	for _, m := range merges {
		remap[m.Source] = m.Target
	}
	buf.replace(remap)
}
