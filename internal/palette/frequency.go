package palette

import "sort"

// ColorCount pairs a colour with the number of pixels that carry it.
type ColorCount struct {
	Color Color `json:"color"`
	Count int   `json:"count"`
}

// Frequencies counts the colours of buf.
//
// The result is ordered by first occurrence in a row-major scan. That order is
// the stable identity of a colour through the reduction passes and decides
// label assignment.
func Frequencies(buf *Buffer) []ColorCount {
	index := make(map[Color]int)
	var counts []ColorCount

	for _, c := range buf.Pix {
		if i, ok := index[c]; ok {
			counts[i].Count++
			continue
		}
		index[c] = len(counts)
		counts = append(counts, ColorCount{Color: c, Count: 1})
	}

	return counts
}

// byCountDesc returns a copy of counts sorted by descending count. Ties keep
// their relative order.
func byCountDesc(counts []ColorCount) []ColorCount {
	sorted := make([]ColorCount, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	return sorted
}
