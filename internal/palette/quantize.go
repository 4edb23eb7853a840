package palette

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Bucket counts of the quantized HSV space.
const (
	HueBuckets        = 30
	SaturationBuckets = 15
	ValueBuckets      = 15
)

// Bucket is a quantized HSV coordinate, 0-based.
//
//   - Hue: 0..HueBuckets-1 (a hue that rounds up to a full turn wraps to 0)
//   - Sat: 0..SaturationBuckets
//   - Val: 0..ValueBuckets
//
// Saturation and value carry one extra level because rounding maps both 0.0
// and 1.0 onto a bucket of their own.
type Bucket struct {
	Hue int `json:"hue"`
	Sat int `json:"sat"`
	Val int `json:"val"`
}

// OneBased returns the bucket indices shifted to start at 1, the form used in
// printed legends.
func (b Bucket) OneBased() Bucket {
	return Bucket{Hue: b.Hue + 1, Sat: b.Sat + 1, Val: b.Val + 1}
}

// Color reconstructs the 8-bit RGB colour at the centre of the bucket.
func (b Bucket) Color() Color {
	h := float64(b.Hue%HueBuckets) * 360.0 / HueBuckets
	s := float64(b.Sat) / SaturationBuckets
	v := float64(b.Val) / ValueBuckets
	r, g, bl := colorful.Hsv(h, s, v).RGB255()
	return NewColor(r, g, bl)
}

// BucketOf quantizes a colour into HSV buckets.
//
// Each channel is rounded half-up, floor(x*n + 0.5), using integer arithmetic
// on the 8-bit components so results do not depend on floating point
// behaviour.
func BucketOf(c Color) Bucket {
	r8, g8, b8 := c.RGB()
	r, g, b := int(r8), int(g8), int(b8)

	maxC := max(r, g, b)
	minC := min(r, g, b)
	chroma := maxC - minC

	var bucket Bucket

	// value = max/255
	bucket.Val = (2*ValueBuckets*maxC + 255) / 510

	if maxC == 0 {
		return bucket
	}

	// saturation = chroma/max
	bucket.Sat = (2*SaturationBuckets*chroma + maxC) / (2 * maxC)

	if chroma == 0 {
		return bucket
	}

	// Hue in sextants, scaled by chroma so it stays an integer: h6 = num/chroma.
	var num int
	switch maxC {
	case r:
		num = g - b
		if num < 0 {
			num += 6 * chroma
		}
	case g:
		num = b - r + 2*chroma
	default:
		num = r - g + 4*chroma
	}

	// hue*n = h6*n/6
	const perSextant = HueBuckets / 6
	bucket.Hue = ((2*perSextant*num + chroma) / (2 * chroma)) % HueBuckets
	return bucket
}

// Quantize maps a colour onto the centre of its HSV bucket.
//
// Reconstructing a bucket in 8 bits can land exactly on a hue half-step and
// round into the neighbouring bucket, so the result is settled to a fixed
// point. Quantize(Quantize(c)) == Quantize(c) for every colour.
func Quantize(c Color) Color {
	q := BucketOf(c).Color()
	for i := 0; i < 4; i++ {
		next := BucketOf(q).Color()
		if next == q {
			break
		}
		q = next
	}
	return q
}

// QuantizeBuffer quantizes every pixel of buf in place.
//
// Conversions are memoized per input colour; images typically repeat colours
// heavily after resampling.
func QuantizeBuffer(buf *Buffer) {
	cache := make(map[Color]Color)
	for i, c := range buf.Pix {
		q, ok := cache[c]
		if !ok {
			q = Quantize(c)
			cache[c] = q
		}
		buf.Pix[i] = q
	}
}
