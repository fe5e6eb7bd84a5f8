package palette

import (
	"image"
	"math"
	"slices"

	"github.com/ironsheep/mosaic-tools-mcp/internal/colorspace"
)

// DefaultMaxSamples bounds the number of pixels FromImage feeds to the
// quantizer.
const DefaultMaxSamples = 250000

type channel int

const (
	channelR channel = iota
	channelG
	channelB
)

func (ch channel) of(c colorspace.RGB) uint8 {
	switch ch {
	case channelG:
		return c.G
	case channelB:
		return c.B
	default:
		return c.R
	}
}

// Quantize reduces pixels to targetCount representative colors using
// median-cut.
//
// Parameters:
//   - pixels: The color population. The slice is not modified.
//   - targetCount: Number of colors wanted. Values below 1 are treated as 1.
//
// Returns a palette of exactly targetCount colors for any non-empty input.
// An empty input yields a single black entry.
//
// # Algorithm
//
//  1. A bucket asked for one color returns its channel-wise average
//     (rounded half up).
//  2. Otherwise the channel with the largest max-min range becomes the split
//     axis; ties prefer red, then green, then blue.
//  3. The bucket is stably sorted on that channel and split at
//     floor(len/2).
//  4. The left half receives ceil(targetCount/2) colors, the right half the
//     remainder; results are concatenated left first.
//
// A bucket holding a single pixel cannot be split further; it repeats its
// color for every color it still owes, so identical inputs produce
// identical palette entries rather than a short palette.
func Quantize(pixels []colorspace.RGB, targetCount int) Palette {
	if targetCount < 1 {
		targetCount = 1
	}
	if len(pixels) == 0 {
		return Palette{average(nil)}
	}
	bucket := slices.Clone(pixels)
	out := make(Palette, 0, targetCount)
	return medianCut(bucket, targetCount, out)
}

func medianCut(bucket []colorspace.RGB, target int, out Palette) Palette {
	if target == 1 {
		return append(out, average(bucket))
	}
	if len(bucket) < 2 {
		avg := average(bucket)
		for range target {
			out = append(out, avg)
		}
		return out
	}

	axis := widestChannel(bucket)
	slices.SortStableFunc(bucket, func(a, b colorspace.RGB) int {
		return int(axis.of(a)) - int(axis.of(b))
	})

	mid := len(bucket) / 2
	leftTarget := (target + 1) / 2
	out = medianCut(bucket[:mid], leftTarget, out)
	return medianCut(bucket[mid:], target-leftTarget, out)
}

func widestChannel(bucket []colorspace.RGB) channel {
	lo := bucket[0]
	hi := bucket[0]
	for _, c := range bucket[1:] {
		lo.R, hi.R = min(lo.R, c.R), max(hi.R, c.R)
		lo.G, hi.G = min(lo.G, c.G), max(hi.G, c.G)
		lo.B, hi.B = min(lo.B, c.B), max(hi.B, c.B)
	}
	rr := int(hi.R) - int(lo.R)
	rg := int(hi.G) - int(lo.G)
	rb := int(hi.B) - int(lo.B)

	switch widest := max(rr, rg, rb); widest {
	case rr:
		return channelR
	case rg:
		return channelG
	default:
		return channelB
	}
}

func average(bucket []colorspace.RGB) colorspace.RGB {
	if len(bucket) == 0 {
		return colorspace.Black
	}
	var sr, sg, sb int
	for _, c := range bucket {
		sr += int(c.R)
		sg += int(c.G)
		sb += int(c.B)
	}
	n := float64(len(bucket))
	return colorspace.RGB{
		R: uint8(math.Floor(float64(sr)/n + 0.5)),
		G: uint8(math.Floor(float64(sg)/n + 0.5)),
		B: uint8(math.Floor(float64(sb)/n + 0.5)),
	}
}

// SamplePixels collects the RGB values of img for quantization.
//
// When the image has more than maxSamples pixels, rows and columns are
// visited with a uniform stride so that roughly maxSamples pixels are
// returned. A maxSamples of 0 or less samples every pixel. Alpha is ignored.
func SamplePixels(img image.Image, maxSamples int) []colorspace.RGB {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	step := 1
	if maxSamples > 0 && width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	out := make([]colorspace.RGB, 0, ((width+step-1)/step)*((height+step-1)/step))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			out = append(out, colorspace.FromColor(img.At(x, y)))
		}
	}
	return out
}

// FromImage derives a palette of count colors from img with median-cut,
// sampling at most DefaultMaxSamples pixels.
func FromImage(img image.Image, count int) Palette {
	return Quantize(SamplePixels(img, DefaultMaxSamples), count)
}
