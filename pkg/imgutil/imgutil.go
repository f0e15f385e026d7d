package imgutil

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"gonum.org/v1/gonum/stat"
)

// Decode opens and decodes an image file. The blank imports above register
// every decoder the pipeline accepts (jpeg, png, gif, bmp, tiff, webp).
func Decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ToGray converts an image to 8-bit grayscale.
func ToGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// ToNRGBA converts an image to NRGBA with origin at (0,0) for direct pixel
// buffer access.
func ToNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// AbsDiff computes the per-pixel absolute difference of the RGB channels of
// two images. The alpha channel of the result is fully opaque. Dimensions
// must match.
func AbsDiff(a, b image.Image) (*image.NRGBA, error) {
	na := ToNRGBA(a)
	nb := ToNRGBA(b)
	if na.Bounds() != nb.Bounds() {
		return nil, fmt.Errorf("image dimensions do not match: %v vs %v", na.Bounds(), nb.Bounds())
	}

	diff := image.NewNRGBA(na.Bounds())
	for i := 0; i < len(na.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			va := int(na.Pix[i+c])
			vb := int(nb.Pix[i+c])
			d := va - vb
			if d < 0 {
				d = -d
			}
			diff.Pix[i+c] = uint8(d)
		}
		diff.Pix[i+3] = 0xff
	}
	return diff, nil
}

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// PopStd returns the population standard deviation of xs. The decision rules
// were calibrated against population moments, so the sample (n-1) estimator
// is deliberately not used here.
func PopStd(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := Mean(xs)
	var sumSq float64
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}

// Entropy computes the natural-log Shannon entropy of a histogram. The
// counts are normalized to a distribution first; an all-zero histogram has
// zero entropy.
func Entropy(hist []float64) float64 {
	var total float64
	for _, c := range hist {
		total += c
	}
	if total == 0 {
		return 0
	}

	p := make([]float64, len(hist))
	for i, c := range hist {
		p[i] = c / total
	}
	return stat.Entropy(p)
}
