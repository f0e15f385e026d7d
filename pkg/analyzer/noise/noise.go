// Package noise checks the consistency of high-frequency noise energy using
// a single-level 2D Haar wavelet decomposition. Tampered regions introduce
// discontinuities that concentrate energy in the detail sub-bands, while a
// genuine capture carries more uniform sensor noise.
package noise

import (
	"image"

	"fakedetect/pkg/analyzer"
	"fakedetect/pkg/config"
	"fakedetect/pkg/imgutil"
	"fakedetect/pkg/models"
)

// Analyzer measures detail sub-band standard deviations.
type Analyzer struct {
	analyzer.BaseAnalyzer
	detailStd float64
}

// New creates the Noise-Consistency Analyzer.
func New(cfg *config.Config) *Analyzer {
	return &Analyzer{
		BaseAnalyzer: analyzer.NewBaseAnalyzer(
			models.AnalyzerNoise,
			"Detects inconsistent noise via wavelet sub-band energy",
		),
		detailStd: cfg.Thresholds.NoiseDetailStd,
	}
}

// Analyze decomposes the grayscale buffer and flags the image when any of
// the three detail sub-bands exceeds the configured standard deviation.
func (a *Analyzer) Analyze(src *analyzer.Source) (models.Outcome, error) {
	_, cH, cV, cD := HaarDWT(src.Gray())

	stats := models.NoiseStats{
		Horizontal: imgutil.PopStd(cH),
		Vertical:   imgutil.PopStd(cV),
		Diagonal:   imgutil.PopStd(cD),
	}
	suspicious := stats.Horizontal > a.detailStd ||
		stats.Vertical > a.detailStd ||
		stats.Diagonal > a.detailStd

	var findings []string
	if suspicious {
		findings = append(findings, "Inconsistent noise patterns detected")
	}

	return &models.NoiseResult{
		NoiseStatistics: stats,
		Verdict:         models.NewVerdict(a.Name(), suspicious, findings...),
	}, nil
}

// HaarDWT computes a single-level 2D Haar discrete wavelet transform of an
// 8-bit grayscale image and returns the four sub-bands flattened row-major:
// approximation, horizontal, vertical and diagonal detail. Each coefficient
// is the signed sum of a 2x2 neighborhood divided by 2 (the separable
// orthonormal Haar filter applied along both axes). Odd dimensions are
// handled by symmetric edge extension.
func HaarDWT(gray *image.Gray) (cA, cH, cV, cD []float64) {
	bounds := gray.Bounds()
	h, w := bounds.Dy(), bounds.Dx()
	outH, outW := (h+1)/2, (w+1)/2

	n := outH * outW
	cA = make([]float64, 0, n)
	cH = make([]float64, 0, n)
	cV = make([]float64, 0, n)
	cD = make([]float64, 0, n)

	at := func(y, x int) float64 {
		if y >= h {
			y = h - 1
		}
		if x >= w {
			x = w - 1
		}
		return float64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
	}

	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x += 2 {
			a := at(y, x)
			b := at(y, x+1)
			c := at(y+1, x)
			d := at(y+1, x+1)

			cA = append(cA, (a+b+c+d)/2)
			cH = append(cH, (a+b-c-d)/2)
			cV = append(cV, (a-b+c-d)/2)
			cD = append(cD, (a-b-c+d)/2)
		}
	}
	return cA, cH, cV, cD
}
