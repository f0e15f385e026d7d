// Package texture detects signatures of synthetic image generation through
// local binary patterns. Generation pipelines tend to smooth high-frequency
// micro-texture, which collapses the LBP histogram into few values and
// lowers its entropy.
package texture

import (
	"image"
	"math/bits"

	"fakedetect/pkg/analyzer"
	"fakedetect/pkg/config"
	"fakedetect/pkg/imgutil"
	"fakedetect/pkg/models"
)

// Neighborhood parameters of the descriptor: radius 1, 8 sampling points.
const (
	lbpPoints = 8
	// lbpValues is the number of distinct rotation-invariant uniform
	// pattern values: 0..8 uniform plus one bucket for non-uniform.
	lbpValues = lbpPoints + 2
)

// Detector flags AI-generation texture artifacts.
type Detector struct {
	analyzer.BaseAnalyzer
	minEntropy float64
}

// New creates the Texture-Artifact Detector.
func New(cfg *config.Config) *Detector {
	return &Detector{
		BaseAnalyzer: analyzer.NewBaseAnalyzer(
			models.AnalyzerTexture,
			"Detects AI-generation artifacts via local binary pattern entropy",
		),
		minEntropy: cfg.Thresholds.TextureEntropy,
	}
}

// Analyze computes the uniform LBP histogram of the grayscale buffer and
// flags the image when its entropy falls below the configured minimum.
func (d *Detector) Analyze(src *analyzer.Source) (models.Outcome, error) {
	hist := LBPHistogram(src.Gray())
	entropy := imgutil.Entropy(hist)
	suspicious := entropy < d.minEntropy

	var findings []string
	if suspicious {
		findings = append(findings, "AI generation artifacts detected")
	}

	return &models.TextureResult{
		Entropy: entropy,
		Verdict: models.NewVerdict(d.Name(), suspicious, findings...),
	}, nil
}

// LBPHistogram computes the 10-bin histogram of rotation-invariant uniform
// local binary pattern values over the interior pixels (the 1-pixel border
// has no full neighborhood and is skipped). A pattern is uniform when its
// circular bit string has at most two 0/1 transitions; its value is then the
// number of set bits (0..8), all other patterns share the value 9.
func LBPHistogram(gray *image.Gray) []float64 {
	bounds := gray.Bounds()
	h, w := bounds.Dy(), bounds.Dx()

	hist := make([]float64, lbpValues)
	if h < 3 || w < 3 {
		return hist
	}

	// Neighbor offsets in circular order around the center pixel.
	offsets := [lbpPoints][2]int{
		{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
		{0, -1}, {1, -1}, {1, 0}, {1, 1},
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			center := gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y

			var pattern uint8
			for i, off := range offsets {
				neighbor := gray.GrayAt(bounds.Min.X+x+off[1], bounds.Min.Y+y+off[0]).Y
				if neighbor >= center {
					pattern |= 1 << uint(i)
				}
			}
			hist[uniformValue(pattern)]++
		}
	}
	return hist
}

// uniformValue maps an 8-bit circular pattern to its rotation-invariant
// uniform value.
func uniformValue(pattern uint8) int {
	rotated := pattern>>1 | pattern<<(lbpPoints-1)
	transitions := bits.OnesCount8(pattern ^ rotated)
	if transitions <= 2 {
		return bits.OnesCount8(pattern)
	}
	return lbpPoints + 1
}
