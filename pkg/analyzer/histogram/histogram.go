// Package histogram analyzes per-channel intensity distributions. Synthetic
// or heavily smoothed images concentrate their mass in few intensity levels,
// which shows up as abnormally low Shannon entropy.
package histogram

import (
	"fakedetect/pkg/analyzer"
	"fakedetect/pkg/config"
	"fakedetect/pkg/imgutil"
	"fakedetect/pkg/models"
)

// Bins is the number of intensity bins per channel.
const Bins = 256

// channelOrder preserves the b, g, r reporting convention of the report
// format.
var channelOrder = []string{"b", "g", "r"}

// Analyzer measures per-channel histogram statistics.
type Analyzer struct {
	analyzer.BaseAnalyzer
	minEntropy float64
}

// New creates the Color-Histogram Analyzer.
func New(cfg *config.Config) *Analyzer {
	return &Analyzer{
		BaseAnalyzer: analyzer.NewBaseAnalyzer(
			models.AnalyzerHistogram,
			"Detects artificial color distributions via histogram entropy",
		),
		minEntropy: cfg.Thresholds.HistogramEntropy,
	}
}

// Analyze computes a 256-bin histogram per color channel and flags the image
// when any channel's entropy falls below the configured minimum.
func (a *Analyzer) Analyze(src *analyzer.Source) (models.Outcome, error) {
	hists := ChannelHistograms(src)

	channelStats := make(map[string]models.ChannelStats, len(channelOrder))
	suspicious := false
	for _, ch := range channelOrder {
		hist := hists[ch]
		entropy := imgutil.Entropy(hist)
		channelStats[ch] = models.ChannelStats{
			Mean:    imgutil.Mean(hist),
			Std:     imgutil.PopStd(hist),
			Entropy: entropy,
		}
		if entropy < a.minEntropy {
			suspicious = true
		}
	}

	var findings []string
	if suspicious {
		findings = append(findings, "Artificial color patterns detected")
	}

	return &models.HistogramResult{
		HistogramStatistics: channelStats,
		Verdict:             models.NewVerdict(a.Name(), suspicious, findings...),
	}, nil
}

// ChannelHistograms counts 8-bit intensities per color channel. Keys follow
// channelOrder.
func ChannelHistograms(src *analyzer.Source) map[string][]float64 {
	nrgba := imgutil.ToNRGBA(src.Img)

	b := make([]float64, Bins)
	g := make([]float64, Bins)
	r := make([]float64, Bins)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		r[nrgba.Pix[i]]++
		g[nrgba.Pix[i+1]]++
		b[nrgba.Pix[i+2]]++
	}
	return map[string][]float64{"b": b, "g": g, "r": r}
}
