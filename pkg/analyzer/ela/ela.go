// Package ela implements Error Level Analysis: re-encoding the image at a
// fixed JPEG quality and measuring the residual against the on-disk original.
// Edited or already-recompressed regions leave a larger residual than a
// single-generation capture.
package ela

import (
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"

	"fakedetect/pkg/analyzer"
	"fakedetect/pkg/config"
	"fakedetect/pkg/imgutil"
	"fakedetect/pkg/models"
)

// Quality is the fixed re-encode quality factor.
const Quality = 90

// Analyzer measures recompression residual statistics.
type Analyzer struct {
	analyzer.BaseAnalyzer
	outputDir string
	meanDiff  float64
	stdDiff   float64
}

// New creates the Error-Level Analyzer.
func New(cfg *config.Config) *Analyzer {
	return &Analyzer{
		BaseAnalyzer: analyzer.NewBaseAnalyzer(
			models.AnalyzerELA,
			"Detects recompression and edits via error-level analysis",
		),
		outputDir: cfg.OutputDir,
		meanDiff:  cfg.Thresholds.ELAMeanDiff,
		stdDiff:   cfg.Thresholds.ELAStdDiff,
	}
}

// Analyze re-reads the file from disk (ELA must reflect the on-disk
// encoding), re-encodes it at the fixed quality into a temporary file under
// the output directory, and compares the two decodes. The temporary file is
// removed on every return path.
func (a *Analyzer) Analyze(src *analyzer.Source) (models.Outcome, error) {
	original, err := imgutil.Decode(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read original: %w", err)
	}

	if err := os.MkdirAll(a.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	tempPath := filepath.Join(a.outputDir, "temp_"+filepath.Base(src.Path))
	defer os.Remove(tempPath)

	if err := writeJPEG(tempPath, original); err != nil {
		return nil, err
	}

	recompressed, err := imgutil.Decode(tempPath)
	if err != nil {
		return nil, fmt.Errorf("failed to decode recompressed image: %w", err)
	}

	diff, err := imgutil.AbsDiff(original, recompressed)
	if err != nil {
		return nil, err
	}

	mean, std := diffStats(diff.Pix)
	suspicious := mean > a.meanDiff || std > a.stdDiff

	var findings []string
	if mean > a.meanDiff {
		findings = append(findings, "High error level detected")
	}

	return &models.ELAResult{
		MeanDifference: mean,
		StdDifference:  std,
		Verdict:        models.NewVerdict(a.Name(), suspicious, findings...),
	}, nil
}

// writeJPEG encodes img to path at the fixed ELA quality.
func writeJPEG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: Quality}); err != nil {
		return fmt.Errorf("failed to encode recompressed image: %w", err)
	}
	return nil
}

// diffStats computes the mean and population standard deviation of the RGB
// bytes of an NRGBA difference buffer, skipping the alpha channel.
func diffStats(pix []uint8) (mean, std float64) {
	n := 0
	var sum float64
	for i := 0; i < len(pix); i += 4 {
		for c := 0; c < 3; c++ {
			sum += float64(pix[i+c])
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	mean = sum / float64(n)

	var sumSq float64
	for i := 0; i < len(pix); i += 4 {
		for c := 0; c < 3; c++ {
			d := float64(pix[i+c]) - mean
			sumSq += d * d
		}
	}
	std = math.Sqrt(sumSq / float64(n))
	return mean, std
}
