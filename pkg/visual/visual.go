// Package visual renders the supporting artifacts written next to each JSON
// report: the error-level difference map and the per-channel histogram plot.
package visual

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"fakedetect/pkg/analyzer"
	"fakedetect/pkg/analyzer/ela"
	"fakedetect/pkg/analyzer/histogram"
	"fakedetect/pkg/imgutil"
)

// WriteELADiff writes the error-level difference map of img to outPath as
// JPEG: the absolute difference between the image and its in-memory
// re-encode at the fixed ELA quality. Same dimensions as the input.
func WriteELADiff(img image.Image, outPath string) error {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: ela.Quality}); err != nil {
		return fmt.Errorf("failed to re-encode image: %w", err)
	}
	recompressed, _, err := image.Decode(&buf)
	if err != nil {
		return fmt.Errorf("failed to decode recompressed image: %w", err)
	}

	diff, err := imgutil.AbsDiff(img, recompressed)
	if err != nil {
		return err
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create difference map: %w", err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, diff, nil); err != nil {
		return fmt.Errorf("failed to encode difference map: %w", err)
	}
	return nil
}

// WriteHistogramPlot renders the per-channel intensity histograms of img as
// a line chart and writes it to outPath as PNG.
func WriteHistogramPlot(img image.Image, outPath string) error {
	src := analyzer.NewSource("", img)
	hists := histogram.ChannelHistograms(src)

	p := plot.New()
	p.Title.Text = "Color Histogram"
	p.X.Label.Text = "Pixel Value"
	p.Y.Label.Text = "Frequency"

	channels := []struct {
		key   string
		color color.RGBA
	}{
		{"b", color.RGBA{B: 255, A: 255}},
		{"g", color.RGBA{G: 160, A: 255}},
		{"r", color.RGBA{R: 255, A: 255}},
	}
	for _, ch := range channels {
		line, err := plotter.NewLine(histXYs(hists[ch.key]))
		if err != nil {
			return fmt.Errorf("failed to build %s channel series: %w", ch.key, err)
		}
		line.Color = ch.color
		p.Add(line)
		p.Legend.Add(ch.key, line)
	}

	if err := p.Save(10*vg.Inch, 6*vg.Inch, outPath); err != nil {
		return fmt.Errorf("failed to save histogram plot: %w", err)
	}
	return nil
}

func histXYs(hist []float64) plotter.XYs {
	xys := make(plotter.XYs, len(hist))
	for i, count := range hist {
		xys[i].X = float64(i)
		xys[i].Y = count
	}
	return xys
}
