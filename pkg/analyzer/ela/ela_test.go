package ela

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fakedetect/pkg/analyzer"
	"fakedetect/pkg/config"
	"fakedetect/pkg/models"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
}

func flatImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func newAnalyzer(t *testing.T) (*Analyzer, *config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	return New(cfg), cfg
}

func TestFlatLosslessImageIsClean(t *testing.T) {
	// A flat mid-gray PNG survives a quality-90 JPEG round trip almost
	// exactly; ELA must not flag it.
	a, cfg := newAnalyzer(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "flat.png")
	img := flatImage(64, 64, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	writePNG(t, path, img)

	outcome, err := a.Analyze(analyzer.NewSource(path, img))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	result, ok := outcome.(*models.ELAResult)
	if !ok {
		t.Fatalf("unexpected outcome type %T", outcome)
	}
	if result.Suspicious {
		t.Errorf("flat lossless image flagged suspicious: mean=%f std=%f",
			result.MeanDifference, result.StdDifference)
	}
	if result.MeanDifference > cfg.Thresholds.ELAMeanDiff {
		t.Errorf("unexpected mean difference %f", result.MeanDifference)
	}

	assertNoTempFiles(t, cfg.OutputDir)
}

func TestHeavyRecompressionRaisesDifference(t *testing.T) {
	// An image saved at very low JPEG quality diverges from its quality-90
	// re-encode; the mean difference must exceed the one of the clean case.
	a, _ := newAnalyzer(t)
	dir := t.TempDir()

	// High-frequency content so low-quality JPEG visibly degrades.
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			var v uint8
			if (x+y)%2 == 0 {
				v = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	path := filepath.Join(dir, "crushed.jpg")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: 5}); err != nil {
		t.Fatal(err)
	}
	file.Close()

	outcome, err := a.Analyze(analyzer.NewSource(path, img))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	result := outcome.(*models.ELAResult)
	if result.MeanDifference == 0 && result.StdDifference == 0 {
		t.Error("expected non-zero residual for heavily recompressed image")
	}
}

func TestTempFileCleanupOnFailure(t *testing.T) {
	// The source path disappears between decode and re-read, so the analyzer
	// fails; no temporary file may remain either way.
	a, cfg := newAnalyzer(t)
	path := filepath.Join(t.TempDir(), "gone.png")
	img := flatImage(8, 8, color.NRGBA{A: 255})

	if _, err := a.Analyze(analyzer.NewSource(path, img)); err == nil {
		t.Fatal("expected error for missing file")
	}
	assertNoTempFiles(t, cfg.OutputDir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "temp_") {
			t.Errorf("temporary file leaked: %s", entry.Name())
		}
	}
}
