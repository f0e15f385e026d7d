package pipeline

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"fakedetect/pkg/config"
	"fakedetect/pkg/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	return cfg
}

func writeTestImage(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 48, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 5) % 256),
				G: uint8((y * 3) % 256),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReportAlwaysHasSixSlots(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, zerolog.Nop())
	path := writeTestImage(t, t.TempDir(), "photo.png")

	report, err := p.Analyze(path)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(report.AnalysisResults) != len(models.AnalyzerNames) {
		t.Errorf("expected %d result slots, got %d",
			len(models.AnalyzerNames), len(report.AnalysisResults))
	}
	if !report.Complete() {
		t.Error("report must contain every analyzer slot")
	}
	for _, name := range models.AnalyzerNames {
		if _, ok := report.AnalysisResults[name].(models.ErrorResult); ok {
			t.Errorf("analyzer %s unexpectedly failed on a valid image", name)
		}
	}
}

func TestFatalDecodeFailure(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, zerolog.Nop())

	path := filepath.Join(t.TempDir(), "broken.jpg")
	if err := os.WriteFile(path, []byte("this is not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	report, err := p.Analyze(path)
	if err == nil {
		t.Fatal("expected error for undecodable input")
	}
	if report != nil {
		t.Error("fatal decode failure must not produce a report")
	}

	// Nothing may have been persisted.
	entries, err := os.ReadDir(cfg.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty output dir, found %d entries", len(entries))
	}
}

func TestIdempotence(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, zerolog.Nop())
	path := writeTestImage(t, t.TempDir(), "photo.png")

	first, err := p.Analyze(path)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := p.Analyze(path)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	// Timestamps differ by design; all verdicts and statistics must not.
	if !reflect.DeepEqual(first.AnalysisResults, second.AnalysisResults) {
		t.Error("two runs on the same input produced different results")
	}
}

func TestPersistedArtifacts(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, zerolog.Nop())
	path := writeTestImage(t, t.TempDir(), "evidence.png")

	if _, err := p.Analyze(path); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	for _, name := range []string{
		"evidence_report.json",
		"evidence_ela.jpg",
		"evidence_histogram.png",
	} {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
}

func TestReportJSONShape(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, zerolog.Nop())
	path := writeTestImage(t, t.TempDir(), "shape.png")

	if _, err := p.Analyze(path); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "shape_report.json"))
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Filename        string                     `json:"filename"`
		Timestamp       string                     `json:"timestamp"`
		AnalysisResults map[string]json.RawMessage `json:"analysis_results"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}

	if decoded.Filename != "shape.png" {
		t.Errorf("unexpected filename %q", decoded.Filename)
	}
	if decoded.Timestamp == "" {
		t.Error("missing timestamp")
	}
	for _, name := range models.AnalyzerNames {
		raw, ok := decoded.AnalysisResults[name]
		if !ok {
			t.Errorf("missing analyzer key %q in JSON report", name)
			continue
		}
		var slot map[string]any
		if err := json.Unmarshal(raw, &slot); err != nil {
			t.Errorf("analyzer %s: invalid slot: %v", name, err)
			continue
		}
		_, hasSuspicious := slot["suspicious"]
		_, hasError := slot["error"]
		if hasSuspicious == hasError {
			t.Errorf("analyzer %s: exactly one of suspicious/error must be present", name)
		}
	}
}

func TestAnalyzerOrder(t *testing.T) {
	p := New(testConfig(t), zerolog.Nop())

	var names []string
	for _, a := range p.Analyzers() {
		names = append(names, a.Name())
	}
	if !reflect.DeepEqual(names, models.AnalyzerNames) {
		t.Errorf("analyzer order %v does not match %v", names, models.AnalyzerNames)
	}
}
