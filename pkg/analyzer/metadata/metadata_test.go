package metadata

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"fakedetect/pkg/analyzer"
	"fakedetect/pkg/models"
)

func TestSuspiciousSoftware(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"Adobe Photoshop 25.0 (Windows)", true},
		{"PHOTOSHOP CC", true},
		{"GIMP 2.10.36", true},
		{"Adobe Lightroom Classic", true},
		{"Canon EOS R5", false},
		{"NIKON D850 Ver.1.10", false},
		{"", false},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			if got := SuspiciousSoftware(tc.value); got != tc.want {
				t.Errorf("SuspiciousSoftware(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestAnalyzeWithoutMetadataIsClean(t *testing.T) {
	// A bare PNG has no EXIF container; that is a clean result, not an error.
	path := filepath.Join(t.TempDir(), "plain.png")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
	file.Close()

	inspector := New()
	outcome, err := inspector.Analyze(analyzer.NewSource(path, img))
	if err != nil {
		t.Fatalf("expected no error for missing metadata, got %v", err)
	}

	result, ok := outcome.(*models.MetadataResult)
	if !ok {
		t.Fatalf("unexpected outcome type %T", outcome)
	}
	if result.Suspicious {
		t.Error("image without metadata must not be suspicious")
	}
	if len(result.ExifData) != 0 {
		t.Errorf("expected empty exif map, got %d entries", len(result.ExifData))
	}
	if len(result.Findings) != 0 {
		t.Errorf("expected no findings, got %v", result.Findings)
	}
	if result.Parecer != models.Narrative(models.AnalyzerMetadata, false) {
		t.Error("clean result must carry the clean narrative")
	}
}

func TestName(t *testing.T) {
	if New().Name() != models.AnalyzerMetadata {
		t.Errorf("unexpected analyzer name %q", New().Name())
	}
}
