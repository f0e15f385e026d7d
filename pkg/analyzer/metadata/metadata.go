// Package metadata inspects embedded EXIF metadata for traces of image
// editing software.
package metadata

import (
	"fmt"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"fakedetect/pkg/analyzer"
	"fakedetect/pkg/models"
)

// editorDenylist holds the editing tools whose presence in the Software tag
// marks an image as suspicious. Matching is a case-insensitive substring
// check, so values like "Adobe Photoshop 25.0 (Windows)" are caught.
var editorDenylist = []string{"photoshop", "gimp", "lightroom"}

// softwareTag is the EXIF tag written by editing tools.
const softwareTag = "Software"

// Inspector flags images whose metadata carries a known editor signature.
type Inspector struct {
	analyzer.BaseAnalyzer
}

// New creates the Metadata Inspector.
func New() *Inspector {
	return &Inspector{
		BaseAnalyzer: analyzer.NewBaseAnalyzer(
			models.AnalyzerMetadata,
			"Inspects EXIF metadata for editing-software signatures",
		),
	}
}

// Analyze reads every EXIF tag from the file on disk. A missing or unreadable
// metadata container yields a clean result with an empty tag map; metadata
// absence is not itself suspicious.
func (a *Inspector) Analyze(src *analyzer.Source) (models.Outcome, error) {
	result := &models.MetadataResult{
		Verdict:  models.NewVerdict(a.Name(), false),
		ExifData: map[string]string{},
	}

	rawExif, err := exif.SearchFileAndExtractExif(src.Path)
	if err != nil {
		return result, nil
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return result, nil
	}

	for _, entry := range entries {
		result.ExifData[entry.TagName] = entry.Formatted

		if entry.TagName == softwareTag && SuspiciousSoftware(entry.Formatted) {
			result.Verdict = models.NewVerdict(a.Name(), true,
				fmt.Sprintf("Suspicious editing software detected: %s", entry.Formatted))
		}
	}
	return result, nil
}

// SuspiciousSoftware reports whether a Software tag value names a denylisted
// editor.
func SuspiciousSoftware(value string) bool {
	lower := strings.ToLower(value)
	for _, editor := range editorDenylist {
		if strings.Contains(lower, editor) {
			return true
		}
	}
	return false
}
