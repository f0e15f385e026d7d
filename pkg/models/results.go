package models

import (
	"time"
)

// Fixed analyzer names used as keys in Report.AnalysisResults. Every report
// carries exactly these six slots, even when individual analyzers fail.
const (
	AnalyzerMetadata  = "metadata"
	AnalyzerELA       = "ela"
	AnalyzerNoise     = "noise"
	AnalyzerHistogram = "histogram"
	AnalyzerCopyMove  = "copy_move"
	AnalyzerTexture   = "ai_artifacts"
)

// AnalyzerNames lists the six analyzer keys in pipeline execution order.
var AnalyzerNames = []string{
	AnalyzerMetadata,
	AnalyzerELA,
	AnalyzerNoise,
	AnalyzerHistogram,
	AnalyzerCopyMove,
	AnalyzerTexture,
}

// Outcome is the value stored in one analyzer slot of a report: either a
// concrete analyzer result or an ErrorResult. Each concrete result type has
// explicit JSON tags, so serialization never relies on runtime inspection.
type Outcome interface {
	isOutcome()
}

// Verdict is the common part of every successful analyzer result.
type Verdict struct {
	Suspicious bool     `json:"suspicious"`
	Findings   []string `json:"findings"`
	Parecer    string   `json:"parecer"`
}

func (Verdict) isOutcome() {}

// GetVerdict lets callers reach the common verdict of any successful result
// without switching on the concrete type.
func (v Verdict) GetVerdict() Verdict { return v }

// NewVerdict builds a Verdict with the narrative for the given analyzer and
// outcome. Findings is always non-nil so a clean result serializes as [].
func NewVerdict(analyzer string, suspicious bool, findings ...string) Verdict {
	if findings == nil {
		findings = []string{}
	}
	return Verdict{
		Suspicious: suspicious,
		Findings:   findings,
		Parecer:    Narrative(analyzer, suspicious),
	}
}

// ErrorResult occupies an analyzer slot when the analyzer could not complete.
type ErrorResult struct {
	Error string `json:"error"`
}

func (ErrorResult) isOutcome() {}

// MetadataResult is the Metadata Inspector outcome.
type MetadataResult struct {
	Verdict
	ExifData map[string]string `json:"exif_data"`
}

// ELAResult is the Error-Level Analyzer outcome.
type ELAResult struct {
	MeanDifference float64 `json:"mean_difference"`
	StdDifference  float64 `json:"std_difference"`
	Verdict
}

// NoiseStats holds the standard deviation of each wavelet detail sub-band.
type NoiseStats struct {
	Horizontal float64 `json:"horizontal"`
	Vertical   float64 `json:"vertical"`
	Diagonal   float64 `json:"diagonal"`
}

// NoiseResult is the Noise-Consistency Analyzer outcome.
type NoiseResult struct {
	NoiseStatistics NoiseStats `json:"noise_statistics"`
	Verdict
}

// ChannelStats summarizes one color channel's intensity histogram.
type ChannelStats struct {
	Mean    float64 `json:"mean"`
	Std     float64 `json:"std"`
	Entropy float64 `json:"entropy"`
}

// HistogramResult is the Color-Histogram Analyzer outcome. Channel keys are
// "b", "g" and "r".
type HistogramResult struct {
	HistogramStatistics map[string]ChannelStats `json:"histogram_statistics"`
	Verdict
}

// CopyMoveResult is the Copy-Move Detector outcome.
type CopyMoveResult struct {
	Verdict
	SimilarBlocksCount int `json:"similar_blocks_count"`
}

// TextureResult is the Texture-Artifact (AI-generation) Detector outcome.
type TextureResult struct {
	Entropy float64 `json:"entropy"`
	Verdict
}

// Report is the aggregated result of one image analysis. It is created once
// per input image and never mutated after the pipeline returns it.
type Report struct {
	Filename        string             `json:"filename"`
	Timestamp       string             `json:"timestamp"`
	AnalysisResults map[string]Outcome `json:"analysis_results"`
}

// NewReport creates an empty report for the given base filename, stamped now.
func NewReport(filename string) *Report {
	return &Report{
		Filename:        filename,
		Timestamp:       time.Now().Format(time.RFC3339),
		AnalysisResults: make(map[string]Outcome, len(AnalyzerNames)),
	}
}

// Complete reports whether every analyzer slot is populated.
func (r *Report) Complete() bool {
	for _, name := range AnalyzerNames {
		if _, ok := r.AnalysisResults[name]; !ok {
			return false
		}
	}
	return true
}
