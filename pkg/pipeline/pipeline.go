// Package pipeline owns the analysis of one image: decode once, run every
// forensic analyzer against the shared buffer, aggregate their results into
// a report and persist it together with the visualization artifacts.
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"fakedetect/pkg/analyzer"
	"fakedetect/pkg/analyzer/copymove"
	"fakedetect/pkg/analyzer/ela"
	"fakedetect/pkg/analyzer/histogram"
	"fakedetect/pkg/analyzer/metadata"
	"fakedetect/pkg/analyzer/noise"
	"fakedetect/pkg/analyzer/texture"
	"fakedetect/pkg/config"
	"fakedetect/pkg/imgutil"
	"fakedetect/pkg/models"
	"fakedetect/pkg/visual"
)

// Pipeline runs the six analyzers sequentially and persists the aggregated
// report. Analyses are stateless across images; a single Pipeline can be
// reused for a whole directory scan.
type Pipeline struct {
	cfg       *config.Config
	log       zerolog.Logger
	analyzers []analyzer.Analyzer
}

// New assembles the pipeline with the six analyzers in execution order.
func New(cfg *config.Config, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg: cfg,
		log: log,
		analyzers: []analyzer.Analyzer{
			metadata.New(),
			ela.New(cfg),
			noise.New(cfg),
			histogram.New(cfg),
			copymove.New(cfg),
			texture.New(cfg),
		},
	}
}

// Analyzers exposes the configured analyzers, in execution order.
func (p *Pipeline) Analyzers() []analyzer.Analyzer {
	return p.analyzers
}

// Analyze runs the full pipeline against one image file.
//
// It fails fast only when the image cannot be decoded at all; any individual
// analyzer failure is captured in that analyzer's own report slot and its
// siblings still run. A persistence failure is returned to the caller
// together with the already-computed in-memory report.
func (p *Pipeline) Analyze(path string) (*models.Report, error) {
	img, err := imgutil.Decode(path)
	if err != nil {
		return nil, fmt.Errorf("could not load image %s: %w", path, err)
	}
	src := analyzer.NewSource(path, img)

	report := models.NewReport(filepath.Base(path))
	for _, a := range p.analyzers {
		report.AnalysisResults[a.Name()] = p.runOne(a, src)
	}

	if err := p.persist(report, src); err != nil {
		return report, err
	}
	return report, nil
}

// runOne executes a single analyzer, converting a returned error or a panic
// into an error record so that one analyzer never unwinds the pipeline.
func (p *Pipeline) runOne(a analyzer.Analyzer, src *analyzer.Source) (outcome models.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn().Str("analyzer", a.Name()).Interface("panic", r).Msg("analyzer panicked")
			outcome = models.ErrorResult{Error: fmt.Sprint(r)}
		}
	}()

	result, err := a.Analyze(src)
	if err != nil {
		p.log.Warn().Str("analyzer", a.Name()).Err(err).Msg("analyzer failed")
		return models.ErrorResult{Error: err.Error()}
	}
	return result
}

// persist writes the JSON report and then, unconditionally, the two
// visualization artifacts derived from the same input image.
func (p *Pipeline) persist(report *models.Report, src *analyzer.Source) error {
	if err := os.MkdirAll(p.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimSuffix(report.Filename, filepath.Ext(report.Filename))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	reportPath := filepath.Join(p.cfg.OutputDir, base+"_report.json")
	if err := os.WriteFile(reportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	elaPath := filepath.Join(p.cfg.OutputDir, base+"_ela.jpg")
	if err := visual.WriteELADiff(src.Img, elaPath); err != nil {
		return fmt.Errorf("failed to write difference map: %w", err)
	}

	histPath := filepath.Join(p.cfg.OutputDir, base+"_histogram.png")
	if err := visual.WriteHistogramPlot(src.Img, histPath); err != nil {
		return fmt.Errorf("failed to write histogram plot: %w", err)
	}

	p.log.Debug().Str("report", reportPath).Msg("analysis persisted")
	return nil
}
