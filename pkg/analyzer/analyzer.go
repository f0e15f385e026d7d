package analyzer

import (
	"fakedetect/pkg/models"
)

// Analyzer is the interface every forensic heuristic implements. An analyzer
// inspects the shared Source and returns either its concrete result or an
// error; it must never mutate the Source. The pipeline captures a returned
// error in the analyzer's own report slot, so one failing analyzer does not
// abort its siblings.
type Analyzer interface {
	// Name returns the fixed report key of the analyzer.
	Name() string

	// Description returns a short description of what the analyzer detects.
	Description() string

	// Analyze runs the heuristic against the shared source.
	Analyze(src *Source) (models.Outcome, error)
}

// BaseAnalyzer provides the common name/description plumbing.
type BaseAnalyzer struct {
	name        string
	description string
}

// NewBaseAnalyzer creates a new BaseAnalyzer.
func NewBaseAnalyzer(name, description string) BaseAnalyzer {
	return BaseAnalyzer{
		name:        name,
		description: description,
	}
}

// Name returns the analyzer name.
func (b *BaseAnalyzer) Name() string {
	return b.name
}

// Description returns the analyzer description.
func (b *BaseAnalyzer) Description() string {
	return b.description
}
