package analyzer

import (
	"image"
	"sync"

	"fakedetect/pkg/imgutil"
)

// Source is the shared input of one analysis run: the file path plus the
// image decoded exactly once by the pipeline. Analyzers treat it as
// read-only. The grayscale derivation is computed lazily on first use and
// then shared, since four of the six analyzers need it.
type Source struct {
	Path string
	Img  image.Image

	grayOnce sync.Once
	gray     *image.Gray
}

// NewSource wraps a decoded image for analysis.
func NewSource(path string, img image.Image) *Source {
	return &Source{Path: path, Img: img}
}

// Gray returns the grayscale derivation of the source image.
func (s *Source) Gray() *image.Gray {
	s.grayOnce.Do(func() {
		s.gray = imgutil.ToGray(s.Img)
	})
	return s.gray
}
