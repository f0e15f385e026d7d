// Package copymove detects copy-move forgery: a region duplicated elsewhere
// in the same image to conceal or replicate content. The image is cut into
// fixed-size blocks and every unordered pair of blocks is compared.
//
// The default matching rule is exact pixel equality over all pairs, which is
// quadratic in the block count (O((area/blockSize²)²)); large images make
// this step slow. That cost is accepted: it is the only rule with zero false
// positives from recompression noise. The optional near-match mode replaces
// it with perceptual-hash matching, which also catches duplicated blocks
// that were re-encoded after pasting, at the price of possible
// false positives on genuinely self-similar content.
package copymove

import (
	"bytes"
	"fmt"
	"image"

	"github.com/corona10/goimagehash"

	"fakedetect/pkg/analyzer"
	"fakedetect/pkg/config"
	"fakedetect/pkg/models"
)

// Detector finds duplicated blocks in disjoint regions.
type Detector struct {
	analyzer.BaseAnalyzer
	blockSize   int
	nearMatch   bool
	maxDistance int
}

// New creates the Copy-Move Detector.
func New(cfg *config.Config) *Detector {
	return &Detector{
		BaseAnalyzer: analyzer.NewBaseAnalyzer(
			models.AnalyzerCopyMove,
			"Detects copy-move forgery via duplicated block matching",
		),
		blockSize:   cfg.CopyMove.BlockSize,
		nearMatch:   cfg.CopyMove.NearMatch,
		maxDistance: cfg.CopyMove.MaxHashDistance,
	}
}

// block is one full tile of the grayscale buffer: its top-left coordinates
// and its pixel content packed row-major.
type block struct {
	y, x int
	pix  []byte
}

// Analyze partitions the grayscale buffer into non-overlapping full blocks
// (partial blocks at the bottom/right margin are discarded) and counts
// matching pairs.
func (d *Detector) Analyze(src *analyzer.Source) (models.Outcome, error) {
	gray := src.Gray()
	blocks := cutBlocks(gray, d.blockSize)

	var matches int
	var err error
	if d.nearMatch {
		matches, err = countNearMatches(gray, blocks, d.blockSize, d.maxDistance)
		if err != nil {
			return nil, err
		}
	} else {
		matches = countExactMatches(blocks)
	}

	var findings []string
	if matches > 0 {
		findings = append(findings, "Copy-move forgery detected")
	}

	return &models.CopyMoveResult{
		Verdict:            models.NewVerdict(d.Name(), matches > 0, findings...),
		SimilarBlocksCount: matches,
	}, nil
}

// cutBlocks extracts every full blockSize×blockSize tile.
func cutBlocks(gray *image.Gray, blockSize int) []block {
	bounds := gray.Bounds()
	h, w := bounds.Dy(), bounds.Dx()

	var blocks []block
	for y := 0; y+blockSize <= h; y += blockSize {
		for x := 0; x+blockSize <= w; x += blockSize {
			pix := make([]byte, 0, blockSize*blockSize)
			for row := 0; row < blockSize; row++ {
				off := gray.PixOffset(bounds.Min.X+x, bounds.Min.Y+y+row)
				pix = append(pix, gray.Pix[off:off+blockSize]...)
			}
			blocks = append(blocks, block{y: y, x: x, pix: pix})
		}
	}
	return blocks
}

// countExactMatches compares every unordered pair of distinct blocks for
// pixel-wise identical content.
func countExactMatches(blocks []block) int {
	matches := 0
	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			if bytes.Equal(blocks[i].pix, blocks[j].pix) {
				matches++
			}
		}
	}
	return matches
}

// countNearMatches counts pairs whose perceptual difference hashes are
// within maxDistance bits of each other.
func countNearMatches(gray *image.Gray, blocks []block, blockSize, maxDistance int) (int, error) {
	hashes := make([]*goimagehash.ImageHash, len(blocks))
	for i, b := range blocks {
		tile := gray.SubImage(image.Rect(
			gray.Bounds().Min.X+b.x,
			gray.Bounds().Min.Y+b.y,
			gray.Bounds().Min.X+b.x+blockSize,
			gray.Bounds().Min.Y+b.y+blockSize,
		))
		hash, err := goimagehash.DifferenceHash(tile)
		if err != nil {
			return 0, fmt.Errorf("failed to hash block at (%d,%d): %w", b.x, b.y, err)
		}
		hashes[i] = hash
	}

	matches := 0
	for i := range hashes {
		for j := i + 1; j < len(hashes); j++ {
			dist, err := hashes[i].Distance(hashes[j])
			if err != nil {
				return 0, fmt.Errorf("failed to compare block hashes: %w", err)
			}
			if dist <= maxDistance {
				matches++
			}
		}
	}
	return matches, nil
}
