package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds holds the per-analyzer decision constants. The defaults were
// chosen empirically, not derived from a labeled dataset; treat them as
// tunable configuration rather than ground truth.
type Thresholds struct {
	ELAMeanDiff      float64 `yaml:"ela_mean_diff"`
	ELAStdDiff       float64 `yaml:"ela_std_diff"`
	NoiseDetailStd   float64 `yaml:"noise_detail_std"`
	HistogramEntropy float64 `yaml:"histogram_entropy"`
	TextureEntropy   float64 `yaml:"texture_entropy"`
}

// CopyMove configures the block-matching detector. NearMatch switches the
// detector from exact pixel equality to perceptual-hash matching with the
// given Hamming-distance bound; it trades precision for recall on
// recompressed images and is off by default.
type CopyMove struct {
	BlockSize       int  `yaml:"block_size"`
	NearMatch       bool `yaml:"near_match"`
	MaxHashDistance int  `yaml:"max_hash_distance"`
}

// Config is the full configuration surface of the pipeline.
type Config struct {
	OutputDir  string     `yaml:"output_dir"`
	Thresholds Thresholds `yaml:"thresholds"`
	CopyMove   CopyMove   `yaml:"copy_move"`
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		OutputDir: "output",
		Thresholds: Thresholds{
			ELAMeanDiff:      5.0,
			ELAStdDiff:       10.0,
			NoiseDetailStd:   20.0,
			HistogramEntropy: 4.0,
			TextureEntropy:   2.0,
		},
		CopyMove: CopyMove{
			BlockSize:       16,
			NearMatch:       false,
			MaxHashDistance: 6,
		},
	}
}

// Load reads a YAML config file and overlays it on the defaults, so a file
// only needs to mention the settings it changes.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("output_dir must not be empty")
	}
	if cfg.CopyMove.BlockSize <= 0 {
		return nil, fmt.Errorf("copy_move.block_size must be positive, got %d", cfg.CopyMove.BlockSize)
	}
	return cfg, nil
}
