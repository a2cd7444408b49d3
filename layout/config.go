package layout

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config holds the thresholds of the line reconstruction passes. Distances
// are in em of the reference line or group unless noted otherwise.
type Config struct {
	// LineDetection enables the merge passes. When false every group with
	// glyphs becomes its own line.
	LineDetection bool

	// MaxSearchGroupWords is how many preceding groups the basic pass
	// scans for a link (default: 20)
	MaxSearchGroupWords int `validate:"gte=1"`

	// MaxCumulWidth stops the backward scan once the scanned groups are
	// wider than this in total (default: 25)
	MaxCumulWidth float64 `validate:"gt=0"`

	// MaxAngle is the largest angle between two baselines, in radians,
	// for them to share a line (default: 0.1)
	MaxAngle float64 `validate:"gte=0,lte=3.15"`

	// MaxHDistanceLB and MaxHDistanceUB bound the horizontal gap between
	// two linked word runs (defaults: -10 and 6)
	MaxHDistanceLB float64
	MaxHDistanceUB float64 `validate:"gtefield=MaxHDistanceLB"`

	// MinVOverlap is the smallest vertical overlap, as a fraction of the
	// lower of the two heights, for a link (default: 0.3)
	MinVOverlap float64 `validate:"gte=0,lte=1"`

	// MinLineWidthIn is the width below which a line does not absorb
	// others in the inside pass (default: 1.0)
	MinLineWidthIn float64 `validate:"gte=0"`

	// InsideXScale scales the line width to get the inside search zone
	// (default: 1.5)
	InsideXScale float64 `validate:"gte=1"`

	// InsideYScale is the zone margin above and below the line, as a
	// fraction of its clamped height (default: 0.8)
	InsideYScale float64 `validate:"gte=0"`

	// MaxLineHeight clamps the line height used for the inside zone so tall
	// glyphs do not blow it up (default: 2.0)
	MaxLineHeight float64 `validate:"gt=0"`

	// OutsideIterations is the number of outside passes; pass n enlarges
	// by n times the steps below (default: 9)
	OutsideIterations int `validate:"gte=0"`

	// OutsideXStep and OutsideYStep are the per-pass enlargements
	// (defaults: 0.15 and 0.05)
	OutsideXStep float64 `validate:"gte=0"`
	OutsideYStep float64 `validate:"gte=0"`

	// MinWidthHeightRatio is the width to height ratio a line needs to
	// take part in the outside pass (default: 2.5)
	MinWidthHeightRatio float64 `validate:"gte=0"`

	// MaxOutsideGroups bounds how far, in group indices, the outside pass
	// looks before and after a line (default: 10)
	MaxOutsideGroups int `validate:"gte=0"`

	// TextGap is the gap above which Line.Text inserts a space (default: 0.1)
	TextGap float64 `validate:"gte=0"`

	// MergeSmall runs the experimental small-line merge (default: false)
	MergeSmall bool

	// SmallMaxDistance is how close a small line must be to a regular one
	// to be merged into it (default: 0.5)
	SmallMaxDistance float64 `validate:"gte=0"`

	// SplitBlocks runs the experimental horizontal block split (default: false)
	SplitBlocks bool

	// SplitBlockDistance is the gap that separates two blocks when
	// splitting (default: 2.0)
	SplitBlockDistance float64 `validate:"gte=0"`

	// Columns configures column detection for reading order
	Columns ColumnConfig

	// CheckInvariants validates the arena after every pass and logs
	// violations (default: false)
	CheckInvariants bool
}

// DefaultConfig returns sensible defaults for line reconstruction
func DefaultConfig() Config {
	return Config{
		LineDetection:       true,
		MaxSearchGroupWords: 20,
		MaxCumulWidth:       25,
		MaxAngle:            0.1,
		MaxHDistanceLB:      -10,
		MaxHDistanceUB:      6,
		MinVOverlap:         0.3,
		MinLineWidthIn:      1.0,
		InsideXScale:        1.5,
		InsideYScale:        0.8,
		MaxLineHeight:       2.0,
		OutsideIterations:   9,
		OutsideXStep:        0.15,
		OutsideYStep:        0.05,
		MinWidthHeightRatio: 2.5,
		MaxOutsideGroups:    10,
		TextGap:             0.1,
		SmallMaxDistance:    0.5,
		SplitBlockDistance:  2.0,
		Columns:             DefaultColumnConfig(),
	}
}

// Validate checks the thresholds
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid layout config: %w", err)
	}
	return nil
}
