package textlines

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/tsawler/textlines/analyzer"
	"github.com/tsawler/textlines/layout"
	"github.com/tsawler/textlines/pages"
	"github.com/tsawler/textlines/text"
)

// Config holds the settings of an extraction. The line reconstruction
// settings are embedded, so cfg.LineDetection and cfg.MaxAngle can be set
// directly.
type Config struct {
	layout.Config

	// Words controls how text-showing operators are split into words
	Words text.WordOptions

	// MaxFormDepth bounds the nesting of form XObjects
	MaxFormDepth int `validate:"gte=1,lte=1024"`

	// Workers is the number of pages analyzed at once
	Workers int `validate:"gte=1,lte=256"`

	// ContinueOnError skips pages that fail instead of failing the
	// extraction. Skipped pages are reported as warnings.
	ContinueOnError bool
}

// NewDefaultConfig returns the default configuration
func NewDefaultConfig() Config {
	return Config{
		Config:       layout.DefaultConfig(),
		Words:        text.DefaultWordOptions(),
		MaxFormDepth: analyzer.DefaultMaxFormDepth,
		Workers:      1,
	}
}

// Validate checks the configuration values
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) options(selected []int) pages.Options {
	return pages.Options{
		Words:           c.Words,
		Layout:          c.Config,
		MaxFormDepth:    c.MaxFormDepth,
		Workers:         c.Workers,
		ContinueOnError: c.ContinueOnError,
		Pages:           selected,
	}
}
