package layout

import (
	"github.com/tsawler/textlines/logger"
	"github.com/tsawler/textlines/text"
)

// Run builds the lines of a page from its groups, which must be sorted by
// group index
func Run(groups []*text.Group, cfg Config) *Lines {
	ls := NewLines(groups, cfg)
	ls.Run()
	return ls
}

// Run executes the passes in order: basic linking, inside merge, the
// outside iterations, then the enabled experimental passes. Existing
// lines are cleared first.
func (ls *Lines) Run() {
	ls.Clear()
	if !ls.cfg.LineDetection {
		for _, g := range ls.groups {
			if g.HasGlyphs() {
				ls.NewLine(g)
			}
		}
		ls.check("single")
		return
	}

	for _, g := range ls.groups {
		ls.CreateLineBasic(g)
	}
	ls.check("basic")

	ls.MergeLinesEnlargeInside()
	for n := 0; n < ls.cfg.OutsideIterations; n++ {
		ls.MergeLinesEnlargeOutside(ls.cfg.OutsideXStep*float64(n), ls.cfg.OutsideYStep*float64(n), 0)
	}

	if ls.cfg.MergeSmall {
		ls.MergeLinesSmall()
	}
	if ls.cfg.SplitBlocks {
		ls.SplitByHorizontalBlocks(ls.cfg.SplitBlockDistance)
	}
	logger.Debug("lines built", "groups", len(ls.groups), "lines", ls.Len())
}
