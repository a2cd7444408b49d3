package layout

import (
	"sort"

	"github.com/tsawler/textlines/model"
	"github.com/tsawler/textlines/text"
)

// ColumnConfig holds configuration for column detection in page units
type ColumnConfig struct {
	// MinColumnWidth is the minimum width for a region to be considered a column
	// Default: 50 points
	MinColumnWidth float64 `validate:"gte=0"`

	// MinGapWidth is the minimum whitespace gap to consider as column separator
	// Default: 20 points
	MinGapWidth float64 `validate:"gte=0"`

	// MinGapHeightRatio is the minimum vertical extent of a gap, as a ratio
	// of the page height (0.0 to 1.0)
	// Default: 0.5
	MinGapHeightRatio float64 `validate:"gte=0,lte=1"`

	// MaxColumns is the maximum number of columns to detect
	// Default: 6
	MaxColumns int `validate:"gte=1"`

	// SlabTolerance joins covered X ranges closer than this
	// Default: 5 points
	SlabTolerance float64 `validate:"gte=0"`
}

// DefaultColumnConfig returns sensible default configuration
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		MinColumnWidth:    50.0,
		MinGapWidth:       20.0,
		MinGapHeightRatio: 0.5,
		MaxColumns:        6,
		SlabTolerance:     5.0,
	}
}

// Column is a vertical band of lines
type Column struct {
	// BBox is the page-space box of the column's lines
	BBox model.BBox

	// Lines are the lines of the column, top to bottom
	Lines []*Line

	// Index is the column position, left to right
	Index int
}

// gap is a vertical band of page space no line crosses
type gap struct {
	left, right float64
}

func (g gap) center() float64 { return (g.left + g.right) / 2 }

// slab represents a horizontal range
type slab struct {
	left, right float64
}

// DetectColumns splits the lines of a page into columns separated by
// vertical gaps that run over most of the crop box. A page without such
// gaps is a single column.
func DetectColumns(lines []*Line, crop model.BBox, cfg ColumnConfig) []Column {
	var boxes []model.BBox
	var kept []*Line
	for _, l := range lines {
		if l.IsEmpty() {
			continue
		}
		kept = append(kept, l)
		boxes = append(boxes, l.OrientedBBox(false).BBox())
	}
	if len(kept) == 0 {
		return nil
	}

	gaps := findVerticalGaps(boxes, crop.Height, cfg)
	if len(gaps) == 0 {
		return []Column{singleColumn(kept, boxes)}
	}

	columns := make([]Column, len(gaps)+1)
	columnBoxes := make([][]model.BBox, len(columns))
	for i, l := range kept {
		c := boxes[i].Center().X
		k := sort.Search(len(gaps), func(k int) bool { return c < gaps[k].center() })
		columns[k].Lines = append(columns[k].Lines, l)
		columnBoxes[k] = append(columnBoxes[k], boxes[i])
	}

	var out []Column
	for k := range columns {
		if len(columns[k].Lines) == 0 {
			continue
		}
		col := singleColumn(columns[k].Lines, columnBoxes[k])
		if col.BBox.Width < cfg.MinColumnWidth {
			return []Column{singleColumn(kept, boxes)}
		}
		col.Index = len(out)
		out = append(out, col)
	}
	return out
}

func singleColumn(lines []*Line, boxes []model.BBox) Column {
	col := Column{BBox: boxes[0]}
	for _, b := range boxes[1:] {
		col.BBox = col.BBox.Union(b)
	}
	col.Lines = topToBottom(lines, boxes)
	return col
}

// topToBottom sorts lines by the top of their boxes, higher first, then by
// left edge
func topToBottom(lines []*Line, boxes []model.BBox) []*Line {
	idx := make([]int, len(lines))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ba, bb := boxes[idx[a]], boxes[idx[b]]
		if ba.Top() != bb.Top() {
			return ba.Top() > bb.Top()
		}
		return ba.Left() < bb.Left()
	})
	out := make([]*Line, len(lines))
	for i, k := range idx {
		out[i] = lines[k]
	}
	return out
}

// findVerticalGaps finds significant vertical whitespace gaps
func findVerticalGaps(boxes []model.BBox, pageHeight float64, cfg ColumnConfig) []gap {
	slabs := make([]slab, len(boxes))
	for i, b := range boxes {
		slabs[i] = slab{left: b.Left(), right: b.Right()}
	}
	sort.Slice(slabs, func(i, j int) bool { return slabs[i].left < slabs[j].left })
	merged := mergeSlabs(slabs, cfg.SlabTolerance)

	var gaps []gap
	for i := 0; i < len(merged)-1; i++ {
		g := gap{left: merged[i].right, right: merged[i+1].left}
		if g.right-g.left < cfg.MinGapWidth {
			continue
		}
		if gapVerticalExtent(boxes, g, pageHeight) >= cfg.MinGapHeightRatio {
			gaps = append(gaps, g)
		}
	}
	if len(gaps) >= cfg.MaxColumns {
		gaps = gaps[:cfg.MaxColumns-1]
	}
	return gaps
}

// mergeSlabs merges overlapping horizontal slabs
func mergeSlabs(slabs []slab, tolerance float64) []slab {
	if len(slabs) == 0 {
		return nil
	}
	merged := []slab{slabs[0]}
	for _, cur := range slabs[1:] {
		last := &merged[len(merged)-1]
		if cur.left <= last.right+tolerance {
			last.right = max(last.right, cur.right)
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}

// gapVerticalExtent returns the fraction of the page height the gap is
// free of boxes crossing it
func gapVerticalExtent(boxes []model.BBox, g gap, pageHeight float64) float64 {
	if pageHeight <= 0 {
		return 0
	}
	var crossing []slab
	for _, b := range boxes {
		if b.Right() > g.left && b.Left() < g.right {
			crossing = append(crossing, slab{left: b.Bottom(), right: b.Top()})
		}
	}
	if len(crossing) == 0 {
		return 1
	}
	sort.Slice(crossing, func(i, j int) bool { return crossing[i].left < crossing[j].left })

	blocked := 0.0
	for _, r := range mergeSlabs(crossing, 0) {
		blocked += r.right - r.left
	}
	return (pageHeight - blocked) / pageHeight
}

// ReadingColumns returns the columns of lines in reading order: left to
// right, or right to left when most lines are right-to-left text
func ReadingColumns(lines []*Line, crop model.BBox, cfg ColumnConfig) []Column {
	columns := DetectColumns(lines, crop, cfg)

	rtl, ltr := 0, 0
	for _, l := range lines {
		switch l.Direction() {
		case text.RTL:
			rtl++
		case text.LTR:
			ltr++
		}
	}
	if rtl > ltr {
		for i, j := 0, len(columns)-1; i < j; i, j = i+1, j-1 {
			columns[i], columns[j] = columns[j], columns[i]
		}
	}
	return columns
}

// ReadingOrder returns lines column by column, each column top to bottom
func ReadingOrder(lines []*Line, crop model.BBox, cfg ColumnConfig) []*Line {
	var out []*Line
	for _, c := range ReadingColumns(lines, crop, cfg) {
		out = append(out, c.Lines...)
	}
	return out
}
