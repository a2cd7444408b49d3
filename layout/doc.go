// Package layout reconstructs text lines from the word groups of a page.
//
// A [Line] holds subgroups of one or more groups. The [Lines] arena owns
// the lines of a page and keeps the group back-references in sync.
//
// # Passes
//
// [Run] executes the passes in a fixed order:
//
//   - [Lines.CreateLineBasic] links every group to a close predecessor
//     on the same baseline
//   - [Lines.MergeLinesEnlargeInside] absorbs lines lying within an
//     enlarged box around a wider line, such as superscripts
//   - [Lines.MergeLinesEnlargeOutside] repeats with growing boxes and
//     picks up lines of nearby groups
//
// Two experimental passes, [Lines.MergeLinesSmall] and
// [Lines.SplitByHorizontalBlocks], are off by default.
//
//	ls := layout.Run(groups, layout.DefaultConfig())
//	for _, l := range ls.All() {
//	    fmt.Println(l.Text())
//	}
//
// # Coordinates
//
// Each line has a local frame with the origin at the left end of its mean
// baseline, measured in em of its mean font size. Distances in [Config]
// are in that unit.
package layout
