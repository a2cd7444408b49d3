// Package text turns text-showing operators into words and groups of words.
//
// [BuildWords] splits a string operand into [Word] values: ordinary glyph
// runs, inter-word space runs and inferred gaps. [BuildArrayWords] does the
// same for TJ arrays, turning every number into an [InferredGap] word.
//
// A [Group] holds the words of one operator together with the text state and
// transform they were shown with. Groups are split into main subgroups at
// every inferred gap; a [Subgroup] is a mask over the group's words that
// lines use to share groups.
//
//	words := text.BuildArrayWords(arr, ts.Font, ts, text.DefaultWordOptions())
//	g := text.NewGroup(words, ts, ctm)
//	for _, s := range g.MainSubgroups() {
//		box := s.OrientedBBox(text.PageSpace, false)
//		...
//	}
//
// Word geometry is kept in word space (text space at font size 1). The
// [CoordSystem] values name the other frames; [Group.Transform] converts
// between them.
//
// Evicted groups reload their words through a [Loader].
package text
