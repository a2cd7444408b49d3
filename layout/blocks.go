package layout

import (
	"github.com/tsawler/textlines/model"
	"github.com/tsawler/textlines/text"
)

// Block is a horizontal run of words within a line
type Block struct {
	// BBox is the block box in local line coordinates
	BBox model.BBox

	// Words are the words of the block, left to right
	Words []WordRef
}

// HorizontalBlocks splits a line into runs of ordinary words whose
// horizontal gaps are at most dist em
func HorizontalBlocks(l *Line, dist float64) []Block {
	var out []Block
	for _, p := range l.placedWords(false) {
		if n := len(out); n > 0 && p.box.Left()-out[n-1].BBox.Right() <= dist {
			out[n-1].BBox = out[n-1].BBox.Union(p.box)
			out[n-1].Words = append(out[n-1].Words, p.ref)
			continue
		}
		out = append(out, Block{BBox: p.box, Words: []WordRef{p.ref}})
	}
	return out
}

// SplitByHorizontalBlocks replaces every line made of several blocks
// further apart than dist em by one line per block. Space words between
// the words of a block stay with it; the others are dropped.
func (ls *Lines) SplitByHorizontalBlocks(dist float64) {
	for _, id := range ls.IDs() {
		l := ls.lines[id]
		blocks := HorizontalBlocks(l, dist)
		if len(blocks) < 2 {
			continue
		}
		ls.Remove(id)
		for _, b := range blocks {
			nl := ls.NewEmptyLine()
			for _, s := range blockSubgroups(b) {
				nl.AddSubgroup(s)
			}
		}
	}
	ls.check("split")
}

// blockSubgroups builds one subgroup per group of the block, filling in
// the words between the first and last selected word of each group
func blockSubgroups(b Block) []*text.Subgroup {
	var out []*text.Subgroup
	spans := make(map[*text.Group][2]int)
	var order []*text.Group
	for _, r := range b.Words {
		sp, ok := spans[r.Group]
		if !ok {
			order = append(order, r.Group)
			sp = [2]int{r.Index, r.Index}
		}
		sp[0] = min(sp[0], r.Index)
		sp[1] = max(sp[1], r.Index)
		spans[r.Group] = sp
	}
	for _, g := range order {
		sp := spans[g]
		s := text.NewSubgroup(g)
		for i := sp[0]; i <= sp[1]; i++ {
			s.SetInside(i, true)
		}
		out = append(out, s)
	}
	return out
}
