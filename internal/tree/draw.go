package tree

import "github.com/stegmannb/usbtree/internal/icon"

// TreeData is the drawing state handed from a parent to its children.
// BranchLength counts the items drawn below the parent, TrunkIndex is the
// parent's place among its own siblings and Prefix is what gets printed
// before a connector at this depth.
type TreeData struct {
	BranchLength int
	TrunkIndex   int
	Depth        int
	Prefix       string
}

// next derives the state for the children of the item at index in the
// current batch. Below depth 0 the parent's column is continued with a
// line when more siblings follow it, blank otherwise.
func (td TreeData) next(s *PrintSettings, branchLength, index int) TreeData {
	prefix := td.Prefix
	if s.Tree && td.Depth > 0 {
		if index+1 != td.BranchLength {
			prefix += s.treeIcon(icon.TreeLine)
		} else {
			prefix += s.treeIcon(icon.TreeBlank)
		}
	}
	return TreeData{
		BranchLength: branchLength,
		TrunkIndex:   index,
		Depth:        td.Depth + 1,
		Prefix:       prefix,
	}
}

// connector is the prefix plus the edge or corner glyph for the item at
// index; the corner marks the last item of the branch.
func (td TreeData) connector(s *PrintSettings, index int) string {
	if td.Depth == 0 {
		return td.Prefix
	}
	if index+1 != td.BranchLength {
		return td.Prefix + s.treeIcon(icon.TreeEdge)
	}
	return td.Prefix + s.treeIcon(icon.TreeCorner)
}
