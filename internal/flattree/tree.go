package flattree

// Tree is the browsable state of one session: a fixed sequence of lines and
// a selection cursor. Only the selection changes after construction.
type Tree struct {
	lines      []Line
	keyIndexes map[string]int
	selection  int
}

// New takes ownership of lines, assigns their keys and branch flags and
// returns a tree with the first line selected.
func New(lines []Line) *Tree {
	AssignKeys(lines)
	computeBranches(lines)
	keyIndexes := make(map[string]int, len(lines))
	for lineIndex, line := range lines {
		if line.Key != "" {
			keyIndexes[line.Key] = lineIndex
		}
	}
	return &Tree{lines: lines, keyIndexes: keyIndexes}
}

// computeBranches fills Line.Branches walking backwards: open[d] tells
// whether column d continues at the line after the current one.
func computeBranches(lines []Line) {
	var open []bool
	for lineIndex := len(lines) - 1; lineIndex >= 0; lineIndex-- {
		depth := lines[lineIndex].Depth
		branches := make([]bool, depth+1)
		copy(branches, open)
		lines[lineIndex].Branches = branches

		for len(open) < depth+1 {
			open = append(open, false)
		}
		open = open[:depth+1]
		open[depth] = true
	}
}

// Len returns the number of lines.
func (tree *Tree) Len() int {
	return len(tree.lines)
}

// Lines returns a copy of the lines. Changing the copy leaves the tree intact.
func (tree *Tree) Lines() []Line {
	copied := make([]Line, len(tree.lines))
	for index, line := range tree.lines {
		copied[index] = line.clone()
	}
	return copied
}

// Line returns the line at index and whether index was in range.
func (tree *Tree) Line(index int) (Line, bool) {
	if index < 0 || index >= len(tree.lines) {
		return Line{}, false
	}
	return tree.lines[index].clone(), true
}

// Selection returns the selected line index. It is 0 for an empty tree.
func (tree *Tree) Selection() int {
	return tree.selection
}

// Selected returns the selected line, false when the tree is empty.
func (tree *Tree) Selected() (Line, bool) {
	return tree.Line(tree.selection)
}

// MoveSelection shifts the selection by delta, clamped to the first and
// last lines.
func (tree *Tree) MoveSelection(delta int) {
	if len(tree.lines) == 0 {
		tree.selection = 0
		return
	}
	lastIndex := len(tree.lines) - 1
	switch {
	case delta < -tree.selection:
		tree.selection = 0
	case delta > lastIndex-tree.selection:
		tree.selection = lastIndex
	default:
		tree.selection += delta
	}
}

// TrySelect selects the line whose key equals key. When no line matches it
// returns false and resets the selection to the first line.
func (tree *Tree) TrySelect(key string) bool {
	lineIndex, found := tree.keyIndexes[key]
	if !found {
		tree.selection = 0
		return false
	}
	tree.selection = lineIndex
	return true
}

// Key returns the key of the selected line, or "" when there is none.
func (tree *Tree) Key() string {
	line, ok := tree.Selected()
	if !ok {
		return ""
	}
	return line.Key
}

// HasBranch reports whether column depth still has content at or after
// lineIndex: the first line from lineIndex on whose depth is at most depth
// sits exactly at depth.
func (tree *Tree) HasBranch(lineIndex int, depth int) bool {
	if depth < 0 || lineIndex < 0 || lineIndex >= len(tree.lines) {
		return false
	}
	line := tree.lines[lineIndex]
	switch {
	case line.Depth == depth:
		return true
	case line.Depth < depth:
		return false
	default:
		return line.Branches[depth]
	}
}
