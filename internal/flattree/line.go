// Package flattree holds the linearized, renderable form of a directory tree.
package flattree

import (
	"slices"
	"time"
)

// LineKind identifies what a Line displays.
type LineKind int

const (
	// LineKindDirectory is an expandable directory entry.
	LineKindDirectory LineKind = iota
	// LineKindFile is a leaf entry.
	LineKindFile
	// LineKindPruned marks entries omitted once the line budget ran out.
	LineKindPruned
)

// String returns the lower-case kind name used in JSON output.
func (kind LineKind) String() string {
	switch kind {
	case LineKindDirectory:
		return "directory"
	case LineKindFile:
		return "file"
	case LineKindPruned:
		return "pruned"
	default:
		return "unknown"
	}
}

// Line is one row of the flattened tree.
type Line struct {
	// Key selects the line directly. Empty for pruned markers.
	Key string
	// Depth is the nesting level; children of the root are at depth 0.
	Depth int
	Kind  LineKind
	// Name is the entry base name. Empty for pruned markers.
	Name string
	// Path is the absolute entry path. Empty for pruned markers.
	Path string
	// PrunedCount is the number of omitted entries summarized by a pruned marker.
	PrunedCount int
	// SizeBytes is the file size; zero for directories.
	SizeBytes int64
	// LastModified is the entry modification time.
	LastModified time.Time
	// Branches has Depth+1 entries. Branches[d] reports whether column d
	// continues past this line.
	Branches []bool
}

// Selectable reports whether the line can be reached by key.
func (line Line) Selectable() bool {
	return line.Kind != LineKindPruned
}

// IsDirectory reports whether the line is a directory entry.
func (line Line) IsDirectory() bool {
	return line.Kind == LineKindDirectory
}

func (line Line) clone() Line {
	line.Branches = slices.Clone(line.Branches)
	return line
}
