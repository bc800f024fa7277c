package commands

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"

	"github.com/temirov/treebrowse/internal/flattree"
)

// treeWalk carries the state of one Build call.
type treeWalk struct {
	lister   Lister
	maxLines int
	lines    []flattree.Line
	omitted  int
}

// Build walks rootDirectoryPath depth first and returns at most maxLines
// lines in pre-order. Children are ordered directories first, then by name
// in byte order. When entries do not fit, the last line is a pruned marker
// counting every entry left out, itself included. Any listing failure
// aborts the build with a *FileSystemError.
func (treeBuilder *TreeBuilder) Build(rootDirectoryPath string, maxLines int) (*flattree.Tree, error) {
	absoluteRootDirPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, &FileSystemError{Op: OperationResolvePath, Path: rootDirectoryPath, Err: absolutePathError}
	}

	walk := &treeWalk{lister: treeBuilder.Lister, maxLines: maxLines}
	if maxLines <= 0 {
		if _, listError := walk.list(absoluteRootDirPath); listError != nil {
			return nil, listError
		}
		return flattree.New(nil), nil
	}

	if visitError := walk.visit(absoluteRootDirPath, 0); visitError != nil {
		return nil, visitError
	}

	lines := walk.lines
	if walk.omitted > 0 {
		lastLine := lines[len(lines)-1]
		lines[len(lines)-1] = flattree.Line{
			Kind:        flattree.LineKindPruned,
			Depth:       lastLine.Depth,
			PrunedCount: walk.omitted + 1,
		}
	}
	return flattree.New(lines), nil
}

// visit emits the children of directoryPath while the budget allows and
// counts them once it is exhausted.
func (walk *treeWalk) visit(directoryPath string, depth int) error {
	entries, listError := walk.list(directoryPath)
	if listError != nil {
		return listError
	}

	for _, entry := range entries {
		if len(walk.lines) >= walk.maxLines {
			walk.omitted++
		} else {
			walk.lines = append(walk.lines, lineForEntry(entry, depth))
		}
		if entry.IsDir {
			if visitError := walk.visit(entry.Path, depth+1); visitError != nil {
				return visitError
			}
		}
	}
	return nil
}

// list returns the sorted children of directoryPath.
func (walk *treeWalk) list(directoryPath string) ([]Entry, error) {
	entries, listError := walk.lister.List(directoryPath)
	if listError != nil {
		var fileSystemError *FileSystemError
		if errors.As(listError, &fileSystemError) {
			return nil, listError
		}
		return nil, &FileSystemError{Op: OperationReadDirectory, Path: directoryPath, Err: listError}
	}
	SortEntries(entries)
	return entries, nil
}

// SortEntries orders directories before files, then names in byte order.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(left Entry, right Entry) int {
		if left.IsDir != right.IsDir {
			if left.IsDir {
				return -1
			}
			return 1
		}
		return strings.Compare(left.Name, right.Name)
	})
}

func lineForEntry(entry Entry, depth int) flattree.Line {
	kind := flattree.LineKindFile
	if entry.IsDir {
		kind = flattree.LineKindDirectory
	}
	return flattree.Line{
		Depth:        depth,
		Kind:         kind,
		Name:         entry.Name,
		Path:         entry.Path,
		SizeBytes:    entry.SizeBytes,
		LastModified: entry.LastModified,
	}
}
