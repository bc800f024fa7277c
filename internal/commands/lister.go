package commands

import (
	"os"
	"path/filepath"
	"time"

	"github.com/temirov/treebrowse/internal/config"
	"github.com/temirov/treebrowse/internal/utils"
)

// Entry is one child returned by a Lister.
type Entry struct {
	Name         string
	Path         string
	IsDir        bool
	SizeBytes    int64
	LastModified time.Time
}

// Lister lists the children of a directory. Order is not significant; the
// builder sorts entries itself.
type Lister interface {
	List(directoryPath string) ([]Entry, error)
}

// ListerOptions configures which entries a FileSystemLister hides.
type ListerOptions struct {
	Root              string
	ExclusionPatterns []string
	UseGitignore      bool
	UseIgnoreFile     bool
	IncludeGit        bool
	IncludeHidden     bool
}

// FileSystemLister lists directories with os.ReadDir and drops entries
// matched by ignore rules. Ignore files found in nested directories are
// loaded the first time that directory is listed and apply to its subtree.
type FileSystemLister struct {
	options           ListerOptions
	ignorePatterns    []string
	loadedDirectories map[string]struct{}
}

// NewFileSystemLister loads the root ignore files and returns a lister.
func NewFileSystemLister(options ListerOptions) (*FileSystemLister, error) {
	absoluteRoot, absolutePathError := filepath.Abs(options.Root)
	if absolutePathError != nil {
		return nil, &FileSystemError{Op: OperationResolvePath, Path: options.Root, Err: absolutePathError}
	}
	options.Root = absoluteRoot

	rootPatterns, loadError := config.LoadCombinedIgnorePatterns(absoluteRoot, options.ExclusionPatterns, options.UseGitignore, options.UseIgnoreFile, options.IncludeGit)
	if loadError != nil {
		return nil, &FileSystemError{Op: OperationLoadIgnore, Path: absoluteRoot, Err: loadError}
	}

	return &FileSystemLister{
		options:           options,
		ignorePatterns:    rootPatterns,
		loadedDirectories: map[string]struct{}{absoluteRoot: {}},
	}, nil
}

// List implements Lister.
func (lister *FileSystemLister) List(directoryPath string) ([]Entry, error) {
	if loadError := lister.loadNestedPatterns(directoryPath); loadError != nil {
		return nil, loadError
	}

	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil, &FileSystemError{Op: OperationReadDirectory, Path: directoryPath, Err: readDirectoryError}
	}

	entries := make([]Entry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		if !lister.options.IncludeHidden && utils.IsHiddenName(directoryEntry.Name()) {
			continue
		}
		relativeChildPath := utils.RelativePathOrSelf(childPath, lister.options.Root)
		if utils.ShouldIgnoreByPath(relativeChildPath, lister.ignorePatterns) {
			continue
		}

		entryInfo, infoError := directoryEntry.Info()
		if infoError != nil {
			return nil, &FileSystemError{Op: OperationStatEntry, Path: childPath, Err: infoError}
		}
		entry := Entry{
			Name:         directoryEntry.Name(),
			Path:         childPath,
			IsDir:        directoryEntry.IsDir(),
			LastModified: entryInfo.ModTime(),
		}
		if !entry.IsDir {
			entry.SizeBytes = entryInfo.Size()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (lister *FileSystemLister) loadNestedPatterns(directoryPath string) error {
	if _, loaded := lister.loadedDirectories[directoryPath]; loaded {
		return nil
	}
	lister.loadedDirectories[directoryPath] = struct{}{}
	if !lister.options.UseGitignore && !lister.options.UseIgnoreFile {
		return nil
	}

	prefix := utils.RelativePathOrSelf(directoryPath, lister.options.Root) + "/"
	if prefix == "./" {
		prefix = ""
	}
	nestedPatterns, loadError := config.LoadDirectoryIgnorePatterns(directoryPath, prefix, lister.options.UseGitignore, lister.options.UseIgnoreFile)
	if loadError != nil {
		return &FileSystemError{Op: OperationLoadIgnore, Path: directoryPath, Err: loadError}
	}
	lister.ignorePatterns = utils.DeduplicatePatterns(append(lister.ignorePatterns, nestedPatterns...))
	return nil
}

var _ Lister = (*FileSystemLister)(nil)
