package commands

import "fmt"

const (
	// OperationReadDirectory labels failures listing a directory.
	OperationReadDirectory = "reading directory"
	// OperationStatEntry labels failures reading entry metadata.
	OperationStatEntry = "reading entry info"
	// OperationLoadIgnore labels failures loading ignore files.
	OperationLoadIgnore = "loading ignore patterns"
	// OperationResolvePath labels failures resolving the absolute root.
	OperationResolvePath = "resolving path"

	errorFileSystemFormat = "%s %s: %v"
)

// FileSystemError reports a filesystem failure that aborted a tree build.
type FileSystemError struct {
	Op   string
	Path string
	Err  error
}

func (fileSystemError *FileSystemError) Error() string {
	return fmt.Sprintf(errorFileSystemFormat, fileSystemError.Op, fileSystemError.Path, fileSystemError.Err)
}

func (fileSystemError *FileSystemError) Unwrap() error {
	return fileSystemError.Err
}
