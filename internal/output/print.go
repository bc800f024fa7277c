package output

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/temirov/treebrowse/internal/flattree"
	"github.com/temirov/treebrowse/internal/utils"
)

const (
	// FormatRaw prints the tree the way the browser draws it.
	FormatRaw = "raw"
	// FormatJSON prints one object per line as a JSON document.
	FormatJSON = "json"

	indentPrefix = ""
	indentSpacer = "  "
)

// JSONLine is the machine-readable form of one flat tree line.
type JSONLine struct {
	Key          string `json:"key,omitempty"`
	Depth        int    `json:"depth"`
	Type         string `json:"type"`
	Name         string `json:"name,omitempty"`
	Path         string `json:"path,omitempty"`
	Size         string `json:"size,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
	Omitted      int    `json:"omitted,omitempty"`
}

// JSONTree wraps the lines of one listed root.
type JSONTree struct {
	Root  string     `json:"root"`
	Lines []JSONLine `json:"lines"`
}

// RenderTreeJSON returns an indented JSON document describing tree.
func RenderTreeJSON(tree *flattree.Tree, rootPath string) (string, error) {
	document := JSONTree{Root: rootPath, Lines: make([]JSONLine, 0, tree.Len())}
	for _, line := range tree.Lines() {
		entry := JSONLine{
			Key:   line.Key,
			Depth: line.Depth,
			Type:  line.Kind.String(),
		}
		if line.Kind == flattree.LineKindPruned {
			entry.Omitted = line.PrunedCount
		} else {
			entry.Name = line.Name
			entry.Path = line.Path
			entry.LastModified = utils.FormatTimestamp(line.LastModified)
			if line.Kind == flattree.LineKindFile {
				entry.Size = utils.FormatFileSize(line.SizeBytes)
			}
		}
		document.Lines = append(document.Lines, entry)
	}
	encoded, marshalError := json.MarshalIndent(document, indentPrefix, indentSpacer)
	if marshalError != nil {
		return "", fmt.Errorf("failed to marshal tree: %w", marshalError)
	}
	return string(encoded), nil
}

// WriteTree writes tree to writer in the requested format.
func WriteTree(writer io.Writer, tree *flattree.Tree, rootPath string, format string, styles Styles) error {
	switch format {
	case FormatJSON:
		rendered, renderError := RenderTreeJSON(tree, rootPath)
		if renderError != nil {
			return renderError
		}
		_, writeError := fmt.Fprintln(writer, rendered)
		return writeError
	case FormatRaw, "":
		if _, writeError := fmt.Fprintln(writer, rootPath); writeError != nil {
			return writeError
		}
		if tree.Len() == 0 {
			return nil
		}
		_, writeError := fmt.Fprintln(writer, RenderTree(tree, TreeOptions{Styles: styles}))
		return writeError
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
