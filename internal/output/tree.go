package output

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/temirov/treebrowse/internal/flattree"
	"github.com/temirov/treebrowse/internal/utils"
)

const (
	connectorBranch   = "├─"
	connectorLast     = "└─"
	connectorContinue = "│ "
	connectorEmpty    = "  "
	connectorWidth    = 2

	truncationSuffix = "…"

	prunedSingularFormat = "... %d other file"
	prunedPluralFormat   = "... %d other files"
	statusSeparator      = "  "
	inputPrompt          = "> "
)

// TreeOptions controls how RenderTree lays out lines.
type TreeOptions struct {
	// Width truncates each row to this many cells. Zero disables truncation.
	Width int
	// Height limits the number of rows. Zero renders every line.
	Height int
	// HighlightSelection draws the selected key badge differently.
	HighlightSelection bool
	Styles             Styles
}

// VisibleWindow returns the first line index to draw so that selection
// stays inside a window of height rows.
func VisibleWindow(selection int, lineCount int, height int) int {
	if height <= 0 || lineCount <= height {
		return 0
	}
	offset := selection - height + 1
	if offset < 0 {
		offset = 0
	}
	if offset > lineCount-height {
		offset = lineCount - height
	}
	return offset
}

// RenderTree draws the tree one row per line joined with newlines.
func RenderTree(tree *flattree.Tree, options TreeOptions) string {
	if tree == nil || tree.Len() == 0 {
		return ""
	}
	first := 0
	last := tree.Len()
	if options.Height > 0 {
		first = VisibleWindow(tree.Selection(), tree.Len(), options.Height)
		if first+options.Height < last {
			last = first + options.Height
		}
	}

	rows := make([]string, 0, last-first)
	for lineIndex := first; lineIndex < last; lineIndex++ {
		rows = append(rows, renderLine(tree, lineIndex, options))
	}
	return strings.Join(rows, "\n")
}

// ConnectorPrefix returns the plain connector glyphs drawn before a line.
func ConnectorPrefix(tree *flattree.Tree, lineIndex int) string {
	line, ok := tree.Line(lineIndex)
	if !ok {
		return ""
	}
	var builder strings.Builder
	for depth := 0; depth <= line.Depth; depth++ {
		continues := tree.HasBranch(lineIndex+1, depth)
		switch {
		case depth == line.Depth && continues:
			builder.WriteString(connectorBranch)
		case depth == line.Depth:
			builder.WriteString(connectorLast)
		case continues:
			builder.WriteString(connectorContinue)
		default:
			builder.WriteString(connectorEmpty)
		}
	}
	return builder.String()
}

func renderLine(tree *flattree.Tree, lineIndex int, options TreeOptions) string {
	line, _ := tree.Line(lineIndex)
	styles := options.Styles
	prefix := ConnectorPrefix(tree, lineIndex)
	used := (line.Depth + 1) * connectorWidth

	var builder strings.Builder
	builder.WriteString(styles.Connector.Render(prefix))

	if line.Kind == flattree.LineKindPruned {
		text := prunedText(line.PrunedCount)
		builder.WriteString(" ")
		builder.WriteString(styles.Pruned.Render(truncate(text, options.Width, used+1)))
		return builder.String()
	}

	badge := " " + line.Key + " "
	if options.HighlightSelection && lineIndex == tree.Selection() {
		builder.WriteString(styles.SelectedKey.Render(badge))
	} else {
		builder.WriteString(styles.Key.Render(badge))
	}
	used += runewidth.StringWidth(badge) + 1
	builder.WriteString(" ")

	name := truncate(line.Name, options.Width, used)
	if line.IsDirectory() {
		builder.WriteString(styles.Directory.Render(name))
	} else {
		builder.WriteString(styles.File.Render(name))
	}
	return builder.String()
}

func prunedText(count int) string {
	if count == 1 {
		return fmt.Sprintf(prunedSingularFormat, count)
	}
	return fmt.Sprintf(prunedPluralFormat, count)
}

// truncate shortens text to the cells left after used, when width is set.
func truncate(text string, width int, used int) string {
	if width <= 0 {
		return text
	}
	available := width - used
	if available <= 0 {
		return ""
	}
	return runewidth.Truncate(text, available, truncationSuffix)
}

// RenderStatus draws the status row: root path, then the selected entry's
// relative path, size and modification time.
func RenderStatus(tree *flattree.Tree, rootPath string, width int, styles Styles) string {
	parts := []string{rootPath}
	if line, ok := tree.Selected(); ok && line.Selectable() {
		parts = append(parts, utils.RelativePathOrSelf(line.Path, rootPath))
		if !line.IsDirectory() {
			parts = append(parts, utils.FormatFileSize(line.SizeBytes))
		}
		if timestamp := utils.FormatTimestamp(line.LastModified); timestamp != "" {
			parts = append(parts, timestamp)
		}
	}
	text := truncate(strings.Join(parts, statusSeparator), width, 0)
	if width > 0 {
		text = runewidth.FillRight(text, width)
	}
	return styles.Status.Render(text)
}

// RenderInput draws the input row holding the typed key and a help hint.
func RenderInput(raw string, help string, width int, styles Styles) string {
	prompt := styles.Input.Render(inputPrompt + raw)
	if help == "" {
		return prompt
	}
	used := runewidth.StringWidth(inputPrompt+raw) + len(statusSeparator)
	return prompt + statusSeparator + truncate(help, width, used)
}
