package output_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/goccy/go-json"

	"github.com/temirov/treebrowse/internal/flattree"
	"github.com/temirov/treebrowse/internal/output"
)

const testRoot = "/work"

func plainStyles() output.Styles {
	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetHasDarkBackground(true)
	return output.NewStyles(renderer)
}

// sampleTree builds:
//
//	src/
//	  main.go
//	  util/
//	    a.go
//	README
func sampleTree() *flattree.Tree {
	return flattree.New([]flattree.Line{
		{Depth: 0, Kind: flattree.LineKindDirectory, Name: "src", Path: testRoot + "/src"},
		{Depth: 1, Kind: flattree.LineKindFile, Name: "main.go", Path: testRoot + "/src/main.go", SizeBytes: 2048},
		{Depth: 1, Kind: flattree.LineKindDirectory, Name: "util", Path: testRoot + "/src/util"},
		{Depth: 2, Kind: flattree.LineKindFile, Name: "a.go", Path: testRoot + "/src/util/a.go"},
		{Depth: 0, Kind: flattree.LineKindFile, Name: "README", Path: testRoot + "/README", SizeBytes: 10},
	})
}

func TestConnectorPrefix(testingInstance *testing.T) {
	tree := sampleTree()
	expected := []string{"├─", "│ ├─", "│ └─", "│   └─", "└─"}
	for lineIndex, expectedPrefix := range expected {
		if prefix := output.ConnectorPrefix(tree, lineIndex); prefix != expectedPrefix {
			testingInstance.Errorf("line %d: expected %q, got %q", lineIndex, expectedPrefix, prefix)
		}
	}
	if prefix := output.ConnectorPrefix(tree, 99); prefix != "" {
		testingInstance.Errorf("expected empty prefix out of range, got %q", prefix)
	}
}

func TestRenderTreePlain(testingInstance *testing.T) {
	rendered := ansi.Strip(output.RenderTree(sampleTree(), output.TreeOptions{Styles: plainStyles()}))
	expected := strings.Join([]string{
		"├─ a  src",
		"│ ├─ b  main.go",
		"│ └─ c  util",
		"│   └─ d  a.go",
		"└─ e  README",
	}, "\n")
	if rendered != expected {
		testingInstance.Fatalf("unexpected rendering:\n%s\nexpected:\n%s", rendered, expected)
	}
}

func TestRenderTreePrunedMarker(testingInstance *testing.T) {
	tree := flattree.New([]flattree.Line{
		{Depth: 0, Kind: flattree.LineKindFile, Name: "a"},
		{Depth: 0, Kind: flattree.LineKindPruned, PrunedCount: 7},
	})
	rendered := ansi.Strip(output.RenderTree(tree, output.TreeOptions{Styles: plainStyles()}))
	lines := strings.Split(rendered, "\n")
	if len(lines) != 2 || lines[1] != "└─ ... 7 other files" {
		testingInstance.Fatalf("unexpected pruned rendering: %q", rendered)
	}

	single := flattree.New([]flattree.Line{{Depth: 0, Kind: flattree.LineKindPruned, PrunedCount: 1}})
	if rendered := ansi.Strip(output.RenderTree(single, output.TreeOptions{Styles: plainStyles()})); rendered != "└─ ... 1 other file" {
		testingInstance.Fatalf("unexpected singular rendering: %q", rendered)
	}
}

func TestRenderTreeTruncatesToWidth(testingInstance *testing.T) {
	tree := flattree.New([]flattree.Line{
		{Depth: 0, Kind: flattree.LineKindFile, Name: "a_rather_long_file_name.txt"},
	})
	rendered := ansi.Strip(output.RenderTree(tree, output.TreeOptions{Width: 15, Styles: plainStyles()}))
	if lipgloss.Width(rendered) > 15 {
		testingInstance.Fatalf("row wider than 15 cells: %q", rendered)
	}
	if !strings.HasSuffix(rendered, "…") {
		testingInstance.Fatalf("expected ellipsis, got %q", rendered)
	}
}

func TestRenderTreeFollowsSelectionWindow(testingInstance *testing.T) {
	tree := sampleTree()
	tree.MoveSelection(4)
	rendered := ansi.Strip(output.RenderTree(tree, output.TreeOptions{Height: 2, Styles: plainStyles()}))
	lines := strings.Split(rendered, "\n")
	if len(lines) != 2 {
		testingInstance.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[1], "README") {
		testingInstance.Fatalf("expected selected line in view, got %q", rendered)
	}
}

func TestVisibleWindow(testingInstance *testing.T) {
	testCases := []struct {
		name      string
		selection int
		lineCount int
		height    int
		expected  int
	}{
		{name: "fits", selection: 3, lineCount: 4, height: 10, expected: 0},
		{name: "top", selection: 0, lineCount: 100, height: 10, expected: 0},
		{name: "scrolled", selection: 20, lineCount: 100, height: 10, expected: 11},
		{name: "bottom", selection: 99, lineCount: 100, height: 10, expected: 90},
		{name: "no_height", selection: 50, lineCount: 100, height: 0, expected: 0},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(subTest *testing.T) {
			offset := output.VisibleWindow(testCase.selection, testCase.lineCount, testCase.height)
			if offset != testCase.expected {
				subTest.Fatalf("expected %d, got %d", testCase.expected, offset)
			}
		})
	}
}

func TestRenderStatus(testingInstance *testing.T) {
	tree := sampleTree()
	tree.MoveSelection(1)
	status := ansi.Strip(output.RenderStatus(tree, testRoot, 0, plainStyles()))
	if status != testRoot+"  src/main.go  2kb" {
		testingInstance.Fatalf("unexpected status %q", status)
	}

	padded := output.RenderStatus(tree, testRoot, 40, plainStyles())
	if lipgloss.Width(padded) != 40 {
		testingInstance.Fatalf("expected status padded to 40 cells, got %d", lipgloss.Width(padded))
	}
}

func TestRenderInput(testingInstance *testing.T) {
	if rendered := ansi.Strip(output.RenderInput("ab", "", 0, plainStyles())); rendered != "> ab" {
		testingInstance.Fatalf("unexpected input row %q", rendered)
	}
	if rendered := ansi.Strip(output.RenderInput("", "esc quit", 0, plainStyles())); rendered != ">   esc quit" {
		testingInstance.Fatalf("unexpected input row with help %q", rendered)
	}
}

func TestRenderTreeJSON(testingInstance *testing.T) {
	tree := flattree.New([]flattree.Line{
		{Depth: 0, Kind: flattree.LineKindDirectory, Name: "src", Path: testRoot + "/src"},
		{Depth: 1, Kind: flattree.LineKindFile, Name: "main.go", Path: testRoot + "/src/main.go", SizeBytes: 512},
		{Depth: 1, Kind: flattree.LineKindPruned, PrunedCount: 3},
	})
	rendered, renderError := output.RenderTreeJSON(tree, testRoot)
	if renderError != nil {
		testingInstance.Fatalf("RenderTreeJSON error: %v", renderError)
	}
	var decoded output.JSONTree
	if decodeError := json.Unmarshal([]byte(rendered), &decoded); decodeError != nil {
		testingInstance.Fatalf("invalid JSON: %v", decodeError)
	}
	if decoded.Root != testRoot || len(decoded.Lines) != 3 {
		testingInstance.Fatalf("unexpected document: %+v", decoded)
	}
	if decoded.Lines[0].Type != "directory" || decoded.Lines[0].Key != "a" || decoded.Lines[0].Size != "" {
		testingInstance.Fatalf("unexpected directory line: %+v", decoded.Lines[0])
	}
	if decoded.Lines[1].Size != "512b" || decoded.Lines[1].Depth != 1 {
		testingInstance.Fatalf("unexpected file line: %+v", decoded.Lines[1])
	}
	if decoded.Lines[2].Type != "pruned" || decoded.Lines[2].Omitted != 3 || decoded.Lines[2].Key != "" {
		testingInstance.Fatalf("unexpected pruned line: %+v", decoded.Lines[2])
	}
}

func TestWriteTree(testingInstance *testing.T) {
	var buffer bytes.Buffer
	if writeError := output.WriteTree(&buffer, sampleTree(), testRoot, output.FormatRaw, plainStyles()); writeError != nil {
		testingInstance.Fatalf("WriteTree error: %v", writeError)
	}
	if !strings.HasPrefix(ansi.Strip(buffer.String()), testRoot+"\n├─ a  src\n") {
		testingInstance.Fatalf("unexpected raw output %q", buffer.String())
	}

	if writeError := output.WriteTree(&buffer, sampleTree(), testRoot, "xml", plainStyles()); writeError == nil {
		testingInstance.Fatalf("expected error for unsupported format")
	}
}
