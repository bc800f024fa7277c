package main_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const (
	integrationBinaryBaseName    = "treebrowse_integration"
	commandDirectoryRelativePath = "cmd/treebrowse"
	printCommandName             = "print"
	formatFlag                   = "--format"
	maxLinesFlag                 = "--max-lines"
	hiddenFlag                   = "--hidden"
	versionFlag                  = "--version"
)

type printedLine struct {
	Key     string `json:"key"`
	Depth   int    `json:"depth"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Path    string `json:"path"`
	Omitted int    `json:"omitted"`
}

type printedTree struct {
	Root  string        `json:"root"`
	Lines []printedLine `json:"lines"`
}

// buildBinary compiles the command into a temporary directory.
func buildBinary(testingHandle *testing.T) string {
	testingHandle.Helper()

	binaryName := integrationBinaryBaseName
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}
	binaryPath := filepath.Join(testingHandle.TempDir(), binaryName)

	commandDirectory := filepath.Join(getModuleRoot(testingHandle), commandDirectoryRelativePath)
	buildCommand := exec.Command("go", "build", "-o", binaryPath, ".")
	buildCommand.Dir = commandDirectory

	combinedOutput, buildError := buildCommand.CombinedOutput()
	if buildError != nil {
		testingHandle.Fatalf("build failed in %s: %v\n%s", commandDirectory, buildError, string(combinedOutput))
	}
	return binaryPath
}

// runCommand executes the binary and returns stdout, failing on a non-zero exit.
func runCommand(testingHandle *testing.T, binaryPath string, arguments []string, workingDirectory string) string {
	testingHandle.Helper()

	command := exec.Command(binaryPath, arguments...)
	command.Dir = workingDirectory

	var stdoutBuffer, stderrBuffer bytes.Buffer
	command.Stdout = &stdoutBuffer
	command.Stderr = &stderrBuffer

	if runError := command.Run(); runError != nil {
		testingHandle.Fatalf("command failed: %v\nstdout:\n%s\nstderr:\n%s", runError, stdoutBuffer.String(), stderrBuffer.String())
	}
	return stdoutBuffer.String()
}

// runCommandExpectError executes the binary and returns combined output, failing on success.
func runCommandExpectError(testingHandle *testing.T, binaryPath string, arguments []string, workingDirectory string) string {
	testingHandle.Helper()

	command := exec.Command(binaryPath, arguments...)
	command.Dir = workingDirectory

	var buffer bytes.Buffer
	command.Stdout = &buffer
	command.Stderr = &buffer

	if runError := command.Run(); runError == nil {
		testingHandle.Fatalf("command succeeded unexpectedly\noutput:\n%s", buffer.String())
	}
	return buffer.String()
}

func getModuleRoot(testingHandle *testing.T) string {
	testingHandle.Helper()

	directory, err := os.Getwd()
	if err != nil {
		testingHandle.Fatalf("failed to determine working directory: %v", err)
	}
	for {
		if _, statErr := os.Stat(filepath.Join(directory, "go.mod")); statErr == nil {
			return directory
		}
		parent := filepath.Dir(directory)
		if parent == directory {
			testingHandle.Fatalf("could not locate go.mod from %s", directory)
		}
		directory = parent
	}
}

func writeTree(testingHandle *testing.T) string {
	testingHandle.Helper()

	rootDirectory := testingHandle.TempDir()
	files := map[string]string{
		filepath.Join("alpha", "one.txt"): "1",
		filepath.Join("alpha", "two.txt"): "2",
		filepath.Join("beta", "three.txt"): "3",
		"notes.md":                         "notes",
		".secret":                          "hidden",
	}
	for relativePath, content := range files {
		absolutePath := filepath.Join(rootDirectory, relativePath)
		if err := os.MkdirAll(filepath.Dir(absolutePath), 0o755); err != nil {
			testingHandle.Fatalf("mkdir %s: %v", relativePath, err)
		}
		if err := os.WriteFile(absolutePath, []byte(content), 0o644); err != nil {
			testingHandle.Fatalf("write %s: %v", relativePath, err)
		}
	}
	return rootDirectory
}

func decodeTree(testingHandle *testing.T, rawOutput string) printedTree {
	testingHandle.Helper()

	var document printedTree
	if err := json.Unmarshal([]byte(rawOutput), &document); err != nil {
		testingHandle.Fatalf("invalid JSON output: %v\n%s", err, rawOutput)
	}
	return document
}

// TestTreebrowse exercises the compiled binary end to end.
func TestTreebrowse(testingHandle *testing.T) {
	if testing.Short() {
		testingHandle.Skip("integration test builds the binary")
	}
	binary := buildBinary(testingHandle)

	testCases := []struct {
		name  string
		check func(*testing.T, string)
	}{
		{
			name: "raw tree",
			check: func(t *testing.T, rootDirectory string) {
				outputText := runCommand(t, binary, []string{printCommandName, "."}, rootDirectory)
				expected := strings.Join([]string{
					rootDirectory,
					"├─ a  alpha",
					"│ ├─ b  one.txt",
					"│ └─ c  two.txt",
					"├─ d  beta",
					"│ └─ e  three.txt",
					"└─ f  notes.md",
				}, "\n") + "\n"
				resolvedRoot, _ := filepath.EvalSymlinks(rootDirectory)
				if outputText != expected && outputText != strings.Replace(expected, rootDirectory, resolvedRoot, 1) {
					t.Fatalf("unexpected output:\n%s\nexpected:\n%s", outputText, expected)
				}
			},
		},
		{
			name: "json with hidden entries",
			check: func(t *testing.T, rootDirectory string) {
				document := decodeTree(t, runCommand(t, binary, []string{printCommandName, hiddenFlag, formatFlag, "json", rootDirectory}, rootDirectory))
				if len(document.Lines) != 7 {
					t.Fatalf("expected 7 lines, got %+v", document.Lines)
				}
				if hiddenLine := document.Lines[5]; hiddenLine.Name != ".secret" || hiddenLine.Key != "f" {
					t.Fatalf("expected .secret keyed f before notes.md, got %+v", hiddenLine)
				}
			},
		},
		{
			name: "line budget prunes the tail",
			check: func(t *testing.T, rootDirectory string) {
				document := decodeTree(t, runCommand(t, binary, []string{printCommandName, maxLinesFlag, "4", formatFlag, "json", rootDirectory}, rootDirectory))
				if len(document.Lines) != 4 {
					t.Fatalf("expected 4 lines, got %+v", document.Lines)
				}
				last := document.Lines[len(document.Lines)-1]
				if last.Type != "pruned" || last.Key != "" || last.Omitted == 0 {
					t.Fatalf("expected keyless pruned marker, got %+v", last)
				}
			},
		},
		{
			name: "version",
			check: func(t *testing.T, rootDirectory string) {
				outputText := runCommand(t, binary, []string{versionFlag}, rootDirectory)
				if !strings.HasPrefix(outputText, "treebrowse version: ") {
					t.Fatalf("unexpected version output %q", outputText)
				}
			},
		},
		{
			name: "browser refuses a pipe",
			check: func(t *testing.T, rootDirectory string) {
				outputText := runCommandExpectError(t, binary, []string{rootDirectory}, rootDirectory)
				if !strings.Contains(outputText, "interactive terminal") {
					t.Fatalf("expected terminal error, got %q", outputText)
				}
			},
		},
		{
			name: "missing path",
			check: func(t *testing.T, rootDirectory string) {
				outputText := runCommandExpectError(t, binary, []string{printCommandName, "does-not-exist"}, rootDirectory)
				if !strings.Contains(outputText, "does not exist") {
					t.Fatalf("expected missing path error, got %q", outputText)
				}
			},
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(t *testing.T) {
			testCase.check(t, writeTree(t))
		})
	}
}
