package cli

import (
	"os"

	"golang.org/x/term"
)

// Terminal reports whether the browser can run and how large it may draw.
type Terminal interface {
	IsInteractive() bool
	Size() (width int, height int, err error)
}

// FileTerminal inspects the input and output files of the process.
type FileTerminal struct {
	input  *os.File
	output *os.File
}

// NewFileTerminal returns a Terminal reading keys from input and drawing on output.
func NewFileTerminal(input *os.File, output *os.File) *FileTerminal {
	return &FileTerminal{input: input, output: output}
}

// IsInteractive reports whether both files are terminals.
func (terminal *FileTerminal) IsInteractive() bool {
	return term.IsTerminal(int(terminal.input.Fd())) && term.IsTerminal(int(terminal.output.Fd()))
}

// Size returns the output terminal's columns and rows.
func (terminal *FileTerminal) Size() (int, int, error) {
	return term.GetSize(int(terminal.output.Fd()))
}
