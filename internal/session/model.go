// Package session runs the interactive browser: a bubbletea model that owns
// one flat tree and applies a single navigation intent per key press.
package session

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/temirov/treebrowse/internal/flattree"
	"github.com/temirov/treebrowse/internal/input"
	"github.com/temirov/treebrowse/internal/output"
)

const emptyTreeMessage = "(no entries)"

// Options configures a Model.
type Options struct {
	RootPath string
	Tree     *flattree.Tree
	KeyMap   input.KeyMap
	Styles   output.Styles
	// Width and Height seed the layout until the first window size message.
	Width  int
	Height int
	// ReservedRows is the number of rows below the tree: status and input.
	ReservedRows int
}

// Result reports how a session ended.
type Result struct {
	// Opened is true when the user confirmed a selection.
	Opened bool
	Line   flattree.Line
}

// Model is the bubbletea model of one browse session.
type Model struct {
	rootPath     string
	tree         *flattree.Tree
	command      *input.Command
	keyMap       input.KeyMap
	help         help.Model
	styles       output.Styles
	width        int
	height       int
	reservedRows int
	result       Result
	done         bool
}

// NewModel returns a model with the first line selected.
func NewModel(options Options) Model {
	tree := options.Tree
	if tree == nil {
		tree = flattree.New(nil)
	}
	reservedRows := options.ReservedRows
	if reservedRows < 0 {
		reservedRows = 0
	}
	return Model{
		rootPath:     options.RootPath,
		tree:         tree,
		command:      input.NewCommand(),
		keyMap:       options.KeyMap,
		help:         help.New(),
		styles:       options.Styles,
		width:        options.Width,
		height:       options.Height,
		reservedRows: reservedRows,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		m.keyMap.Decode(msg, m.command, m.treeRows())
		return m.apply(m.command.Action)
	}
	return m, nil
}

func (m Model) apply(action input.Action) (tea.Model, tea.Cmd) {
	switch action.Kind {
	case input.ActionMoveSelection:
		m.tree.MoveSelection(action.Delta)
		m.command.Echo(m.tree.Key())
	case input.ActionSelect:
		if m.tree.TrySelect(action.Key) {
			m.command.Complete()
		}
	case input.ActionOpen:
		line, ok := m.tree.Selected()
		if !ok || !line.Selectable() {
			return m, nil
		}
		m.result = Result{Opened: true, Line: line}
		m.done = true
		return m, tea.Quit
	case input.ActionQuit:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// treeRows is the number of rows available to tree lines.
func (m Model) treeRows() int {
	if m.height <= 0 {
		return 0
	}
	rows := m.height - m.reservedRows
	if rows < 1 {
		return 1
	}
	return rows
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}
	rows := m.treeRows()

	var body string
	if m.tree.Len() == 0 {
		body = m.styles.Pruned.Render(emptyTreeMessage)
	} else {
		body = output.RenderTree(m.tree, output.TreeOptions{
			Width:              m.width,
			Height:             rows,
			HighlightSelection: true,
			Styles:             m.styles,
		})
	}
	if rows > 0 {
		if padding := rows - strings.Count(body, "\n") - 1; padding > 0 {
			body += strings.Repeat("\n", padding)
		}
	}

	var builder strings.Builder
	builder.WriteString(body)
	if m.reservedRows > 0 {
		builder.WriteString("\n")
		builder.WriteString(output.RenderStatus(m.tree, m.rootPath, m.width, m.styles))
	}
	if m.reservedRows > 1 {
		builder.WriteString("\n")
		shortHelp := m.help.ShortHelpView(m.keyMap.ShortHelp())
		builder.WriteString(output.RenderInput(m.command.Raw, shortHelp, m.width, m.styles))
	}
	return builder.String()
}

// Result returns how the session ended.
func (m Model) Result() Result {
	return m.result
}

// Tree exposes the tree owned by the model.
func (m Model) Tree() *flattree.Tree {
	return m.tree
}

// Input returns the text shown in the input row.
func (m Model) Input() string {
	return m.command.Raw
}
