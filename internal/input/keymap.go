package input

import (
	"math"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/temirov/treebrowse/internal/flattree"
)

// KeyMap holds the bindings that do not type into the key buffer. Letters
// and digits are reserved for selection keys, so navigation uses arrows and
// control chords only.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	First    key.Binding
	Last     key.Binding
	Erase    key.Binding
	Open     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("pgdn", "page down"),
		),
		First: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "erase"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c", "ctrl+q"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp lists the bindings shown in the status row.
func (keyMap KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keyMap.Up, keyMap.Down, keyMap.Open, keyMap.Quit}
}

// Decode updates command from a key press. pageSize is the distance covered
// by page up and page down.
func (keyMap KeyMap) Decode(message tea.KeyMsg, command *Command, pageSize int) {
	if pageSize < 1 {
		pageSize = 1
	}
	switch {
	case key.Matches(message, keyMap.Quit):
		command.Action = Action{Kind: ActionQuit}
	case key.Matches(message, keyMap.Open):
		command.Action = Action{Kind: ActionOpen}
	case key.Matches(message, keyMap.Up):
		command.Action = MoveSelection(-1)
	case key.Matches(message, keyMap.Down):
		command.Action = MoveSelection(1)
	case key.Matches(message, keyMap.PageUp):
		command.Action = MoveSelection(-pageSize)
	case key.Matches(message, keyMap.PageDown):
		command.Action = MoveSelection(pageSize)
	case key.Matches(message, keyMap.First):
		command.Action = MoveSelection(math.MinInt)
	case key.Matches(message, keyMap.Last):
		command.Action = MoveSelection(math.MaxInt)
	case key.Matches(message, keyMap.Erase):
		command.eraseCharacter()
		command.Action = selectRaw(command.Raw)
	case message.Type == tea.KeyRunes && !message.Alt:
		typed := false
		for _, character := range message.Runes {
			character = unicode.ToLower(character)
			if !flattree.IsKeyCharacter(character) {
				continue
			}
			command.appendCharacter(string(character))
			typed = true
		}
		if !typed {
			command.Action = Action{Kind: ActionNone}
			return
		}
		command.Action = Select(command.Raw)
	default:
		command.Action = Action{Kind: ActionNone}
	}
}

func selectRaw(raw string) Action {
	if raw == "" {
		return Action{Kind: ActionNone}
	}
	return Select(raw)
}
